package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeStringAndListEquivalence(t *testing.T) {
	want := []Token{
		LiteralToken("required"),
		LiteralToken("string"),
		LiteralToken("max", "255"),
	}

	fromString := Analyze(Map(Pair{Key: "name", Value: Str("required|string|max:255")}))
	fromList := Analyze(Map(Pair{Key: "name", Value: List(
		Str("required"), Str("string"), Str("max:255"),
	)}))

	assert.Equal(t, want, fromString.Get("name"))
	assert.Equal(t, want, fromList.Get("name"))
	assert.Equal(t, fromString.Fields, fromList.Fields)
}

func TestAnalyzeLiteralArgumentSplitting(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want []Token
	}{
		{
			name: "no arguments",
			rule: "required",
			want: []Token{LiteralToken("required")},
		},
		{
			name: "single argument",
			rule: "max:255",
			want: []Token{LiteralToken("max", "255")},
		},
		{
			name: "comma separated arguments",
			rule: "between:1,10",
			want: []Token{LiteralToken("between", "1", "10")},
		},
		{
			name: "membership values",
			rule: "in:active,inactive,pending",
			want: []Token{LiteralToken("in", "active", "inactive", "pending")},
		},
		{
			name: "regex keeps commas in pattern",
			rule: `regex:/^a{1,3}$/`,
			want: []Token{LiteralToken("regex", `/^a{1,3}$/`)},
		},
		{
			name: "empty fragments are skipped",
			rule: "required||string",
			want: []Token{LiteralToken("required"), LiteralToken("string")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(Map(Pair{Key: "f", Value: Str(tt.rule)}))
			assert.Equal(t, tt.want, result.Get("f"))
		})
	}
}

func TestAnalyzeMergePrecedence(t *testing.T) {
	sourceA := Map(
		Pair{Key: "name", Value: Str("required|string")},
		Pair{Key: "age", Value: Str("integer")},
	)
	sourceB := Map(
		Pair{Key: "name", Value: Str("sometimes|email")},
		Pair{Key: "city", Value: Str("string")},
	)

	result := Analyze(Merge(sourceA, sourceB))

	// B wins for overlapping fields.
	assert.Equal(t, []Token{LiteralToken("sometimes"), LiteralToken("email")}, result.Get("name"))
	// Fields unique to either source are preserved.
	assert.Equal(t, []Token{LiteralToken("integer")}, result.Get("age"))
	assert.Equal(t, []Token{LiteralToken("string")}, result.Get("city"))
	// name keeps its original position from source A.
	require.Len(t, result.Fields, 3)
	assert.Equal(t, "name", result.Fields[0].Field)
}

func TestAnalyzeBuilderMembership(t *testing.T) {
	result := Analyze(Map(Pair{
		Key:   "status",
		Value: Builder("in", List(Str("active"), Str("inactive"), Str("pending"))),
	}))

	assert.Equal(t, []Token{BuilderToken("in", "active", "inactive", "pending")}, result.Get("status"))
}

func TestAnalyzeBuilderMembershipEmptySet(t *testing.T) {
	result := Analyze(Map(Pair{Key: "status", Value: Builder("in", List())}))

	tokens := result.Get("status")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenBuilder, tokens[0].Kind)
	assert.Equal(t, "in", tokens[0].Name)
	// Emitted with an empty argument list rather than omitted.
	assert.Empty(t, tokens[0].Args)
}

func TestAnalyzeBuilderUniqueIgnoresChain(t *testing.T) {
	expr := Builder("unique", Str("users"), Str("email"))
	expr.Chain = []ChainCall{{Name: "ignore", Args: []Expr{Var("user")}}}

	result := Analyze(Map(Pair{Key: "email", Value: List(Str("required"), expr)}))

	assert.Equal(t, []Token{
		LiteralToken("required"),
		BuilderToken("unique", "users", "email"),
	}, result.Get("email"))
}

func TestAnalyzeBuilderRequiredIfNumericValue(t *testing.T) {
	result := Analyze(Map(Pair{
		Key:   "reason",
		Value: Builder("requiredIf", Str("age"), Int64(18)),
	}))

	assert.Equal(t, []Token{BuilderToken("required_if", "age", "18")}, result.Get("reason"))
}

func TestAnalyzeBuilderEnum(t *testing.T) {
	t.Run("literal class resolves to enum token", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "status",
			Value: Builder("enum", Class(`App\Enums\Status`)),
		}))
		assert.Equal(t, []Token{EnumToken(`App\Enums\Status`)}, result.Get("status"))
	})

	t.Run("variable type argument degrades to sentinel", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "status",
			Value: Builder("enum", Var("enumClass")),
		}))
		assert.Equal(t, []Token{LiteralToken("__enum__")}, result.Get("status"))
	})
}

func TestAnalyzeEnumWrapperConstruction(t *testing.T) {
	result := Analyze(Map(Pair{
		Key:   "status",
		Value: New(`Illuminate\Validation\Rules\Enum`, Class(`App\Enums\Status`)),
	}))

	assert.Equal(t, []Token{EnumToken(`App\Enums\Status`)}, result.Get("status"))
}

func TestAnalyzeCustomRuleConstruction(t *testing.T) {
	t.Run("positional scalar and nested arguments", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key: "code",
			Value: New(`App\Rules\Uppercase`,
				Int64(3),
				List(Str("a"), Str("b")),
				Map(Pair{Key: "strict", Value: Boolean(true)}),
			),
		}))

		tokens := result.Get("code")
		require.Len(t, tokens, 1)
		tok := tokens[0]
		assert.Equal(t, TokenCustom, tok.Kind)
		assert.Equal(t, `App\Rules\Uppercase`, tok.ClassName)
		require.Len(t, tok.CustomArgs, 3)
		assert.Equal(t, int64(3), tok.CustomArgs[0])
		assert.Equal(t, []any{"a", "b"}, tok.CustomArgs[1])
		assert.Equal(t, map[string]any{"strict": true}, tok.CustomArgs[2])
	})

	t.Run("named arguments", func(t *testing.T) {
		expr := Expr{Kind: ExprNew, Str: `App\Rules\Range`, Pairs: []Pair{
			{Key: "min", Value: Int64(1)},
			{Key: "max", Value: Int64(10)},
		}}
		result := Analyze(Map(Pair{Key: "n", Value: expr}))

		tokens := result.Get("n")
		require.Len(t, tokens, 1)
		assert.Equal(t, map[string]any{"min": int64(1), "max": int64(10)}, tokens[0].NamedArgs)
	})

	t.Run("non-trivial argument captured as source text", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "code",
			Value: New(`App\Rules\Uppercase`, Call("config('app.locale')")),
		}))

		tokens := result.Get("code")
		require.Len(t, tokens, 1)
		assert.Equal(t, []any{"config('app.locale')"}, tokens[0].CustomArgs)
	})
}

func TestAnalyzeConcat(t *testing.T) {
	t.Run("purely literal computes a single string", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "f",
			Value: Concat(Str("max:"), Int64(255)),
		}))
		assert.Equal(t, []Token{LiteralToken("max", "255")}, result.Get("f"))
	})

	t.Run("trailing non-literal keeps joined literal prefix", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "f",
			Value: Concat(Str("required|"), Str("string"), Call("extraRules()")),
		}))
		assert.Equal(t, []Token{LiteralToken("required"), LiteralToken("string")}, result.Get("f"))
	})

	t.Run("leading non-literal degrades to unresolved", func(t *testing.T) {
		result := Analyze(Map(Pair{
			Key:   "f",
			Value: Concat(Call("prefix()"), Str("|string")),
		}))
		tokens := result.Get("f")
		require.Len(t, tokens, 1)
		assert.Equal(t, TokenUnresolved, tokens[0].Kind)
		assert.Contains(t, tokens[0].Reason, "prefix()")
	})
}

func TestAnalyzeVariableResolution(t *testing.T) {
	t.Run("bound variable resolves in place", func(t *testing.T) {
		bindings := map[string]Expr{
			"base": Map(Pair{Key: "name", Value: Str("required|string")}),
		}
		result := Analyze(Var("base"), WithBindings(bindings))
		assert.Equal(t, []Token{LiteralToken("required"), LiteralToken("string")}, result.Get("name"))
		assert.Empty(t, result.Notices)
	})

	t.Run("unbound variable at set level is a dynamic notice", func(t *testing.T) {
		result := Analyze(Var("mystery"))
		assert.Empty(t, result.Fields)
		assert.Equal(t, []string{NoticeDynamic}, result.Notices)
	})

	t.Run("unbound variable at field level is an unresolved token", func(t *testing.T) {
		result := Analyze(Map(Pair{Key: "f", Value: Var("mystery")}))
		tokens := result.Get("f")
		require.Len(t, tokens, 1)
		assert.Equal(t, TokenUnresolved, tokens[0].Kind)
	})

	t.Run("self-referential binding does not loop", func(t *testing.T) {
		bindings := map[string]Expr{"loop": Var("loop")}
		result := Analyze(Var("loop"), WithBindings(bindings))
		assert.Equal(t, []string{NoticeDynamic}, result.Notices)
	})

	t.Run("binding shared by several fields resolves for each", func(t *testing.T) {
		bindings := map[string]Expr{"common": Str("required|string")}
		result := Analyze(Map(
			Pair{Key: "first", Value: Var("common")},
			Pair{Key: "second", Value: Var("common")},
		), WithBindings(bindings))

		want := []Token{LiteralToken("required"), LiteralToken("string")}
		assert.Equal(t, want, result.Get("first"))
		assert.Equal(t, want, result.Get("second"))
	})

	t.Run("nested set references to one binding all resolve", func(t *testing.T) {
		bindings := map[string]Expr{
			"shared": Map(Pair{Key: "x", Value: Str("integer")}),
		}
		result := Analyze(Merge(Var("shared"), Var("shared")), WithBindings(bindings))
		assert.Equal(t, []Token{LiteralToken("integer")}, result.Get("x"))
		assert.Empty(t, result.Notices)
	})
}

func TestAnalyzeDynamicRuleSet(t *testing.T) {
	result := Analyze(Call("$this->dynamicRules()"))

	assert.Empty(t, result.Fields)
	assert.Equal(t, []string{NoticeDynamic}, result.Notices)
	// Zero parameter descriptors, never a thrown error.
	assert.Empty(t, DescriptorsFor(result, "body"))
}

func TestAnalyzeComplexRuleSet(t *testing.T) {
	result := Analyze(Raw("array_map(fn($r) => $r, $rules)"))

	assert.Empty(t, result.Fields)
	assert.Equal(t, []string{NoticeComplex}, result.Notices)
}

func TestAnalyzeConditionalFirstBranchOnly(t *testing.T) {
	first := Map(Pair{Key: "name", Value: Str("required")})
	second := Map(Pair{Key: "other", Value: Str("required")})

	result := Analyze(Cond(first, second))

	assert.True(t, result.Has("name"))
	// Only the first reachable branch is captured.
	assert.False(t, result.Has("other"))
	assert.Contains(t, result.Notices, NoticeConditional)
}

func TestAnalyzeMatchFirstCaseOnly(t *testing.T) {
	result := Analyze(Match("$this->type",
		MatchCase{When: "create", Body: Map(Pair{Key: "name", Value: Str("required")})},
		MatchCase{When: "update", Body: Map(Pair{Key: "name", Value: Str("sometimes")})},
	))

	assert.Equal(t, []Token{LiteralToken("required")}, result.Get("name"))
	assert.Contains(t, result.Notices, NoticeMatch)
}

func TestAnalyzeFieldLevelMergeFlattens(t *testing.T) {
	result := Analyze(Map(Pair{
		Key:   "f",
		Value: Merge(List(Str("required")), List(Str("string"))),
	}))

	assert.Equal(t, []Token{LiteralToken("required"), LiteralToken("string")}, result.Get("f"))
}
