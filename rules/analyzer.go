package rules

import "strings"

// Option configures an analysis run.
type Option func(*config)

type config struct {
	bindings     map[string]Expr
	enumWrappers map[string]bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		enumWrappers: map[string]bool{"Enum": true},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBindings supplies variable bindings resolved earlier in the same
// function body, so ExprVar references can be analyzed in place.
func WithBindings(bindings map[string]Expr) Option {
	return func(cfg *config) {
		cfg.bindings = bindings
	}
}

// WithEnumWrapper adds class base names treated as enumeration-rule wrappers
// (the default set contains "Enum").
func WithEnumWrapper(names ...string) Option {
	return func(cfg *config) {
		for _, n := range names {
			cfg.enumWrappers[n] = true
		}
	}
}

// Analyze reduces a whole rule source to an ordered field→token-list result.
// It is purely functional and never fails: unanalyzable shapes degrade to
// Unresolved tokens or result notices.
func Analyze(src Expr, opts ...Option) *Result {
	a := &analyzer{cfg: newConfig(opts), visiting: make(map[string]bool)}
	return a.ruleSet(src)
}

// AnalyzeField reduces a single field's rule source to its token list.
func AnalyzeField(src Expr, opts ...Option) []Token {
	a := &analyzer{cfg: newConfig(opts), visiting: make(map[string]bool)}
	return a.fieldTokens(src)
}

type analyzer struct {
	cfg *config
	// visiting guards against self-referential variable bindings.
	visiting map[string]bool
}

// ruleSet analyzes a whole-rule-set expression: the value a rules() method
// returns, covering every field of the request.
func (a *analyzer) ruleSet(e Expr) *Result {
	switch e.Kind {
	case ExprMap:
		result := &Result{}
		for _, pair := range e.Pairs {
			result.set(pair.Key, a.fieldTokens(pair.Value))
		}
		return result

	case ExprVar:
		if bound, ok := a.resolveVar(e.Str); ok {
			result := a.ruleSet(bound)
			a.doneVisiting(e.Str)
			return result
		}
		return &Result{Notices: []string{NoticeDynamic}}

	case ExprMerge:
		result := &Result{}
		for _, src := range e.Items {
			result.merge(a.ruleSet(src))
		}
		return result

	case ExprCond:
		// Only the first branch reachable in source order is captured.
		if len(e.Items) == 0 {
			return &Result{Notices: []string{NoticeComplex}}
		}
		result := a.ruleSet(e.Items[0])
		result.addNotice(NoticeConditional)
		return result

	case ExprMatch:
		if len(e.Cases) == 0 {
			return &Result{Notices: []string{NoticeComplex}}
		}
		result := a.ruleSet(e.Cases[0].Body)
		result.addNotice(NoticeMatch)
		return result

	case ExprCall:
		return &Result{Notices: []string{NoticeDynamic}}

	case ExprString, ExprInt, ExprFloat, ExprBool, ExprNull,
		ExprList, ExprBuilder, ExprNew, ExprClass, ExprConcat, ExprRaw, ExprInvalid:
		return &Result{Notices: []string{NoticeComplex}}

	default:
		return &Result{Notices: []string{NoticeComplex}}
	}
}

// resolveVar looks up a variable binding and marks it in-flight so that a
// binding referring back to itself degrades instead of recursing forever.
// The caller releases the mark with doneVisiting once the bound expression
// has been analyzed, so later references to the same binding resolve again.
func (a *analyzer) resolveVar(name string) (Expr, bool) {
	if a.visiting[name] {
		return Expr{}, false
	}
	bound, ok := a.cfg.bindings[name]
	if !ok {
		return Expr{}, false
	}
	a.visiting[name] = true
	return bound, true
}

func (a *analyzer) doneVisiting(name string) {
	delete(a.visiting, name)
}

// fieldTokens analyzes one field's rule source into its flat ordered token
// list. Array-style, pipe-string, and merged definitions all normalize to the
// same list when they express the same constraints.
func (a *analyzer) fieldTokens(e Expr) []Token {
	switch e.Kind {
	case ExprString:
		return splitStringRules(e.Str)

	case ExprInt, ExprFloat, ExprBool:
		return []Token{LiteralToken(e.scalarText())}

	case ExprNull:
		// A null rule entry constrains nothing.
		return nil

	case ExprList:
		var tokens []Token
		for _, item := range e.Items {
			tokens = append(tokens, a.fieldTokens(item)...)
		}
		return tokens

	case ExprMerge:
		var tokens []Token
		for _, src := range e.Items {
			tokens = append(tokens, a.fieldTokens(src)...)
		}
		return tokens

	case ExprBuilder:
		return []Token{a.builderToken(e)}

	case ExprNew:
		return []Token{a.constructionToken(e)}

	case ExprVar:
		if bound, ok := a.resolveVar(e.Str); ok {
			tokens := a.fieldTokens(bound)
			a.doneVisiting(e.Str)
			return tokens
		}
		return []Token{UnresolvedToken(e.SourceText())}

	case ExprConcat:
		return a.concatTokens(e)

	case ExprClass, ExprCond, ExprMatch, ExprCall, ExprRaw, ExprMap, ExprInvalid:
		return []Token{UnresolvedToken(e.SourceText())}

	default:
		return []Token{UnresolvedToken(e.SourceText())}
	}
}

// builderToken resolves a fluent rule-builder call by its static method name.
// Chained calls beyond the first collapse into the base constraint.
func (a *analyzer) builderToken(e Expr) Token {
	switch e.Str {
	case "in":
		return BuilderToken("in", membershipValues(e.Items)...)

	case "unique", "exists":
		// Captures the referenced table and, if present, column. Subsequent
		// chained calls (ignore, where, withoutTrashed, ...) are ignored.
		args := make([]string, 0, 2)
		for _, arg := range e.Items[:min(len(e.Items), 2)] {
			if arg.IsScalar() {
				args = append(args, arg.scalarText())
			}
		}
		return BuilderToken(e.Str, args...)

	case "requiredIf", "required_if":
		args := make([]string, 0, 2)
		for _, arg := range e.Items[:min(len(e.Items), 2)] {
			if arg.IsScalar() {
				// Numeric trigger values are preserved as stringified literals.
				args = append(args, arg.scalarText())
			} else {
				args = append(args, arg.SourceText())
			}
		}
		return BuilderToken("required_if", args...)

	case "enum":
		if len(e.Items) == 1 && e.Items[0].Kind == ExprClass {
			return EnumToken(e.Items[0].Str)
		}
		// Enum-shaped but the type argument is not a literal type reference.
		return LiteralToken(enumSentinel)

	default:
		return UnresolvedToken(e.SourceText())
	}
}

// enumSentinel signals "enum-shaped but type unknown".
const enumSentinel = "__enum__"

// membershipValues extracts the scalar values of a membership constraint.
// A single list argument carries the value set; varargs call sites list the
// values directly. Non-scalar entries contribute nothing; an empty set is
// still emitted as an empty argument list rather than omitted.
func membershipValues(args []Expr) []string {
	source := args
	if len(args) == 1 && args[0].Kind == ExprList {
		source = args[0].Items
	}
	values := make([]string, 0, len(source))
	for _, v := range source {
		if v.IsScalar() && v.Kind != ExprNull {
			values = append(values, v.scalarText())
		}
	}
	return values
}

// constructionToken resolves an object-construction expression: enumeration
// wrappers behave like builder enum calls, everything else is an opaque
// custom rule with verbatim argument capture.
func (a *analyzer) constructionToken(e Expr) Token {
	if a.cfg.enumWrappers[baseClassName(e.Str)] {
		if len(e.Items) >= 1 && e.Items[0].Kind == ExprClass {
			return EnumToken(e.Items[0].Str)
		}
		return LiteralToken(enumSentinel)
	}

	token := Token{Kind: TokenCustom, ClassName: e.Str}
	if len(e.Pairs) > 0 {
		token.NamedArgs = make(map[string]any, len(e.Pairs))
		for _, p := range e.Pairs {
			token.NamedArgs[p.Key] = captureValue(p.Value)
		}
		return token
	}
	if len(e.Items) > 0 {
		token.CustomArgs = make([]any, len(e.Items))
		for i, arg := range e.Items {
			token.CustomArgs[i] = captureValue(arg)
		}
	}
	return token
}

// captureValue captures a constructor argument verbatim: scalars literally,
// lists and maps recursively, anything else as its printed source text.
func captureValue(e Expr) any {
	if v, ok := e.ScalarValue(); ok {
		return v
	}
	switch e.Kind {
	case ExprList:
		out := make([]any, len(e.Items))
		for i, item := range e.Items {
			out[i] = captureValue(item)
		}
		return out
	case ExprMap:
		out := make(map[string]any, len(e.Pairs))
		for _, p := range e.Pairs {
			out[p.Key] = captureValue(p.Value)
		}
		return out
	default:
		return e.SourceText()
	}
}

// concatTokens evaluates string concatenation. Purely literal concatenations
// compute a single literal string; a single trailing non-literal operand is
// dropped in favor of the already-joined literal prefix; any other non-literal
// operand degrades the whole expression to an Unresolved token.
func (a *analyzer) concatTokens(e Expr) []Token {
	firstNonLiteral := -1
	for i, op := range e.Items {
		if !op.IsScalar() {
			firstNonLiteral = i
			break
		}
	}

	switch {
	case firstNonLiteral < 0:
		var sb strings.Builder
		for _, op := range e.Items {
			sb.WriteString(op.scalarText())
		}
		return splitStringRules(sb.String())

	case firstNonLiteral > 0 && firstNonLiteral == len(e.Items)-1:
		var sb strings.Builder
		for _, op := range e.Items[:firstNonLiteral] {
			sb.WriteString(op.scalarText())
		}
		return splitStringRules(sb.String())

	default:
		return []Token{UnresolvedToken(e.SourceText())}
	}
}

// splitStringRules normalizes a flat pipe-delimited rule string into literal
// tokens. Each token splits on its first colon into name and arguments; the
// argument part splits on commas except for regex-style rules, whose pattern
// may itself contain commas.
func splitStringRules(s string) []Token {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	tokens := make([]Token, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rest, found := strings.Cut(part, ":")
		if !found || rest == "" {
			tokens = append(tokens, LiteralToken(name))
			continue
		}
		if name == "regex" || name == "not_regex" {
			tokens = append(tokens, LiteralToken(name, rest))
			continue
		}
		tokens = append(tokens, LiteralToken(name, strings.Split(rest, ",")...))
	}
	return tokens
}

// baseClassName strips namespace qualifiers: "App\Rules\Uppercase" -> "Uppercase".
func baseClassName(class string) string {
	if idx := strings.LastIndexAny(class, `\/`); idx >= 0 {
		return class[idx+1:]
	}
	return class
}
