package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprKind discriminates the closed set of rule-expression node kinds.
// Every analyzer switch over ExprKind handles all kinds explicitly; new kinds
// must be threaded through each switch.
type ExprKind int

const (
	// ExprInvalid is the zero value; it analyzes as unresolved.
	ExprInvalid ExprKind = iota
	// ExprString is a literal string.
	ExprString
	// ExprInt is a literal integer.
	ExprInt
	// ExprFloat is a literal float.
	ExprFloat
	// ExprBool is a literal boolean.
	ExprBool
	// ExprNull is a literal null.
	ExprNull
	// ExprList is an ordered list of expressions.
	ExprList
	// ExprMap is an ordered key/value map; at the top level of a rule source
	// the keys are field paths.
	ExprMap
	// ExprBuilder is a fluent rule-builder call such as Rule::in([...]).
	// Chained calls after the first are carried in Chain.
	ExprBuilder
	// ExprNew is an object construction naming a rule class.
	ExprNew
	// ExprClass is a literal type reference (a ::class constant).
	ExprClass
	// ExprVar is a reference to a variable bound earlier in the function body.
	ExprVar
	// ExprMerge is a merge-style combination of two or more rule sources.
	ExprMerge
	// ExprConcat is a string concatenation of two or more operands.
	ExprConcat
	// ExprCond is a conditional returning one of several full rule sources
	// depending on an unanalyzable runtime condition. Branches are in source
	// order.
	ExprCond
	// ExprMatch is a discriminated match over a fixed set of literal branch
	// values, each producing a rule source.
	ExprMatch
	// ExprCall is an arbitrary method or function call with no analyzable
	// structure. Str carries the printed source text.
	ExprCall
	// ExprRaw is the printed source text of an expression the provider could
	// not classify at all.
	ExprRaw
)

// Expr is a tagged-union expression node. Which fields are meaningful depends
// on Kind; unused fields are zero.
type Expr struct {
	Kind ExprKind

	// Str holds the string literal (ExprString), variable name (ExprVar),
	// builder method name (ExprBuilder), class name (ExprNew, ExprClass),
	// match subject (ExprMatch), or printed source text (ExprCall, ExprRaw).
	Str string
	// Int holds the integer literal for ExprInt.
	Int int64
	// Float holds the float literal for ExprFloat.
	Float float64
	// Bool holds the boolean literal for ExprBool.
	Bool bool

	// Items holds list elements, builder/constructor positional arguments,
	// merge sources, concat operands, or conditional branches.
	Items []Expr
	// Pairs holds map entries (ExprMap) or named constructor arguments
	// (ExprNew).
	Pairs []Pair
	// Chain holds builder calls chained after the first (ExprBuilder).
	Chain []ChainCall
	// Cases holds the branches of an ExprMatch in source order.
	Cases []MatchCase
}

// Pair is one ordered map entry or named argument.
type Pair struct {
	Key   string
	Value Expr
}

// ChainCall is one chained builder method call.
type ChainCall struct {
	Name string
	Args []Expr
}

// MatchCase is one arm of a match construct. When is the literal branch value.
type MatchCase struct {
	When string
	Body Expr
}

// Convenience constructors used by providers and tests.

// Str returns a string literal expression.
func Str(s string) Expr { return Expr{Kind: ExprString, Str: s} }

// Int64 returns an integer literal expression.
func Int64(n int64) Expr { return Expr{Kind: ExprInt, Int: n} }

// Float64 returns a float literal expression.
func Float64(f float64) Expr { return Expr{Kind: ExprFloat, Float: f} }

// Boolean returns a boolean literal expression.
func Boolean(b bool) Expr { return Expr{Kind: ExprBool, Bool: b} }

// Null returns a null literal expression.
func Null() Expr { return Expr{Kind: ExprNull} }

// List returns an ordered list expression.
func List(items ...Expr) Expr { return Expr{Kind: ExprList, Items: items} }

// Map returns an ordered map expression.
func Map(pairs ...Pair) Expr { return Expr{Kind: ExprMap, Pairs: pairs} }

// Builder returns a fluent rule-builder call expression.
func Builder(name string, args ...Expr) Expr {
	return Expr{Kind: ExprBuilder, Str: name, Items: args}
}

// New returns an object-construction expression with positional arguments.
func New(class string, args ...Expr) Expr {
	return Expr{Kind: ExprNew, Str: class, Items: args}
}

// Class returns a literal type-reference expression.
func Class(name string) Expr { return Expr{Kind: ExprClass, Str: name} }

// Var returns a variable-reference expression.
func Var(name string) Expr { return Expr{Kind: ExprVar, Str: name} }

// Merge returns a merge-style combination of rule sources.
func Merge(sources ...Expr) Expr { return Expr{Kind: ExprMerge, Items: sources} }

// Concat returns a string-concatenation expression.
func Concat(operands ...Expr) Expr { return Expr{Kind: ExprConcat, Items: operands} }

// Cond returns a conditional over full rule sources.
func Cond(branches ...Expr) Expr { return Expr{Kind: ExprCond, Items: branches} }

// Match returns a match construct over literal branch values.
func Match(subject string, cases ...MatchCase) Expr {
	return Expr{Kind: ExprMatch, Str: subject, Cases: cases}
}

// Call returns an unanalyzable call expression carrying its printed source.
func Call(text string) Expr { return Expr{Kind: ExprCall, Str: text} }

// Raw returns an unclassified expression carrying its printed source.
func Raw(text string) Expr { return Expr{Kind: ExprRaw, Str: text} }

// IsScalar reports whether e is a scalar literal.
func (e Expr) IsScalar() bool {
	switch e.Kind {
	case ExprString, ExprInt, ExprFloat, ExprBool, ExprNull:
		return true
	default:
		return false
	}
}

// ScalarValue returns the Go value of a scalar literal (nil for ExprNull).
// The second result is false for non-scalars.
func (e Expr) ScalarValue() (any, bool) {
	switch e.Kind {
	case ExprString:
		return e.Str, true
	case ExprInt:
		return e.Int, true
	case ExprFloat:
		return e.Float, true
	case ExprBool:
		return e.Bool, true
	case ExprNull:
		return nil, true
	default:
		return nil, false
	}
}

// scalarText renders a scalar literal as the string form used in rule-token
// arguments; numbers keep their literal spelling.
func (e Expr) scalarText() string {
	switch e.Kind {
	case ExprString:
		return e.Str
	case ExprInt:
		return strconv.FormatInt(e.Int, 10)
	case ExprFloat:
		return strconv.FormatFloat(e.Float, 'f', -1, 64)
	case ExprBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case ExprNull:
		return "null"
	default:
		return ""
	}
}

// SourceText reconstructs an approximate printed form of the expression, used
// when an argument or operand must be captured verbatim.
func (e Expr) SourceText() string {
	switch e.Kind {
	case ExprString:
		return fmt.Sprintf("%q", e.Str)
	case ExprInt, ExprFloat, ExprBool, ExprNull:
		return e.scalarText()
	case ExprList:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			parts[i] = it.SourceText()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ExprMap:
		parts := make([]string, len(e.Pairs))
		for i, p := range e.Pairs {
			parts[i] = fmt.Sprintf("%q => %s", p.Key, p.Value.SourceText())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ExprBuilder:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			parts[i] = it.SourceText()
		}
		s := fmt.Sprintf("Rule::%s(%s)", e.Str, strings.Join(parts, ", "))
		for _, c := range e.Chain {
			args := make([]string, len(c.Args))
			for i, a := range c.Args {
				args[i] = a.SourceText()
			}
			s += fmt.Sprintf("->%s(%s)", c.Name, strings.Join(args, ", "))
		}
		return s
	case ExprNew:
		parts := make([]string, 0, len(e.Items)+len(e.Pairs))
		for _, it := range e.Items {
			parts = append(parts, it.SourceText())
		}
		for _, p := range e.Pairs {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Key, p.Value.SourceText()))
		}
		return fmt.Sprintf("new %s(%s)", e.Str, strings.Join(parts, ", "))
	case ExprClass:
		return e.Str + "::class"
	case ExprVar:
		return "$" + e.Str
	case ExprMerge:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			parts[i] = it.SourceText()
		}
		return "array_merge(" + strings.Join(parts, ", ") + ")"
	case ExprConcat:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			parts[i] = it.SourceText()
		}
		return strings.Join(parts, " . ")
	case ExprCond:
		return "<conditional>"
	case ExprMatch:
		return fmt.Sprintf("match(%s)", e.Str)
	case ExprCall, ExprRaw:
		return e.Str
	default:
		return "<invalid>"
	}
}
