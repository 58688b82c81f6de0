package rules

import (
	"fmt"
	"strings"
)

// TokenKind discriminates the closed set of rule-token kinds.
type TokenKind int

const (
	// TokenLiteral is a bare constraint with colon-separated arguments,
	// e.g. max:255.
	TokenLiteral TokenKind = iota
	// TokenBuilder is a constraint produced by a fluent rule-builder call.
	TokenBuilder
	// TokenEnum binds the field to the value set of a named enumeration type.
	// The value set is resolved separately by the caller.
	TokenEnum
	// TokenCustom is an opaque user-defined constraint; its arguments are
	// captured verbatim for later semantic analysis but it contributes no
	// schema fact beyond its presence.
	TokenCustom
	// TokenUnresolved marks a rule expression that could not be statically
	// reduced. Never silently dropped.
	TokenUnresolved
)

// Token is one atomic, canonicalized validation constraint.
type Token struct {
	Kind TokenKind

	// Name is the constraint name for TokenLiteral and TokenBuilder.
	Name string
	// Args is the ordered argument list for TokenLiteral and TokenBuilder.
	Args []string

	// ClassName is the fully qualified type name for TokenEnum and TokenCustom.
	ClassName string
	// CustomArgs holds constructor arguments for TokenCustom: positional
	// values when the call site is positional, nil otherwise. Scalars are
	// captured literally; lists and maps recursively; other expressions as
	// printed source text.
	CustomArgs []any
	// NamedArgs holds named constructor arguments for TokenCustom.
	NamedArgs map[string]any

	// Reason carries the printed expression or explanation for TokenUnresolved.
	Reason string
}

// String renders the token for diagnostics and test failure output.
func (t Token) String() string {
	switch t.Kind {
	case TokenLiteral:
		if len(t.Args) == 0 {
			return t.Name
		}
		return t.Name + ":" + strings.Join(t.Args, ",")
	case TokenBuilder:
		return fmt.Sprintf("Rule(%s:%s)", t.Name, strings.Join(t.Args, ","))
	case TokenEnum:
		return fmt.Sprintf("Enum(%s)", t.ClassName)
	case TokenCustom:
		return fmt.Sprintf("Custom(%s)", t.ClassName)
	case TokenUnresolved:
		return fmt.Sprintf("Unresolved(%s)", t.Reason)
	default:
		return "Token(?)"
	}
}

// LiteralToken returns a literal token.
func LiteralToken(name string, args ...string) Token {
	return Token{Kind: TokenLiteral, Name: name, Args: args}
}

// BuilderToken returns a builder-produced token.
func BuilderToken(name string, args ...string) Token {
	return Token{Kind: TokenBuilder, Name: name, Args: args}
}

// EnumToken returns an enum-binding token.
func EnumToken(className string) Token {
	return Token{Kind: TokenEnum, ClassName: className}
}

// UnresolvedToken returns an unresolved marker token.
func UnresolvedToken(reason string) Token {
	return Token{Kind: TokenUnresolved, Reason: reason}
}
