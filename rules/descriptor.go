package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inferspec/inferspec/internal/stringutil"
)

// Descriptor is the canonical, constraint-level description of one field's
// API-visible shape, derived 1:1 from its rule-token list.
type Descriptor struct {
	// Name is the field path as declared in the rule source.
	Name string
	// In is the parameter location: "query", "path", or "body".
	In string
	// Type is the inferred JSON type ("string", "integer", "number",
	// "boolean", "array", "object").
	Type string
	// Format is the inferred string format, if any.
	Format string
	// Required reports whether the field must be present.
	Required bool
	// Nullable reports whether the field accepts null.
	Nullable bool
	// Default is the declared default value, when one is statically known.
	Default any
	// Enum is the ordered closed value set, when one was captured.
	Enum []any
	// EnumClass names the enumeration type whose value set defines the field,
	// for callers that resolve enum members by reflection. Empty unless the
	// field carried an enum-binding token that was not resolved inline.
	EnumClass string
	// Constraints carries length/value/pattern bounds.
	Constraints Constraints
	// Description is the human-readable label (override or generated).
	Description string
	// Unresolved lists the printed expressions of rule fragments the analyzer
	// gave up on, so consumers can tell "gave up" from "inferred nothing".
	Unresolved []string
}

// Constraints are the bounds extracted from literal rule arguments.
type Constraints struct {
	MinLength *int
	MaxLength *int
	Minimum   *float64
	Maximum   *float64
	MinItems  *int
	MaxItems  *int
	Pattern   string
}

// DescriptorOption configures descriptor derivation.
type DescriptorOption func(*descriptorConfig)

type descriptorConfig struct {
	labels     map[string]string
	enumValues map[string][]any
}

// WithLabels supplies human-readable label overrides per field path.
func WithLabels(labels map[string]string) DescriptorOption {
	return func(cfg *descriptorConfig) {
		cfg.labels = labels
	}
}

// WithEnumValues supplies resolved value sets per enumeration class name, for
// enum-binding tokens whose members were reflected by a collaborator.
func WithEnumValues(values map[string][]any) DescriptorOption {
	return func(cfg *descriptorConfig) {
		cfg.enumValues = values
	}
}

// DescriptorsFor derives one descriptor per analyzed field, in field order.
// A result whose whole source was dynamic yields zero descriptors.
func DescriptorsFor(result *Result, in string, opts ...DescriptorOption) []Descriptor {
	cfg := &descriptorConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	descriptors := make([]Descriptor, 0, len(result.Fields))
	for _, field := range result.Fields {
		descriptors = append(descriptors, describeField(field, in, cfg))
	}
	return descriptors
}

func describeField(field FieldRules, in string, cfg *descriptorConfig) Descriptor {
	d := Descriptor{Name: field.Field, In: in}

	if label, ok := cfg.labels[field.Field]; ok {
		d.Description = label
	} else {
		d.Description = stringutil.Humanize(field.Field)
	}

	// First pass: type facts, so length/value bounds land on the right keyword.
	for _, tok := range field.Tokens {
		applyTypeFacts(&d, tok, cfg)
	}
	if d.Type == "" {
		d.Type = "string"
	}

	// Second pass: everything else.
	for _, tok := range field.Tokens {
		applyConstraintFacts(&d, tok)
	}
	return d
}

// typeRules maps a literal rule name to the (type, format) it implies.
var typeRules = map[string][2]string{
	"string":         {"string", ""},
	"integer":        {"integer", ""},
	"int":            {"integer", ""},
	"numeric":        {"number", ""},
	"decimal":        {"number", ""},
	"boolean":        {"boolean", ""},
	"bool":           {"boolean", ""},
	"array":          {"array", ""},
	"json":           {"object", ""},
	"date":           {"string", "date-time"},
	"datetime":       {"string", "date-time"},
	"date_format":    {"string", "date-time"},
	"date_equals":    {"string", "date-time"},
	"after":          {"string", "date-time"},
	"before":         {"string", "date-time"},
	"email":          {"string", "email"},
	"url":            {"string", "uri"},
	"active_url":     {"string", "uri"},
	"uuid":           {"string", "uuid"},
	"ulid":           {"string", "ulid"},
	"ip":             {"string", "ip"},
	"ipv4":           {"string", "ipv4"},
	"ipv6":           {"string", "ipv6"},
	"file":           {"string", "binary"},
	"image":          {"string", "binary"},
	"digits":         {"integer", ""},
	"digits_between": {"integer", ""},
	enumSentinel:     {"string", ""},
}

func applyTypeFacts(d *Descriptor, tok Token, cfg *descriptorConfig) {
	switch tok.Kind {
	case TokenLiteral:
		if tf, ok := typeRules[tok.Name]; ok {
			d.Type = tf[0]
			if tf[1] != "" {
				d.Format = tf[1]
			}
		}
	case TokenEnum:
		d.EnumClass = tok.ClassName
		if values, ok := cfg.enumValues[tok.ClassName]; ok {
			d.Enum = append([]any(nil), values...)
			if d.Type == "" && len(values) > 0 {
				d.Type = jsonTypeOf(values[0])
			}
		}
		if d.Type == "" {
			d.Type = "string"
		}
	case TokenBuilder, TokenCustom, TokenUnresolved:
		// No type facts.
	}
}

func applyConstraintFacts(d *Descriptor, tok Token) {
	switch tok.Kind {
	case TokenLiteral:
		applyLiteral(d, tok)
	case TokenBuilder:
		applyBuilder(d, tok)
	case TokenEnum, TokenCustom:
		// Enum handled in the type pass; custom rules contribute no schema
		// fact beyond their presence.
	case TokenUnresolved:
		d.Unresolved = append(d.Unresolved, tok.Reason)
	}
}

func applyLiteral(d *Descriptor, tok Token) {
	switch tok.Name {
	case "required":
		d.Required = true
	case "sometimes", "missing":
		d.Required = false
	case "nullable":
		d.Nullable = true
	case "present":
		d.Required = true
	case "in":
		d.Enum = enumValues(tok.Args, d.Type)
	case "min":
		if v, ok := firstFloat(tok.Args); ok {
			applyMin(d, v)
		}
	case "max":
		if v, ok := firstFloat(tok.Args); ok {
			applyMax(d, v)
		}
	case "size":
		if v, ok := firstFloat(tok.Args); ok {
			applyMin(d, v)
			applyMax(d, v)
		}
	case "between":
		if len(tok.Args) == 2 {
			if lo, ok := parseFloat(tok.Args[0]); ok {
				applyMin(d, lo)
			}
			if hi, ok := parseFloat(tok.Args[1]); ok {
				applyMax(d, hi)
			}
		}
	case "digits":
		if v, ok := firstFloat(tok.Args); ok {
			n := int(v)
			d.Constraints.MinLength = &n
			d.Constraints.MaxLength = &n
		}
	case "regex":
		if len(tok.Args) == 1 {
			d.Constraints.Pattern = trimPatternDelimiters(tok.Args[0])
		}
	}
}

func applyBuilder(d *Descriptor, tok Token) {
	switch tok.Name {
	case "in":
		d.Enum = enumValues(tok.Args, d.Type)
	case "required_if":
		if len(tok.Args) == 2 && d.Description != "" {
			d.Description = fmt.Sprintf("%s. Required when %s is %s.", d.Description, tok.Args[0], tok.Args[1])
		}
	case "unique", "exists":
		// Database-backed constraints carry no wire-shape fact.
	}
}

// applyMin and applyMax route a bound to the keyword matching the inferred
// type: length for strings, item count for arrays, value for numbers.
func applyMin(d *Descriptor, v float64) {
	switch d.Type {
	case "integer", "number":
		d.Constraints.Minimum = &v
	case "array":
		n := int(v)
		d.Constraints.MinItems = &n
	default:
		n := int(v)
		d.Constraints.MinLength = &n
	}
}

func applyMax(d *Descriptor, v float64) {
	switch d.Type {
	case "integer", "number":
		d.Constraints.Maximum = &v
	case "array":
		n := int(v)
		d.Constraints.MaxItems = &n
	default:
		n := int(v)
		d.Constraints.MaxLength = &n
	}
}

// enumValues converts captured membership arguments into typed enum entries:
// numeric strings become numbers when the field's inferred type is numeric.
func enumValues(args []string, fieldType string) []any {
	values := make([]any, 0, len(args))
	for _, arg := range args {
		switch fieldType {
		case "integer":
			if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
				values = append(values, n)
				continue
			}
		case "number":
			if f, err := strconv.ParseFloat(arg, 64); err == nil {
				values = append(values, f)
				continue
			}
		}
		values = append(values, arg)
	}
	return values
}

func firstFloat(args []string) (float64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	return parseFloat(args[0])
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// trimPatternDelimiters strips the surrounding /.../ delimiters carried over
// from the source language's regex literals, keeping the bare pattern.
func trimPatternDelimiters(p string) string {
	if len(p) >= 2 && p[0] == '/' {
		if end := strings.LastIndexByte(p, '/'); end > 0 {
			return p[1:end]
		}
	}
	return p
}

func jsonTypeOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int32, int64:
		return "integer"
	case float32, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "string"
	}
}
