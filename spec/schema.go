package spec

// Schema represents a JSON Schema as used by OAS 3.0.x and 3.1.x documents.
type Schema struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"` // OAS 3.0 (deprecated in 3.1+)
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	ReadOnly    bool   `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly   bool   `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	// Type validation
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"` // string, or []string in OAS 3.1+
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const  any    `yaml:"const,omitempty" json:"const,omitempty"` // OAS 3.1+

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in 3.0, number in 3.1+
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in 3.0, number in 3.1+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Contains    *Schema `yaml:"contains,omitempty" json:"contains,omitempty"` // OAS 3.1+

	// Object validation
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames        *Schema            `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"` // OAS 3.1+
	MaxProperties        *int               `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int               `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Conditional schemas (OAS 3.1+)
	If   *Schema `yaml:"if,omitempty" json:"if,omitempty"`
	Then *Schema `yaml:"then,omitempty" json:"then,omitempty"`
	Else *Schema `yaml:"else,omitempty" json:"else,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// OAS 3.0 only (replaced by type: [T, "null"] in 3.1+)
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

// TypeString returns the schema's type when it is a plain string, or "" when
// it is absent or an array form.
func (s *Schema) TypeString() string {
	if t, ok := s.Type.(string); ok {
		return t
	}
	return ""
}

// TypeList returns the schema's type entries: a single-element slice for the
// string form, the elements for the array form, or nil when absent. Both
// []string and []any array representations are accepted, since decoded foreign
// documents carry []any.
func (s *Schema) TypeList() []string {
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// IsNullable reports the logical nullability fact regardless of version
// presentation: either the 3.0 nullable keyword or a "null" entry in the
// 3.1 type array.
func (s *Schema) IsNullable() bool {
	if s.Nullable {
		return true
	}
	for _, t := range s.TypeList() {
		if t == "null" {
			return true
		}
	}
	return false
}
