package spec

// Document represents an OpenAPI Specification 3.x document.
// Supports OAS 3.0.x and 3.1.x.
// References:
// - OAS 3.0.0: https://spec.openapis.org/oas/v3.0.0.html
// - OAS 3.1.0: https://spec.openapis.org/oas/v3.1.0.html
type Document struct {
	OpenAPI string `yaml:"openapi" json:"openapi"` // Required: "3.0.x" or "3.1.x"
	Info    *Info  `yaml:"info" json:"info"`       // Required

	// Paths and Webhooks use omitzero: an empty-but-present map serializes
	// as {} (required for paths in 3.0 and webhooks in 3.1), while a nil map
	// is omitted.
	Paths    Paths                `yaml:"paths,omitempty" json:"paths,omitzero"`
	Webhooks map[string]*PathItem `yaml:"webhooks,omitempty" json:"webhooks,omitzero"` // OAS 3.1+

	Servers      []*Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Components   *Components           `yaml:"components,omitempty" json:"components,omitempty"`
	Security     []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	Tags         []*Tag                `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs         `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	OASVersion   Version               `yaml:"-" json:"-"`

	// OAS 3.1+ additions
	JSONSchemaDialect string `yaml:"jsonSchemaDialect,omitempty" json:"jsonSchemaDialect,omitempty"`
}

// Components holds reusable objects for different aspects of the document.
type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Examples        map[string]*Example        `yaml:"examples,omitempty" json:"examples,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers         map[string]*Header         `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	Links           map[string]*Link           `yaml:"links,omitempty" json:"links,omitempty"`
	Callbacks       map[string]*Callback       `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`

	// OAS 3.1+ additions
	PathItems map[string]*PathItem `yaml:"pathItems,omitempty" json:"pathItems,omitempty"`
}

// EnsureComponents returns the document's Components, allocating it on first use.
func (d *Document) EnsureComponents() *Components {
	if d.Components == nil {
		d.Components = &Components{}
	}
	return d.Components
}

// AddSchema registers a named schema component, allocating maps as needed.
// Existing entries with the same name are overwritten.
func (d *Document) AddSchema(name string, s *Schema) {
	c := d.EnsureComponents()
	if c.Schemas == nil {
		c.Schemas = make(map[string]*Schema)
	}
	c.Schemas[name] = s
}

// AddSecurityScheme registers a named security scheme component.
func (d *Document) AddSecurityScheme(name string, s *SecurityScheme) {
	c := d.EnsureComponents()
	if c.SecuritySchemes == nil {
		c.SecuritySchemes = make(map[string]*SecurityScheme)
	}
	c.SecuritySchemes[name] = s
}
