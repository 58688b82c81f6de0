package assemble

import "github.com/inferspec/inferspec/spec"

// finalize applies the version-specific serialization rules in one pass over
// the finished document, so construction stays version-independent:
//
//   - 3.0.x keeps the boolean nullable keyword and single-string types, and
//     carries no jsonSchemaDialect or webhooks.
//   - 3.1.x rewrites nullable into a [base, "null"] type array, never emits
//     the nullable keyword, and declares jsonSchemaDialect plus a webhooks
//     map even when empty.
//
// Required lists are sorted here too, keeping output deterministic.
func (a *run) finalize() {
	doc := a.doc
	if doc.OASVersion.Is31() {
		if doc.JSONSchemaDialect == "" {
			doc.JSONSchemaDialect = spec.DefaultJSONSchemaDialect
		}
		if doc.Webhooks == nil {
			doc.Webhooks = map[string]*spec.PathItem{}
		}
	} else {
		doc.JSONSchemaDialect = ""
		doc.Webhooks = nil
	}

	is31 := doc.OASVersion.Is31()
	for _, item := range doc.Paths {
		finalizePathItem(item, is31)
	}
	for _, item := range doc.Webhooks {
		finalizePathItem(item, is31)
	}
	if c := doc.Components; c != nil {
		for _, s := range c.Schemas {
			finalizeSchema(s, is31)
		}
		for _, p := range c.Parameters {
			finalizeSchema(p.Schema, is31)
		}
		for _, resp := range c.Responses {
			finalizeResponse(resp, is31)
		}
		for _, body := range c.RequestBodies {
			finalizeContent(body.Content, is31)
		}
		for _, h := range c.Headers {
			finalizeSchema(h.Schema, is31)
		}
		for _, cb := range c.Callbacks {
			for _, item := range *cb {
				finalizePathItem(item, is31)
			}
		}
		for _, item := range c.PathItems {
			finalizePathItem(item, is31)
		}
	}
}

func finalizePathItem(item *spec.PathItem, is31 bool) {
	if item == nil {
		return
	}
	for _, p := range item.Parameters {
		finalizeSchema(p.Schema, is31)
	}
	for _, op := range item.Operations() {
		for _, p := range op.Parameters {
			finalizeSchema(p.Schema, is31)
		}
		if op.RequestBody != nil {
			finalizeContent(op.RequestBody.Content, is31)
		}
		for _, resp := range op.Responses {
			finalizeResponse(resp, is31)
		}
		for _, cb := range op.Callbacks {
			for _, nested := range *cb {
				finalizePathItem(nested, is31)
			}
		}
	}
}

func finalizeResponse(resp *spec.Response, is31 bool) {
	if resp == nil {
		return
	}
	finalizeContent(resp.Content, is31)
	for _, h := range resp.Headers {
		finalizeSchema(h.Schema, is31)
	}
}

func finalizeContent(content map[string]*spec.MediaType, is31 bool) {
	for _, mt := range content {
		finalizeSchema(mt.Schema, is31)
	}
}

// finalizeSchema rewrites one schema tree for the target version.
func finalizeSchema(s *spec.Schema, is31 bool) {
	if s == nil {
		return
	}
	sortRequired(s)

	if is31 && s.Nullable {
		s.Nullable = false
		if base := s.TypeString(); base != "" {
			s.Type = []string{base, "null"}
		}
		// An untyped nullable schema already accepts null; it stays untyped.
	}

	for _, child := range s.Properties {
		finalizeSchema(child, is31)
	}
	finalizeSchema(s.Items, is31)
	finalizeSchema(s.Contains, is31)
	finalizeSchema(s.PropertyNames, is31)
	finalizeSchema(s.Not, is31)
	finalizeSchema(s.If, is31)
	finalizeSchema(s.Then, is31)
	finalizeSchema(s.Else, is31)
	for _, child := range s.AllOf {
		finalizeSchema(child, is31)
	}
	for _, child := range s.AnyOf {
		finalizeSchema(child, is31)
	}
	for _, child := range s.OneOf {
		finalizeSchema(child, is31)
	}
	if child, ok := s.AdditionalProperties.(*spec.Schema); ok {
		finalizeSchema(child, is31)
	}
}
