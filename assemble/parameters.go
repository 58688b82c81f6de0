package assemble

import (
	"sort"
	"strings"

	"github.com/inferspec/inferspec/routes"
	"github.com/inferspec/inferspec/rules"
	"github.com/inferspec/inferspec/spec"
)

// buildParameters produces the operation's parameter list: path parameters in
// template order, then rule-derived query parameters in rule order, then
// accessor-derived query parameters that no rule covered.
func (a *run) buildParameters(route routes.Route, templateParams []string,
	pathDescs, fieldDescs []rules.Descriptor, query []QueryFact, bodyMethod bool) []*spec.Parameter {

	var params []*spec.Parameter

	declared := make(map[string]routes.PathParam, len(route.Parameters))
	for _, p := range route.Parameters {
		declared[p.Name] = p
	}
	ruled := make(map[string]rules.Descriptor, len(pathDescs))
	for _, d := range pathDescs {
		ruled[d.Name] = d
	}

	// Every {name} segment gets an in:path, required parameter. Rule facts
	// win over router-declared constraints, which win over name heuristics.
	for _, name := range templateParams {
		p := &spec.Parameter{Name: name, In: "path", Required: true}
		if d, ok := ruled[name]; ok {
			p.Schema = schemaFromDescriptor(d)
			p.Description = d.Description
		} else if rp, ok := declared[name]; ok {
			p.Schema = &spec.Schema{Type: pathParamType(name), Pattern: rp.Pattern}
		} else {
			p.Schema = &spec.Schema{Type: pathParamType(name)}
		}
		params = append(params, p)
	}

	seen := make(map[string]bool)
	if !bodyMethod {
		for _, d := range fieldDescs {
			seen[d.Name] = true
			params = append(params, &spec.Parameter{
				Name:        d.Name,
				In:          "query",
				Required:    d.Required,
				Description: d.Description,
				Schema:      schemaFromDescriptor(d),
			})
		}
	}

	// Accessor facts fill in parameters the rules did not cover; on a name
	// collision the rule-derived parameter already in the list wins.
	for _, q := range query {
		if q.Name == "" || seen[q.Name] {
			continue
		}
		seen[q.Name] = true
		typ := q.Type
		if typ == "" {
			typ = "string"
		}
		params = append(params, &spec.Parameter{
			Name:   q.Name,
			In:     "query",
			Schema: &spec.Schema{Type: typ, Default: q.Default},
		})
	}
	return params
}

// pathParamType guesses a path parameter's type from its name when no rule
// declares it.
func pathParamType(name string) string {
	if name == "id" || strings.HasSuffix(name, "_id") || strings.HasSuffix(name, "Id") {
		return "integer"
	}
	return "string"
}

// buildRequestBody turns the non-path descriptors of a body-carrying method
// into a JSON request body. Dotted field paths nest into object properties
// and "*" segments into array items.
func buildRequestBody(descs []rules.Descriptor, notices []string) *spec.RequestBody {
	schema := bodySchema(descs, notices)
	return &spec.RequestBody{
		Required: len(schema.Required) > 0,
		Content: map[string]*spec.MediaType{
			"application/json": {Schema: schema},
		},
	}
}

func bodySchema(descs []rules.Descriptor, notices []string) *spec.Schema {
	root := &spec.Schema{Type: "object"}
	for _, d := range descs {
		insertField(root, d)
	}
	if len(notices) > 0 {
		ensureProperties(root)
		root.Properties["_notice"] = noticeSchema(notices)
	}
	return root
}

// insertField walks a dotted field path into the schema tree and applies the
// descriptor at the leaf. Parent and child descriptors may arrive in either
// order; structure already contributed by one is preserved by the other.
func insertField(root *spec.Schema, d rules.Descriptor) {
	cur := root
	segments := strings.Split(d.Name, ".")
	for i, seg := range segments {
		last := i == len(segments)-1
		if seg == "*" {
			cur.Type = "array"
			cur.Properties = nil
			cur.Required = nil
			if cur.Items == nil {
				cur.Items = &spec.Schema{}
			}
			if last {
				applyDescriptor(cur.Items, d)
			} else {
				cur = cur.Items
			}
			continue
		}

		if cur.TypeString() == "" {
			cur.Type = "object"
		}
		ensureProperties(cur)
		child, ok := cur.Properties[seg]
		if !ok {
			child = &spec.Schema{}
			cur.Properties[seg] = child
		}
		if last {
			applyDescriptor(child, d)
			if d.Required {
				cur.Required = appendUnique(cur.Required, seg)
			}
		} else {
			cur = child
		}
	}
}

// applyDescriptor writes descriptor facts onto a schema node without
// clobbering structure contributed by deeper field paths.
func applyDescriptor(s *spec.Schema, d rules.Descriptor) {
	leaf := schemaFromDescriptor(d)
	if s.Properties != nil || s.Items != nil {
		// The node already has structure from "*" or dotted children; carry
		// only the scalar facts over.
		s.Description = leaf.Description
		s.Nullable = leaf.Nullable
		s.MinItems = leaf.MinItems
		s.MaxItems = leaf.MaxItems
		return
	}
	*s = *leaf
}

// schemaFromDescriptor converts one parameter descriptor into a schema.
func schemaFromDescriptor(d rules.Descriptor) *spec.Schema {
	s := &spec.Schema{
		Format:      d.Format,
		Description: d.Description,
		Default:     d.Default,
		Enum:        d.Enum,
		Nullable:    d.Nullable,
		Pattern:     d.Constraints.Pattern,
		MinLength:   d.Constraints.MinLength,
		MaxLength:   d.Constraints.MaxLength,
		Minimum:     d.Constraints.Minimum,
		Maximum:     d.Constraints.Maximum,
		MinItems:    d.Constraints.MinItems,
		MaxItems:    d.Constraints.MaxItems,
	}
	switch d.Type {
	case "", "mixed":
		// Untyped: an empty schema accepts anything.
	case "array":
		s.Type = "array"
		s.Items = &spec.Schema{}
	default:
		s.Type = d.Type
	}
	if len(d.Unresolved) > 0 {
		s.Description = joinSentences(s.Description,
			"Unanalyzed rules: "+strings.Join(d.Unresolved, ", ")+".")
	}
	return s
}

// noticeSchema renders analyzer notices as the synthetic "_notice" property.
func noticeSchema(notices []string) *spec.Schema {
	return &spec.Schema{
		Type:        "string",
		Description: strings.Join(notices, "; "),
	}
}

func ensureProperties(s *spec.Schema) {
	if s.Properties == nil {
		s.Properties = make(map[string]*spec.Schema)
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func sortRequired(s *spec.Schema) {
	sort.Strings(s.Required)
}

func joinSentences(a, b string) string {
	if a == "" {
		return b
	}
	if strings.HasSuffix(a, ".") {
		return a + " " + b
	}
	return a + ". " + b
}
