package requirements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inferspec/inferspec/spec"
)

// maxRefHops bounds local $ref chains to guard against cycles.
const maxRefHops = 8

// target is the decoded document a check run inspects.
type target struct {
	root    map[string]any
	version spec.Version
	verdict *Verdict
}

// resolve follows node through local $ref indirections. It returns nil when
// the value is not an object, the reference is external or dangling, or the
// chain exceeds the hop bound; the caller then treats the object as absent.
func (t *target) resolve(node any) map[string]any {
	for range maxRefHops {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		ref, ok := m["$ref"].(string)
		if !ok {
			return m
		}
		after, ok := strings.CutPrefix(ref, "#/")
		if !ok {
			return nil
		}
		node = t.pointer(after)
		if node == nil {
			return nil
		}
	}
	return nil
}

// pointer evaluates a JSON pointer (without the "#/" prefix) against the
// document root.
func (t *target) pointer(p string) any {
	cur := any(t.root)
	for _, seg := range strings.Split(p, "/") {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

var httpMethodKeys = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

func (t *target) paths() map[string]any {
	m, _ := t.root["paths"].(map[string]any)
	return m
}

// forEachPathItem visits the resolved path items of paths and webhooks in
// sorted key order, so violation lists are deterministic.
func (t *target) forEachPathItem(fn func(where string, item map[string]any)) {
	for _, section := range []string{"paths", "webhooks"} {
		m, _ := t.root[section].(map[string]any)
		for _, key := range sortedKeys(m) {
			if item := t.resolve(m[key]); item != nil {
				fn(section+" "+key, item)
			}
		}
	}
}

// forEachOperation visits every operation of every path item, including
// webhooks, in deterministic order.
func (t *target) forEachOperation(fn func(where string, op map[string]any)) {
	t.forEachPathItem(func(where string, item map[string]any) {
		for _, method := range httpMethodKeys {
			if op, ok := item[method].(map[string]any); ok {
				fn(where+" "+method, op)
			}
		}
	})
}

// forEachSchema visits every schema object reachable from the document's
// known schema positions, recursively, without following $ref (referenced
// schemas are visited at their component location). The positions covered are
// component schemas, parameters, headers, request bodies, responses,
// callbacks, and path items, plus every path item and operation under paths
// and webhooks, including operation callbacks.
func (t *target) forEachSchema(fn func(where string, s map[string]any)) {
	visitMedia := func(where string, container map[string]any) {
		content, _ := container["content"].(map[string]any)
		for _, mt := range sortedKeys(content) {
			if media, ok := content[mt].(map[string]any); ok {
				if s, ok := media["schema"].(map[string]any); ok {
					walkSchema(where+" "+mt+" schema", s, fn)
				}
			}
		}
	}
	visitParams := func(where string, params any) {
		list, _ := params.([]any)
		for i, p := range list {
			if pm, ok := p.(map[string]any); ok {
				if s, ok := pm["schema"].(map[string]any); ok {
					walkSchema(fmt.Sprintf("%s parameter %d schema", where, i), s, fn)
				}
			}
		}
	}
	visitHeaders := func(where string, headers map[string]any) {
		for _, h := range sortedKeys(headers) {
			if hm, ok := headers[h].(map[string]any); ok {
				if s, ok := hm["schema"].(map[string]any); ok {
					walkSchema(where+" header "+h, s, fn)
				}
				visitMedia(where+" header "+h, hm)
			}
		}
	}
	visitResponse := func(where string, resp map[string]any) {
		visitMedia(where, resp)
		headers, _ := resp["headers"].(map[string]any)
		visitHeaders(where, headers)
	}

	// Callbacks nest whole path items inside operations, so the operation and
	// path item visitors recurse into each other. The descent never follows
	// $ref, so it is bounded by the document tree.
	var visitOperation func(where string, op map[string]any)
	visitPathItem := func(where string, item map[string]any) {
		visitParams(where, item["parameters"])
		for _, method := range httpMethodKeys {
			if op, ok := item[method].(map[string]any); ok {
				visitOperation(where+" "+method, op)
			}
		}
	}
	visitCallback := func(where string, cb map[string]any) {
		for _, expr := range sortedKeys(cb) {
			if item, ok := cb[expr].(map[string]any); ok {
				visitPathItem(where+" "+expr, item)
			}
		}
	}
	visitOperation = func(where string, op map[string]any) {
		visitParams(where, op["parameters"])
		if body, ok := op["requestBody"].(map[string]any); ok {
			visitMedia(where+" requestBody", body)
		}
		responses, _ := op["responses"].(map[string]any)
		for _, status := range sortedKeys(responses) {
			if resp, ok := responses[status].(map[string]any); ok {
				visitResponse(where+" response "+status, resp)
			}
		}
		callbacks, _ := op["callbacks"].(map[string]any)
		for _, name := range sortedKeys(callbacks) {
			if cb, ok := callbacks[name].(map[string]any); ok {
				visitCallback(where+" callback "+name, cb)
			}
		}
	}

	if components, ok := t.root["components"].(map[string]any); ok {
		schemas, _ := components["schemas"].(map[string]any)
		for _, name := range sortedKeys(schemas) {
			if s, ok := schemas[name].(map[string]any); ok {
				walkSchema("components.schemas."+name, s, fn)
			}
		}
		params, _ := components["parameters"].(map[string]any)
		for _, name := range sortedKeys(params) {
			if p, ok := params[name].(map[string]any); ok {
				if s, ok := p["schema"].(map[string]any); ok {
					walkSchema("components.parameters."+name+" schema", s, fn)
				}
			}
		}
		headers, _ := components["headers"].(map[string]any)
		visitHeaders("components", headers)
		bodies, _ := components["requestBodies"].(map[string]any)
		for _, name := range sortedKeys(bodies) {
			if body, ok := bodies[name].(map[string]any); ok {
				visitMedia("components.requestBodies."+name, body)
			}
		}
		responses, _ := components["responses"].(map[string]any)
		for _, name := range sortedKeys(responses) {
			if resp, ok := responses[name].(map[string]any); ok {
				visitResponse("components.responses."+name, resp)
			}
		}
		callbacks, _ := components["callbacks"].(map[string]any)
		for _, name := range sortedKeys(callbacks) {
			if cb, ok := callbacks[name].(map[string]any); ok {
				visitCallback("components.callbacks."+name, cb)
			}
		}
		items, _ := components["pathItems"].(map[string]any)
		for _, name := range sortedKeys(items) {
			if item, ok := items[name].(map[string]any); ok {
				visitPathItem("components.pathItems."+name, item)
			}
		}
	}

	t.forEachPathItem(visitPathItem)
}

// walkSchema recurses into a schema's subschema positions. Property names are
// map keys, never schema objects, so a property named "nullable" or "enum"
// cannot shadow a keyword.
func walkSchema(where string, s map[string]any, fn func(string, map[string]any)) {
	fn(where, s)

	props, _ := s["properties"].(map[string]any)
	for _, name := range sortedKeys(props) {
		if child, ok := props[name].(map[string]any); ok {
			walkSchema(where+".properties."+name, child, fn)
		}
	}
	for _, key := range []string{"items", "not", "if", "then", "else", "contains", "propertyNames", "additionalProperties"} {
		if child, ok := s[key].(map[string]any); ok {
			walkSchema(where+"."+key, child, fn)
		}
	}
	for _, key := range []string{"allOf", "anyOf", "oneOf", "prefixItems"} {
		list, _ := s[key].([]any)
		for i, item := range list {
			if child, ok := item.(map[string]any); ok {
				walkSchema(fmt.Sprintf("%s.%s[%d]", where, key, i), child, fn)
			}
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isExtensionKey(k string) bool { return strings.HasPrefix(k, "x-") }
