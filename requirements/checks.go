package requirements

import (
	"fmt"
	"strings"

	"github.com/inferspec/inferspec/internal/stringutil"
	"github.com/inferspec/inferspec/routes"
)

// checkConformanceVerdict folds a meta-schema Verdict into the report. A nil
// verdict means conformance was not evaluated and raises no violations.
func checkConformanceVerdict(t *target) []string {
	if t.verdict == nil || t.verdict.Valid {
		return nil
	}
	if len(t.verdict.Errors) == 0 {
		return []string{"document does not conform to the OpenAPI meta-schema"}
	}
	return t.verdict.Errors
}

func checkRootFields(t *target) []string {
	var violations []string

	if s, _ := t.root["openapi"].(string); s == "" {
		violations = append(violations, "openapi field is missing or empty")
	}
	info, ok := t.root["info"].(map[string]any)
	if !ok {
		violations = append(violations, "info object is missing")
	} else {
		if s, _ := info["title"].(string); s == "" {
			violations = append(violations, "info.title is missing or empty")
		}
		if s, _ := info["version"].(string); s == "" {
			violations = append(violations, "info.version is missing or empty")
		}
	}

	if t.version.Is30() {
		if _, ok := t.root["paths"]; !ok {
			violations = append(violations, "paths object is required")
		}
	} else {
		_, hasPaths := t.root["paths"]
		_, hasWebhooks := t.root["webhooks"]
		_, hasComponents := t.root["components"]
		if !hasPaths && !hasWebhooks && !hasComponents {
			violations = append(violations, "at least one of paths, webhooks, or components is required")
		}
	}
	return violations
}

func checkPathKeys(t *target) []string {
	var violations []string
	for _, key := range sortedKeys(t.paths()) {
		if !strings.HasPrefix(key, "/") {
			violations = append(violations, fmt.Sprintf("path %q must begin with a slash", key))
			continue
		}
		if strings.Count(key, "{") != strings.Count(key, "}") {
			violations = append(violations, fmt.Sprintf("path %q has unbalanced braces", key))
			continue
		}
		seen := map[string]bool{}
		for _, name := range routes.TemplateParams(key) {
			if seen[name] {
				violations = append(violations, fmt.Sprintf("path %q repeats parameter %q", key, name))
			}
			seen[name] = true
		}
	}
	return violations
}

var pathItemKeys = map[string]bool{
	"$ref": true, "summary": true, "description": true, "servers": true, "parameters": true,
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

func checkPathItemShape(t *target) []string {
	var violations []string
	t.forEachPathItem(func(where string, item map[string]any) {
		for _, key := range sortedKeys(item) {
			if isExtensionKey(key) {
				continue
			}
			if !pathItemKeys[key] {
				violations = append(violations, fmt.Sprintf("%s: unknown field %q", where, key))
				continue
			}
			for _, method := range httpMethodKeys {
				if key == method {
					if _, ok := item[key].(map[string]any); !ok {
						violations = append(violations, fmt.Sprintf("%s: %s must be an operation object", where, key))
					}
				}
			}
		}
	})
	return violations
}

// collectParameters resolves the combined path-level and operation-level
// parameter lists of one operation.
func (t *target) collectParameters(item, op map[string]any) []map[string]any {
	var out []map[string]any
	for _, raw := range [][]any{asList(item["parameters"]), asList(op["parameters"])} {
		for _, p := range raw {
			if resolved := t.resolve(p); resolved != nil {
				out = append(out, resolved)
			}
		}
	}
	return out
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

func checkPathParameters(t *target) []string {
	var violations []string
	paths := t.paths()
	for _, key := range sortedKeys(paths) {
		item := t.resolve(paths[key])
		if item == nil {
			continue
		}
		templated := routes.TemplateParams(key)

		for _, method := range httpMethodKeys {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			params := t.collectParameters(item, op)

			declared := map[string]map[string]any{}
			for _, p := range params {
				if in, _ := p["in"].(string); in == "path" {
					name, _ := p["name"].(string)
					declared[name] = p
				}
			}

			for _, name := range templated {
				p, ok := declared[name]
				if !ok {
					violations = append(violations,
						fmt.Sprintf("paths %s %s: templated parameter %q is not declared", key, method, name))
					continue
				}
				if required, _ := p["required"].(bool); !required {
					violations = append(violations,
						fmt.Sprintf("paths %s %s: path parameter %q must be required", key, method, name))
				}
			}

			inTemplate := map[string]bool{}
			for _, name := range templated {
				inTemplate[name] = true
			}
			for _, name := range sortedMapKeys(declared) {
				if !inTemplate[name] {
					violations = append(violations,
						fmt.Sprintf("paths %s %s: path parameter %q does not appear in the template", key, method, name))
				}
			}
		}
	}
	return violations
}

func sortedMapKeys(m map[string]map[string]any) []string {
	conv := make(map[string]any, len(m))
	for k, v := range m {
		conv[k] = v
	}
	return sortedKeys(conv)
}

func checkOperationIDs(t *target) []string {
	var violations []string
	seen := map[string]string{}
	t.forEachOperation(func(where string, op map[string]any) {
		id, _ := op["operationId"].(string)
		if id == "" {
			return
		}
		if prev, ok := seen[id]; ok {
			violations = append(violations,
				fmt.Sprintf("%s: operationId %q already used by %s", where, id, prev))
			return
		}
		seen[id] = where
	})
	return violations
}

func checkResponses(t *target) []string {
	var violations []string
	t.forEachOperation(func(where string, op map[string]any) {
		responses, ok := op["responses"].(map[string]any)
		if !ok || len(responses) == 0 {
			violations = append(violations, where+": operation declares no responses")
			return
		}
		for _, status := range sortedKeys(responses) {
			if !stringutil.IsValidStatusKey(status) {
				violations = append(violations,
					fmt.Sprintf("%s: invalid response status key %q", where, status))
			}
		}
	})
	return violations
}

var parameterLocations = map[string]bool{"query": true, "path": true, "header": true, "cookie": true}

func checkParameterShape(t *target) []string {
	var violations []string
	t.forEachPathItem(func(where string, item map[string]any) {
		for _, method := range httpMethodKeys {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			for i, p := range t.collectParameters(item, op) {
				at := fmt.Sprintf("%s %s parameter %d", where, method, i)

				if name, _ := p["name"].(string); name == "" {
					violations = append(violations, at+": name is missing")
				}
				in, _ := p["in"].(string)
				if !parameterLocations[in] {
					violations = append(violations, fmt.Sprintf("%s: invalid location %q", at, in))
				}

				_, hasSchema := p["schema"]
				_, hasContent := p["content"]
				if hasSchema == hasContent {
					violations = append(violations, at+": exactly one of schema and content is required")
				}

				_, hasExample := p["example"]
				_, hasExamples := p["examples"]
				if hasExample && hasExamples {
					violations = append(violations, at+": example and examples are mutually exclusive")
				}
			}
		}
	})
	return violations
}

func checkParameterDuplicates(t *target) []string {
	var violations []string
	t.forEachPathItem(func(where string, item map[string]any) {
		for _, method := range httpMethodKeys {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			// An operation-level parameter overriding a path-level one of the
			// same name and location is legal; duplicates within one list are
			// not.
			for _, scope := range []struct {
				label string
				list  []any
			}{
				{"path-level", asList(item["parameters"])},
				{"operation-level", asList(op["parameters"])},
			} {
				seen := map[string]bool{}
				for _, raw := range scope.list {
					p := t.resolve(raw)
					if p == nil {
						continue
					}
					name, _ := p["name"].(string)
					in, _ := p["in"].(string)
					id := name + "\x00" + in
					if seen[id] {
						violations = append(violations,
							fmt.Sprintf("%s %s: duplicate %s parameter %q in %q", where, method, scope.label, name, in))
					}
					seen[id] = true
				}
			}
		}
	})
	return violations
}

func checkRequestBodies(t *target) []string {
	var violations []string
	t.forEachOperation(func(where string, op map[string]any) {
		raw, ok := op["requestBody"]
		if !ok {
			return
		}
		body := t.resolve(raw)
		if body == nil {
			return
		}
		content, ok := body["content"].(map[string]any)
		if !ok || len(content) == 0 {
			violations = append(violations, where+": requestBody must declare content")
			return
		}
		for _, mt := range sortedKeys(content) {
			if !strings.Contains(mt, "/") {
				violations = append(violations,
					fmt.Sprintf("%s: invalid media type key %q", where, mt))
			}
		}
	})
	return violations
}

// forEachMediaType visits request-body and response media type objects.
func (t *target) forEachMediaType(fn func(where string, media map[string]any)) {
	t.forEachOperation(func(where string, op map[string]any) {
		visit := func(prefix string, container map[string]any) {
			content, _ := container["content"].(map[string]any)
			for _, mt := range sortedKeys(content) {
				if media, ok := content[mt].(map[string]any); ok {
					fn(prefix+" "+mt, media)
				}
			}
		}
		if body := t.resolve(op["requestBody"]); body != nil {
			visit(where+" requestBody", body)
		}
		responses, _ := op["responses"].(map[string]any)
		for _, status := range sortedKeys(responses) {
			if resp := t.resolve(responses[status]); resp != nil {
				visit(where+" response "+status, resp)
			}
		}
	})
}

func checkMediaTypes(t *target) []string {
	var violations []string
	t.forEachMediaType(func(where string, media map[string]any) {
		if raw, ok := media["schema"]; ok {
			if _, ok := raw.(map[string]any); !ok {
				violations = append(violations, where+": schema must be an object")
			}
		}
		_, hasExample := media["example"]
		_, hasExamples := media["examples"]
		if hasExample && hasExamples {
			violations = append(violations, where+": example and examples are mutually exclusive")
		}
	})
	return violations
}

func (t *target) declaredSecuritySchemes() map[string]map[string]any {
	out := map[string]map[string]any{}
	components, _ := t.root["components"].(map[string]any)
	schemes, _ := components["securitySchemes"].(map[string]any)
	for _, name := range sortedKeys(schemes) {
		if s := t.resolve(schemes[name]); s != nil {
			out[name] = s
		}
	}
	return out
}

func checkSecurityRequirements(t *target) []string {
	var violations []string
	declared := t.declaredSecuritySchemes()

	checkList := func(where string, raw any) {
		list, _ := raw.([]any)
		for _, entry := range list {
			req, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			for _, name := range sortedKeys(req) {
				scheme, ok := declared[name]
				if !ok {
					violations = append(violations,
						fmt.Sprintf("%s: security requirement references undeclared scheme %q", where, name))
					continue
				}
				scopes, _ := req[name].([]any)
				typ, _ := scheme["type"].(string)
				if len(scopes) > 0 && typ != "oauth2" && typ != "openIdConnect" {
					violations = append(violations,
						fmt.Sprintf("%s: scheme %q of type %q cannot carry scopes", where, name, typ))
				}
			}
		}
	}

	checkList("document", t.root["security"])
	t.forEachOperation(func(where string, op map[string]any) {
		checkList(where, op["security"])
	})
	return violations
}

func checkSecuritySchemes(t *target) []string {
	var violations []string
	declared := t.declaredSecuritySchemes()
	for _, name := range sortedMapKeys(declared) {
		s := declared[name]
		at := "components.securitySchemes." + name
		typ, _ := s["type"].(string)
		switch typ {
		case "http":
			if v, _ := s["scheme"].(string); v == "" {
				violations = append(violations, at+": http scheme requires a scheme name")
			}
		case "apiKey":
			if v, _ := s["name"].(string); v == "" {
				violations = append(violations, at+": apiKey scheme requires a name")
			}
			if in, _ := s["in"].(string); in != "query" && in != "header" && in != "cookie" {
				violations = append(violations, at+": apiKey location must be query, header, or cookie")
			}
		case "oauth2":
			flows, ok := s["flows"].(map[string]any)
			if !ok || len(flows) == 0 {
				violations = append(violations, at+": oauth2 scheme requires flows")
				continue
			}
			for _, kind := range sortedKeys(flows) {
				flow, ok := flows[kind].(map[string]any)
				if !ok {
					continue
				}
				authURL, _ := flow["authorizationUrl"].(string)
				tokenURL, _ := flow["tokenUrl"].(string)
				if authURL == "" && tokenURL == "" {
					violations = append(violations,
						fmt.Sprintf("%s: flow %s requires an authorization or token URL", at, kind))
				}
				if _, ok := flow["scopes"].(map[string]any); !ok {
					violations = append(violations,
						fmt.Sprintf("%s: flow %s must carry a scopes map", at, kind))
				}
			}
		case "openIdConnect":
			if v, _ := s["openIdConnectUrl"].(string); v == "" {
				violations = append(violations, at+": openIdConnect scheme requires a discovery URL")
			}
		default:
			violations = append(violations, fmt.Sprintf("%s: unknown scheme type %q", at, typ))
		}
	}
	return violations
}

func checkLinks(t *target) []string {
	var violations []string
	visit := func(where string, raw any) {
		links, _ := raw.(map[string]any)
		for _, name := range sortedKeys(links) {
			link := t.resolve(links[name])
			if link == nil {
				continue
			}
			_, hasID := link["operationId"]
			_, hasRef := link["operationRef"]
			if hasID == hasRef {
				violations = append(violations,
					fmt.Sprintf("%s link %q: exactly one of operationId and operationRef is required", where, name))
			}
		}
	}

	t.forEachOperation(func(where string, op map[string]any) {
		responses, _ := op["responses"].(map[string]any)
		for _, status := range sortedKeys(responses) {
			if resp := t.resolve(responses[status]); resp != nil {
				visit(where+" response "+status, resp["links"])
			}
		}
	})
	components, _ := t.root["components"].(map[string]any)
	visit("components", components["links"])
	return violations
}

func checkExamples(t *target) []string {
	var violations []string
	t.forEachMediaType(func(where string, media map[string]any) {
		_, hasExample := media["example"]
		_, hasExamples := media["examples"]
		if hasExample && hasExamples {
			violations = append(violations, where+": example and examples are mutually exclusive")
		}
	})
	t.forEachOperation(func(where string, op map[string]any) {
		responses, _ := op["responses"].(map[string]any)
		for _, status := range sortedKeys(responses) {
			resp := t.resolve(responses[status])
			if resp == nil {
				continue
			}
			headers, _ := resp["headers"].(map[string]any)
			for _, name := range sortedKeys(headers) {
				h := t.resolve(headers[name])
				if h == nil {
					continue
				}
				_, hasExample := h["example"]
				_, hasExamples := h["examples"]
				if hasExample && hasExamples {
					violations = append(violations,
						fmt.Sprintf("%s response %s header %q: example and examples are mutually exclusive", where, status, name))
				}
			}
		}
	})
	return violations
}

var componentSections30 = map[string]bool{
	"schemas": true, "responses": true, "parameters": true, "examples": true,
	"requestBodies": true, "headers": true, "securitySchemes": true,
	"links": true, "callbacks": true,
}

func checkComponents(t *target) []string {
	components, ok := t.root["components"].(map[string]any)
	if !ok {
		return nil
	}
	var violations []string
	for _, section := range sortedKeys(components) {
		if isExtensionKey(section) {
			continue
		}
		allowed := componentSections30[section] || (t.version.Is31() && section == "pathItems")
		if !allowed {
			violations = append(violations, fmt.Sprintf("components: illegal section %q", section))
			continue
		}
		entries, _ := components[section].(map[string]any)
		for _, key := range sortedKeys(entries) {
			if !stringutil.IsValidComponentKey(key) {
				violations = append(violations,
					fmt.Sprintf("components.%s: illegal key %q", section, key))
			}
		}
	}
	return violations
}

func checkSchemas(t *target) []string {
	var violations []string
	t.forEachSchema(func(where string, s map[string]any) {
		if raw, ok := s["enum"]; ok {
			list, isList := raw.([]any)
			if !isList || len(list) == 0 {
				violations = append(violations, where+": enum must be a non-empty array")
			} else {
				seen := map[string]bool{}
				for _, v := range list {
					key := fmt.Sprintf("%T:%v", v, v)
					if seen[key] {
						violations = append(violations,
							fmt.Sprintf("%s: enum has duplicate value %v", where, v))
					}
					seen[key] = true
				}
			}
		}

		for _, keyword := range []string{"allOf", "anyOf", "oneOf"} {
			if raw, ok := s[keyword]; ok {
				list, isList := raw.([]any)
				if !isList || len(list) == 0 {
					violations = append(violations,
						fmt.Sprintf("%s: %s must be a non-empty array", where, keyword))
				}
			}
		}

		if raw, ok := s["required"]; ok {
			list, isList := raw.([]any)
			if !isList {
				violations = append(violations, where+": required must be an array of strings")
			} else {
				for _, v := range list {
					if _, isString := v.(string); !isString {
						violations = append(violations, where+": required must contain only strings")
						break
					}
				}
			}
		}

		if raw, ok := s["additionalProperties"]; ok {
			switch raw.(type) {
			case bool, map[string]any:
			default:
				violations = append(violations, where+": additionalProperties must be a boolean or a schema")
			}
		}

		switch typ := s["type"].(type) {
		case string, nil:
		case []any:
			if t.version.Is30() {
				violations = append(violations, where+": array-form type is not allowed in 3.0")
			}
		default:
			violations = append(violations, fmt.Sprintf("%s: type has illegal form %T", where, typ))
		}
	})
	return violations
}

func checkCallbacks(t *target) []string {
	var violations []string

	checkCallbackMap := func(where string, raw any) {
		callbacks, _ := raw.(map[string]any)
		for _, name := range sortedKeys(callbacks) {
			cb := t.resolve(callbacks[name])
			if cb == nil {
				continue
			}
			for _, expr := range sortedKeys(cb) {
				if isExtensionKey(expr) {
					continue
				}
				if _, ok := cb[expr].(map[string]any); !ok {
					violations = append(violations,
						fmt.Sprintf("%s callback %q: expression %q must map to a path item", where, name, expr))
				}
			}
		}
	}

	t.forEachOperation(func(where string, op map[string]any) {
		checkCallbackMap(where, op["callbacks"])
	})

	webhooks, _ := t.root["webhooks"].(map[string]any)
	for _, name := range sortedKeys(webhooks) {
		if _, ok := webhooks[name].(map[string]any); !ok {
			violations = append(violations,
				fmt.Sprintf("webhooks %q: entry must be a path item", name))
		}
	}
	return violations
}

func checkTags(t *target) []string {
	var violations []string
	tags, _ := t.root["tags"].([]any)
	seen := map[string]bool{}
	for _, raw := range tags {
		tag, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := tag["name"].(string)
		if name == "" {
			violations = append(violations, "tags: tag without a name")
			continue
		}
		if seen[name] {
			violations = append(violations, fmt.Sprintf("tags: duplicate tag %q", name))
		}
		seen[name] = true
	}
	return violations
}

func check30Constructs(t *target) []string {
	var violations []string
	if _, ok := t.root["jsonSchemaDialect"]; ok {
		violations = append(violations, "jsonSchemaDialect is not allowed in 3.0")
	}
	if _, ok := t.root["webhooks"]; ok {
		violations = append(violations, "webhooks are not allowed in 3.0")
	}
	t.forEachSchema(func(where string, s map[string]any) {
		if _, ok := s["type"].([]any); ok {
			violations = append(violations, where+": array-form type is not allowed in 3.0")
		}
	})
	return violations
}

func check31Constructs(t *target) []string {
	var violations []string
	if v, _ := t.root["jsonSchemaDialect"].(string); v == "" {
		violations = append(violations, "3.1 documents must declare jsonSchemaDialect")
	}
	if _, ok := t.root["webhooks"]; !ok {
		violations = append(violations, "3.1 documents must carry a webhooks map")
	}
	t.forEachSchema(func(where string, s map[string]any) {
		if _, ok := s["nullable"]; ok {
			violations = append(violations, where+": the nullable keyword is not allowed in 3.1")
		}
		if list, ok := s["type"].([]any); ok {
			if len(list) == 0 {
				violations = append(violations, where+": type array must not be empty")
			}
			seen := map[string]bool{}
			for _, v := range list {
				str, _ := v.(string)
				if seen[str] {
					violations = append(violations,
						fmt.Sprintf("%s: type array has duplicate entry %q", where, str))
				}
				seen[str] = true
			}
		}
	})
	return violations
}
