package requirements

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferspec/inferspec/spec"
)

const baseDoc30 = `{
	"openapi": "3.0.3",
	"info": {"title": "API", "version": "1.0.0"},
	"paths": {
		"/users/{id}": {
			"get": {
				"operationId": "getUsersById",
				"parameters": [
					{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}
				],
				"responses": {
					"200": {
						"description": "Successful response",
						"content": {"application/json": {"schema": {"type": "object"}}}
					}
				}
			}
		}
	},
	"components": {
		"securitySchemes": {"bearerAuth": {"type": "http", "scheme": "bearer"}}
	},
	"security": [{"bearerAuth": []}]
}`

const baseDoc31 = `{
	"openapi": "3.1.0",
	"info": {"title": "API", "version": "1.0.0"},
	"jsonSchemaDialect": "https://spec.openapis.org/oas/3.1/dialect/base",
	"webhooks": {},
	"paths": {
		"/health": {
			"get": {
				"operationId": "getHealth",
				"responses": {"204": {"description": "No content"}}
			}
		}
	}
}`

// mutateDoc decodes src, applies fn to the root, and re-encodes.
func mutateDoc(t *testing.T, src string, fn func(root map[string]any)) []byte {
	t.Helper()
	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(src), &root))
	if fn != nil {
		fn(root)
	}
	raw, err := json.Marshal(root)
	require.NoError(t, err)
	return raw
}

func mustCheck(t *testing.T, raw []byte, version spec.Version, verdict *Verdict) *Report {
	t.Helper()
	report, err := Check(nil, raw, version, verdict)
	require.NoError(t, err)
	return report
}

func resultFor(t *testing.T, report *Report, id string) CheckResult {
	t.Helper()
	for _, r := range report.Checks {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no result for check %s", id)
	return CheckResult{}
}

func TestCheckResultsCarryApplicableVersions(t *testing.T) {
	report := mustCheck(t, []byte(baseDoc30), spec.Version303, nil)

	assert.Equal(t, []string{"3.0.x", "3.1.x"}, resultFor(t, report, "RQ-ROOT-001").ApplicableVersions)
	assert.Equal(t, []string{"3.0.x"}, resultFor(t, report, "RQ-30-001").ApplicableVersions)
	// Skipped checks still report what they apply to.
	assert.Equal(t, []string{"3.1.x"}, resultFor(t, report, "RQ-31-001").ApplicableVersions)
}

func TestCheckValidDocument30(t *testing.T) {
	report := mustCheck(t, []byte(baseDoc30), spec.Version303, &Verdict{Valid: true})

	assert.True(t, report.Valid())
	assert.Empty(t, report.Failures)
	assert.Equal(t, StatusSkip, resultFor(t, report, "RQ-31-001").Status)
	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-30-001").Status)
}

func TestCheckValidDocument31(t *testing.T) {
	report := mustCheck(t, []byte(baseDoc31), spec.Version310, nil)

	assert.True(t, report.Valid())
	assert.Equal(t, StatusSkip, resultFor(t, report, "RQ-30-001").Status)
	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-31-001").Status)
	// A nil verdict means conformance was not evaluated, not that it failed.
	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-OAS-001").Status)
}

func TestCheckSummaryCountsSum(t *testing.T) {
	report := mustCheck(t, []byte(baseDoc30), spec.Version303, nil)

	s := report.Summary
	assert.Equal(t, s.Total, s.Passed+s.Failed+s.Skipped)
	assert.Equal(t, len(registry), s.Total)
}

func TestCheckConformanceVerdictFolded(t *testing.T) {
	verdict := &Verdict{Errors: []string{"at /info: missing property 'title'"}}
	report := mustCheck(t, []byte(baseDoc30), spec.Version303, verdict)

	result := resultFor(t, report, "RQ-OAS-001")
	assert.Equal(t, StatusFail, result.Status)
	assert.Equal(t, verdict.Errors, result.Violations)
	assert.False(t, report.Valid())
}

func TestCheckMissingRootFields(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		delete(root, "info")
		root["openapi"] = ""
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-ROOT-001")
	require.Equal(t, StatusFail, result.Status)
	assert.Len(t, result.Violations, 2)
}

func TestCheckPathParameterUndeclared(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
		delete(op, "parameters")
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-PATH-003")
	require.Equal(t, StatusFail, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], `"id"`)
}

func TestCheckPathParameterNotRequired(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
		param := op["parameters"].([]any)[0].(map[string]any)
		param["required"] = false
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-PATH-003")
	require.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Violations[0], "must be required")
}

func TestCheckPathKeys(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"no leading slash", "users", "must begin with a slash"},
		{"unbalanced braces", "/users/{id", "unbalanced braces"},
		{"repeated parameter", "/users/{id}/posts/{id}", "repeats parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
				paths := root["paths"].(map[string]any)
				paths[tt.path] = map[string]any{}
			})
			report := mustCheck(t, raw, spec.Version303, nil)

			result := resultFor(t, report, "RQ-PATH-001")
			require.Equal(t, StatusFail, result.Status)
			found := false
			for _, v := range result.Violations {
				if strings.Contains(v, tt.want) {
					found = true
				}
			}
			assert.True(t, found, "violations %v should mention %q", result.Violations, tt.want)
		})
	}
}

func TestCheckDuplicateOperationIDs(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		paths["/other"] = map[string]any{
			"get": map[string]any{
				"operationId": "getUsersById",
				"responses":   map[string]any{"200": map[string]any{"description": "ok"}},
			},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-OP-001")
	require.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Violations[0], "getUsersById")
}

func TestCheckInvalidStatusKey(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
		responses := op["responses"].(map[string]any)
		responses["2xx"] = map[string]any{"description": "lowercase wildcard"}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-OP-002")
	require.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Violations[0], `"2xx"`)
}

func TestCheckParameterShape(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
		op["parameters"] = append(op["parameters"].([]any),
			map[string]any{"name": "filter", "in": "nowhere", "schema": map[string]any{"type": "string"}},
			map[string]any{"name": "sort", "in": "query"},
		)
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-PARAM-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, `invalid location "nowhere"`)
	assert.Contains(t, joined, "exactly one of schema and content")
}

func TestCheckParameterDuplicatesWithinOneList(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		item := paths["/users/{id}"].(map[string]any)
		op := item["get"].(map[string]any)
		op["parameters"] = append(op["parameters"].([]any), map[string]any{
			"name": "id", "in": "path", "required": true,
			"schema": map[string]any{"type": "string"},
		})
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-PARAM-002")
	require.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Violations[0], `duplicate operation-level parameter "id"`)
}

func TestCheckParameterOverrideAcrossLevelsIsLegal(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		item := paths["/users/{id}"].(map[string]any)
		item["parameters"] = []any{map[string]any{
			"name": "id", "in": "path", "required": true,
			"schema": map[string]any{"type": "string"},
		}}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-PARAM-002").Status)
}

func TestCheckRefResolution(t *testing.T) {
	withParamRef := func(ref string, components map[string]any) []byte {
		return mutateDoc(t, baseDoc30, func(root map[string]any) {
			paths := root["paths"].(map[string]any)
			op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
			op["parameters"] = []any{map[string]any{"$ref": ref}}
			if components != nil {
				root["components"] = components
			}
		})
	}

	t.Run("local ref resolves", func(t *testing.T) {
		raw := withParamRef("#/components/parameters/userId", map[string]any{
			"parameters": map[string]any{
				"userId": map[string]any{
					"name": "id", "in": "path", "required": true,
					"schema": map[string]any{"type": "integer"},
				},
			},
		})
		report := mustCheck(t, raw, spec.Version303, nil)
		assert.Equal(t, StatusPass, resultFor(t, report, "RQ-PATH-003").Status)
	})

	t.Run("dangling ref leaves parameter undeclared", func(t *testing.T) {
		raw := withParamRef("#/components/parameters/missing", nil)
		report := mustCheck(t, raw, spec.Version303, nil)

		result := resultFor(t, report, "RQ-PATH-003")
		require.Equal(t, StatusFail, result.Status)
		assert.Contains(t, result.Violations[0], `"id"`)
	})

	t.Run("external ref is invisible", func(t *testing.T) {
		raw := withParamRef("common.json#/parameters/userId", nil)
		report := mustCheck(t, raw, spec.Version303, nil)
		assert.Equal(t, StatusFail, resultFor(t, report, "RQ-PATH-003").Status)
	})

	t.Run("ref chains beyond the hop bound are invisible", func(t *testing.T) {
		params := map[string]any{}
		for i := 0; i < maxRefHops+2; i++ {
			params[fmt.Sprintf("hop%d", i)] = map[string]any{
				"$ref": fmt.Sprintf("#/components/parameters/hop%d", i+1),
			}
		}
		params[fmt.Sprintf("hop%d", maxRefHops+2)] = map[string]any{
			"name": "id", "in": "path", "required": true,
			"schema": map[string]any{"type": "integer"},
		}
		raw := withParamRef("#/components/parameters/hop0", map[string]any{"parameters": params})
		report := mustCheck(t, raw, spec.Version303, nil)
		assert.Equal(t, StatusFail, resultFor(t, report, "RQ-PATH-003").Status)
	})
}

func TestCheckSecurityRequirements(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		root["security"] = []any{
			map[string]any{"ghostAuth": []any{}},
			map[string]any{"bearerAuth": []any{"admin"}},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-SEC-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, `undeclared scheme "ghostAuth"`)
	assert.Contains(t, joined, "cannot carry scopes")
}

func TestCheckSecuritySchemes(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		components := root["components"].(map[string]any)
		components["securitySchemes"] = map[string]any{
			"badKey": map[string]any{"type": "apiKey", "in": "body"},
			"badFlow": map[string]any{
				"type": "oauth2",
				"flows": map[string]any{
					"clientCredentials": map[string]any{"scopes": map[string]any{}},
				},
			},
		}
		delete(root, "security")
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-SEC-002")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "apiKey scheme requires a name")
	assert.Contains(t, joined, "authorization or token URL")
}

func TestCheckLinksExactlyOneTarget(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/users/{id}"].(map[string]any)["get"].(map[string]any)
		resp := op["responses"].(map[string]any)["200"].(map[string]any)
		resp["links"] = map[string]any{
			"both":    map[string]any{"operationId": "a", "operationRef": "#/x"},
			"neither": map[string]any{"description": "aimless"},
			"fine":    map[string]any{"operationId": "getUsersById"},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-LINK-001")
	require.Equal(t, StatusFail, result.Status)
	assert.Len(t, result.Violations, 2)
}

func TestCheckComponents(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		components := root["components"].(map[string]any)
		components["pathItems"] = map[string]any{}
		components["schemas"] = map[string]any{"bad name!": map[string]any{"type": "object"}}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-COMP-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, `illegal section "pathItems"`)
	assert.Contains(t, joined, `illegal key "bad name!"`)
}

func TestCheckSchemas(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		components := root["components"].(map[string]any)
		components["schemas"] = map[string]any{
			"Thing": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{"type": "string", "enum": []any{"a", "a"}},
					"nested": map[string]any{"oneOf": []any{}},
				},
				"required":             []any{"status", 7},
				"additionalProperties": "nope",
			},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-SCHEMA-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "enum has duplicate value")
	assert.Contains(t, joined, "oneOf must be a non-empty array")
	assert.Contains(t, joined, "required must contain only strings")
	assert.Contains(t, joined, "additionalProperties must be a boolean or a schema")
}

func TestCheckSchemaKeywordNotShadowedByPropertyName(t *testing.T) {
	// A property literally named "enum" must not be treated as the keyword.
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		components := root["components"].(map[string]any)
		components["schemas"] = map[string]any{
			"Thing": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"enum": map[string]any{"type": "string"},
				},
			},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-SCHEMA-001").Status)
}

func TestCheck30ForbidsNewerConstructs(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		root["jsonSchemaDialect"] = "https://spec.openapis.org/oas/3.1/dialect/base"
		root["webhooks"] = map[string]any{}
		components := root["components"].(map[string]any)
		components["schemas"] = map[string]any{
			"Thing": map[string]any{"type": []any{"string", "null"}},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-30-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "jsonSchemaDialect is not allowed in 3.0")
	assert.Contains(t, joined, "webhooks are not allowed in 3.0")
	assert.Contains(t, joined, "array-form type is not allowed in 3.0")
}

func TestCheck31ForbidsNullableKeyword(t *testing.T) {
	raw := mutateDoc(t, baseDoc31, func(root map[string]any) {
		root["components"] = map[string]any{
			"schemas": map[string]any{
				"Thing": map[string]any{"type": "string", "nullable": true},
				"List":  map[string]any{"type": []any{"string", "string"}},
			},
		}
	})
	report := mustCheck(t, raw, spec.Version310, nil)

	result := resultFor(t, report, "RQ-31-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "nullable keyword is not allowed in 3.1")
	assert.Contains(t, joined, `type array has duplicate entry "string"`)
}

func TestCheck31ReachesNullableInAllComponentSections(t *testing.T) {
	nullableSchema := map[string]any{"type": "string", "nullable": true}
	raw := mutateDoc(t, baseDoc31, func(root map[string]any) {
		root["components"] = map[string]any{
			"responses": map[string]any{
				"Err": map[string]any{
					"description": "error",
					"content": map[string]any{
						"application/json": map[string]any{"schema": nullableSchema},
					},
					"headers": map[string]any{
						"X-Trace": map[string]any{"schema": nullableSchema},
					},
				},
			},
			"requestBodies": map[string]any{
				"Payload": map[string]any{
					"content": map[string]any{
						"application/json": map[string]any{"schema": nullableSchema},
					},
				},
			},
			"headers": map[string]any{
				"X-Rate": map[string]any{"schema": nullableSchema},
			},
			"callbacks": map[string]any{
				"onChange": map[string]any{
					"{$request.body#/url}": map[string]any{
						"post": map[string]any{
							"requestBody": map[string]any{
								"content": map[string]any{
									"application/json": map[string]any{"schema": nullableSchema},
								},
							},
							"responses": map[string]any{"200": map[string]any{"description": "ok"}},
						},
					},
				},
			},
			"pathItems": map[string]any{
				"Shared": map[string]any{
					"get": map[string]any{
						"responses": map[string]any{
							"200": map[string]any{
								"description": "ok",
								"content": map[string]any{
									"application/json": map[string]any{"schema": nullableSchema},
								},
							},
						},
					},
				},
			},
		}
	})
	report := mustCheck(t, raw, spec.Version310, nil)

	result := resultFor(t, report, "RQ-31-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "components.responses.Err")
	assert.Contains(t, joined, "components.responses.Err header X-Trace")
	assert.Contains(t, joined, "components.requestBodies.Payload")
	assert.Contains(t, joined, "components header X-Rate")
	assert.Contains(t, joined, "components.callbacks.onChange")
	assert.Contains(t, joined, "components.pathItems.Shared")
}

func TestCheck31ReachesNullableInOperationCallback(t *testing.T) {
	raw := mutateDoc(t, baseDoc31, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		op := paths["/health"].(map[string]any)["get"].(map[string]any)
		op["callbacks"] = map[string]any{
			"onEvent": map[string]any{
				"{$request.body#/url}": map[string]any{
					"post": map[string]any{
						"requestBody": map[string]any{
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"type": "object", "nullable": true},
								},
							},
						},
						"responses": map[string]any{"200": map[string]any{"description": "ok"}},
					},
				},
			},
		}
	})
	report := mustCheck(t, raw, spec.Version310, nil)

	result := resultFor(t, report, "RQ-31-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "callback onEvent")
	assert.Contains(t, joined, "nullable keyword is not allowed in 3.1")
}

func TestCheckCallbacksAndWebhooks(t *testing.T) {
	raw := mutateDoc(t, baseDoc31, func(root map[string]any) {
		root["webhooks"] = map[string]any{"ping": "not a path item"}
		paths := root["paths"].(map[string]any)
		op := paths["/health"].(map[string]any)["get"].(map[string]any)
		op["callbacks"] = map[string]any{
			"onEvent": map[string]any{"{$request.body#/url}": []any{}},
		}
	})
	report := mustCheck(t, raw, spec.Version310, nil)

	result := resultFor(t, report, "RQ-CB-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, "must map to a path item")
	assert.Contains(t, joined, `webhooks "ping"`)
}

func TestCheckTags(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		root["tags"] = []any{
			map[string]any{"name": "users"},
			map[string]any{"name": "users"},
			map[string]any{"description": "nameless"},
		}
	})
	report := mustCheck(t, raw, spec.Version303, nil)

	result := resultFor(t, report, "RQ-TAG-001")
	require.Equal(t, StatusFail, result.Status)
	joined := strings.Join(result.Violations, "\n")
	assert.Contains(t, joined, `duplicate tag "users"`)
	assert.Contains(t, joined, "tag without a name")
}

func TestCheckDeterministic(t *testing.T) {
	raw := mutateDoc(t, baseDoc30, func(root map[string]any) {
		paths := root["paths"].(map[string]any)
		for _, p := range []string{"zeta", "alpha", "mid"} {
			paths["/"+p] = map[string]any{"get": map[string]any{"responses": map[string]any{}}}
		}
	})
	first := mustCheck(t, raw, spec.Version303, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, mustCheck(t, raw, spec.Version303, nil))
	}
}

func TestCheckSerializesDocumentWhenRawIsNil(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Info:    &spec.Info{Title: "API", Version: "1.0.0"},
		Paths:   spec.Paths{},
	}
	report, err := Check(doc, nil, spec.Version303, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPass, resultFor(t, report, "RQ-ROOT-001").Status)
}

func TestConform(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"required": ["openapi", "info"],
		"properties": {"openapi": {"type": "string"}}
	}`)

	t.Run("valid", func(t *testing.T) {
		verdict, err := Conform(schema, []byte(baseDoc30))
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
		assert.Empty(t, verdict.Errors)
	})

	t.Run("invalid", func(t *testing.T) {
		verdict, err := Conform(schema, []byte(`{"openapi": 3}`))
		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.NotEmpty(t, verdict.Errors)
	})

	t.Run("broken meta-schema", func(t *testing.T) {
		_, err := Conform([]byte(`{`), []byte(baseDoc30))
		assert.Error(t, err)
	})
}
