package assemble

import (
	"fmt"
	"strings"

	"github.com/inferspec/inferspec/internal/severity"
	"github.com/inferspec/inferspec/spec"
)

// securityBinding maps one middleware name onto a named security-scheme
// component.
type securityBinding struct {
	name   string
	scheme *spec.SecurityScheme
}

// defaultSecurityBindings covers the common token and basic-auth middleware
// spellings. API-key and OAuth2 middleware carry deployment-specific names
// and URLs, so they come in through WithSecurityScheme.
func defaultSecurityBindings() map[string]securityBinding {
	bearer := securityBinding{
		name:   "bearerAuth",
		scheme: &spec.SecurityScheme{Type: "http", Scheme: "bearer"},
	}
	return map[string]securityBinding{
		"auth":         bearer,
		"auth:sanctum": bearer,
		"auth:api":     bearer,
		"auth.basic": {
			name:   "basicAuth",
			scheme: &spec.SecurityScheme{Type: "http", Scheme: "basic"},
		},
	}
}

// validateSecurityBindings checks caller-supplied schemes for the shape rules
// each type requires. Flows get a non-nil scopes map so serialization always
// carries one.
func validateSecurityBindings(bindings map[string]securityBinding) error {
	for middleware, b := range bindings {
		s := b.scheme
		if b.name == "" || s == nil {
			return fmt.Errorf("assemble: security binding for %q needs a component name and scheme", middleware)
		}
		switch s.Type {
		case "http":
			if s.Scheme == "" {
				return fmt.Errorf("assemble: http security scheme %q needs a scheme name", b.name)
			}
		case "apiKey":
			if s.Name == "" || !validAPIKeyLocation(s.In) {
				return fmt.Errorf("assemble: apiKey security scheme %q needs a key name and a location of query, header, or cookie", b.name)
			}
		case "oauth2":
			if s.Flows == nil {
				return fmt.Errorf("assemble: oauth2 security scheme %q needs at least one flow", b.name)
			}
			for kind, flow := range namedFlows(s.Flows) {
				if flow.AuthorizationURL == "" && flow.TokenURL == "" {
					return fmt.Errorf("assemble: oauth2 security scheme %q flow %s needs an authorization or token URL", b.name, kind)
				}
				if flow.Scopes == nil {
					flow.Scopes = map[string]string{}
				}
			}
		case "openIdConnect":
			if s.OpenIDConnectURL == "" {
				return fmt.Errorf("assemble: openIdConnect security scheme %q needs a discovery URL", b.name)
			}
		default:
			return fmt.Errorf("assemble: security scheme %q has unsupported type %q", b.name, s.Type)
		}
	}
	return nil
}

func validAPIKeyLocation(in string) bool {
	return in == "query" || in == "header" || in == "cookie"
}

func namedFlows(f *spec.OAuthFlows) map[string]*spec.OAuthFlow {
	out := make(map[string]*spec.OAuthFlow, 4)
	if f.Implicit != nil {
		out["implicit"] = f.Implicit
	}
	if f.Password != nil {
		out["password"] = f.Password
	}
	if f.ClientCredentials != nil {
		out["clientCredentials"] = f.ClientCredentials
	}
	if f.AuthorizationCode != nil {
		out["authorizationCode"] = f.AuthorizationCode
	}
	return out
}

// securityFor resolves a route's middleware list into per-operation security
// requirements, registering each referenced scheme as a component. Scope
// middleware entries ("scope:a,b" or "scopes:a,b") attach their scopes to the
// OAuth2 and OpenID Connect requirements of the same operation.
func (a *run) securityFor(middleware []string, path string) []spec.SecurityRequirement {
	var reqs []spec.SecurityRequirement
	var scopes []string

	for _, name := range middleware {
		if s, ok := strings.CutPrefix(name, "scope:"); ok {
			scopes = append(scopes, splitScopes(s)...)
			continue
		}
		if s, ok := strings.CutPrefix(name, "scopes:"); ok {
			scopes = append(scopes, splitScopes(s)...)
			continue
		}

		binding, ok := a.cfg.security[name]
		if !ok {
			if strings.HasPrefix(name, "auth") {
				a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
					"no security-scheme binding for middleware %q", name)
			}
			continue
		}
		a.registerSecurityScheme(binding)
		reqs = append(reqs, spec.SecurityRequirement{binding.name: []string{}})
	}

	if len(scopes) > 0 {
		for _, req := range reqs {
			for name := range req {
				if scopedType(a.cfg.security, name) {
					req[name] = scopes
				}
			}
		}
	}
	return reqs
}

func splitScopes(s string) []string {
	var out []string
	for _, scope := range strings.Split(s, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			out = append(out, scope)
		}
	}
	return out
}

// scopedType reports whether the named scheme accepts scopes in a security
// requirement.
func scopedType(bindings map[string]securityBinding, name string) bool {
	for _, b := range bindings {
		if b.name == name {
			return b.scheme.Type == "oauth2" || b.scheme.Type == "openIdConnect"
		}
	}
	return false
}

func (a *run) registerSecurityScheme(b securityBinding) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.AddSecurityScheme(b.name, b.scheme)
}
