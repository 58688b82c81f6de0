// Package routes defines the route-fact input model consumed by the assemble
// package. Route discovery itself lives outside this module: a provider walks
// the host framework's routing registry (or a recorded facts file) and hands
// finished Route values to the pipeline.
package routes

import (
	"fmt"
	"strings"
)

// Route describes one registered endpoint of the analyzed service.
type Route struct {
	// PathTemplate is the URI template with {name} segments, e.g. "/users/{id}".
	PathTemplate string `json:"pathTemplate"`
	// Methods lists the HTTP methods bound to this template (lowercase).
	Methods []string `json:"httpMethods"`
	// Handler identifies the bound handler for introspection by the fact
	// providers.
	Handler HandlerBinding `json:"handlerBinding"`
	// Middleware lists the middleware names attached to the route, in order.
	// Authentication middleware here drives security-requirement inference.
	Middleware []string `json:"middlewareNames"`
	// Parameters carries the route-level parameter facts (path placeholders
	// with any type constraints the router declares).
	Parameters []PathParam `json:"routeParameters"`
	// Deprecated marks routes the provider flagged as deprecated.
	Deprecated bool `json:"deprecated,omitempty"`
	// Name is the route's registered name, when the framework tracks one.
	Name string `json:"name,omitempty"`
}

// HandlerBinding identifies a handler without holding executable code.
type HandlerBinding struct {
	// Class is the fully qualified controller/handler type name.
	Class string `json:"class"`
	// Method is the invoked method name ("__invoke" style handlers use the
	// framework's convention verbatim).
	Method string `json:"method"`
}

// String returns "Class@Method" for diagnostics.
func (h HandlerBinding) String() string {
	if h.Method == "" {
		return h.Class
	}
	return fmt.Sprintf("%s@%s", h.Class, h.Method)
}

// PathParam is a single route-level parameter fact.
type PathParam struct {
	Name string `json:"name"`
	// Pattern is the router-declared constraint regex, if any.
	Pattern string `json:"pattern,omitempty"`
	// Optional marks router-level optional segments.
	Optional bool `json:"optional,omitempty"`
}

// TemplateParams extracts the ordered {name} placeholders from a path template.
func TemplateParams(template string) []string {
	var params []string
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			return params
		}
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			return params
		}
		name := template[open+1 : open+close]
		if name != "" {
			params = append(params, name)
		}
		template = template[open+close+1:]
	}
}

// Source is the provider boundary: anything that can enumerate route facts.
type Source interface {
	// Routes returns all registered routes. Implementations must not require
	// executing the analyzed application.
	Routes() ([]Route, error)
}

// StaticSource adapts a fixed route slice (e.g., decoded from a facts file)
// to the Source interface.
type StaticSource []Route

// Routes implements Source.
func (s StaticSource) Routes() ([]Route, error) {
	return []Route(s), nil
}
