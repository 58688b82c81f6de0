package assemble

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inferspec/inferspec/cache"
	"github.com/inferspec/inferspec/internal/severity"
	"github.com/inferspec/inferspec/internal/stringutil"
	"github.com/inferspec/inferspec/routes"
	"github.com/inferspec/inferspec/rules"
	"github.com/inferspec/inferspec/shapes"
	"github.com/inferspec/inferspec/spec"
)

// Assembler builds OpenAPI documents from service facts. It is safe for
// concurrent use; each Assemble call carries its own run state.
type Assembler struct {
	cfg *config
}

// New returns an assembler configured by opts.
func New(opts ...Option) (*Assembler, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Assembler{cfg: cfg}, nil
}

// Assemble builds the full document for input. Operations are analyzed
// concurrently across the configured worker pool; merges into the shared
// document happen under a lock. The returned error is non-nil only for
// context cancellation, or for the first error-severity issue when fail-fast
// is on; analysis problems otherwise degrade in-band and land in the issue
// collector.
func (asm *Assembler) Assemble(ctx context.Context, input Input) (*spec.Document, error) {
	r := newRun(asm.cfg, input.Resources)
	r.log().Info("assembling document",
		"version", asm.cfg.version.String(),
		"operations", len(input.Operations),
		"workers", asm.cfg.workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(asm.cfg.workers)
	for i := range input.Operations {
		facts := input.Operations[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.addRoute(facts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := asm.cfg.collector.Err(); err != nil {
		return nil, err
	}
	r.finalize()
	return r.doc, nil
}

// AssembleOperation builds the path item for a single route, for callers
// that drive iteration themselves. Components referenced by the operation
// (security schemes, resource schemas) are not part of the returned fragment.
func (asm *Assembler) AssembleOperation(ctx context.Context, facts OperationFacts) (*spec.PathItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := newRun(asm.cfg, nil)
	if err := r.addRoute(facts); err != nil {
		return nil, err
	}
	if err := asm.cfg.collector.Err(); err != nil {
		return nil, err
	}
	r.finalize()
	item := r.doc.Paths[facts.Route.PathTemplate]
	if item == nil {
		return nil, fmt.Errorf("assemble: route %q produced no operations", facts.Route.PathTemplate)
	}
	return item, nil
}

// run is the per-call state: the document under construction and the lock
// serializing merges into its shared maps.
type run struct {
	cfg *config

	mu        sync.Mutex
	doc       *spec.Document
	resources map[string]shapes.Node
	// resourceDone marks resource components whose registration has started,
	// breaking reference cycles between resource trees.
	resourceDone map[string]bool
}

func newRun(cfg *config, resources map[string]shapes.Node) *run {
	info := cfg.info
	if info == nil {
		info = &spec.Info{Title: "API", Version: "0.0.0"}
	}
	doc := &spec.Document{
		OpenAPI:    cfg.version.String(),
		OASVersion: cfg.version,
		Info:       info,
		Servers:    cfg.servers,
		Tags:       cfg.tags,
		Paths:      spec.Paths{},
	}
	return &run{
		cfg:          cfg,
		doc:          doc,
		resources:    resources,
		resourceDone: make(map[string]bool),
	}
}

func (a *run) log() Logger { return a.cfg.logger }

// addRoute analyzes one route's facts and merges its operations into the
// document.
func (a *run) addRoute(facts OperationFacts) error {
	route := facts.Route
	path := route.PathTemplate
	if !strings.HasPrefix(path, "/") {
		a.cfg.collector.Addf(severity.SeverityError, "assemble", path,
			"path template %q must begin with a slash", path)
		return a.cfg.collector.Err()
	}
	if len(route.Methods) == 0 {
		a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
			"route declares no HTTP methods")
		return nil
	}

	for _, method := range route.Methods {
		m := strings.ToLower(method)
		op := a.buildOperation(m, facts)

		a.mu.Lock()
		item := a.doc.Paths[path]
		if item == nil {
			item = &spec.PathItem{}
			a.doc.Paths[path] = item
		}
		if _, exists := item.Operations()[m]; exists {
			a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
				"duplicate %s operation; last definition wins", m)
		}
		if !item.SetOperation(m, op) {
			a.cfg.collector.Addf(severity.SeverityWarning, "assemble", path,
				"unsupported HTTP method %q", method)
		}
		a.mu.Unlock()
	}
	return a.cfg.collector.Err()
}

// buildOperation assembles one method's operation object. It is called
// recursively for callback operations.
func (a *run) buildOperation(method string, facts OperationFacts) *spec.Operation {
	route := facts.Route
	op := &spec.Operation{
		OperationID: operationID(method, facts),
		Summary:     summaryFor(facts),
		Description: facts.Description,
		Tags:        facts.Tags,
		Deprecated:  route.Deprecated,
		Responses:   spec.Responses{},
	}

	var ruleResult *rules.Result
	if facts.Rules != nil {
		ruleResult = a.analyzeRules(facts)
	}

	bodyMethod := method == "post" || method == "put" || method == "patch"
	templateParams := routes.TemplateParams(route.PathTemplate)

	var descriptors []rules.Descriptor
	if ruleResult != nil {
		in := "query"
		if bodyMethod {
			in = "body"
		}
		var opts []rules.DescriptorOption
		if len(facts.Labels) > 0 {
			opts = append(opts, rules.WithLabels(facts.Labels))
		}
		if len(facts.EnumValues) > 0 {
			opts = append(opts, rules.WithEnumValues(facts.EnumValues))
		}
		descriptors = rules.DescriptorsFor(ruleResult, in, opts...)
	}

	pathSet := make(map[string]bool, len(templateParams))
	for _, p := range templateParams {
		pathSet[p] = true
	}
	var pathDescs, fieldDescs []rules.Descriptor
	for _, d := range descriptors {
		if pathSet[d.Name] {
			d.In = "path"
			d.Required = true
			pathDescs = append(pathDescs, d)
		} else {
			fieldDescs = append(fieldDescs, d)
		}
	}

	op.Parameters = a.buildParameters(route, templateParams, pathDescs, fieldDescs, facts.Query, bodyMethod)

	if bodyMethod && len(fieldDescs) > 0 {
		var notices []string
		if ruleResult != nil {
			notices = ruleResult.Notices
		}
		op.RequestBody = buildRequestBody(fieldDescs, notices)
	} else if ruleResult != nil {
		for _, notice := range ruleResult.Notices {
			a.cfg.collector.Addf(severity.SeverityInfo, "rules", route.PathTemplate, "%s", notice)
		}
	}

	a.buildResponses(op, facts, len(descriptors) > 0)

	if reqs := a.securityFor(route.Middleware, route.PathTemplate); len(reqs) > 0 {
		op.Security = reqs
	}
	a.buildCallbacks(op, facts)
	return op
}

func (a *run) buildCallbacks(op *spec.Operation, facts OperationFacts) {
	for _, cb := range facts.Callbacks {
		if cb.Name == "" || cb.Expression == "" {
			a.cfg.collector.Addf(severity.SeverityWarning, "assemble", facts.Route.PathTemplate,
				"callback needs both a name and a runtime expression")
			continue
		}
		item := &spec.PathItem{}
		for _, method := range cb.Operation.Route.Methods {
			m := strings.ToLower(method)
			if !item.SetOperation(m, a.buildOperation(m, cb.Operation)) {
				a.cfg.collector.Addf(severity.SeverityWarning, "assemble", facts.Route.PathTemplate,
					"callback %q uses unsupported HTTP method %q", cb.Name, method)
			}
		}
		if op.Callbacks == nil {
			op.Callbacks = make(map[string]*spec.Callback)
		}
		callback := spec.Callback{cb.Expression: item}
		op.Callbacks[cb.Name] = &callback
	}
}

// analyzeRules runs the rule analyzer, memoized by the serialized rule
// expression when a cache store is configured.
func (a *run) analyzeRules(facts OperationFacts) *rules.Result {
	analyze := func() *rules.Result { return rules.Analyze(*facts.Rules) }
	if a.cfg.store == nil {
		return analyze()
	}
	raw, err := json.Marshal(facts.Rules)
	if err != nil {
		return analyze()
	}
	key := cache.Key("rules:" + string(cache.Fingerprint(raw)))
	v, _ := a.cfg.store.Fetch(key, func() (any, error) { return analyze(), nil })
	if result, ok := v.(*rules.Result); ok {
		return result
	}
	return analyze()
}

// analyzeShape runs the shape analyzer, memoized like analyzeRules.
func (a *run) analyzeShape(node shapes.Node) *shapes.Result {
	analyze := func() *shapes.Result { return shapes.Analyze(node) }
	if a.cfg.store == nil {
		return analyze()
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return analyze()
	}
	key := cache.Key("shape:" + string(cache.Fingerprint(raw)))
	v, _ := a.cfg.store.Fetch(key, func() (any, error) { return analyze(), nil })
	if result, ok := v.(*shapes.Result); ok {
		return result
	}
	return analyze()
}

// operationID derives a stable operation identifier: an explicit override,
// then the registered route name, then method plus camel-cased path segments
// ("get /users/{id}" becomes "getUsersById").
func operationID(method string, facts OperationFacts) string {
	if facts.OperationID != "" {
		return facts.OperationID
	}
	if facts.Route.Name != "" {
		return facts.Route.Name
	}
	var b strings.Builder
	b.WriteString(method)
	for _, seg := range strings.Split(facts.Route.PathTemplate, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			b.WriteString(pascal(seg[1 : len(seg)-1]))
		} else {
			b.WriteString(pascal(seg))
		}
	}
	return b.String()
}

func pascal(s string) string {
	var b strings.Builder
	for _, w := range stringutil.SplitSnake(s) {
		b.WriteString(stringutil.TitleWords(w))
	}
	return b.String()
}

// summaryFor falls back to a humanized handler-method name.
func summaryFor(facts OperationFacts) string {
	if facts.Summary != "" {
		return facts.Summary
	}
	method := facts.Route.Handler.Method
	if method == "" || method == "__invoke" {
		return ""
	}
	return stringutil.Humanize(camelToSnake(method))
}

// camelToSnake lowers camelCase handler names so Humanize can split them.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
