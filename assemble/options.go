package assemble

import (
	"fmt"
	"runtime"

	"github.com/inferspec/inferspec/cache"
	"github.com/inferspec/inferspec/internal/issues"
	"github.com/inferspec/inferspec/spec"
)

// Option configures an Assembler.
type Option func(*config)

type config struct {
	version   spec.Version
	info      *spec.Info
	servers   []*spec.Server
	tags      []*spec.Tag
	workers   int
	logger    Logger
	collector *issues.Collector
	store     *cache.Store
	failFast  bool
	security  map[string]securityBinding
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		version:  spec.Version300,
		workers:  runtime.GOMAXPROCS(0),
		logger:   NopLogger{},
		security: defaultSecurityBindings(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.version.Valid() {
		return nil, fmt.Errorf("assemble: unsupported document version %d", int(cfg.version))
	}
	if cfg.workers < 1 {
		return nil, fmt.Errorf("assemble: worker count must be positive, got %d", cfg.workers)
	}
	if cfg.collector == nil {
		cfg.collector = issues.NewCollector(cfg.failFast)
	}
	if err := validateSecurityBindings(cfg.security); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithVersion selects the target document version. The default is 3.0.0.
func WithVersion(v spec.Version) Option {
	return func(cfg *config) { cfg.version = v }
}

// WithInfo sets the document's info object. Without it a minimal placeholder
// info is emitted, since the field is required by every supported version.
func WithInfo(info *spec.Info) Option {
	return func(cfg *config) { cfg.info = info }
}

// WithServers sets the document-level server list.
func WithServers(servers ...*spec.Server) Option {
	return func(cfg *config) { cfg.servers = servers }
}

// WithTags sets the document-level tag declarations.
func WithTags(tags ...*spec.Tag) Option {
	return func(cfg *config) { cfg.tags = tags }
}

// WithWorkers bounds the per-operation analysis pool. The default is
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *config) { cfg.workers = n }
}

// WithLogger installs a structured logger. The default discards all output.
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithCollector installs a shared issue collector, letting callers aggregate
// issues across several assembler runs.
func WithCollector(c *issues.Collector) Option {
	return func(cfg *config) { cfg.collector = c }
}

// WithCache installs a fingerprint-keyed analysis cache shared across runs.
func WithCache(store *cache.Store) Option {
	return func(cfg *config) { cfg.store = store }
}

// WithFailFast aborts assembly on the first error-severity issue instead of
// collecting and continuing. Ignored when WithCollector supplies a collector,
// which carries its own fail-fast setting.
func WithFailFast() Option {
	return func(cfg *config) { cfg.failFast = true }
}

// WithSecurityScheme binds an authentication middleware name to a named
// security-scheme component, extending or overriding the built-in bindings
// for bearer and basic auth middleware.
func WithSecurityScheme(middleware, name string, scheme *spec.SecurityScheme) Option {
	return func(cfg *config) {
		cfg.security[middleware] = securityBinding{name: name, scheme: scheme}
	}
}
