package logger

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/V4T54L/access-logger/internal/domain"
)

// ErrNotConfigured is returned by Get before Configure has been called.
var ErrNotConfigured = errors.New("logger registry not configured")

// Config holds the static fields attached to every channel logger.
type Config struct {
	Microservice string
	Team         string
	Environment  string

	// Handler receives the output. Nil means slog.Default().Handler().
	Handler slog.Handler
}

// Registry maps channel names such as "http.access" to loggers.
type Registry struct {
	mu      sync.RWMutex
	base    *slog.Logger
	custom  map[string]domain.Logger
	derived map[string]domain.Logger
}

// NewRegistry returns an unconfigured registry.
func NewRegistry() *Registry {
	return &Registry{
		custom:  make(map[string]domain.Logger),
		derived: make(map[string]domain.Logger),
	}
}

// Configure installs the base handler and static fields. Channels derived
// under a previous configuration are dropped; registered loggers are kept.
func (r *Registry) Configure(cfg Config) {
	h := cfg.Handler
	if h == nil {
		h = slog.Default().Handler()
	}
	base := slog.New(h).With(
		"microservice", cfg.Microservice,
		"team", cfg.Team,
		"environment", cfg.Environment,
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = base
	r.derived = make(map[string]domain.Logger)
}

// Register installs l for name, taking precedence over derived channels.
func (r *Registry) Register(name string, l domain.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = l
}

// Get returns the logger for name, deriving a slog channel on first use.
func (r *Registry) Get(name string) (domain.Logger, error) {
	r.mu.RLock()
	if l, ok := r.custom[name]; ok {
		r.mu.RUnlock()
		return l, nil
	}
	if r.base == nil {
		r.mu.RUnlock()
		return nil, errors.Wrapf(ErrNotConfigured, "get logger %q", name)
	}
	if l, ok := r.derived[name]; ok {
		r.mu.RUnlock()
		return l, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.derived[name]; ok {
		return l, nil
	}
	if r.base == nil {
		return nil, errors.Wrapf(ErrNotConfigured, "get logger %q", name)
	}
	l := NewSlogLogger(r.base.With("logger", name))
	r.derived[name] = l
	return l, nil
}

// Reset returns the registry to its unconfigured state.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = nil
	r.custom = make(map[string]domain.Logger)
	r.derived = make(map[string]domain.Logger)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Configure configures the process-wide registry.
func Configure(cfg Config) { defaultRegistry.Configure(cfg) }

// Register registers l on the process-wide registry.
func Register(name string, l domain.Logger) { defaultRegistry.Register(name, l) }

// Get looks name up on the process-wide registry.
func Get(name string) (domain.Logger, error) { return defaultRegistry.Get(name) }
