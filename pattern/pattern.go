// Package pattern maps a named architecture pattern plus raw decision data
// onto the typed context a generation run renders against.
package pattern

import (
	"sort"
	"sync"

	"github.com/cpcf/loom/value"
)

// FallbackPattern is used when a config names a pattern nobody registered.
const FallbackPattern = "simple_crud"

// Config is the input handed over by the upstream requirements process. The
// decision map is opaque external data; generators destructure only the keys
// they understand and default everything else.
type Config struct {
	Name      string
	Decisions map[string]any
}

// Generator derives a context variable tree from raw decisions. Generators
// must be pure: same decisions, same tree.
type Generator func(decisions map[string]any) map[string]value.Value

// Registry maps pattern names to generators. New patterns register here
// without touching the rest of the pipeline.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Defaults returns a registry with the built-in pattern set.
func Defaults() *Registry {
	r := NewRegistry()
	r.Register("simple_crud", SimpleCRUD)
	r.Register("social_platform", SocialPlatform)
	r.Register("e_commerce", ECommerce)
	r.Register("content_management", ContentManagement)
	r.Register("dashboard_analytics", DashboardAnalytics)
	return r
}

func (r *Registry) Register(name string, gen Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = gen
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the context for cfg. An unrecognized pattern name is not
// an error: the run proceeds on the fallback generator and the context
// records the substitution under the reserved _warnings key, so a minimal
// valid project still comes out the other end.
func (r *Registry) Build(cfg Config) *value.Context {
	r.mu.RLock()
	gen, ok := r.generators[cfg.Name]
	if !ok {
		gen = r.generators[FallbackPattern]
	}
	r.mu.RUnlock()

	// A registry without the fallback still fails soft: an empty context
	// carrying only the warning.
	vars := map[string]value.Value{}
	if gen != nil {
		vars = gen(cfg.Decisions)
	}
	if !ok {
		vars["_warnings"] = value.ListOf(value.Str("unknown_pattern:" + cfg.Name))
	}
	return value.NewContext(vars)
}
