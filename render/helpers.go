// Package render evaluates parsed template ASTs against a typed context
// using a registry of pure helper functions.
package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cpcf/loom/value"
)

// Helper is a pure, named transform invocable inside an interpolation chain.
// Arity declares how many values the function consumes; chain invocation
// always supplies exactly one, so any other declared arity fails at render
// time with HelperArityError. Helpers never see the surrounding context,
// which is what keeps rendering referentially transparent.
type Helper struct {
	Name  string
	Arity int
	Fn    func(value.Value) (value.Value, error)
}

// Registry holds the helpers a parser and renderer share. Safe for
// concurrent use; registration normally happens once at startup.
type Registry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

func NewRegistry() *Registry {
	return &Registry{helpers: make(map[string]Helper)}
}

func (r *Registry) Register(h Helper) error {
	if h.Name == "" {
		return fmt.Errorf("helper name cannot be empty")
	}
	if h.Fn == nil {
		return fmt.Errorf("helper %q has no function", h.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[h.Name] = h
	return nil
}

func (r *Registry) Lookup(name string) (Helper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.helpers[name]
	return h, ok
}

// Has implements template.HelperSet.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.helpers[name]
	return ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stringHelper adapts a string transform into a Helper, rejecting non-string
// input with TypeMismatch.
func stringHelper(name string, fn func(string) string) Helper {
	return Helper{
		Name:  name,
		Arity: 1,
		Fn: func(v value.Value) (value.Value, error) {
			s, ok := v.AsString()
			if !ok {
				return value.Value{}, renderErr(TypeMismatch, "", 0, "helper %q wants a string, got %s", name, v.Kind())
			}
			return value.Str(fn(s)), nil
		},
	}
}

// Defaults returns a registry with the built-in helper set.
func Defaults() *Registry {
	r := NewRegistry()
	for _, h := range []Helper{
		stringHelper("kebabcase", KebabCase),
		stringHelper("snakecase", SnakeCase),
		stringHelper("camelcase", CamelCase),
		stringHelper("pascalcase", PascalCase),
		stringHelper("uppercase", Upper),
		stringHelper("lowercase", Lower),
		stringHelper("trim", Trim),
		stringHelper("humanize", Humanize),
		stringHelper("pluralize", Pluralize),
		stringHelper("singularize", Singularize),
		{
			Name:  "length",
			Arity: 1,
			Fn: func(v value.Value) (value.Value, error) {
				switch v.Kind() {
				case value.KindList, value.KindMap, value.KindString:
					return value.Int(v.Len()), nil
				}
				return value.Value{}, renderErr(TypeMismatch, "", 0, "helper \"length\" wants a string, list, or map, got %s", v.Kind())
			},
		},
	} {
		r.Register(h)
	}
	return r
}
