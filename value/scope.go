package value

import "strconv"

// Context is the root variable tree for one generation run. It is built once
// by a pattern generator, never mutated afterward, and safely shared across
// concurrent renders.
type Context struct {
	vars map[string]Value
}

// NewContext copies vars into an immutable root context.
func NewContext(vars map[string]Value) *Context {
	copied := make(map[string]Value, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Context{vars: copied}
}

func (c *Context) Get(name string) (Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Warnings returns the diagnostic strings recorded under the reserved
// _warnings key, if any.
func (c *Context) Warnings() []string {
	v, ok := c.vars["_warnings"]
	if !ok {
		return nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Scope is one frame of the lookup chain. Loop bodies extend the chain with a
// child frame holding only the loop-local bindings (this, @index, @first,
// @last, @key); every other name falls through to the parent and ultimately
// the root Context, so fully qualified paths stay resolvable at any depth.
type Scope struct {
	parent *Scope
	root   *Context
	locals map[string]Value
}

// RootScope wraps a Context as the base lookup frame.
func RootScope(c *Context) *Scope {
	return &Scope{root: c}
}

// Child creates a nested frame. The locals map is copied.
func (s *Scope) Child(locals map[string]Value) *Scope {
	copied := make(map[string]Value, len(locals))
	for k, v := range locals {
		copied[k] = v
	}
	return &Scope{parent: s, root: s.root, locals: copied}
}

func (s *Scope) lookup(name string) (Value, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if v, ok := frame.locals[name]; ok {
			return v, true
		}
	}
	return s.root.Get(name)
}

// Resolve walks a dot-separated path against the scope chain. The first
// segment is a scope lookup; subsequent segments index into maps by key and
// into lists by decimal position.
func (s *Scope) Resolve(path []string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}
	current, ok := s.lookup(path[0])
	if !ok {
		return Value{}, false
	}
	for _, segment := range path[1:] {
		switch current.Kind() {
		case KindMap:
			m, _ := current.AsMap()
			next, ok := m[segment]
			if !ok {
				return Value{}, false
			}
			current = next
		case KindList:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return Value{}, false
			}
			items, _ := current.AsList()
			if idx < 0 || idx >= len(items) {
				return Value{}, false
			}
			current = items[idx]
		default:
			return Value{}, false
		}
	}
	return current, true
}
