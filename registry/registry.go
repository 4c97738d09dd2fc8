package registry

import "fmt"

// Registry is the process-wide catalog of block definitions. Unlike the
// teacher's ISA.registerNewInst (instr/isa.go), which silently overwrites
// a duplicate name, Register fails fast on a duplicate per the explicit
// requirement that authored content errors can't be masked by a stale
// reregistration (see DESIGN.md, Open Question 4).
type Registry struct {
	byName    map[string]BlockDef
	byCategory map[string][]string
}

// New returns an empty Registry. The engine owns exactly one Registry
// instance; there is no package-level global registry (spec's explicit
// redesign note against singletons).
func New() *Registry {
	return &Registry{
		byName:     make(map[string]BlockDef),
		byCategory: make(map[string][]string),
	}
}

// Register adds a block definition. It returns an error, rather than
// panicking, so that a host embedding the engine can decide how to report
// a duplicate-name programming mistake.
func (r *Registry) Register(def BlockDef) error {
	if _, exists := r.byName[def.Name]; exists {
		return fmt.Errorf("registry: block %q already registered", def.Name)
	}
	r.byName[def.Name] = def
	r.byCategory[def.Category] = append(r.byCategory[def.Category], def.Name)
	return nil
}

// MustRegister is Register, panicking on error. Intended for the fixed
// set of built-in blocks registered at engine construction time, where a
// duplicate name is a programming error, not a runtime condition.
func (r *Registry) MustRegister(def BlockDef) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get looks up a block definition by name.
func (r *Registry) Get(name string) (BlockDef, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Find is an alias for Get kept for readability at call sites that are
// searching rather than asserting existence.
func (r *Registry) Find(name string) (BlockDef, bool) {
	return r.Get(name)
}

// Categories returns the known category names, each once. The order is
// that of map iteration and is not defined.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool, len(r.byCategory))
	var order []string
	for name := range r.byName {
		cat := r.byName[name].Category
		if !seen[cat] {
			seen[cat] = true
			order = append(order, cat)
		}
	}
	return order
}

// InCategory returns the block names registered under a category.
func (r *Registry) InCategory(category string) []string {
	return append([]string(nil), r.byCategory[category]...)
}

// Len reports how many blocks are registered.
func (r *Registry) Len() int {
	return len(r.byName)
}
