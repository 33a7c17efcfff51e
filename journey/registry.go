package journey

import (
	"fmt"
	"sort"
)

// Registry is the immutable step mapping for one module. Built once at
// startup; duplicate ids or malformed definitions are programming errors and
// panic during construction.
type Registry struct {
	module Module
	entry  StepID
	steps  map[StepID]*StepDefinition
}

// NewRegistry builds a module registry from step definitions.
func NewRegistry(module Module, entry StepID, defs ...StepDefinition) *Registry {
	r := &Registry{
		module: module,
		entry:  entry,
		steps:  make(map[StepID]*StepDefinition, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if d.ID == StepEnd {
			panic(fmt.Sprintf("registry %s: step with empty id", module))
		}
		if _, dup := r.steps[d.ID]; dup {
			panic(fmt.Sprintf("registry %s: duplicate step id %q", module, d.ID))
		}
		if d.Next == nil {
			panic(fmt.Sprintf("registry %s: step %q has no router", module, d.ID))
		}
		d.Module = module
		r.steps[d.ID] = &d
	}
	if _, ok := r.steps[entry]; !ok {
		panic(fmt.Sprintf("registry %s: entry step %q not defined", module, entry))
	}
	return r
}

// Module returns the registry's module tag.
func (r *Registry) Module() Module { return r.module }

// Entry returns the module's entry step.
func (r *Registry) Entry() StepID { return r.entry }

// Get returns a step definition by id.
func (r *Registry) Get(id StepID) (*StepDefinition, bool) {
	d, ok := r.steps[id]
	return d, ok
}

// StepIDs returns all step ids in a stable order.
func (r *Registry) StepIDs() []StepID {
	out := make([]StepID, 0, len(r.steps))
	for id := range r.steps {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union is the logical join of the per-module registries the engine routes
// over. Step ids must be unique across the whole union.
type Union struct {
	registries map[Module]*Registry
	steps      map[StepID]*StepDefinition
}

// NewUnion joins module registries. Cross-module id collisions error out.
func NewUnion(regs ...*Registry) (*Union, error) {
	u := &Union{
		registries: make(map[Module]*Registry, len(regs)),
		steps:      make(map[StepID]*StepDefinition),
	}
	for _, r := range regs {
		if _, dup := u.registries[r.module]; dup {
			return nil, fmt.Errorf("duplicate module registry %q", r.module)
		}
		u.registries[r.module] = r
		for id, d := range r.steps {
			if prev, dup := u.steps[id]; dup {
				return nil, fmt.Errorf("step id %q defined in both %s and %s", id, prev.Module, r.module)
			}
			u.steps[id] = d
		}
	}
	return u, nil
}

// Get resolves a step definition anywhere in the union.
func (u *Union) Get(id StepID) (*StepDefinition, bool) {
	d, ok := u.steps[id]
	return d, ok
}

// Entry returns the entry step of a module.
func (u *Union) Entry(m Module) (StepID, bool) {
	r, ok := u.registries[m]
	if !ok {
		return StepEnd, false
	}
	return r.entry, true
}

// Validate is the startup graph-closure pass: every declared route of every
// step must resolve in the union, steps with widgets must declare routes, and
// an auto-advancing step must not route to itself. A failure here is a
// configuration error and should abort startup rather than surface mid-chat.
func (u *Union) Validate() error {
	for _, r := range u.registries {
		for _, id := range r.StepIDs() {
			d := r.steps[id]
			if len(d.Routes) == 0 {
				return fmt.Errorf("step %q (%s) declares no routes", id, r.module)
			}
			for _, to := range d.Routes {
				if to == StepEnd {
					continue
				}
				if to == d.ID && d.Widget == WidgetNone {
					return fmt.Errorf("auto-advance step %q (%s) routes to itself", id, r.module)
				}
				if _, ok := u.steps[to]; !ok {
					return fmt.Errorf("step %q (%s) routes to unknown step %q", id, r.module, to)
				}
			}
		}
	}
	return nil
}
