package forms

import (
	"sort"
	"strconv"

	formerrors "github.com/go-drift/forms/pkg/errors"
)

// Group is a composite control with named children.
//
// A Group's value is a map of its enabled children's values (all children
// when the group itself is disabled), and its status, pristine, and touched
// state aggregate over its current children. Children iterate in sorted key
// order so aggregate computation is deterministic.
type Group struct {
	controlBase

	controls map[string]Control
}

// NewGroup creates a keyed composite from an initial child collection. Each
// child is parented and wired for structure changes before the group
// computes its initial value and status.
func NewGroup(controls map[string]Control, opts ...ControlOption) *Group {
	g := &Group{controls: make(map[string]Control, len(controls))}
	g.init(g, "group", resolveControlOptions(opts))
	g.runGuarded(func() {
		for _, name := range sortedNames(controls) {
			g.attach(name, controls[name])
		}
		g.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: false})
	})
	return g
}

func sortedNames(controls map[string]Control) []string {
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Controls returns a copy of the child collection.
func (g *Group) Controls() map[string]Control {
	out := make(map[string]Control, len(g.controls))
	for name, c := range g.controls {
		out[name] = c
	}
	return out
}

// Len returns the number of children, enabled or not.
func (g *Group) Len() int { return len(g.controls) }

// Contains reports whether a child with the given name exists AND is
// enabled. A present but disabled child does not participate and reports
// false.
func (g *Group) Contains(name string) bool {
	c, ok := g.controls[name]
	return ok && c.Enabled()
}

// RegisterControl attaches a child without triggering revalidation or a
// structure notification. If a child with the name already exists it is
// returned unchanged.
func (g *Group) RegisterControl(name string, c Control) Control {
	var out Control
	g.runGuarded(func() { out = g.registerControl(name, c) })
	return out
}

func (g *Group) registerControl(name string, c Control) Control {
	if existing, ok := g.controls[name]; ok {
		return existing
	}
	g.attach(name, c)
	return c
}

func (g *Group) attach(name string, c Control) {
	g.controls[name] = c
	cb := c.base()
	cb.adoptGuard(g.guard.Load())
	cb.setParent(&g.controlBase)
	cb.registerOnCollectionChange(g.notifyStructureChanged)
}

func (g *Group) detach(c Control) {
	cb := c.base()
	cb.registerOnCollectionChange(nil)
	cb.setParent(nil)
}

// AddControl attaches a child, revalidates, and notifies structure
// listeners.
func (g *Group) AddControl(name string, c Control, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	g.runGuarded(func() {
		g.registerControl(name, c)
		g.updateValueAndValidity(o)
		g.notifyStructureChanged()
	})
}

// RemoveControl detaches the named child, revalidates, and notifies
// structure listeners. The detached subtree is independent afterwards and
// may be reused elsewhere.
func (g *Group) RemoveControl(name string, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	g.runGuarded(func() {
		if c, ok := g.controls[name]; ok {
			g.detach(c)
			delete(g.controls, name)
		}
		g.updateValueAndValidity(o)
		g.notifyStructureChanged()
	})
}

// SetControl replaces the named child, detaching the old linkage before
// attaching the new one, then revalidates and notifies structure listeners.
func (g *Group) SetControl(name string, c Control, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	g.runGuarded(func() {
		if old, ok := g.controls[name]; ok {
			g.detach(old)
			delete(g.controls, name)
		}
		if c != nil {
			g.attach(name, c)
		}
		g.updateValueAndValidity(o)
		g.notifyStructureChanged()
	})
}

// setValue strictly replaces the group's value from a map[string]any. Every
// registered child must receive an entry and every entry must name a
// registered child; violations fail before any child mutates. Children are
// set scoped to themselves, followed by a single aggregate revalidation.
func (g *Group) setValue(value any, o updateOptions) error {
	m, ok := value.(map[string]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "map[string]any", Got: value}
	}
	if len(g.controls) == 0 {
		return &formerrors.NoControlsError{Kind: g.kind}
	}
	for _, name := range sortedNames(g.controls) {
		if _, ok := m[name]; !ok {
			return &formerrors.MissingValueError{Key: name}
		}
	}
	for _, name := range sortedKeys(m) {
		if _, ok := g.controls[name]; !ok {
			return &formerrors.MissingControlError{Key: name}
		}
	}
	for _, name := range sortedNames(g.controls) {
		if err := g.controls[name].base().self.setValue(m[name], o.scoped()); err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	return nil
}

// patchValue leniently replaces part of the group's value: unknown keys are
// ignored and absent keys leave the corresponding child untouched.
func (g *Group) patchValue(value any, o updateOptions) error {
	m, ok := value.(map[string]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "map[string]any", Got: value}
	}
	for _, name := range sortedKeys(m) {
		child, ok := g.controls[name]
		if !ok {
			continue
		}
		if err := child.base().self.patchValue(m[name], o.scoped()); err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	return nil
}

// reset resets every child to its own initial state, then recomputes the
// group's value, validity, pristine, and touched state.
func (g *Group) reset(o updateOptions) error {
	for _, name := range sortedNames(g.controls) {
		if err := g.controls[name].base().self.reset(o.scoped()); err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	g.updatePristine(o)
	g.updateTouched(o)
	return nil
}

// resetTo resets children to the supplied entries; children without an
// entry reset to their own initial state.
func (g *Group) resetTo(state any, o updateOptions) error {
	m, ok := state.(map[string]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "map[string]any", Got: state}
	}
	for _, name := range sortedNames(g.controls) {
		child := g.controls[name].base().self
		var err error
		if entry, ok := m[name]; ok {
			err = child.resetTo(entry, o.scoped())
		} else {
			err = child.reset(o.scoped())
		}
		if err != nil {
			return err
		}
	}
	g.updateValueAndValidity(o)
	g.updatePristine(o)
	g.updateTouched(o)
	return nil
}

// RawValue collects every child's raw value regardless of disabled state.
func (g *Group) RawValue() any {
	out := make(map[string]any, len(g.controls))
	for name, c := range g.controls {
		out[name] = c.RawValue()
	}
	return out
}

func (g *Group) updateSelfValue() {
	value := make(map[string]any, len(g.controls))
	for name, c := range g.controls {
		if c.Enabled() || g.Disabled() {
			value[name] = c.Value()
		}
	}
	g.value = value
}

func (g *Group) allChildrenDisabled() bool {
	for _, c := range g.controls {
		if c.Enabled() {
			return false
		}
	}
	return len(g.controls) > 0 || g.Disabled()
}

func (g *Group) anyChild(pred func(c Control) bool) bool {
	for _, name := range sortedNames(g.controls) {
		if pred(g.controls[name]) {
			return true
		}
	}
	return false
}

func (g *Group) forEachChild(fn func(c Control)) {
	for _, name := range sortedNames(g.controls) {
		fn(g.controls[name])
	}
}

func (g *Group) childNamed(segment any) Control {
	var name string
	switch s := segment.(type) {
	case string:
		name = s
	case int:
		name = strconv.Itoa(s)
	default:
		return nil
	}
	return g.controls[name]
}

func (g *Group) syncPending() bool {
	updated := false
	g.forEachChild(func(c Control) {
		if c.base().self.syncPending() {
			updated = true
		}
	})
	if updated {
		g.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: true})
	}
	return updated
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
