package forms

import (
	"strconv"

	formerrors "github.com/go-drift/forms/pkg/errors"
)

// Array is a composite control with a dense, order-significant sequence of
// children.
//
// An Array's value is a slice of its enabled children's values (all
// children when the array itself is disabled); status, pristine, and
// touched state aggregate over the current children exactly as for Group.
type Array struct {
	controlBase

	controls []Control
}

// NewArray creates an indexed composite from an initial child sequence.
// Each child is parented and wired for structure changes before the array
// computes its initial value and status.
func NewArray(controls []Control, opts ...ControlOption) *Array {
	a := &Array{controls: make([]Control, 0, len(controls))}
	a.init(a, "array", resolveControlOptions(opts))
	a.runGuarded(func() {
		for _, c := range controls {
			a.controls = append(a.controls, c)
			a.attach(c)
		}
		a.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: false})
	})
	return a
}

func (a *Array) attach(c Control) {
	cb := c.base()
	cb.adoptGuard(a.guard.Load())
	cb.setParent(&a.controlBase)
	cb.registerOnCollectionChange(a.notifyStructureChanged)
}

func (a *Array) detach(c Control) {
	cb := c.base()
	cb.registerOnCollectionChange(nil)
	cb.setParent(nil)
}

// Controls returns a copy of the child sequence.
func (a *Array) Controls() []Control {
	out := make([]Control, len(a.controls))
	copy(out, a.controls)
	return out
}

// Len returns the number of children, enabled or not.
func (a *Array) Len() int { return len(a.controls) }

// At returns the child at index, or nil when out of range.
func (a *Array) At(index int) Control {
	if index < 0 || index >= len(a.controls) {
		return nil
	}
	return a.controls[index]
}

// Push appends a child, revalidates, and notifies structure listeners.
func (a *Array) Push(c Control, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	a.runGuarded(func() {
		a.controls = append(a.controls, c)
		a.attach(c)
		a.updateValueAndValidity(o)
		a.notifyStructureChanged()
	})
}

// Insert places a child at index, shifting later children up, then
// revalidates and notifies structure listeners. Out-of-range indexes clamp
// to the ends of the sequence.
func (a *Array) Insert(index int, c Control, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	a.runGuarded(func() {
		if index < 0 {
			index = 0
		}
		if index > len(a.controls) {
			index = len(a.controls)
		}
		a.controls = append(a.controls, nil)
		copy(a.controls[index+1:], a.controls[index:])
		a.controls[index] = c
		a.attach(c)
		a.updateValueAndValidity(o)
		a.notifyStructureChanged()
	})
}

// RemoveAt detaches the child at index, revalidates, and notifies structure
// listeners. The detached subtree is independent afterwards.
func (a *Array) RemoveAt(index int, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	a.runGuarded(func() {
		if index >= 0 && index < len(a.controls) {
			a.detach(a.controls[index])
			a.controls = append(a.controls[:index], a.controls[index+1:]...)
		}
		a.updateValueAndValidity(o)
		a.notifyStructureChanged()
	})
}

// SetControl replaces the child at index, detaching the old linkage before
// attaching the new one, then revalidates and notifies structure listeners.
func (a *Array) SetControl(index int, c Control, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	a.runGuarded(func() {
		if index < 0 || index >= len(a.controls) {
			return
		}
		a.detach(a.controls[index])
		if c != nil {
			a.controls[index] = c
			a.attach(c)
		} else {
			a.controls = append(a.controls[:index], a.controls[index+1:]...)
		}
		a.updateValueAndValidity(o)
		a.notifyStructureChanged()
	})
}

// setValue strictly replaces the array's value from an []any of exactly the
// same length; a shorter slice is a missing value, a longer one names a
// missing control, and either fails before any child mutates.
func (a *Array) setValue(value any, o updateOptions) error {
	values, ok := value.([]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "[]any", Got: value}
	}
	if len(a.controls) == 0 {
		return &formerrors.NoControlsError{Kind: a.kind}
	}
	if len(values) < len(a.controls) {
		return &formerrors.MissingValueError{Key: len(values)}
	}
	if len(values) > len(a.controls) {
		return &formerrors.MissingControlError{Key: len(a.controls)}
	}
	for i, c := range a.controls {
		if err := c.base().self.setValue(values[i], o.scoped()); err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	return nil
}

// patchValue leniently replaces a prefix of the array's value: a shorter
// slice leaves trailing children untouched and out-of-range entries are
// ignored.
func (a *Array) patchValue(value any, o updateOptions) error {
	values, ok := value.([]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "[]any", Got: value}
	}
	for i, v := range values {
		if i >= len(a.controls) {
			break
		}
		if err := a.controls[i].base().self.patchValue(v, o.scoped()); err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	return nil
}

// reset resets every child to its own initial state, then recomputes the
// array's value, validity, pristine, and touched state.
func (a *Array) reset(o updateOptions) error {
	for _, c := range a.controls {
		if err := c.base().self.reset(o.scoped()); err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	a.updatePristine(o)
	a.updateTouched(o)
	return nil
}

// resetTo resets children positionally from the supplied slice; children
// without an entry reset to their own initial state.
func (a *Array) resetTo(state any, o updateOptions) error {
	values, ok := state.([]any)
	if !ok {
		return &formerrors.InvalidValueError{Expected: "[]any", Got: state}
	}
	for i, c := range a.controls {
		child := c.base().self
		var err error
		if i < len(values) {
			err = child.resetTo(values[i], o.scoped())
		} else {
			err = child.reset(o.scoped())
		}
		if err != nil {
			return err
		}
	}
	a.updateValueAndValidity(o)
	a.updatePristine(o)
	a.updateTouched(o)
	return nil
}

// RawValue collects every child's raw value regardless of disabled state.
func (a *Array) RawValue() any {
	out := make([]any, len(a.controls))
	for i, c := range a.controls {
		out[i] = c.RawValue()
	}
	return out
}

func (a *Array) updateSelfValue() {
	value := make([]any, 0, len(a.controls))
	for _, c := range a.controls {
		if c.Enabled() || a.Disabled() {
			value = append(value, c.Value())
		}
	}
	a.value = value
}

func (a *Array) allChildrenDisabled() bool {
	for _, c := range a.controls {
		if c.Enabled() {
			return false
		}
	}
	return len(a.controls) > 0 || a.Disabled()
}

func (a *Array) anyChild(pred func(c Control) bool) bool {
	for _, c := range a.controls {
		if pred(c) {
			return true
		}
	}
	return false
}

func (a *Array) forEachChild(fn func(c Control)) {
	for _, c := range a.controls {
		fn(c)
	}
}

func (a *Array) childNamed(segment any) Control {
	var index int
	switch s := segment.(type) {
	case int:
		index = s
	case string:
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		index = parsed
	default:
		return nil
	}
	return a.At(index)
}

func (a *Array) syncPending() bool {
	updated := false
	a.forEachChild(func(c Control) {
		if c.base().self.syncPending() {
			updated = true
		}
	})
	if updated {
		a.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: true})
	}
	return updated
}
