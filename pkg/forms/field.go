package forms

// FieldState is the boxed initial-state convention for a leaf: a value
// together with an explicit disabled flag. Passing a FieldState (or a
// map[string]any with exactly the keys "value" and "disabled") anywhere an
// initial value is accepted applies both at once.
type FieldState struct {
	Value    any
	Disabled bool
}

// Field is a leaf control holding a single scalar value.
//
// A Field buffers interaction according to its resolved update strategy:
// with UpdateOnChange every DidChange commits immediately; with UpdateOnBlur
// changes accumulate in a pending buffer that DidBlur commits; with
// UpdateOnSubmit the buffer is committed by SyncPendingControls at submit
// time.
type Field struct {
	controlBase

	initialState any
}

// NewField creates a leaf control from an initial value, which may use the
// boxed FieldState convention to start disabled.
func NewField(initialState any, opts ...ControlOption) *Field {
	f := &Field{initialState: initialState}
	f.init(f, "field", resolveControlOptions(opts))
	f.runGuarded(func() {
		f.applyState(initialState)
		f.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: false})
	})
	return f
}

// applyState interprets the boxed-state convention and installs the value
// and the pending buffer.
func (f *Field) applyState(state any) {
	boxed, ok := boxedState(state)
	if !ok {
		f.value = state
		f.pendingValue = state
		return
	}
	f.value = boxed.Value
	f.pendingValue = boxed.Value
	if boxed.Disabled {
		f.disableControl(updateOptions{onlySelf: true, emitEvent: false})
	} else {
		f.enableControl(updateOptions{onlySelf: true, emitEvent: false})
	}
}

// boxedState recognizes the two forms of boxed initial state. A plain
// map[string]any with exactly the keys "value" and "disabled" is always
// treated as boxed, even when it is a coincidental real value; those two
// keys are the sole discriminator.
func boxedState(state any) (FieldState, bool) {
	switch s := state.(type) {
	case FieldState:
		return s, true
	case *FieldState:
		if s != nil {
			return *s, true
		}
	case map[string]any:
		if len(s) != 2 {
			break
		}
		value, hasValue := s["value"]
		rawDisabled, hasDisabled := s["disabled"]
		if !hasValue || !hasDisabled {
			break
		}
		disabled, _ := rawDisabled.(bool)
		return FieldState{Value: value, Disabled: disabled}, true
	}
	return FieldState{}, false
}

// RawValue returns the field's value regardless of its disabled state.
func (f *Field) RawValue() any { return f.value }

// setValue replaces the field's value and the pending buffer, then
// revalidates. The returned error is always nil for a leaf; it exists to
// satisfy the shared contract.
func (f *Field) setValue(value any, o updateOptions) error {
	f.value = value
	f.pendingValue = value
	f.pendingChange = false
	f.updateValueAndValidity(o)
	return nil
}

// patchValue is identical to setValue for a leaf.
func (f *Field) patchValue(value any, o updateOptions) error {
	return f.setValue(value, o)
}

// reset restores the field to its constructed initial state, marking it
// pristine and untouched before revalidating.
func (f *Field) reset(o updateOptions) error {
	return f.resetTo(f.initialState, o)
}

// resetTo is reset with explicit state, interpreted with the boxed-state
// convention.
func (f *Field) resetTo(state any, o updateOptions) error {
	f.applyState(state)
	f.markAsPristine(o)
	f.markAsUntouched(o)
	f.setValue(f.value, o)
	f.pendingChange = false
	return nil
}

// DidChange reports a value-changing interaction. Under UpdateOnChange the
// field marks itself dirty and commits immediately; otherwise the change is
// buffered until the strategy's commit point.
func (f *Field) DidChange(value any) {
	f.runGuarded(func() { f.didChange(value) })
}

func (f *Field) didChange(value any) {
	if f.UpdateOn() == UpdateOnChange {
		f.markAsDirty(updateOptions{emitEvent: true})
		f.setValue(value, updateOptions{emitEvent: true})
		return
	}
	f.pendingValue = value
	f.pendingChange = true
	f.pendingDirty = true
	enqueueNotify(&f.controlBase, &f.stateListeners, struct{}{})
}

// DidBlur reports a blur-equivalent interaction. Under UpdateOnBlur it
// commits the pending buffer and marks the field dirty and touched exactly
// once; under UpdateOnSubmit it only records that a touch is pending.
func (f *Field) DidBlur() {
	f.runGuarded(f.didBlur)
}

func (f *Field) didBlur() {
	o := updateOptions{emitEvent: true}
	switch f.UpdateOn() {
	case UpdateOnBlur:
		if f.pendingDirty {
			f.markAsDirty(o)
		}
		f.markAsTouched(o)
		if f.pendingChange {
			f.setValue(f.pendingValue, o)
		}
	case UpdateOnSubmit:
		f.pendingTouched = true
	default:
		f.markAsTouched(o)
	}
}

func (f *Field) updateSelfValue() {}

func (f *Field) allChildrenDisabled() bool { return f.Disabled() }

func (f *Field) anyChild(pred func(c Control) bool) bool { return false }

func (f *Field) forEachChild(fn func(c Control)) {}

func (f *Field) childNamed(segment any) Control { return nil }

// syncPending commits submit-buffered state. The value commit is scoped to
// the field itself; the owning composite revalidates once afterwards.
func (f *Field) syncPending() bool {
	if f.UpdateOn() != UpdateOnSubmit {
		return false
	}
	o := updateOptions{emitEvent: true}
	if f.pendingDirty {
		f.markAsDirty(o)
		f.pendingDirty = false
	}
	if f.pendingTouched {
		f.markAsTouched(o)
		f.pendingTouched = false
	}
	if f.pendingChange {
		f.value = f.pendingValue
		f.pendingChange = false
		f.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: true})
		return true
	}
	return false
}
