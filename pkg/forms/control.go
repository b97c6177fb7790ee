package forms

import "sync/atomic"

// ValidationErrors is a control's own validation failures, keyed by error
// code. A nil map means the control has no errors; composition never
// produces an empty non-nil map.
type ValidationErrors map[string]any

// Validator checks a control synchronously and returns its failures, or nil
// when the control passes. Validators may read any reachable control's state
// but must not mutate the tree.
type Validator func(c Control) ValidationErrors

// Control is a node in the editable-state tree: a scalar Field, a keyed
// Group, or an ordered Array.
//
// The interface is satisfied only by the concrete types in this package;
// shared algorithms (status derivation, mark cascades, validator running)
// live once in the embedded base and are never duplicated per variant.
type Control interface {
	// Value returns the control's current value. For a composite this is the
	// aggregate of its enabled children, unless the composite itself is
	// disabled, in which case every child contributes.
	Value() any
	// RawValue returns the control's value including disabled children.
	RawValue() any
	// Status returns the control's derived status.
	Status() ControlStatus
	// Errors returns the control's own validation failures, not those of
	// its children.
	Errors() ValidationErrors

	// Valid reports whether the status is StatusValid.
	Valid() bool
	// Invalid reports whether the status is StatusInvalid.
	Invalid() bool
	// Pending reports whether the status is StatusPending.
	Pending() bool
	// Disabled reports whether the status is StatusDisabled.
	Disabled() bool
	// Enabled reports whether the status is anything but StatusDisabled.
	Enabled() bool
	// Touched reports whether the control has received a blur-equivalent
	// interaction, or any descendant has.
	Touched() bool
	// Untouched is the negation of Touched.
	Untouched() bool
	// Pristine reports whether no interaction has changed the value since
	// creation or the last reset.
	Pristine() bool
	// Dirty is the negation of Pristine.
	Dirty() bool
	// Submitted reports whether the control has been marked as submitted.
	Submitted() bool
	// Unsubmitted reports whether the control has not been submitted.
	Unsubmitted() bool
	// UpdateOn returns the control's resolved update strategy, inheriting
	// the nearest ancestor's setting when unset.
	UpdateOn() UpdateOn
	// Parent returns the owning composite, or nil for a root.
	Parent() Control
	// Root returns the topmost ancestor, which may be the control itself.
	Root() Control

	// SetValue replaces the control's value. Composites are strict: every
	// registered child must receive an entry and every entry must name a
	// registered child, or the call fails without mutating anything.
	SetValue(value any, opts ...UpdateOption) error
	// PatchValue replaces part of the control's value. Composites are
	// lenient: unknown entries are ignored and absent entries leave the
	// corresponding child untouched. For a Field it is identical to
	// SetValue.
	PatchValue(value any, opts ...UpdateOption) error
	// Reset restores the control's initial state and marks the subtree
	// pristine and untouched.
	Reset(opts ...UpdateOption) error
	// ResetTo is Reset with explicit state, interpreted with the same
	// boxed-state convention as construction.
	ResetTo(state any, opts ...UpdateOption) error

	// UpdateValueAndValidity recomputes the control's value and validity
	// from its current children, then settles the ancestor chain bottom-up
	// unless scoped with OnlySelf.
	UpdateValueAndValidity(opts ...UpdateOption)
	// SetErrors overwrites the control's own errors, bypassing its
	// validators, and rederives status up the ancestor chain.
	SetErrors(errors ValidationErrors, opts ...UpdateOption)
	// GetError resolves path (default: the control itself) and returns the
	// value recorded there under code, or nil.
	GetError(code string, path ...any) any
	// HasError reports whether GetError finds a non-nil entry.
	HasError(code string, path ...any) bool

	// SetValidators replaces the control's composed synchronous validator.
	// Call UpdateValueAndValidity to apply the change.
	SetValidators(validators ...Validator)
	// SetAsyncValidators replaces the control's composed asynchronous
	// validator. Call UpdateValueAndValidity to apply the change.
	SetAsyncValidators(validators ...AsyncValidator)
	// ClearValidators removes the composed synchronous validator.
	ClearValidators()
	// ClearAsyncValidators removes the composed asynchronous validator.
	ClearAsyncValidators()

	// Disable sets the status to StatusDisabled, exempts the subtree from
	// validation, and clears errors. Children are disabled first; ancestors
	// revalidate afterwards unless scoped.
	Disable(opts ...UpdateOption)
	// Enable reverses Disable and revalidates the subtree.
	Enable(opts ...UpdateOption)

	// MarkAsTouched marks the control touched and propagates upward unless
	// scoped.
	MarkAsTouched(opts ...UpdateOption)
	// MarkAsUntouched marks the subtree untouched, then asks the ancestor
	// chain to recompute its aggregate touched state.
	MarkAsUntouched(opts ...UpdateOption)
	// MarkAsDirty marks the control dirty and propagates upward unless
	// scoped.
	MarkAsDirty(opts ...UpdateOption)
	// MarkAsPristine marks the subtree pristine, then asks the ancestor
	// chain to recompute its aggregate pristine state.
	MarkAsPristine(opts ...UpdateOption)
	// MarkAsPending forces the status to StatusPending and propagates
	// upward unless scoped.
	MarkAsPending(opts ...UpdateOption)
	// MarkAsSubmitted marks the control submitted and propagates upward
	// unless scoped.
	MarkAsSubmitted(opts ...UpdateOption)
	// MarkAsUnsubmitted clears the submitted flag on the whole subtree.
	MarkAsUnsubmitted(opts ...UpdateOption)

	// Get resolves a path of string and int segments to a descendant, or
	// nil. A single string argument is split on ".".
	Get(path ...any) Control
	// GetWithDelimiter is Get over a string path split on delim.
	GetWithDelimiter(path, delim string) Control

	// SyncPendingControls commits any value, dirty, or touched state
	// buffered under the submit strategy and reports whether anything
	// changed.
	SyncPendingControls() bool

	// AddValueListener registers a callback for value changes and returns
	// an unsubscribe function.
	AddValueListener(fn func(value any)) func()
	// AddStatusListener registers a callback for status changes and
	// returns an unsubscribe function.
	AddStatusListener(fn func(status ControlStatus)) func()
	// AddStateListener registers a coarse callback that fires after any
	// state change and returns an unsubscribe function.
	AddStateListener(fn func()) func()
	// AddDisabledListener registers a callback for enable/disable
	// transitions and returns an unsubscribe function.
	AddDisabledListener(fn func(disabled bool)) func()
	// AddStructureListener registers a callback for child membership
	// changes anywhere in the subtree and returns an unsubscribe function.
	AddStructureListener(fn func()) func()

	base() *controlBase
}

// controlHooks is the full internal contract each variant implements on top
// of the shared base. The base never inspects concrete types; it drives the
// variant through these hooks via its self reference. The hooks run with
// the tree guard held.
type controlHooks interface {
	Control

	// setValue, patchValue, reset, and resetTo carry the variant-specific
	// halves of the public mutators of the same names.
	setValue(value any, o updateOptions) error
	patchValue(value any, o updateOptions) error
	reset(o updateOptions) error
	resetTo(state any, o updateOptions) error

	// updateSelfValue recomputes the control's own value from its current
	// children (no-op for a leaf).
	updateSelfValue()
	// allChildrenDisabled reports whether every child is disabled; a leaf
	// reports its own disabled flag, an empty composite its explicit one.
	allChildrenDisabled() bool
	// anyChild reports whether any child satisfies pred.
	anyChild(pred func(c Control) bool) bool
	// forEachChild visits each child in deterministic order.
	forEachChild(fn func(c Control))
	// childNamed resolves one path segment to a child, or nil.
	childNamed(segment any) Control
	// syncPending commits submit-buffered state and reports whether
	// anything changed.
	syncPending() bool
}

type controlBase struct {
	self controlHooks
	kind string

	// guard is the serialization point shared by the whole attached tree.
	// Accessed atomically because async completions resolve it from their
	// own goroutine while an attach may be moving the subtree.
	guard atomic.Pointer[treeGuard]

	value     any
	status    ControlStatus
	errors    ValidationErrors
	touched   bool
	pristine  bool
	submitted bool
	updateOn  UpdateOn

	validator      Validator
	asyncValidator AsyncValidator

	parent *controlBase

	// Buffered interaction state for non-change update strategies,
	// materialized on blur or submit.
	pendingValue   any
	pendingChange  bool
	pendingDirty   bool
	pendingTouched bool

	async asyncRunner

	valueListeners     listenerRegistry[any]
	statusListeners    listenerRegistry[ControlStatus]
	stateListeners     listenerRegistry[struct{}]
	disabledListeners  listenerRegistry[bool]
	structureListeners listenerRegistry[struct{}]

	// collectionChange is the owning composite's structure notifier,
	// installed at registration and severed at removal.
	collectionChange func()
}

func (c *controlBase) init(self controlHooks, kind string, cfg controlConfig) {
	c.self = self
	c.kind = kind
	c.guard.Store(&treeGuard{})
	c.status = StatusValid
	c.pristine = true
	c.updateOn = cfg.updateOn
	c.validator = Compose(cfg.validators...)
	c.asyncValidator = ComposeAsync(cfg.asyncValidators...)
}

func (c *controlBase) base() *controlBase { return c }

// Value returns the control's current value.
func (c *controlBase) Value() any { return c.value }

// Status returns the control's derived status.
func (c *controlBase) Status() ControlStatus { return c.status }

// Errors returns the control's own validation failures.
func (c *controlBase) Errors() ValidationErrors { return c.errors }

// Valid reports whether the status is StatusValid.
func (c *controlBase) Valid() bool { return c.status == StatusValid }

// Invalid reports whether the status is StatusInvalid.
func (c *controlBase) Invalid() bool { return c.status == StatusInvalid }

// Pending reports whether the status is StatusPending.
func (c *controlBase) Pending() bool { return c.status == StatusPending }

// Disabled reports whether the status is StatusDisabled.
func (c *controlBase) Disabled() bool { return c.status == StatusDisabled }

// Enabled reports whether the status is anything but StatusDisabled.
func (c *controlBase) Enabled() bool { return c.status != StatusDisabled }

// Touched reports whether the control has been touched.
func (c *controlBase) Touched() bool { return c.touched }

// Untouched is the negation of Touched.
func (c *controlBase) Untouched() bool { return !c.touched }

// Pristine reports whether no interaction has changed the value.
func (c *controlBase) Pristine() bool { return c.pristine }

// Dirty is the negation of Pristine.
func (c *controlBase) Dirty() bool { return !c.pristine }

// Submitted reports whether the control has been marked as submitted.
func (c *controlBase) Submitted() bool { return c.submitted }

// Unsubmitted reports whether the control has not been submitted.
func (c *controlBase) Unsubmitted() bool { return !c.submitted }

// UpdateOn resolves the control's update strategy, falling back to the
// ancestor chain when the control has no explicit setting.
func (c *controlBase) UpdateOn() UpdateOn {
	if c.updateOn != UpdateOnDefault {
		return c.updateOn
	}
	if c.parent != nil {
		return c.parent.UpdateOn()
	}
	return UpdateOnChange
}

// Parent returns the owning composite, or nil for a root.
func (c *controlBase) Parent() Control {
	if c.parent == nil {
		return nil
	}
	return c.parent.self
}

// Root returns the topmost ancestor.
func (c *controlBase) Root() Control {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root.self
}

func (c *controlBase) setParent(p *controlBase) { c.parent = p }

func (c *controlBase) registerOnCollectionChange(fn func()) { c.collectionChange = fn }

// SetValue replaces the control's value through the variant's own setValue.
func (c *controlBase) SetValue(value any, opts ...UpdateOption) error {
	o := resolveUpdateOptions(opts)
	var err error
	c.runGuarded(func() { err = c.self.setValue(value, o) })
	return err
}

// PatchValue replaces part of the control's value through the variant's own
// patchValue.
func (c *controlBase) PatchValue(value any, opts ...UpdateOption) error {
	o := resolveUpdateOptions(opts)
	var err error
	c.runGuarded(func() { err = c.self.patchValue(value, o) })
	return err
}

// Reset restores the control's initial state and marks the subtree pristine
// and untouched.
func (c *controlBase) Reset(opts ...UpdateOption) error {
	o := resolveUpdateOptions(opts)
	var err error
	c.runGuarded(func() { err = c.self.reset(o) })
	return err
}

// ResetTo is Reset with explicit state.
func (c *controlBase) ResetTo(state any, opts ...UpdateOption) error {
	o := resolveUpdateOptions(opts)
	var err error
	c.runGuarded(func() { err = c.self.resetTo(state, o) })
	return err
}

// UpdateValueAndValidity recomputes value and validity from the current
// children and settles the ancestor chain unless scoped with OnlySelf.
func (c *controlBase) UpdateValueAndValidity(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.updateValueAndValidity(o) })
}

func (c *controlBase) updateValueAndValidity(o updateOptions) {
	previous := c.status
	c.setInitialStatus()
	c.self.updateSelfValue()

	if c.Enabled() && (c.UpdateOn() != UpdateOnSubmit || c.submitted) {
		c.async.cancel(c)
		c.errors = c.runValidator()
		c.status = c.deriveStatus()
		if c.status == StatusValid || c.status == StatusPending {
			c.runAsyncValidator(o.emitEvent)
		}
	}

	if c.status != previous {
		emitStatusSignal(c.kind, previous, c.status)
	}
	if o.emitEvent {
		enqueueNotify(c, &c.valueListeners, c.value)
		enqueueNotify(c, &c.statusListeners, c.status)
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.updateValueAndValidity(o)
	}
}

// setInitialStatus establishes the baseline before validation runs.
func (c *controlBase) setInitialStatus() {
	if c.self.allChildrenDisabled() {
		c.status = StatusDisabled
	} else {
		c.status = StatusValid
	}
}

func (c *controlBase) runValidator() ValidationErrors {
	if c.validator == nil {
		return nil
	}
	return c.validator(c.self)
}

// deriveStatus applies the status derivation rule to the current children.
func (c *controlBase) deriveStatus() ControlStatus {
	if c.self.allChildrenDisabled() {
		return StatusDisabled
	}
	if c.errors != nil {
		return StatusInvalid
	}
	if c.async.outstanding() || c.anyChildStatus(StatusPending) {
		return StatusPending
	}
	if c.anyChildStatus(StatusInvalid) {
		return StatusInvalid
	}
	return StatusValid
}

func (c *controlBase) anyChildStatus(status ControlStatus) bool {
	return c.self.anyChild(func(child Control) bool {
		return child.Status() == status
	})
}

// SetErrors overwrites the control's own errors, bypassing its validators,
// and rederives status up the ancestor chain. The ancestor pass recomputes
// status only; values are untouched and validators do not re-run.
func (c *controlBase) SetErrors(errors ValidationErrors, opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.setErrors(errors, o) })
}

func (c *controlBase) setErrors(errors ValidationErrors, o updateOptions) {
	c.errors = errors
	c.updateControlsErrors(o.emitEvent)
}

func (c *controlBase) updateControlsErrors(emitEvent bool) {
	previous := c.status
	c.status = c.deriveStatus()
	if c.status != previous {
		emitStatusSignal(c.kind, previous, c.status)
	}
	if emitEvent {
		enqueueNotify(c, &c.statusListeners, c.status)
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil {
		c.parent.updateControlsErrors(emitEvent)
	}
}

// GetError resolves path (default: the control itself) and returns the
// error recorded under code.
func (c *controlBase) GetError(code string, path ...any) any {
	var target Control = c.self
	if len(path) > 0 {
		target = c.Get(path...)
	}
	if target == nil {
		return nil
	}
	errs := target.Errors()
	if errs == nil {
		return nil
	}
	return errs[code]
}

// HasError reports whether GetError finds a non-nil entry.
func (c *controlBase) HasError(code string, path ...any) bool {
	return c.GetError(code, path...) != nil
}

// SetValidators replaces the composed synchronous validator. The change
// takes effect on the next UpdateValueAndValidity.
func (c *controlBase) SetValidators(validators ...Validator) {
	composed := Compose(validators...)
	c.runGuarded(func() { c.validator = composed })
}

// SetAsyncValidators replaces the composed asynchronous validator. The
// change takes effect on the next UpdateValueAndValidity.
func (c *controlBase) SetAsyncValidators(validators ...AsyncValidator) {
	composed := ComposeAsync(validators...)
	c.runGuarded(func() { c.asyncValidator = composed })
}

// ClearValidators removes the composed synchronous validator.
func (c *controlBase) ClearValidators() {
	c.runGuarded(func() { c.validator = nil })
}

// ClearAsyncValidators removes the composed asynchronous validator.
func (c *controlBase) ClearAsyncValidators() {
	c.runGuarded(func() { c.asyncValidator = nil })
}

// Disable exempts the subtree from validation. Children are disabled first,
// each scoped to itself; the ancestor chain then revalidates and recomputes
// its aggregate pristine and touched state unless scoped.
func (c *controlBase) Disable(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.disableControl(o) })
}

func (c *controlBase) disableControl(o updateOptions) {
	changed := c.status != StatusDisabled
	c.self.forEachChild(func(child Control) {
		child.base().disableControl(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	})
	c.async.cancel(c)
	c.status = StatusDisabled
	c.errors = nil
	c.self.updateSelfValue()
	if o.emitEvent {
		enqueueNotify(c, &c.valueListeners, c.value)
		enqueueNotify(c, &c.statusListeners, c.status)
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	c.updateAncestors(o)
	enqueueNotify(c, &c.disabledListeners, true)
	if changed {
		emitDisabledSignal(c.kind, true)
	}
}

// Enable reverses Disable and revalidates the subtree.
func (c *controlBase) Enable(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.enableControl(o) })
}

func (c *controlBase) enableControl(o updateOptions) {
	changed := c.status == StatusDisabled
	c.status = StatusValid
	c.self.forEachChild(func(child Control) {
		child.base().enableControl(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	})
	c.updateValueAndValidity(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	c.updateAncestors(o)
	enqueueNotify(c, &c.disabledListeners, false)
	if changed {
		emitDisabledSignal(c.kind, false)
	}
}

func (c *controlBase) updateAncestors(o updateOptions) {
	if c.parent == nil || o.onlySelf {
		return
	}
	c.parent.updateValueAndValidity(o)
	c.parent.updatePristine(updateOptions{emitEvent: o.emitEvent})
	c.parent.updateTouched(updateOptions{emitEvent: o.emitEvent})
}

// MarkAsTouched marks the control touched and propagates upward unless
// scoped.
func (c *controlBase) MarkAsTouched(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsTouched(o) })
}

func (c *controlBase) markAsTouched(o updateOptions) {
	c.touched = true
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsTouched(o)
	}
}

// MarkAsUntouched marks the subtree untouched, each child scoped to itself,
// then asks the ancestor chain to recompute its aggregate touched state.
func (c *controlBase) MarkAsUntouched(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsUntouched(o) })
}

func (c *controlBase) markAsUntouched(o updateOptions) {
	c.touched = false
	c.pendingTouched = false
	c.self.forEachChild(func(child Control) {
		child.base().markAsUntouched(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	})
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.updateTouched(o)
	}
}

func (c *controlBase) updateTouched(o updateOptions) {
	c.touched = c.self.anyChild(func(child Control) bool {
		return child.Touched()
	})
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.updateTouched(o)
	}
}

// MarkAsDirty marks the control dirty and propagates upward unless scoped.
func (c *controlBase) MarkAsDirty(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsDirty(o) })
}

func (c *controlBase) markAsDirty(o updateOptions) {
	c.pristine = false
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsDirty(o)
	}
}

// MarkAsPristine marks the subtree pristine, each child scoped to itself,
// then asks the ancestor chain to recompute its aggregate pristine state.
func (c *controlBase) MarkAsPristine(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsPristine(o) })
}

func (c *controlBase) markAsPristine(o updateOptions) {
	c.pristine = true
	c.pendingDirty = false
	c.self.forEachChild(func(child Control) {
		child.base().markAsPristine(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	})
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.updatePristine(o)
	}
}

func (c *controlBase) updatePristine(o updateOptions) {
	c.pristine = !c.self.anyChild(func(child Control) bool {
		return child.Dirty()
	})
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.updatePristine(o)
	}
}

// MarkAsPending forces the status to StatusPending and propagates upward
// unless scoped.
func (c *controlBase) MarkAsPending(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsPending(o) })
}

func (c *controlBase) markAsPending(o updateOptions) {
	previous := c.status
	c.status = StatusPending
	if c.status != previous {
		emitStatusSignal(c.kind, previous, c.status)
	}
	if o.emitEvent {
		enqueueNotify(c, &c.statusListeners, c.status)
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsPending(o)
	}
}

// MarkAsSubmitted marks the control submitted and propagates upward unless
// scoped.
func (c *controlBase) MarkAsSubmitted(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsSubmitted(o) })
}

func (c *controlBase) markAsSubmitted(o updateOptions) {
	c.submitted = true
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
	if c.parent != nil && !o.onlySelf {
		c.parent.markAsSubmitted(o)
	}
}

// MarkAsUnsubmitted clears the submitted flag on the whole subtree, each
// child scoped to itself.
func (c *controlBase) MarkAsUnsubmitted(opts ...UpdateOption) {
	o := resolveUpdateOptions(opts)
	c.runGuarded(func() { c.markAsUnsubmitted(o) })
}

func (c *controlBase) markAsUnsubmitted(o updateOptions) {
	c.submitted = false
	c.self.forEachChild(func(child Control) {
		child.base().markAsUnsubmitted(updateOptions{onlySelf: true, emitEvent: o.emitEvent})
	})
	if o.emitEvent {
		enqueueNotify(c, &c.stateListeners, struct{}{})
	}
}

// SyncPendingControls commits submit-buffered state across the subtree and
// reports whether anything changed.
func (c *controlBase) SyncPendingControls() bool {
	var updated bool
	c.runGuarded(func() { updated = c.self.syncPending() })
	return updated
}

// AddValueListener registers a callback for value changes.
func (c *controlBase) AddValueListener(fn func(value any)) func() {
	var remove func()
	c.runGuarded(func() { remove = c.valueListeners.add(fn) })
	return func() { c.runGuarded(remove) }
}

// AddStatusListener registers a callback for status changes.
func (c *controlBase) AddStatusListener(fn func(status ControlStatus)) func() {
	var remove func()
	c.runGuarded(func() { remove = c.statusListeners.add(fn) })
	return func() { c.runGuarded(remove) }
}

// AddStateListener registers a coarse callback that fires after any state
// change.
func (c *controlBase) AddStateListener(fn func()) func() {
	var remove func()
	c.runGuarded(func() { remove = c.stateListeners.add(func(struct{}) { fn() }) })
	return func() { c.runGuarded(remove) }
}

// AddDisabledListener registers a callback for enable/disable transitions.
func (c *controlBase) AddDisabledListener(fn func(disabled bool)) func() {
	var remove func()
	c.runGuarded(func() { remove = c.disabledListeners.add(fn) })
	return func() { c.runGuarded(remove) }
}

// AddStructureListener registers a callback for child membership changes
// anywhere in the subtree.
func (c *controlBase) AddStructureListener(fn func()) func() {
	var remove func()
	c.runGuarded(func() { remove = c.structureListeners.add(func(struct{}) { fn() }) })
	return func() { c.runGuarded(remove) }
}

// notifyStructureChanged informs structure listeners and bubbles through
// the owning composite's registered notifier.
func (c *controlBase) notifyStructureChanged() {
	emitStructureSignal(c.kind)
	enqueueNotify(c, &c.structureListeners, struct{}{})
	if c.collectionChange != nil {
		c.collectionChange()
	}
}

// enqueueNotify snapshots the registry and defers delivery until the current
// mutation releases the tree guard, so listeners may re-enter the tree.
// Registration and removal after the snapshot take effect on the next
// notification.
func enqueueNotify[T any](c *controlBase, r *listenerRegistry[T], value T) {
	entries := r.snapshot()
	if len(entries) == 0 {
		return
	}
	c.enqueue(func() {
		for _, entry := range entries {
			entry.fn(value)
		}
	})
}

// listenerRegistry holds callbacks in registration order.
type listenerRegistry[T any] struct {
	entries []listenerEntry[T]
	nextID  int
}

type listenerEntry[T any] struct {
	id int
	fn func(T)
}

func (r *listenerRegistry[T]) add(fn func(T)) func() {
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, listenerEntry[T]{id: id, fn: fn})
	return func() {
		for i, entry := range r.entries {
			if entry.id == id {
				// The full-cap slice forces a fresh backing array, keeping
				// in-flight snapshots intact.
				r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

func (r *listenerRegistry[T]) snapshot() []listenerEntry[T] { return r.entries }
