// Package forms provides the control-tree state machine for editable,
// hierarchical data structures.
//
// A form is a tree of typed controls: a Field holds a single scalar value,
// a Group aggregates named children, and an Array aggregates an ordered
// sequence of children. The package keeps value, validity, and interaction
// state (touched, dirty, submitted) consistent across the tree as users or
// programs mutate it.
//
// # Controls
//
// All three variants satisfy the Control interface. Shared algorithms live
// once against the embedded base: status derivation, the bottom-up
// value/validity recomputation in UpdateValueAndValidity, the cascading
// mark, enable, and disable operations, and validator execution.
//
//	email := forms.NewField("", forms.WithValidators(validators.Required, validators.Email))
//	form := forms.NewGroup(map[string]forms.Control{
//	    "email":    email,
//	    "password": forms.NewField(""),
//	})
//
// Any mutation at a leaf triggers a localized recomputation that settles the
// ancestor chain bottom-up: a composite always recomputes its own value and
// status from its current children before reporting upward. Pass OnlySelf
// to scope an operation to a single control.
//
// # Validation
//
// Validators are plain functions from a control to a ValidationErrors map;
// nil means pass. Multiple validators compose with Compose, merging their
// error maps in declaration order. Asynchronous validators run on their own
// goroutine with replace-and-cancel semantics: starting a new validation
// unconditionally supersedes a control's in-flight one, and a superseded
// result is never applied.
//
// Validation failures are data, surfaced through Status, Errors, GetError,
// and HasError. Structural failures (a strict SetValue that does not line
// up with a composite's children) are Go errors from the pkg/errors
// package, returned by the triggering call.
//
// # Update Strategies
//
// A Field buffers interaction according to its resolved UpdateOn strategy,
// inherited from the ancestor chain when unset. DidChange and DidBlur
// report interactions; under UpdateOnBlur and UpdateOnSubmit they fill a
// pending buffer that a blur or SyncPendingControls commits.
//
// # Change Notification
//
// Controls deliver change notifications synchronously, in registration
// order, after the triggering mutation has fully settled: value listeners
// first, then status listeners, then the coarse state listeners.
// Registration returns an unsubscribe function:
//
//	remove := form.AddStateListener(func() { render(form) })
//	defer remove()
//
// The capitan signals in this package are fire-and-forget instrumentation
// and are independent of the listener channels.
//
// # Concurrency
//
// All mutation and recomputation is synchronous and runs to completion
// before listeners are notified. The only background work is async
// validation: its result is applied on the validator's goroutine under the
// same per-tree guard that serializes every mutating call, so an
// application can neither interleave with a mutation nor land after a newer
// validation has started. Reads are not guarded; callers that read while an
// async validation may settle should do so from a listener.
package forms
