package forms

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Control lifecycle signals. These are fire-and-forget instrumentation; no
// behavior in the package depends on them, and they are not the change
// notification mechanism (see AddValueListener and friends).
var (
	// ControlStatusChanged is emitted when a control transitions between
	// statuses.
	ControlStatusChanged = capitan.NewSignal(
		"forms.control.status.changed",
		"Control status transition",
	)

	// ControlDisabledChanged is emitted when a control is enabled or
	// disabled.
	ControlDisabledChanged = capitan.NewSignal(
		"forms.control.disabled.changed",
		"Control enabled/disabled",
	)

	// ControlStructureChanged is emitted when a composite's child
	// membership changes.
	ControlStructureChanged = capitan.NewSignal(
		"forms.control.structure.changed",
		"Composite child membership changed",
	)
)

// Async validation signals.
var (
	// AsyncValidationStarted is emitted when a control starts an async
	// validation.
	AsyncValidationStarted = capitan.NewSignal(
		"forms.async.validation.started",
		"Async validation started",
	)

	// AsyncValidationCanceled is emitted when an in-flight async validation
	// is superseded or discarded.
	AsyncValidationCanceled = capitan.NewSignal(
		"forms.async.validation.canceled",
		"Async validation superseded",
	)

	// AsyncValidationSettled is emitted when an async validation result is
	// applied.
	AsyncValidationSettled = capitan.NewSignal(
		"forms.async.validation.settled",
		"Async validation result applied",
	)
)

// Field keys for control events.
var (
	// KeyControlKind is the control variant: "field", "group", or "array".
	KeyControlKind = capitan.NewStringKey("control_kind")

	// KeyOldStatus is the status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeyDisabled is "true" or "false" after an enable/disable transition.
	KeyDisabled = capitan.NewStringKey("disabled")

	// KeyError is the failure text when an async validator errs.
	KeyError = capitan.NewStringKey("error")
)

const (
	asyncValidationStarted = iota
	asyncValidationCanceled
	asyncValidationSettled
)

func emitStatusSignal(kind string, oldStatus, newStatus ControlStatus) {
	capitan.Emit(context.Background(), ControlStatusChanged,
		KeyControlKind.Field(kind),
		KeyOldStatus.Field(oldStatus.String()),
		KeyNewStatus.Field(newStatus.String()),
	)
}

func emitDisabledSignal(kind string, disabled bool) {
	value := "false"
	if disabled {
		value = "true"
	}
	capitan.Emit(context.Background(), ControlDisabledChanged,
		KeyControlKind.Field(kind),
		KeyDisabled.Field(value),
	)
}

func emitStructureSignal(kind string) {
	capitan.Emit(context.Background(), ControlStructureChanged,
		KeyControlKind.Field(kind),
	)
}

func emitAsyncSignal(event int, kind string, failure string) {
	signal := AsyncValidationSettled
	switch event {
	case asyncValidationStarted:
		signal = AsyncValidationStarted
	case asyncValidationCanceled:
		signal = AsyncValidationCanceled
	}
	if failure != "" {
		capitan.Emit(context.Background(), signal,
			KeyControlKind.Field(kind),
			KeyError.Field(failure),
		)
		return
	}
	capitan.Emit(context.Background(), signal,
		KeyControlKind.Field(kind),
	)
}
