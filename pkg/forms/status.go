package forms

import "fmt"

// ControlStatus represents the derived validity state of a control.
//
// The status follows this derivation order, recomputed bottom-up after
// every mutation:
//
//	Disabled  ── every child disabled (or no children and explicitly disabled)
//	Invalid   ── the control carries its own errors
//	Pending   ── async validation outstanding, or any enabled child Pending
//	Invalid   ── any enabled child Invalid
//	Valid     ── otherwise
//
// A control is never Pending or Invalid without one of these causes; status
// is only ever set directly by Disable/Enable, MarkAsPending, or SetErrors.
type ControlStatus int

const (
	// StatusValid means the control has passed all validation checks.
	StatusValid ControlStatus = iota
	// StatusInvalid means the control or an enabled descendant failed a
	// validation check.
	StatusInvalid
	// StatusPending means an asynchronous validation is outstanding for the
	// control or an enabled descendant.
	StatusPending
	// StatusDisabled means the control is exempt from validation.
	StatusDisabled
)

// String returns a human-readable representation of the control status.
func (s ControlStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusPending:
		return "pending"
	case StatusDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("ControlStatus(%d)", int(s))
	}
}

// UpdateOn selects the interaction that commits a buffered value change and
// triggers revalidation.
type UpdateOn int

const (
	// UpdateOnDefault inherits the nearest ancestor's explicit setting,
	// falling back to UpdateOnChange at the root.
	UpdateOnDefault UpdateOn = iota
	// UpdateOnChange commits and revalidates on every value change.
	UpdateOnChange
	// UpdateOnBlur buffers value changes until a blur-equivalent event.
	UpdateOnBlur
	// UpdateOnSubmit buffers value changes until pending controls are
	// synced at submit time.
	UpdateOnSubmit
)

// String returns a human-readable representation of the update strategy.
func (u UpdateOn) String() string {
	switch u {
	case UpdateOnDefault:
		return "default"
	case UpdateOnChange:
		return "change"
	case UpdateOnBlur:
		return "blur"
	case UpdateOnSubmit:
		return "submit"
	default:
		return fmt.Sprintf("UpdateOn(%d)", int(u))
	}
}
