package forms

import "context"

// AsyncValidator checks a control asynchronously. It receives a context that
// is canceled when the validation is superseded or the control is disabled;
// implementations should abandon work when the context ends.
//
// A nil error with a nil map means the control passed. A non-nil error is
// not an uncaught fault: it is translated into ValidationErrors at the point
// the result is applied, degrading the control to StatusInvalid.
type AsyncValidator func(ctx context.Context, c Control) (ValidationErrors, error)

// asyncFailureKey is the error code recorded when an async validator fails
// rather than resolving.
const asyncFailureKey = "asyncValidation"

func asyncFailureErrors(err error) ValidationErrors {
	return ValidationErrors{asyncFailureKey: err.Error()}
}

// asyncRunner tracks the single outstanding asynchronous validation a
// control may have. Starting a new validation unconditionally supersedes the
// previous one: its context is canceled and its eventual result discarded.
// All fields are guarded by the control's tree guard.
type asyncRunner struct {
	seq         uint64
	cancelFn    context.CancelFunc
	hasOutstand bool
}

func (a *asyncRunner) outstanding() bool { return a.hasOutstand }

// cancel discards any in-flight validation. A completion holding the old
// sequence token can no longer settle.
func (a *asyncRunner) cancel(c *controlBase) {
	a.seq++
	if a.cancelFn != nil {
		a.cancelFn()
		a.cancelFn = nil
	}
	if a.hasOutstand {
		a.hasOutstand = false
		emitAsyncSignal(asyncValidationCanceled, c.kind, "")
	}
}

// begin registers a new in-flight validation and returns its sequence token
// and context.
func (a *asyncRunner) begin() (uint64, context.Context) {
	ctx, cancelFn := context.WithCancel(context.Background())
	a.seq++
	a.cancelFn = cancelFn
	a.hasOutstand = true
	return a.seq, ctx
}

// settle marks the validation identified by seq as complete. It reports
// false when the validation was superseded, in which case the result must be
// discarded.
func (a *asyncRunner) settle(seq uint64) bool {
	if seq != a.seq {
		return false
	}
	a.cancelFn = nil
	a.hasOutstand = false
	return true
}

// runAsyncValidator starts the control's composed async validator, forcing
// status to StatusPending first. At most one validation is outstanding per
// control; any previous one has already been canceled by the caller.
//
// The validator itself runs unguarded on its own goroutine. Its completion
// re-enters the tree guard, re-checks that it has not been superseded, and
// only then applies the result through the errors path. Superseding and
// applying contend on the same guard, so a result can neither interleave
// with a synchronous mutation nor land after a newer validation started.
func (c *controlBase) runAsyncValidator(emitEvent bool) {
	if c.asyncValidator == nil {
		return
	}
	c.status = StatusPending
	seq, ctx := c.async.begin()
	emitAsyncSignal(asyncValidationStarted, c.kind, "")

	validator := c.asyncValidator
	go func() {
		errs, err := validator(ctx, c.self)
		if ctx.Err() != nil {
			return
		}
		failure := ""
		if err != nil {
			errs = asyncFailureErrors(err)
			failure = err.Error()
		}
		c.runGuarded(func() {
			if !c.async.settle(seq) {
				return
			}
			emitAsyncSignal(asyncValidationSettled, c.kind, failure)
			c.setErrors(errs, updateOptions{emitEvent: emitEvent})
		})
	}()
}
