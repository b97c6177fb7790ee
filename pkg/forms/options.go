package forms

// ControlOption configures a control at construction time.
//
// Options are resolved once by the constructor; validators supplied here are
// composed immediately and the update strategy is fixed until the control is
// reconfigured through SetValidators or SetAsyncValidators.
type ControlOption func(*controlConfig)

type controlConfig struct {
	validators      []Validator
	asyncValidators []AsyncValidator
	updateOn        UpdateOn
}

// WithValidators attaches synchronous validators to the control. The
// validators are composed in declaration order; on key collisions a later
// validator's entry overwrites an earlier one's.
func WithValidators(validators ...Validator) ControlOption {
	return func(cfg *controlConfig) {
		cfg.validators = append(cfg.validators, validators...)
	}
}

// WithAsyncValidators attaches asynchronous validators to the control. All
// composed validators run concurrently and every one settles before their
// results merge.
func WithAsyncValidators(validators ...AsyncValidator) ControlOption {
	return func(cfg *controlConfig) {
		cfg.asyncValidators = append(cfg.asyncValidators, validators...)
	}
}

// WithUpdateOn sets the control's update strategy. Controls constructed
// without an explicit strategy inherit the nearest ancestor's setting.
func WithUpdateOn(updateOn UpdateOn) ControlOption {
	return func(cfg *controlConfig) {
		cfg.updateOn = updateOn
	}
}

func resolveControlOptions(opts []ControlOption) controlConfig {
	var cfg controlConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// UpdateOption scopes a single mutation or recomputation.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	onlySelf  bool
	emitEvent bool
}

// OnlySelf scopes the operation to the receiving control, without walking
// the ancestor or descendant chain where the operation otherwise would.
func OnlySelf() UpdateOption {
	return func(o *updateOptions) {
		o.onlySelf = true
	}
}

// WithoutEvents suppresses change notifications for the operation. State
// still mutates; listeners are simply not informed.
func WithoutEvents() UpdateOption {
	return func(o *updateOptions) {
		o.emitEvent = false
	}
}

func resolveUpdateOptions(opts []UpdateOption) updateOptions {
	o := updateOptions{emitEvent: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// scoped narrows resolved options to the receiving control for forwarding
// to a child, preserving the event setting.
func (o updateOptions) scoped() updateOptions {
	return updateOptions{onlySelf: true, emitEvent: o.emitEvent}
}
