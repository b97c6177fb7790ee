package forms

import (
	"reflect"
	"testing"
)

func TestNewField_BoxedState(t *testing.T) {
	cases := []struct {
		name         string
		initial      any
		wantValue    any
		wantDisabled bool
	}{
		{"plain value", "hello", "hello", false},
		{"struct box", FieldState{Value: "boxed", Disabled: true}, "boxed", true},
		{"pointer box", &FieldState{Value: 7}, 7, false},
		{"map box", map[string]any{"value": "m", "disabled": true}, "m", true},
		{"map with extra key", map[string]any{"value": "m", "disabled": true, "x": 1},
			map[string]any{"value": "m", "disabled": true, "x": 1}, false},
		{"map missing disabled", map[string]any{"value": "m", "other": 1},
			map[string]any{"value": "m", "other": 1}, false},
		{"non-bool disabled", map[string]any{"value": "m", "disabled": "yes"}, "m", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewField(tc.initial)
			if !reflect.DeepEqual(f.Value(), tc.wantValue) {
				t.Errorf("value = %v; want %v", f.Value(), tc.wantValue)
			}
			if f.Disabled() != tc.wantDisabled {
				t.Errorf("disabled = %v; want %v", f.Disabled(), tc.wantDisabled)
			}
		})
	}
}

func TestField_InitialFlags(t *testing.T) {
	f := NewField("x")
	if !f.Pristine() || f.Touched() || f.Submitted() {
		t.Errorf("fresh field flags: pristine=%v touched=%v submitted=%v; want true/false/false",
			f.Pristine(), f.Touched(), f.Submitted())
	}
	if f.Status() != StatusValid {
		t.Errorf("fresh field status = %v; want valid", f.Status())
	}
}

func TestField_SetValueDoesNotTouchFlags(t *testing.T) {
	f := NewField("")
	if err := f.SetValue("x"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	// Programmatic writes revalidate but leave interaction flags alone.
	if !f.Pristine() || f.Touched() {
		t.Errorf("flags after SetValue: pristine=%v touched=%v; want true/false", f.Pristine(), f.Touched())
	}
}

func TestField_ChangeStrategy(t *testing.T) {
	f := NewField("", WithValidators(requireValue))
	f.DidChange("typed")
	if f.Value() != "typed" {
		t.Errorf("value = %v; want typed (immediate commit)", f.Value())
	}
	if f.Pristine() {
		t.Error("field still pristine after interaction")
	}
	if f.Status() != StatusValid {
		t.Errorf("status = %v; want valid", f.Status())
	}

	f.DidBlur()
	if !f.Touched() {
		t.Error("field untouched after blur")
	}
}

func TestField_BlurStrategy(t *testing.T) {
	f := NewField("", WithUpdateOn(UpdateOnBlur), WithValidators(requireValue))
	if f.Status() != StatusInvalid {
		t.Fatalf("status = %v; want invalid", f.Status())
	}

	f.DidChange("a")
	f.DidChange("ab")
	if f.Value() != "" {
		t.Fatalf("value committed before blur: %v", f.Value())
	}
	if f.Dirty() || f.Touched() {
		t.Error("interaction flags set before blur")
	}
	if f.Status() != StatusInvalid {
		t.Errorf("status recomputed before blur: %v", f.Status())
	}

	f.DidBlur()
	if f.Value() != "ab" {
		t.Errorf("value = %v; want ab (last buffered change)", f.Value())
	}
	if !f.Dirty() || !f.Touched() {
		t.Error("interaction flags missing after blur")
	}
	if f.Status() != StatusValid {
		t.Errorf("status = %v; want valid", f.Status())
	}
}

func TestField_BlurWithoutPendingChange(t *testing.T) {
	f := NewField("x", WithUpdateOn(UpdateOnBlur))
	values := 0
	f.AddValueListener(func(any) { values++ })
	f.DidBlur()
	if f.Dirty() {
		t.Error("blur without a change marked the field dirty")
	}
	if !f.Touched() {
		t.Error("blur did not mark the field touched")
	}
	if values != 0 {
		t.Errorf("value listener fired %d times; want 0 (no commit)", values)
	}
}

func TestField_SubmitStrategy(t *testing.T) {
	f := NewField("", WithUpdateOn(UpdateOnSubmit), WithValidators(requireValue))
	group := NewGroup(map[string]Control{"f": f})

	// Validators are gated until the control is submitted.
	if f.Status() != StatusValid {
		t.Fatalf("status before submit = %v; want valid (validation gated)", f.Status())
	}

	f.DidChange("entered")
	f.DidBlur()
	if f.Value() != "" || f.Touched() || f.Dirty() {
		t.Fatal("buffered state leaked before submit")
	}

	f.MarkAsSubmitted()
	if !group.Submitted() {
		t.Fatal("submitted did not propagate to the group")
	}
	if !group.SyncPendingControls() {
		t.Fatal("SyncPendingControls reported no change")
	}
	if f.Value() != "entered" {
		t.Errorf("value = %v; want entered", f.Value())
	}
	if !f.Touched() || !f.Dirty() {
		t.Error("interaction flags missing after sync")
	}
	if f.Status() != StatusValid || group.Status() != StatusValid {
		t.Errorf("statuses = %v/%v; want valid/valid", f.Status(), group.Status())
	}

	if group.SyncPendingControls() {
		t.Error("second sync reported a change with an empty buffer")
	}
}

func TestField_SubmitStrategyValidatesAfterSubmit(t *testing.T) {
	f := NewField("", WithUpdateOn(UpdateOnSubmit), WithValidators(requireValue))
	f.MarkAsSubmitted()
	f.UpdateValueAndValidity()
	if f.Status() != StatusInvalid {
		t.Errorf("status = %v; want invalid once submitted", f.Status())
	}
	if !f.HasError("required") {
		t.Error("required error missing")
	}
}

func TestField_ResetRoundTrip(t *testing.T) {
	f := NewField("init", WithValidators(requireValue))
	f.DidChange("edited")
	f.DidBlur()
	if f.Pristine() || !f.Touched() {
		t.Fatal("interaction flags not set")
	}

	if err := f.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if f.Value() != "init" {
		t.Errorf("value = %v; want init", f.Value())
	}
	if !f.Pristine() || f.Touched() {
		t.Errorf("flags after reset: pristine=%v touched=%v; want true/false", f.Pristine(), f.Touched())
	}
	if f.Status() != StatusValid {
		t.Errorf("status = %v; want valid", f.Status())
	}
}

func TestField_ResetToBoxedState(t *testing.T) {
	f := NewField("start")
	if err := f.ResetTo(FieldState{Value: "off", Disabled: true}); err != nil {
		t.Fatalf("ResetTo: %v", err)
	}
	if f.Value() != "off" {
		t.Errorf("value = %v; want off", f.Value())
	}
	if !f.Disabled() {
		t.Error("boxed reset did not disable the field")
	}
}

func TestField_ResetClearsPendingBuffer(t *testing.T) {
	f := NewField("init", WithUpdateOn(UpdateOnBlur))
	f.DidChange("buffered")
	if err := f.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	f.DidBlur()
	if f.Value() != "init" {
		t.Errorf("value = %v; want init (stale buffer committed)", f.Value())
	}
}

func TestField_PatchValueEqualsSetValue(t *testing.T) {
	f := NewField("")
	if err := f.PatchValue("p"); err != nil {
		t.Fatalf("PatchValue: %v", err)
	}
	if f.Value() != "p" {
		t.Errorf("value = %v; want p", f.Value())
	}
}
