package forms

import (
	"errors"
	"reflect"
	"testing"

	formerrors "github.com/go-drift/forms/pkg/errors"
)

func newTagsArray() (*Array, *Field, *Field) {
	first := NewField("alpha", WithValidators(requireValue))
	second := NewField("beta")
	a := NewArray([]Control{first, second})
	return a, first, second
}

func TestArray_InitialValueAndStatus(t *testing.T) {
	a, _, _ := newTagsArray()
	want := []any{"alpha", "beta"}
	if !reflect.DeepEqual(a.Value(), want) {
		t.Errorf("value = %v; want %v", a.Value(), want)
	}
	if a.Status() != StatusValid {
		t.Errorf("status = %v; want valid", a.Status())
	}
}

func TestArray_SetValue(t *testing.T) {
	a, first, _ := newTagsArray()
	if err := a.SetValue([]any{"x", "y"}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if first.Value() != "x" {
		t.Errorf("first = %v; want x", first.Value())
	}
	if !reflect.DeepEqual(a.Value(), []any{"x", "y"}) {
		t.Errorf("value = %v; want [x y]", a.Value())
	}
}

func TestArray_SetValue_LengthMismatch(t *testing.T) {
	a, _, _ := newTagsArray()
	before := a.RawValue()

	if err := a.SetValue([]any{"only"}); !errors.Is(err, formerrors.ErrMissingValue) {
		t.Errorf("short slice error = %v; want ErrMissingValue", err)
	}
	if err := a.SetValue([]any{"a", "b", "c"}); !errors.Is(err, formerrors.ErrMissingControl) {
		t.Errorf("long slice error = %v; want ErrMissingControl", err)
	}
	if err := a.SetValue(map[string]any{}); !errors.Is(err, formerrors.ErrInvalidValue) {
		t.Errorf("wrong shape error = %v; want ErrInvalidValue", err)
	}
	if !reflect.DeepEqual(a.RawValue(), before) {
		t.Errorf("children mutated by failed SetValue: %v", a.RawValue())
	}
}

func TestArray_SetValue_Empty(t *testing.T) {
	a := NewArray(nil)
	if err := a.SetValue([]any{}); !errors.Is(err, formerrors.ErrNoControls) {
		t.Errorf("error = %v; want ErrNoControls", err)
	}
}

func TestArray_PatchValue_Prefix(t *testing.T) {
	a, first, second := newTagsArray()
	if err := a.PatchValue([]any{"patched"}); err != nil {
		t.Fatalf("PatchValue: %v", err)
	}
	if first.Value() != "patched" {
		t.Errorf("first = %v; want patched", first.Value())
	}
	if second.Value() != "beta" {
		t.Errorf("second = %v; want beta (untouched)", second.Value())
	}

	if err := a.PatchValue([]any{"a", "b", "overflow"}); err != nil {
		t.Fatalf("PatchValue with extra entries: %v", err)
	}
	if !reflect.DeepEqual(a.Value(), []any{"a", "b"}) {
		t.Errorf("value = %v; want [a b]", a.Value())
	}
}

func TestArray_PushInsertRemove(t *testing.T) {
	a, first, second := newTagsArray()
	fired := 0
	a.AddStructureListener(func() { fired++ })

	extra := NewField("gamma")
	a.Push(extra)
	if a.Len() != 3 || a.At(2) != Control(extra) {
		t.Fatal("Push did not append")
	}

	inserted := NewField("zeroth")
	a.Insert(0, inserted)
	if a.At(0) != Control(inserted) || a.At(1) != Control(first) {
		t.Fatal("Insert did not shift children")
	}

	clamped := NewField("last")
	a.Insert(99, clamped)
	if a.At(a.Len()-1) != Control(clamped) {
		t.Error("out-of-range insert did not clamp to the end")
	}

	a.RemoveAt(0)
	if a.At(0) != Control(first) || a.At(1) != Control(second) {
		t.Error("RemoveAt did not remove the head")
	}
	if inserted.Parent() != nil {
		t.Error("removed child still parented")
	}

	a.RemoveAt(99)
	if a.Len() != 4 {
		t.Errorf("out-of-range remove changed length to %d", a.Len())
	}

	if fired != 5 {
		t.Errorf("structure listener fired %d times; want 5", fired)
	}
}

func TestArray_SetControl(t *testing.T) {
	a, first, _ := newTagsArray()
	replacement := NewField("replaced")
	a.SetControl(0, replacement)
	if a.At(0) != Control(replacement) {
		t.Fatal("SetControl did not replace")
	}
	if first.Parent() != nil {
		t.Error("replaced child still parented")
	}

	a.SetControl(0, nil)
	if a.Len() != 1 {
		t.Errorf("len = %d; want 1 (nil removes)", a.Len())
	}
}

func TestArray_ResetTo_Positional(t *testing.T) {
	a, first, second := newTagsArray()
	if err := a.SetValue([]any{"x", "y"}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := a.ResetTo([]any{"fresh"}); err != nil {
		t.Fatalf("ResetTo: %v", err)
	}
	if first.Value() != "fresh" {
		t.Errorf("first = %v; want fresh", first.Value())
	}
	if second.Value() != "beta" {
		t.Errorf("second = %v; want beta (own initial state)", second.Value())
	}
	if !a.Pristine() {
		t.Error("array dirty after reset")
	}
}

func TestArray_DisabledChildExcludedFromValue(t *testing.T) {
	a, first, _ := newTagsArray()
	first.Disable()
	if !reflect.DeepEqual(a.Value(), []any{"beta"}) {
		t.Errorf("value = %v; want [beta]", a.Value())
	}
	if !reflect.DeepEqual(a.RawValue(), []any{"alpha", "beta"}) {
		t.Errorf("raw value = %v; want [alpha beta]", a.RawValue())
	}

	a.Disable()
	if !reflect.DeepEqual(a.Value(), []any{"alpha", "beta"}) {
		t.Errorf("disabled composite value = %v; want all children", a.Value())
	}
}

func TestArray_PathByIndex(t *testing.T) {
	a, first, _ := newTagsArray()
	g := NewGroup(map[string]Control{"tags": a})

	if got := g.Get("tags", 0); got != Control(first) {
		t.Errorf("Get(tags, 0) = %v; want first", got)
	}
	if got := g.Get("tags.0"); got != Control(first) {
		t.Errorf("Get(tags.0) = %v; want first", got)
	}
	if got := g.Get("tags", 5); got != nil {
		t.Errorf("Get(tags, 5) = %v; want nil", got)
	}
	if got := g.Get("tags", "notanumber"); got != nil {
		t.Errorf("Get(tags, notanumber) = %v; want nil", got)
	}
}
