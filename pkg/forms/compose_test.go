package forms

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func constError(code string, value any) Validator {
	return func(Control) ValidationErrors {
		return ValidationErrors{code: value}
	}
}

func TestCompose_NilHandling(t *testing.T) {
	if Compose() != nil {
		t.Error("Compose() != nil")
	}
	if Compose(nil, nil) != nil {
		t.Error("Compose(nil, nil) != nil")
	}

	v := Compose(nil, constError("a", true), nil)
	got := v(NewField(""))
	if !reflect.DeepEqual(got, ValidationErrors{"a": true}) {
		t.Errorf("composed result = %v; want {a: true}", got)
	}
}

func TestCompose_MergeLaterWins(t *testing.T) {
	v := Compose(
		constError("shared", "first"),
		constError("only", 1),
		constError("shared", "second"),
	)
	got := v(NewField(""))
	want := ValidationErrors{"shared": "second", "only": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged result = %v; want %v", got, want)
	}
}

func TestCompose_AllPassingYieldsNil(t *testing.T) {
	pass := func(Control) ValidationErrors { return nil }
	v := Compose(pass, pass)
	if got := v(NewField("")); got != nil {
		t.Errorf("composed result = %v; want nil, not an empty map", got)
	}
}

func TestCompose_RunsEveryValidator(t *testing.T) {
	// Every validator runs even when an earlier one fails.
	ran := 0
	counting := func(Control) ValidationErrors {
		ran++
		return nil
	}
	v := Compose(constError("first", true), counting)
	_ = v(NewField(""))
	if ran != 1 {
		t.Errorf("later validator ran %d times; want 1", ran)
	}
}

func TestComposeAsync_NilHandling(t *testing.T) {
	if ComposeAsync() != nil {
		t.Error("ComposeAsync() != nil")
	}
	if ComposeAsync(nil, nil) != nil {
		t.Error("ComposeAsync(nil, nil) != nil")
	}
}

func TestComposeAsync_MergesAllResults(t *testing.T) {
	pass := func(context.Context, Control) (ValidationErrors, error) {
		return nil, nil
	}
	taken := func(context.Context, Control) (ValidationErrors, error) {
		return ValidationErrors{"taken": true}, nil
	}
	slow := func(ctx context.Context, c Control) (ValidationErrors, error) {
		return ValidationErrors{"slow": true, "taken": "later"}, nil
	}

	v := ComposeAsync(pass, taken, slow)
	got, err := v(context.Background(), NewField(""))
	if err != nil {
		t.Fatalf("composed async: %v", err)
	}
	want := ValidationErrors{"taken": "later", "slow": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged result = %v; want %v", got, want)
	}
}

func TestComposeAsync_FailureTranslatesPerValidator(t *testing.T) {
	boom := func(context.Context, Control) (ValidationErrors, error) {
		return nil, errors.New("backend down")
	}
	fine := func(context.Context, Control) (ValidationErrors, error) {
		return ValidationErrors{"ok": true}, nil
	}

	v := ComposeAsync(boom, fine)
	got, err := v(context.Background(), NewField(""))
	if err != nil {
		t.Fatalf("individual failure aborted the composition: %v", err)
	}
	want := ValidationErrors{asyncFailureKey: "backend down", "ok": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged result = %v; want %v", got, want)
	}
}

func TestComposeAsync_CanceledContext(t *testing.T) {
	pass := func(context.Context, Control) (ValidationErrors, error) {
		return nil, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := ComposeAsync(pass)
	_, err := v(ctx, NewField(""))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v; want context.Canceled", err)
	}
}
