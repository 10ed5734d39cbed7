package controller

import (
	"context"
	"errors"
	"testing"

	"go-chi-calculator/internal/calculator"
)

type focusRecorder struct {
	fields []Field
}

func (f *focusRecorder) Focus(field Field) {
	f.fields = append(f.fields, field)
}

func TestNewFormFocusesFirstField(t *testing.T) {
	c, _, _ := newTestController(&localResolver{})
	focus := &focusRecorder{}

	form := NewForm(c, focus)

	if len(focus.fields) != 1 || focus.fields[0] != FirstField {
		t.Fatalf("expected focus on first field, got %v", focus.fields)
	}
	if got := form.Snapshot(); got.Result != NoResult || got.Operation != calculator.Add {
		t.Fatalf("unexpected initial form %+v", got)
	}
}

func TestFormEnterMovesFocusThenResolves(t *testing.T) {
	r := &localResolver{}
	c, s, _ := newTestController(r)
	focus := &focusRecorder{}
	form := NewForm(c, focus)
	ctx := context.Background()

	form.Input(FirstField, "12")
	if err := form.SetOperation(calculator.Subtract); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := form.Enter(ctx, FirstField); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := focus.fields[len(focus.fields)-1]; last != SecondField {
		t.Fatalf("expected focus on second field, got %v", last)
	}
	if len(r.Calls()) != 0 {
		t.Fatal("Enter in the first field must not resolve")
	}

	form.Input(SecondField, "4.5")
	if err := form.Enter(ctx, SecondField); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := r.Calls()
	if len(calls) != 1 || calls[0] != (resolverCall{a: 12, op: calculator.Subtract, b: 4.5}) {
		t.Fatalf("unexpected resolutions %v", calls)
	}
	if got := form.Snapshot(); got.Result != "7.5" || got.Focused != SecondField {
		t.Fatalf("unexpected form %+v", got)
	}
	if got := s.snapshot().current; got != "7.5" {
		t.Fatalf("expected display %q, got %q", "7.5", got)
	}
}

func TestFormInputSanitizesAndClearsResult(t *testing.T) {
	c, s, _ := newTestController(&localResolver{})
	form := NewForm(c, nil)
	ctx := context.Background()

	form.Input(FirstField, "1")
	form.Input(SecondField, "0")
	_ = form.SetOperation(calculator.Divide)
	if err := form.Submit(ctx); err == nil {
		t.Fatal("expected division by zero error")
	}
	if !s.snapshot().visible {
		t.Fatal("expected error banner")
	}
	if got := form.Snapshot().Result; got != ErrorMarker {
		t.Fatalf("expected result %q, got %q", ErrorMarker, got)
	}

	if got, _ := form.Input(SecondField, "2a,5"); got != "25" {
		t.Fatalf("expected sanitized %q, got %q", "25", got)
	}
	if got := form.Snapshot().Result; got != NoResult {
		t.Fatalf("expected result reset to %q, got %q", NoResult, got)
	}
	if s.snapshot().visible {
		t.Fatal("expected banner hidden after editing")
	}
}

func TestFormSubmitRejectsInvalidOperands(t *testing.T) {
	r := &localResolver{}
	c, s, _ := newTestController(r)
	form := NewForm(c, nil)

	form.Input(FirstField, "-")
	form.Input(SecondField, "3")

	err := form.Submit(context.Background())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(r.Calls()) != 0 {
		t.Fatal("expected no resolution")
	}
	if got := s.snapshot(); !got.visible || got.banner != "Error: Please enter a valid first number" {
		t.Fatalf("unexpected banner %+v", &got)
	}
}

func TestFormRejectsUnknownField(t *testing.T) {
	c, _, _ := newTestController(&localResolver{})
	focus := &focusRecorder{}
	form := NewForm(c, focus)

	if _, err := form.Input(Field(2), "1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Input: expected ErrInvalidInput, got %v", err)
	}
	if err := form.FocusField(Field(-1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("FocusField: expected ErrInvalidInput, got %v", err)
	}
	if err := form.Enter(context.Background(), Field(3)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Enter: expected ErrInvalidInput, got %v", err)
	}

	got := form.Snapshot()
	if got.First != "" || got.Second != "" || got.Focused != FirstField {
		t.Fatalf("expected form unchanged, got %+v", got)
	}
	if len(focus.fields) != 1 {
		t.Fatalf("expected no focus change, got %v", focus.fields)
	}
}

func TestFormSetOperationRejectsNone(t *testing.T) {
	c, _, _ := newTestController(&localResolver{})
	form := NewForm(c, nil)

	if err := form.SetOperation(calculator.None); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDisplayFuncsSkipNilCallbacks(t *testing.T) {
	var current string
	d := DisplayFuncs{Current: func(s string) { current = s }}

	d.ShowCurrent("5")
	d.ShowPrevious("ignored")
	d.SetActiveOperation(calculator.Add)

	BannerFuncs{}.ShowError("ignored")
	BannerFuncs{}.HideError()

	if current != "5" {
		t.Fatalf("expected %q, got %q", "5", current)
	}
}
