package controller

import (
	"context"

	"go-chi-calculator/internal/calculator"
)

// Display receives everything the calculator shows. Implementations must not
// call back into the Controller.
type Display interface {
	ShowCurrent(text string)
	ShowPrevious(text string)
	// SetActiveOperation highlights op; calculator.None clears the highlight.
	SetActiveOperation(op calculator.Operation)
}

// ErrorBanner shows transient error messages. The Controller schedules
// HideError itself.
type ErrorBanner interface {
	ShowError(message string)
	HideError()
}

// Resolver performs one calculation remotely.
type Resolver interface {
	Calculate(ctx context.Context, a float64, op calculator.Operation, b float64) (float64, error)
}

// Focuser moves keyboard focus between form fields.
type Focuser interface {
	Focus(field Field)
}

// DisplayFuncs adapts plain callbacks to Display. Nil callbacks are skipped.
type DisplayFuncs struct {
	Current  func(string)
	Previous func(string)
	Active   func(calculator.Operation)
}

func (d DisplayFuncs) ShowCurrent(text string) {
	if d.Current != nil {
		d.Current(text)
	}
}

func (d DisplayFuncs) ShowPrevious(text string) {
	if d.Previous != nil {
		d.Previous(text)
	}
}

func (d DisplayFuncs) SetActiveOperation(op calculator.Operation) {
	if d.Active != nil {
		d.Active(op)
	}
}

// BannerFuncs adapts plain callbacks to ErrorBanner. Nil callbacks are
// skipped.
type BannerFuncs struct {
	Show func(string)
	Hide func()
}

func (b BannerFuncs) ShowError(message string) {
	if b.Show != nil {
		b.Show(message)
	}
}

func (b BannerFuncs) HideError() {
	if b.Hide != nil {
		b.Hide()
	}
}

// FocusFunc adapts a function to Focuser.
type FocusFunc func(Field)

func (f FocusFunc) Focus(field Field) {
	f(field)
}
