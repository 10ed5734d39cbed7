package controller

import (
	"context"
	"fmt"
	"sync"

	"go-chi-calculator/internal/calculator"
)

// Field names one of the two form inputs.
type Field int

const (
	FirstField Field = iota
	SecondField
)

func (f Field) Valid() bool {
	return f == FirstField || f == SecondField
}

func (f Field) String() string {
	if f == SecondField {
		return "num2"
	}
	return "num1"
}

// NoResult is the form's result label before a calculation or after an edit.
const NoResult = "-"

// Form is the two-input entry mode: type num1, press Enter, type num2,
// press Enter to resolve. It shares the Controller's resolution path and
// error banner.
type Form struct {
	mu sync.Mutex

	ctrl  *Controller
	focus Focuser

	values  [2]string
	op      calculator.Operation
	focused Field
	result  string
}

// NewForm focuses the first field. focus may be nil.
func NewForm(ctrl *Controller, focus Focuser) *Form {
	if focus == nil {
		focus = FocusFunc(func(Field) {})
	}

	f := &Form{
		ctrl:   ctrl,
		focus:  focus,
		op:     calculator.Add,
		result: NoResult,
	}
	f.focus.Focus(FirstField)
	return f
}

// Input stores raw for field after stripping invalid characters, resets the
// result label and hides any error. It returns the stored value.
func (f *Form) Input(field Field, raw string) (string, error) {
	if !field.Valid() {
		return "", fmt.Errorf("%w: field %d", ErrInvalidInput, field)
	}
	clean := SanitizeOperand(raw)

	f.mu.Lock()
	f.values[field] = clean
	changed := f.result != NoResult
	f.result = NoResult
	f.mu.Unlock()

	if changed {
		f.ctrl.DismissError()
	}
	return clean, nil
}

// SetOperation selects the form's operation.
func (f *Form) SetOperation(op calculator.Operation) error {
	if !op.Valid() {
		return fmt.Errorf("%w: operation %q", ErrInvalidInput, op)
	}
	f.mu.Lock()
	f.op = op
	f.mu.Unlock()
	return nil
}

// FocusField moves focus to field.
func (f *Form) FocusField(field Field) error {
	if !field.Valid() {
		return fmt.Errorf("%w: field %d", ErrInvalidInput, field)
	}
	f.mu.Lock()
	f.focused = field
	f.mu.Unlock()
	f.focus.Focus(field)
	return nil
}

// Enter handles the Enter key in field: the first field hands focus to the
// second, the second resolves the calculation.
func (f *Form) Enter(ctx context.Context, field Field) error {
	switch field {
	case FirstField:
		return f.FocusField(SecondField)
	case SecondField:
		return f.Submit(ctx)
	default:
		return fmt.Errorf("%w: field %d", ErrInvalidInput, field)
	}
}

// Submit resolves num1 op num2 through the Controller and records the result
// label. Unparseable operands are reported on the error banner.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	raw1, raw2, op := f.values[FirstField], f.values[SecondField], f.op
	f.mu.Unlock()

	a, err := ParseOperand(raw1)
	if err != nil {
		f.ctrl.ReportError("Error: Please enter a valid first number")
		return err
	}
	b, err := ParseOperand(raw2)
	if err != nil {
		f.ctrl.ReportError("Error: Please enter a valid second number")
		return err
	}

	err = f.ctrl.Submit(ctx, a, op, b)

	f.mu.Lock()
	f.result = f.ctrl.State().Buffer
	f.mu.Unlock()

	return err
}

// Snapshot returns the form values, operation, focus and result label.
func (f *Form) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{
		First:     f.values[FirstField],
		Second:    f.values[SecondField],
		Operation: f.op,
		Focused:   f.focused,
		Result:    f.result,
	}
}

type FormState struct {
	First     string
	Second    string
	Operation calculator.Operation
	Focused   Field
	Result    string
}
