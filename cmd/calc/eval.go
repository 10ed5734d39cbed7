package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/controller"
)

var numberToken = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <key>...",
		Short: "Press a sequence of calculator keys and print the display",
		Long: `eval feeds each argument to the calculator as if it were typed on the keypad
and prints what the display shows at the end.

Arguments are numbers (typed digit by digit), operations (+ - x * / ÷ or
add, subtract, multiply, divide), = to resolve, c to clear, ce to clear the
entry and bs for backspace. Error messages are written to stderr and make
the command exit with a non-zero status.`,
		Example: `  calc eval 12 + 30 =
  calc eval 2 x 3 + 4 =
  calc eval 1 / 0 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stderr := cmd.ErrOrStderr()
			ctrl, err := a.newController(nil, controller.BannerFuncs{
				Show: func(msg string) { writeLine(stderr, msg) },
			})
			if err != nil {
				return err
			}

			evalErr := evaluate(cmd.Context(), ctrl, args)
			writeLine(cmd.OutOrStdout(), ctrl.State().Buffer)
			return evalErr
		},
	}
}

// evaluate presses every key in keys. It keeps going after a failed
// calculation, like the keypad does, and returns the errors it met.
func evaluate(ctx context.Context, ctrl *controller.Controller, keys []string) error {
	var errs []error

	for _, k := range keys {
		if err := press(ctx, ctrl, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func press(ctx context.Context, ctrl *controller.Controller, k string) error {
	switch strings.ToLower(k) {
	case "=":
		return ctrl.Equals(ctx)
	case "c":
		ctrl.Clear()
		return nil
	case "ce":
		ctrl.ClearEntry()
		return nil
	case "bs":
		ctrl.Backspace()
		return nil
	}

	if numberToken.MatchString(k) {
		for _, r := range k {
			if r == '.' {
				ctrl.PressDecimal()
				continue
			}
			if err := ctrl.PressDigit(r); err != nil {
				return err
			}
		}
		return nil
	}

	op, err := calculator.ParseOperation(k)
	if err != nil {
		return fmt.Errorf("%w: key %q", controller.ErrInvalidInput, k)
	}
	return ctrl.PressOperation(ctx, op)
}
