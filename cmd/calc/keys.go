package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const keysMarkdown = `# Calculator keys

## Keypad mode

| Key | Action |
| --- | --- |
| 0-9 | Append a digit |
| . | Decimal point |
| + - * x / | Select an operation, resolving any pending one first |
| Enter or = | Resolve the pending calculation |
| Backspace | Delete the last character |
| Delete | Clear the current entry |
| Esc or c | Clear everything |
| Tab | Switch to form mode |
| q or Ctrl+C | Quit |

## Form mode

| Key | Action |
| --- | --- |
| Enter in num1 | Move to num2 |
| Enter in num2 | Calculate num1 op num2 |
| Up or Down | Switch field |
| Left or Right | Change the operation |
| Tab or Esc | Back to the keypad |

Errors stay on screen for the banner TTL (5s by default).
`

func newKeysCmd() *cobra.Command {
	var (
		raw   bool
		style string
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if raw {
				_, err := fmt.Fprint(out, keysMarkdown)
				return err
			}

			renderer, err := newRenderer(style)
			if err != nil {
				_, err = fmt.Fprint(out, keysMarkdown)
				return err
			}
			rendered, err := renderer.Render(keysMarkdown)
			if err != nil {
				_, err = fmt.Fprint(out, keysMarkdown)
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print raw markdown without rendering")
	cmd.Flags().StringVar(&style, "style", "auto", "rendering style: auto, dark, light, notty")
	return cmd
}

func newRenderer(style string) (*glamour.TermRenderer, error) {
	if style == "" || style == "auto" {
		return glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	}
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
}
