package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while a spinner with the given title is
// shown. Without a TTY the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Context(ctx).
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}

	return actionErr
}
