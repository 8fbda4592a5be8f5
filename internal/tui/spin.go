// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs action while showing a spinner titled title. Without animation
// (pipes, accessible mode) the action simply runs in the foreground.
// The action's error is returned unchanged.
func Spin(ctx context.Context, cfg Config, title string, action func(context.Context) error) error {
	if !cfg.Animate {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
