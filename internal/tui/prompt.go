// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/opsfill/opsfill/internal/collect"
)

// Prompter renders collect prompts as single-field huh forms.
type Prompter struct {
	cfg   Config
	input *inputTracker
}

var _ collect.Prompter = (*Prompter)(nil)

// NewPrompter creates a Prompter using cfg. In accessible mode the input is
// read line by line, and running out of input cancels the prompt.
func NewPrompter(cfg Config) *Prompter {
	p := &Prompter{cfg: cfg}
	if cfg.Accessible && cfg.Input != nil {
		p.input = newInputTracker(cfg.Input)
	}
	return p
}

// Text implements collect.Prompter. The validator keeps the field open until
// the input passes, which is how numeric fields get re-prompted.
func (p *Prompter) Text(ctx context.Context, tp collect.TextPrompt) (string, error) {
	var value string

	input := huh.NewInput().
		Title(tp.Title).
		Description(tp.Description).
		Placeholder(tp.Placeholder).
		Value(&value)
	// Accessible password fields read straight from the terminal, so they
	// skip the tracker. Piped input has no echo to hide.
	tracked := true
	if tp.Secret && p.canHideInput() {
		input = input.EchoMode(huh.EchoModePassword)
		tracked = false
	}
	if tp.Validate != nil {
		input = input.Validate(tp.Validate)
	}

	if err := p.run(ctx, input, tracked); err != nil {
		return "", err
	}
	return value, nil
}

// Select implements collect.Prompter with a closed single choice.
func (p *Prompter) Select(ctx context.Context, title string, options []string) (string, error) {
	var value string

	sel := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value)

	if err := p.run(ctx, sel, true); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm implements collect.Prompter with a yes/no choice.
func (p *Prompter) Confirm(ctx context.Context, title string) (bool, error) {
	var value bool

	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := p.run(ctx, confirm, true); err != nil {
		return false, err
	}
	return value, nil
}

// canHideInput reports whether typed characters can be kept off the screen.
func (p *Prompter) canHideInput() bool {
	if !p.cfg.Accessible {
		return true
	}
	f, ok := p.cfg.Input.(*os.File)
	return ok && isTerminal(f)
}

// run shows field as a one-group form. Tracked accessible prompts end with
// collect.ErrCancelled when the input runs out before the operator answers.
func (p *Prompter) run(ctx context.Context, field huh.Field, tracked bool) error {
	if ctx.Err() != nil {
		return collect.ErrCancelled
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huhTheme(p.cfg.Theme)).
		WithAccessible(p.cfg.Accessible)
	if p.cfg.Output != nil {
		form = form.WithOutput(p.cfg.Output)
	}
	if p.input == nil || !tracked {
		if p.cfg.Input != nil {
			form = form.WithInput(p.cfg.Input)
		}
		return promptError(form.RunWithContext(ctx))
	}

	form = form.WithInput(p.input)
	mark := p.input.mark()
	if err := promptError(form.RunWithContext(ctx)); err != nil {
		return err
	}
	if p.input.exhaustedSince(mark) {
		return collect.ErrCancelled
	}
	return nil
}

// promptError maps huh's abort and context cancellation to collect.ErrCancelled.
func promptError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return collect.ErrCancelled
	default:
		return err
	}
}
