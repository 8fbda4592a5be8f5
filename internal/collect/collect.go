// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/opsfill/opsfill/pkg/schema"
)

// ErrCancelled is returned when the operator cancels a prompt.
// It is a normal terminal outcome, not a failure.
var ErrCancelled = errors.New("operation cancelled")

type (
	// TextPrompt describes a free-text question.
	TextPrompt struct {
		// Title is the question shown to the operator.
		Title string
		// Description is shown under the title; used for the expected type
		// and for the reason a previous answer was rejected.
		Description string
		// Placeholder is shown while the input is empty.
		Placeholder string
		// Secret hides the typed characters.
		Secret bool
		// Validate rejects unacceptable input. Prompters that can validate
		// inline should keep the prompt open until it passes.
		Validate func(string) error
	}

	// Prompter renders prompts and returns the operator's choice.
	// Implementations return ErrCancelled when the operator cancels.
	Prompter interface {
		Text(ctx context.Context, p TextPrompt) (string, error)
		Select(ctx context.Context, title string, options []string) (string, error)
		Confirm(ctx context.Context, title string) (bool, error)
	}

	// Collector drives a Prompter over a set of missing keys.
	Collector struct {
		prompter Prompter
		logger   *log.Logger
	}

	// Option configures a Collector.
	Option func(*Collector)
)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) {
		c.logger = l
	}
}

// New creates a Collector backed by p.
func New(p Prompter, opts ...Option) *Collector {
	c := &Collector{prompter: p, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect asks for every key of missing, in order. On cancellation the
// answers gathered so far are dropped and ErrCancelled is returned.
func (c *Collector) Collect(ctx context.Context, missing *schema.ConfigSchema) (Answers, error) {
	answers := make(Answers, 0, missing.Len())
	for key, spec := range missing.All() {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		raw, err := c.ask(ctx, key, spec)
		if err != nil {
			if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
				c.logger.Debug("collection cancelled", "key", key, "answered", len(answers))
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("prompt for %s: %w", key, err)
		}

		c.logger.Debug("collected answer", "key", key, "type", spec.String())
		answers = append(answers, Answer{Key: key, Spec: spec, Raw: raw})
	}
	return answers, nil
}

// Collect is shorthand for New(p).Collect(ctx, missing).
func Collect(ctx context.Context, missing *schema.ConfigSchema, p Prompter) (Answers, error) {
	return New(p).Collect(ctx, missing)
}

// ask dispatches to the prompt kind matching spec.
func (c *Collector) ask(ctx context.Context, key string, spec schema.FieldSpec) (string, error) {
	if spec.IsEnum() {
		return c.askEnum(ctx, key, spec.EnumValues())
	}

	switch spec.Scalar() {
	case schema.ScalarBool:
		ok, err := c.prompter.Confirm(ctx, key)
		if err != nil {
			return "", err
		}
		return FormatBool(ok), nil
	case schema.ScalarInt, schema.ScalarFloat:
		return c.askText(ctx, TextPrompt{
			Title:       key,
			Description: "Expected " + describe(spec.Scalar()),
			Validate:    ValidatorFor(spec.Scalar()),
		})
	case schema.ScalarPassword:
		return c.askText(ctx, TextPrompt{Title: key, Secret: true})
	default:
		return c.askText(ctx, TextPrompt{Title: key})
	}
}

// askText repeats the prompt until the value passes validation.
func (c *Collector) askText(ctx context.Context, p TextPrompt) (string, error) {
	base := p.Description
	for {
		if ctx.Err() != nil {
			return "", ErrCancelled
		}
		raw, err := c.prompter.Text(ctx, p)
		if err != nil {
			return "", err
		}
		if p.Validate == nil {
			return raw, nil
		}
		verr := p.Validate(raw)
		if verr == nil {
			return normalizeNumber(raw), nil
		}
		c.logger.Debug("rejected answer", "key", p.Title, "error", verr)
		p.Description = verr.Error()
		if base != "" {
			p.Description = base + ": " + verr.Error()
		}
	}
}

// askEnum repeats the prompt until the choice is one of values.
func (c *Collector) askEnum(ctx context.Context, key string, values []string) (string, error) {
	for {
		if ctx.Err() != nil {
			return "", ErrCancelled
		}
		choice, err := c.prompter.Select(ctx, key, values)
		if err != nil {
			return "", err
		}
		if slices.Contains(values, choice) {
			return choice, nil
		}
		c.logger.Debug("rejected choice outside enum", "key", key, "choice", choice)
	}
}

func describe(t schema.ScalarType) string {
	switch t {
	case schema.ScalarInt:
		return "an integer"
	case schema.ScalarFloat:
		return "a number"
	default:
		return t.String()
	}
}
