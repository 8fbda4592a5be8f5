// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/pkg/schema"
)

func TestThemeValidate(t *testing.T) {
	t.Parallel()

	for _, name := range ThemeNames() {
		if err := Theme(name).Validate(); err != nil {
			t.Errorf("Theme(%q).Validate() unexpected error: %v", name, err)
		}
		if huhTheme(Theme(name)) == nil {
			t.Errorf("huhTheme(%q) returned nil", name)
		}
	}

	err := Theme("neon").Validate()
	if !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("Theme(neon).Validate() error = %v, want ErrInvalidTheme", err)
	}
}

func TestPromptError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "user aborted", in: huh.ErrUserAborted, want: collect.ErrCancelled},
		{name: "wrapped abort", in: fmt.Errorf("form: %w", huh.ErrUserAborted), want: collect.ErrCancelled},
		{name: "context cancelled", in: context.Canceled, want: collect.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := promptError(tt.in); !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("promptError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	other := errors.New("terminal gone")
	if got := promptError(other); !errors.Is(got, other) {
		t.Errorf("promptError must pass through unrelated errors, got %v", got)
	}
}

func TestSpinWithoutAnimationRunsAction(t *testing.T) {
	t.Parallel()

	called := false
	want := errors.New("boom")
	err := Spin(context.Background(), Config{}, "fetching", func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("Spin() did not run the action")
	}
	if !errors.Is(err, want) {
		t.Errorf("Spin() error = %v, want %v", err, want)
	}
}

func TestBanners(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Intro(&buf, "opsfill")
	Cancel(&buf, "Operation cancelled")
	Outro(&buf, "You're all set!")
	Note(&buf, "nothing to ask")

	out := buf.String()
	for _, want := range []string{"opsfill", "Operation cancelled", "You're all set!", "nothing to ask"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner output %q is missing %q", out, want)
		}
	}
}

func accessiblePrompter(input string) *Prompter {
	return NewPrompter(Config{
		Theme:      ThemeDefault,
		Accessible: true,
		Input:      strings.NewReader(input),
		Output:     io.Discard,
	})
}

func TestPrompterEndOfInputCancels(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name string
		ask  func(p *Prompter) error
	}{
		{name: "text", ask: func(p *Prompter) error {
			_, err := p.Text(ctx, collect.TextPrompt{Title: "NAME"})
			return err
		}},
		{name: "validated text", ask: func(p *Prompter) error {
			_, err := p.Text(ctx, collect.TextPrompt{Title: "PORT", Validate: collect.ValidatorFor(schema.ScalarInt)})
			return err
		}},
		{name: "secret from a pipe", ask: func(p *Prompter) error {
			_, err := p.Text(ctx, collect.TextPrompt{Title: "TOKEN", Secret: true})
			return err
		}},
		{name: "select", ask: func(p *Prompter) error {
			_, err := p.Select(ctx, "REGION", []string{"eu", "us"})
			return err
		}},
		{name: "confirm", ask: func(p *Prompter) error {
			_, err := p.Confirm(ctx, "DEBUG")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.ask(accessiblePrompter("")); !errors.Is(err, collect.ErrCancelled) {
				t.Errorf("prompt on empty input error = %v, want ErrCancelled", err)
			}
		})
	}
}

func TestPrompterReadsOneLinePerPrompt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := accessiblePrompter("demo\n2\ny\n")

	name, err := p.Text(ctx, collect.TextPrompt{Title: "NAME"})
	if err != nil || name != "demo" {
		t.Fatalf("Text() = %q, %v; want demo", name, err)
	}
	region, err := p.Select(ctx, "REGION", []string{"eu", "us"})
	if err != nil || region != "us" {
		t.Fatalf("Select() = %q, %v; want us", region, err)
	}
	debug, err := p.Confirm(ctx, "DEBUG")
	if err != nil || !debug {
		t.Fatalf("Confirm() = %v, %v; want true", debug, err)
	}

	if _, err := p.Text(ctx, collect.TextPrompt{Title: "MORE"}); !errors.Is(err, collect.ErrCancelled) {
		t.Errorf("Text() after the last line error = %v, want ErrCancelled", err)
	}
}

func TestPrompterCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := accessiblePrompter("demo\n").Text(ctx, collect.TextPrompt{Title: "NAME"}); !errors.Is(err, collect.ErrCancelled) {
		t.Errorf("Text() error = %v, want ErrCancelled", err)
	}
}

func TestInputTracker(t *testing.T) {
	t.Parallel()

	tr := newInputTracker(strings.NewReader("ab"))
	mark := tr.mark()
	buf := make([]byte, 8)

	n, err := tr.Read(buf)
	if n != 1 || err != nil {
		t.Fatalf("Read() = %d, %v; want one byte", n, err)
	}
	if _, err := io.ReadAll(tr); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if tr.exhaustedSince(mark) {
		t.Error("exhaustedSince(start) = true after reading data")
	}
	if !tr.exhaustedSince(tr.mark()) {
		t.Error("exhaustedSince(end) = false at end of input")
	}
}
