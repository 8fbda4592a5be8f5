// SPDX-License-Identifier: MPL-2.0

package opsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opsfill/opsfill/pkg/types"
)

type (
	// fakeRunner returns a canned ProcessResult and records invocations.
	fakeRunner struct {
		result *ProcessResult
		err    error
		calls  []invocation
	}

	invocation struct {
		Name string
		Args []string
	}
)

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*ProcessResult, error) {
	f.calls = append(f.calls, invocation{Name: name, Args: args})
	return f.result, f.err
}

func TestNewRejectsEmptyCommand(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "   "} {
		if _, err := New(name); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("New(%q) error = %v, want ErrEmptyCommand", name, err)
		}
	}
}

func TestNewKeepsCommand(t *testing.T) {
	t.Parallel()

	a, err := New("/opt/bin/ops")
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if a.Command() != "/opt/bin/ops" {
		t.Errorf("Command() = %q, want /opt/bin/ops", a.Command())
	}
}

func TestFetchKnownKeysInvokesCommandOnce(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{result: &ProcessResult{Stdout: []byte(`{"A": "x", "C": 3}`)}}
	a, err := New("my-ops", WithRunner(runner))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	known, err := a.FetchKnownKeys(context.Background())
	if err != nil {
		t.Fatalf("FetchKnownKeys() unexpected error: %v", err)
	}

	want := []invocation{{Name: "my-ops", Args: []string{"-config", "-d"}}}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "C"}, known.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if !known.Has("A") || known.Has("B") {
		t.Errorf("Has() reported wrong presence for %v", known.Keys())
	}
	if raw, _ := known.Raw("C"); string(raw) != "3" {
		t.Errorf("Raw(C) = %s, want 3", raw)
	}
}

func TestFetchKnownKeysNonZeroExit(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{result: &ProcessResult{ExitCode: 1, Stderr: []byte("boom\n")}}
	a, _ := New(DefaultCommand, WithRunner(runner))

	_, err := a.FetchKnownKeys(context.Background())
	if !errors.Is(err, ErrSourceFailed) {
		t.Fatalf("FetchKnownKeys() error = %v, want ErrSourceFailed", err)
	}
	if err.Error() != "boom" {
		t.Errorf("diagnostic = %q, want %q", err.Error(), "boom")
	}
	var failure *FailureError
	if !errors.As(err, &failure) || failure.ExitCode != 1 {
		t.Errorf("expected *FailureError with exit code 1, got %#v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("expected exactly one invocation (no retry), got %d", len(runner.calls))
	}
}

func TestFetchKnownKeysNonZeroExitWithoutStderr(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{result: &ProcessResult{ExitCode: 3}}
	a, _ := New("ops", WithRunner(runner))

	_, err := a.FetchKnownKeys(context.Background())
	if err == nil || err.Error() != "ops -config -d: exit status 3" {
		t.Errorf("FetchKnownKeys() error = %v, want exit status message", err)
	}
}

func TestFailureErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{name: "verbatim", stderr: "  boom: disk full\n", want: "  boom: disk full"},
		{name: "multi line", stderr: "line one\nline two\r\n", want: "line one\nline two"},
		{name: "blank", stderr: "  \n", want: "ops -config -d: exit status 2"},
		{name: "empty", stderr: "", want: "ops -config -d: exit status 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &FailureError{Command: DefaultCommand, ExitCode: 2, Stderr: tt.stderr}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchKnownKeysUnparseableOutput(t *testing.T) {
	t.Parallel()

	for _, stdout := range []string{"", "not json", `["A"]`, `"A"`, `{"A": 1`} {
		runner := &fakeRunner{result: &ProcessResult{Stdout: []byte(stdout)}}
		a, _ := New("ops", WithRunner(runner))

		_, err := a.FetchKnownKeys(context.Background())
		if !errors.Is(err, ErrSourceFailed) || !errors.Is(err, ErrUnparseableOutput) {
			t.Errorf("stdout %q: error = %v, want ErrSourceFailed wrapping ErrUnparseableOutput", stdout, err)
		}
	}
}

func TestFetchKnownKeysRunnerError(t *testing.T) {
	t.Parallel()

	cause := errors.New(`exec: "ops": executable file not found in $PATH`)
	a, _ := New("ops", WithRunner(&fakeRunner{err: cause}))

	_, err := a.FetchKnownKeys(context.Background())
	if !errors.Is(err, ErrSourceFailed) || !errors.Is(err, cause) {
		t.Fatalf("FetchKnownKeys() error = %v, want ErrSourceFailed wrapping the runner error", err)
	}
	if !strings.HasPrefix(err.Error(), "ops -config -d: ") {
		t.Errorf("diagnostic = %q, want the invocation as prefix", err.Error())
	}
}

func TestParseExternalConfigEmptyObject(t *testing.T) {
	t.Parallel()

	known, err := ParseExternalConfig([]byte("{}\n"))
	if err != nil {
		t.Fatalf("ParseExternalConfig() unexpected error: %v", err)
	}
	if known.Len() != 0 {
		t.Errorf("Len() = %d, want 0", known.Len())
	}
}

// helperCommand builds an exec.Cmd that re-runs the test binary as a fake ops tool.
func helperCommand(exitCode int, stdout, stderr string) ExecCommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", exitCode),
			"GO_HELPER_STDOUT=" + stdout,
			"GO_HELPER_STDERR=" + stderr,
		}
		return cmd
	}
}

func TestExecRunner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		exitCode   int
		stdout     string
		stderr     string
		wantCode   types.ExitCode
		wantStdout string
		wantStderr string
	}{
		{name: "success", exitCode: 0, stdout: `{"A":"x"}`, wantCode: 0, wantStdout: `{"A":"x"}`},
		{name: "failure", exitCode: 1, stderr: "boom", wantCode: 1, wantStderr: "boom"},
		{name: "custom exit code", exitCode: 42, wantCode: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewExecRunnerWith(helperCommand(tt.exitCode, tt.stdout, tt.stderr))
			res, err := r.Run(context.Background(), "ops", Args()...)
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.wantCode)
			}
			if string(res.Stdout) != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", res.Stdout, tt.wantStdout)
			}
			if string(res.Stderr) != tt.wantStderr {
				t.Errorf("Stderr = %q, want %q", res.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	t.Parallel()

	_, err := NewExecRunner().Run(context.Background(), "opsfill-definitely-missing-binary", Args()...)
	if err == nil {
		t.Fatal("Run() expected an error for a missing binary")
	}
}

func TestAdapterEndToEndWithHelperProcess(t *testing.T) {
	t.Parallel()

	a, _ := New("ops", WithRunner(NewExecRunnerWith(helperCommand(1, "", "boom"))))
	_, err := a.FetchKnownKeys(context.Background())
	if err == nil || err.Error() != "boom" {
		t.Errorf("FetchKnownKeys() error = %v, want boom", err)
	}
}

// TestHelperProcess is used by helperCommand to simulate the external tool.
// It reads configuration from environment variables and outputs accordingly.
// This function should not be called directly.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode) //nolint:errcheck // test helper
	}

	os.Exit(exitCode)
}
