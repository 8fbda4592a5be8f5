// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets the test binary act as opsfill and as a stand-in for the
// external ops tool inside scripts. Colors are disabled so assertions see
// plain text even when the tests run in a terminal.
func TestMain(m *testing.M) {
	if err := os.Setenv("NO_COLOR", "1"); err != nil {
		panic("failed to disable colors: " + err.Error())
	}
	testscript.Main(m, map[string]func(){
		"opsfill": func() { os.Exit(Main()) },
		"fakeops": fakeOpsMain,
	})
}

// fakeOpsMain prints the files named by FAKEOPS_OUT and FAKEOPS_ERR and
// exits with FAKEOPS_EXIT. It refuses any arguments other than "-config -d".
func fakeOpsMain() {
	if got := strings.Join(os.Args[1:], " "); got != "-config -d" {
		fmt.Fprintf(os.Stderr, "fakeops: unexpected arguments %q\n", got)
		os.Exit(2)
	}
	for env, w := range map[string]*os.File{"FAKEOPS_OUT": os.Stdout, "FAKEOPS_ERR": os.Stderr} {
		name := os.Getenv(env)
		if name == "" {
			continue
		}
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakeops: %v\n", err)
			os.Exit(2)
		}
		_, _ = w.Write(data)
	}
	code := 0
	if v := os.Getenv("FAKEOPS_EXIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakeops: bad FAKEOPS_EXIT %q\n", v)
			os.Exit(2)
		}
		code = n
	}
	os.Exit(code)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("OPS_CMD", "fakeops")
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
