// Package integration provides CLI integration tests for satchel.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// satchelBin is the path to the built satchel binary.
	satchelBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetSatchelBin sets the path to the satchel binary (called from TestMain).
func SetSatchelBin(path string) {
	satchelBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config
// directory and database file.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DBPath    string
}

// NewTestEnv creates an isolated environment under t.TempDir().
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if buildErr != nil {
		t.Fatalf("satchel binary not built: %v", buildErr)
	}
	tmp := t.TempDir()
	return &TestEnv{
		t:         t,
		TempDir:   tmp,
		ConfigDir: filepath.Join(tmp, "config"),
		DBPath:    filepath.Join(tmp, "satchel.db"),
	}
}

// RunResult holds the outcome of one CLI invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunSatchel invokes the satchel binary with the environment's config and
// database, feeding stdin to the process when non-empty.
func (e *TestEnv) RunSatchel(stdin string, args ...string) RunResult {
	e.t.Helper()

	full := append([]string{
		"--config-dir", e.ConfigDir,
		"--db", e.DBPath,
	}, args...)
	cmd := exec.Command(satchelBin, full...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		e.t.Fatalf("running satchel %v: %v", args, err)
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
	}
}

// MustRunSatchel runs the CLI and fails the test on a non-zero exit.
func (e *TestEnv) MustRunSatchel(stdin string, args ...string) RunResult {
	e.t.Helper()
	result := e.RunSatchel(stdin, args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("satchel %v exited %d: %s", args, result.ExitCode, result.Stderr)
	}
	return result
}
