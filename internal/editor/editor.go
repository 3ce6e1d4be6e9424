// Package editor resolves an editor binary and launches it detached.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
)

var (
	// ErrNotFound is returned when the editor binary cannot be located.
	ErrNotFound = errors.New("editor not found")
	// ErrUnusableEnv is returned when the executable search environment
	// cannot be used at all.
	ErrUnusableEnv = errors.New("executable search environment is unusable")
)

// Runner abstracts executable lookup and detached process launch.
// This allows mocking in tests without actually executing binaries.
type Runner interface {
	// LookPath finds the executable in PATH.
	LookPath(file string) (string, error)
	// StartDetached starts the command and does not wait for it.
	StartDetached(path string, args ...string) error
}

// execRunner is the real implementation using os/exec.
type execRunner struct{}

// NewRunner creates a new real runner.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) StartDetached(path string, args ...string) error {
	// #nosec G204 - path was resolved from a user-chosen editor name
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Fire and forget: the CLI returns while the editor runs.
	return cmd.Process.Release()
}

// Editor launches an editor on a file.
type Editor struct {
	runner Runner
}

// Option configures an Editor.
type Option func(*Editor)

// WithRunner sets a custom runner (for testing).
func WithRunner(r Runner) Option {
	return func(e *Editor) {
		e.runner = r
	}
}

// New creates an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{runner: NewRunner()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open resolves name in PATH and launches it detached with filePath as its
// sole argument. It returns the resolved binary path. The launch is
// fire-and-forget: there is no way to know whether the edit was saved.
func (e *Editor) Open(name, filePath string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: no editor given", ErrNotFound)
	}

	resolved, err := e.runner.LookPath(name)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrPermission):
			return "", fmt.Errorf("%w: %v", ErrUnusableEnv, err)
		case errors.Is(err, exec.ErrNotFound):
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		default:
			return "", fmt.Errorf("failed to resolve editor %q: %w", name, err)
		}
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize editor path %q: %w", resolved, err)
	}

	if err := e.runner.StartDetached(abs, filePath); err != nil {
		return "", fmt.Errorf("failed to launch editor %q: %w", abs, err)
	}

	return abs, nil
}
