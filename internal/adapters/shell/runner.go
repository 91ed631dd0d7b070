// Package shell runs the external solver as a child process.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.SolverRunner with os/exec. Every call starts a
// fresh process.
type Runner struct {
	logger  ports.Logger
	command []string
	dir     string
}

// NewRunner creates a Runner for command, the solver executable and its arguments.
func NewRunner(logger ports.Logger, command []string) *Runner {
	return &Runner{logger: logger, command: command}
}

// WithDir sets the solver's working directory.
func (r *Runner) WithDir(dir string) *Runner {
	r.dir = dir
	return r
}

// Run feeds input to the solver's stdin, closes it, and returns stdout once
// the process exits. Stderr lines are forwarded to the logger as they arrive.
func (r *Runner) Run(ctx context.Context, input string) (string, error) {
	if len(r.command) == 0 {
		return "", zerr.Wrap(domain.ErrSolverExecution, "solver command is empty")
	}

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...) //nolint:gosec // operator supplied command
	cmd.Dir = r.dir
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	diag := &logWriter{logger: r.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, diag)

	err := cmd.Run()
	_ = diag.Close()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.Wrap(errors.Join(domain.ErrSolverExecution, err), "solver failed")
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if diagText := strings.TrimSpace(stderr.String()); diagText != "" {
			wrapped = zerr.With(wrapped, "stderr", diagText)
		}
		return "", wrapped
	}

	return stdout.String(), nil
}

// logWriter forwards complete lines to the logger as warnings.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Close flushes a trailing line without newline.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" || w.logger == nil {
		return
	}
	w.logger.Warn("solver: " + msg)
}
