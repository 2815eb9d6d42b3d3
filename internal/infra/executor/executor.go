// Package executor provides process execution functionality.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/runoshun/gpurun/internal/domain"
)

// ExecFunc is the function signature for syscall.Exec.
// It is used to allow testing of the Replace method.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Client implements domain.ProcessRunner.
type Client struct {
	execFunc ExecFunc // Function to use for exec (default: syscall.Exec)
}

// NewClient creates a new process runner client.
func NewClient() *Client {
	return &Client{
		execFunc: syscall.Exec,
	}
}

// SetExecFunc sets the exec function for testing purposes.
// This allows tests to verify the arguments passed to syscall.Exec
// without actually replacing the process.
func (c *Client) SetExecFunc(fn ExecFunc) {
	c.execFunc = fn
}

// Ensure Client implements domain.ProcessRunner interface.
var _ domain.ProcessRunner = (*Client)(nil)

// Run starts the composed command and blocks until it exits. The child
// inherits stdin, stdout and stderr; when spec.Tee is set, stdout and
// stderr are additionally copied to it. SIGINT and SIGTERM received
// while the child runs are forwarded to it. A non-zero child exit lands
// in the result, not in the error.
func (c *Client) Run(ctx context.Context, spec domain.ProcessSpec) (domain.ProcessResult, error) {
	path, err := exec.LookPath(spec.Argv[0])
	if err != nil {
		return domain.ProcessResult{}, fmt.Errorf("find %s: %w", spec.Argv[0], err)
	}

	// #nosec G204 - spec.Argv is composed by trusted UseCase code
	cmd := exec.CommandContext(ctx, path, spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.ExtraEnv...)

	cmd.Stdin = os.Stdin
	if spec.Tee != nil {
		// Stdout and stderr are distinct writers, so the runtime copies
		// them concurrently; the shared tee needs locking.
		tee := &syncWriter{w: spec.Tee}
		cmd.Stdout = io.MultiWriter(os.Stdout, tee)
		cmd.Stderr = io.MultiWriter(os.Stderr, tee)
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return domain.ProcessResult{}, fmt.Errorf("start %s: %w", spec.Argv[0], err)
	}

	// Forward termination signals to the child while it runs
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	signal.Stop(sigCh)
	close(done)

	if waitErr == nil {
		return domain.ProcessResult{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		// Children killed by signal N exit with 128+N, shell convention
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return domain.ProcessResult{
				ExitCode: 128 + int(status.Signal()),
				Signaled: true,
			}, nil
		}
		return domain.ProcessResult{ExitCode: exitErr.ExitCode()}, nil
	}

	return domain.ProcessResult{}, fmt.Errorf("wait for %s: %w", spec.Argv[0], waitErr)
}

// Replace replaces the current process image with the composed command.
// A changed working directory must be entered before the exec since the
// new image inherits it.
func (c *Client) Replace(spec domain.ProcessSpec) error {
	path, err := exec.LookPath(spec.Argv[0])
	if err != nil {
		return fmt.Errorf("find %s: %w", spec.Argv[0], err)
	}

	if spec.Dir != "" {
		if err := os.Chdir(spec.Dir); err != nil {
			return fmt.Errorf("chdir %s: %w", spec.Dir, err)
		}
	}

	env := append(os.Environ(), spec.ExtraEnv...)
	if err := c.execFunc(path, spec.Argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", spec.Argv[0], err)
	}

	// This line should never be reached
	return nil
}

// syncWriter serializes writes to a shared writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
