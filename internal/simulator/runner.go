package simulator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes external commands on behalf of the Manager.
type Runner interface {
	// Output runs a command to completion and returns its stdout.
	// Stderr is folded into the returned error on failure.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start launches a long-running command whose output is consumed by the caller.
	Start(ctx context.Context, name string, args ...string) (Process, error)

	// LookPath searches for an executable in PATH.
	LookPath(name string) (string, error)
}

// Process is a started command. Stdout and Stderr must be drained before Wait.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	Wait() error
}

type execRunner struct{}

// NewExecRunner returns a Runner backed by os/exec
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (execRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }
func (p *execProcess) Wait() error       { return p.cmd.Wait() }
