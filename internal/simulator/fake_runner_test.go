package simulator

import (
	"context"
	"io"
	"strings"
	"sync"
)

// fakeRunner records invocations and replays canned output keyed by the
// full command line.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	outputs map[string]string
	errs    map[string]error
	lookErr error
	proc    *fakeProcess
	// onStart sees the context a long-running command was started with
	onStart func(ctx context.Context)
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string]string{},
		errs:    map[string]error{},
	}
}

func (f *fakeRunner) record(name string, args []string) string {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	return key
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	key := f.record(name, args)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

func (f *fakeRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	f.record(name, args)
	if f.onStart != nil {
		f.onStart(ctx)
	}
	return f.proc, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeProcess struct {
	stdout  io.Reader
	stderr  io.Reader
	waitErr error
}

func (p *fakeProcess) Stdout() io.Reader { return p.stdout }
func (p *fakeProcess) Stderr() io.Reader { return p.stderr }
func (p *fakeProcess) Wait() error       { return p.waitErr }
