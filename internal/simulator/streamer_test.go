package simulator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManager_StreamLogs(t *testing.T) {
	t.Run("copies stdout and prefixed stderr", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout: strings.NewReader("Timestamp Ty Process\nlaunched com.example.app\n"),
			stderr: strings.NewReader("Filtering the log data\n"),
		}
		mgr := NewManager(WithRunner(runner))

		var buf bytes.Buffer
		require.NoError(t, mgr.StreamLogs(context.Background(), "AAA-17", &buf))

		out := buf.String()
		assert.Contains(t, out, "Timestamp Ty Process\n")
		assert.Contains(t, out, "launched com.example.app\n")
		assert.Contains(t, out, "[stderr] Filtering the log data\n")
		assert.Equal(t, []string{"xcrun simctl spawn AAA-17 log stream --style compact"}, runner.Calls())
	})

	t.Run("reports a failed log process", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout:  strings.NewReader(""),
			stderr:  strings.NewReader(""),
			waitErr: errors.New("exit status 1"),
		}
		mgr := NewManager(WithRunner(runner))

		err := mgr.StreamLogs(context.Background(), "AAA-17", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log stream exited")
	})

	t.Run("cancellation is a clean stop", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout:  strings.NewReader("one\n"),
			stderr:  strings.NewReader(""),
			waitErr: errors.New("signal: killed"),
		}
		mgr := NewManager(WithRunner(runner))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, mgr.StreamLogs(ctx, "AAA-17", &bytes.Buffer{}))
	})

	t.Run("overlong line is an error", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout: strings.NewReader(strings.Repeat("x", maxLogLineBytes+10) + "\n"),
			stderr: strings.NewReader(""),
		}
		mgr := NewManager(WithRunner(runner))

		err := mgr.StreamLogs(context.Background(), "AAA-17", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line too long")
	})

	// stderr stays open like a live log stream; it only closes once the
	// start context is cancelled, as exec.CommandContext kills the child.
	openStderr := func(runner *fakeRunner) *io.PipeReader {
		pr, pw := io.Pipe()
		runner.onStart = func(ctx context.Context) {
			go func() {
				<-ctx.Done()
				pw.Close()
			}()
		}
		return pr
	}

	streamWithin := func(t *testing.T, mgr *Manager, w io.Writer) error {
		t.Helper()
		done := make(chan error, 1)
		go func() { done <- mgr.StreamLogs(context.Background(), "AAA-17", w) }()
		select {
		case err := <-done:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("StreamLogs did not return after a copy failed")
			return nil
		}
	}

	t.Run("overlong line stops a live stream", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout:  strings.NewReader(strings.Repeat("x", maxLogLineBytes+10) + "\n"),
			stderr:  openStderr(runner),
			waitErr: errors.New("signal: killed"),
		}
		mgr := NewManager(WithRunner(runner))

		err := streamWithin(t, mgr, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdout line too long")
	})

	t.Run("write failure stops a live stream", func(t *testing.T) {
		runner := newFakeRunner()
		runner.proc = &fakeProcess{
			stdout:  strings.NewReader("one\n"),
			stderr:  openStderr(runner),
			waitErr: errors.New("signal: killed"),
		}
		mgr := NewManager(WithRunner(runner))

		err := streamWithin(t, mgr, failingWriter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdout write error")
	})
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
