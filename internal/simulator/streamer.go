package simulator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxLogLineBytes = 1024 * 1024

// StreamLogs copies the device's unified log to w until ctx is cancelled or
// the log process exits. Lines from the log tool's stderr are prefixed with
// "[stderr] ".
func (m *Manager) StreamLogs(ctx context.Context, udid string, w io.Writer) error {
	args := []string{"simctl", "spawn", udid, "log", "stream", "--style", "compact"}
	m.logger.Debug("starting log stream", zap.String("udid", udid), zap.Strings("args", args))

	// A failed copy cancels streamCtx, which kills the log process and
	// unblocks the other reader.
	group, streamCtx := errgroup.WithContext(ctx)
	proc, err := m.runner.Start(streamCtx, m.xcrunPath, args...)
	if err != nil {
		return fmt.Errorf("failed to start log stream: %w", err)
	}

	out := &lineWriter{w: w}
	group.Go(func() error {
		return copyLines(proc.Stdout(), out, "", "stdout")
	})
	group.Go(func() error {
		return copyLines(proc.Stderr(), out, "[stderr] ", "stderr")
	})

	scanErr := group.Wait()
	waitErr := proc.Wait()

	if ctx.Err() != nil {
		// Cancellation is the normal way to stop streaming.
		return nil
	}
	if scanErr != nil {
		return scanErr
	}
	if waitErr != nil {
		return fmt.Errorf("log stream exited: %w", waitErr)
	}
	return nil
}

func copyLines(r io.Reader, out *lineWriter, prefix, stream string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineBytes)
	for scanner.Scan() {
		if err := out.WriteLine(prefix + scanner.Text()); err != nil {
			return fmt.Errorf("%s write error: %w", stream, err)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%s line too long (>1MiB): %w", stream, err)
		}
		return fmt.Errorf("%s read error: %w", stream, err)
	}
	return nil
}

// lineWriter serializes whole lines from concurrent readers
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) WriteLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := io.WriteString(l.w, line+"\n")
	return err
}
