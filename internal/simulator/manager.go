package simulator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/iossim/internal/domain"
)

// Manager queries the simulator catalog and drives simulator lifecycle
// operations through `xcrun simctl`
type Manager struct {
	runner       Runner
	xcrunPath    string
	pollInterval time.Duration
	clock        clock.Clock
	logger       *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithRunner replaces the command runner
func WithRunner(r Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithClock replaces the clock used for boot polling
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger for command tracing
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithPollInterval sets how often WaitForBoot re-reads device state
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) { m.pollInterval = d }
}

// NewManager creates a new simulator manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		runner:       NewExecRunner(),
		xcrunPath:    "xcrun",
		pollInterval: 2 * time.Second,
		clock:        clock.New(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LaunchOptions describes an app launch
type LaunchOptions struct {
	UDID            string
	BundleID        string
	Args            []string
	WaitForDebugger bool
}

func (m *Manager) simctl(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"simctl"}, args...)
	m.logger.Debug("running command", zap.String("cmd", m.xcrunPath), zap.Strings("args", full))
	return m.runner.Output(ctx, m.xcrunPath, full...)
}

// CheckPrerequisites verifies xcrun is on PATH and simctl answers
func (m *Manager) CheckPrerequisites(ctx context.Context) error {
	if _, err := m.runner.LookPath(m.xcrunPath); err != nil {
		return err
	}
	if _, err := m.simctl(ctx, "help"); err != nil {
		return fmt.Errorf("simctl unavailable: %w", err)
	}
	return nil
}

// Catalog returns a snapshot of device types, runtimes and devices
func (m *Manager) Catalog(ctx context.Context) (*domain.Catalog, error) {
	output, err := m.simctl(ctx, "list", "--json")
	if err != nil {
		return nil, fmt.Errorf("simctl list failed: %w", err)
	}
	return ParseCatalog(output)
}

// Runtimes returns the installed runtimes (SDKs)
func (m *Manager) Runtimes(ctx context.Context) ([]domain.Runtime, error) {
	output, err := m.simctl(ctx, "list", "runtimes", "--json")
	if err != nil {
		return nil, fmt.Errorf("simctl list runtimes failed: %w", err)
	}
	return ParseRuntimes(output)
}

// Start brings up Simulator.app. With a UDID the device is booted first and
// focused; without one Simulator.app opens whatever it had selected.
func (m *Manager) Start(ctx context.Context, udid string) error {
	if udid == "" {
		return m.openSimulatorApp(ctx)
	}
	if err := m.BootDevice(ctx, udid); err != nil {
		return err
	}
	return m.openSimulatorApp(ctx, "--args", "-CurrentDeviceUDID", udid)
}

func (m *Manager) openSimulatorApp(ctx context.Context, extra ...string) error {
	args := append([]string{"-a", "Simulator"}, extra...)
	m.logger.Debug("running command", zap.String("cmd", "open"), zap.Strings("args", args))
	if _, err := m.runner.Output(ctx, "open", args...); err != nil {
		return fmt.Errorf("failed to open Simulator.app: %w", err)
	}
	return nil
}

// BootDevice boots a simulator by UDID
func (m *Manager) BootDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "boot", udid)
	if err != nil {
		// Check if already booted
		if strings.Contains(err.Error(), "current state: Booted") {
			return nil
		}
		return fmt.Errorf("failed to boot device: %w", err)
	}
	return nil
}

// GetDevice returns the current state of a device by UDID
func (m *Manager) GetDevice(ctx context.Context, udid string) (*domain.DeviceInstance, error) {
	cat, err := m.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	device, _, ok := cat.FindDevice(udid)
	if !ok {
		return nil, fmt.Errorf("device not found: %s", udid)
	}
	return device, nil
}

// WaitForBoot waits for a device to finish booting
func (m *Manager) WaitForBoot(ctx context.Context, udid string, timeout time.Duration) error {
	deadline := m.clock.Now().Add(timeout)
	ticker := m.clock.Ticker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if m.clock.Now().After(deadline) {
				return fmt.Errorf("timeout waiting for device to boot")
			}

			device, err := m.GetDevice(ctx, udid)
			if err != nil {
				continue
			}

			if device.IsBooted() {
				return nil
			}
		}
	}
}

// EnsureBooted boots a device if it's not already booted and waits for boot to complete
func (m *Manager) EnsureBooted(ctx context.Context, udid string, timeout time.Duration) error {
	device, err := m.GetDevice(ctx, udid)
	if err != nil {
		return err
	}

	if device.IsBooted() {
		return nil
	}

	if err := m.BootDevice(ctx, udid); err != nil {
		return err
	}

	return m.WaitForBoot(ctx, udid, timeout)
}

// Install installs the app bundle at appPath onto the device
func (m *Manager) Install(ctx context.Context, udid, appPath string) error {
	if _, err := m.simctl(ctx, "install", udid, appPath); err != nil {
		return fmt.Errorf("install on %s: %w", udid, err)
	}
	return nil
}

// Launch starts an installed app and returns its PID (0 if unknown)
func (m *Manager) Launch(ctx context.Context, opts LaunchOptions) (int, error) {
	args := []string{"launch"}
	if opts.WaitForDebugger {
		args = append(args, "--wait-for-debugger")
	}
	args = append(args, opts.UDID, opts.BundleID)
	args = append(args, opts.Args...)

	output, err := m.simctl(ctx, args...)
	if err != nil {
		return 0, fmt.Errorf("launch %s: %w", opts.BundleID, err)
	}
	return parseLaunchPID(output), nil
}

// parseLaunchPID reads "com.example.app: 1234"
func parseLaunchPID(output []byte) int {
	line := strings.TrimSpace(string(output))
	idx := strings.LastIndex(line, ": ")
	if idx < 0 {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(line[idx+2:]))
	if err != nil {
		return 0
	}
	return pid
}
