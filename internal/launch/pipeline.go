// Package launch runs the start, install and launch sequence against a
// resolved simulator instance.
package launch

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vburojevic/iossim/internal/bundle"
	"github.com/vburojevic/iossim/internal/domain"
	"github.com/vburojevic/iossim/internal/logging"
	"github.com/vburojevic/iossim/internal/simulator"
)

// DeviceResolver resolves a raw device type identifier
type DeviceResolver interface {
	Resolve(ctx context.Context, raw string) (*domain.ResolvedDevice, error)
}

// Controller drives simulator lifecycle commands
type Controller interface {
	Start(ctx context.Context, udid string) error
	EnsureBooted(ctx context.Context, udid string, timeout time.Duration) error
	Install(ctx context.Context, udid, appPath string) error
	Launch(ctx context.Context, opts simulator.LaunchOptions) (int, error)
	StreamLogs(ctx context.Context, udid string, w io.Writer) error
}

// Stage names a step of the launch sequence
type Stage string

const (
	StageDecode  Stage = "decode"
	StageResolve Stage = "resolve"
	StageStart   Stage = "start"
	StageInstall Stage = "install"
	StageLaunch  Stage = "launch"
	StageLogs    Stage = "logs"
)

// StageError records which stage failed
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline wires the collaborators of a launch
type Pipeline struct {
	Resolver   DeviceResolver
	Decoder    bundle.Decoder
	Controller Controller
	Logger     *zap.Logger
}

// Request describes one launch
type Request struct {
	AppPath         string
	Args            []string
	DeviceTypeID    string
	WaitForDebugger bool
}

// Result describes a successful launch
type Result struct {
	App    *bundle.AppInfo        `json:"app"`
	Device *domain.ResolvedDevice `json:"device"`
	PID    int                    `json:"pid,omitempty"`
}

// logger prefers the configured Logger, then the one carried by ctx
func (p *Pipeline) logger(ctx context.Context) *zap.Logger {
	if p.Logger == nil {
		return logging.FromContext(ctx)
	}
	return p.Logger
}

// Launch decodes the bundle, resolves the device, starts the simulator,
// installs and launches the app. Any failure stops the sequence.
// Log streaming is a separate step, see StreamLogs.
func (p *Pipeline) Launch(ctx context.Context, req Request) (*Result, error) {
	log := p.logger(ctx)

	log.Debug("reading bundle metadata", zap.String("app", req.AppPath))
	app, err := bundle.ReadAppInfo(p.Decoder, req.AppPath)
	if err != nil {
		return nil, &StageError{Stage: StageDecode, Err: err}
	}

	log.Debug("resolving device", zap.String("devicetypeid", req.DeviceTypeID))
	device, err := p.Resolver.Resolve(ctx, req.DeviceTypeID)
	if err != nil {
		return nil, &StageError{Stage: StageResolve, Err: err}
	}
	log.Debug("using device",
		zap.String("name", device.Name),
		zap.String("udid", device.UDID),
		zap.String("runtime", device.Runtime))

	if err := p.Controller.Start(ctx, device.UDID); err != nil {
		return nil, &StageError{Stage: StageStart, Err: err}
	}

	log.Debug("installing app", zap.String("bundle_id", app.BundleID))
	if err := p.Controller.Install(ctx, device.UDID, app.Path); err != nil {
		return nil, &StageError{Stage: StageInstall, Err: err}
	}

	pid, err := p.Controller.Launch(ctx, simulator.LaunchOptions{
		UDID:            device.UDID,
		BundleID:        app.BundleID,
		Args:            req.Args,
		WaitForDebugger: req.WaitForDebugger,
	})
	if err != nil {
		return nil, &StageError{Stage: StageLaunch, Err: err}
	}
	log.Info("launched app",
		zap.String("bundle_id", app.BundleID),
		zap.String("device", device.Name),
		zap.Int("pid", pid))

	return &Result{App: app, Device: device, PID: pid}, nil
}

// StreamLogs copies the launched device's log stream to w until ctx is
// cancelled.
func (p *Pipeline) StreamLogs(ctx context.Context, res *Result, w io.Writer) error {
	p.logger(ctx).Debug("streaming device logs", zap.String("udid", res.Device.UDID))
	if err := p.Controller.StreamLogs(ctx, res.Device.UDID, w); err != nil {
		return &StageError{Stage: StageLogs, Err: err}
	}
	return nil
}

// StartRequest describes a simulator start
type StartRequest struct {
	DeviceTypeID string
	// Wait blocks until the resolved device reports Booted
	Wait        bool
	BootTimeout time.Duration
}

// Start resolves the identifier and starts the simulator on that device.
// Resolution failures are logged and the simulator is started without a
// specific device. Controller failures are returned.
func (p *Pipeline) Start(ctx context.Context, req StartRequest) (*domain.ResolvedDevice, error) {
	log := p.logger(ctx)

	device, err := p.Resolver.Resolve(ctx, req.DeviceTypeID)
	if err != nil {
		log.Warn("starting simulator without a device", zap.Error(err))
		device = nil
	}

	udid := ""
	if device != nil {
		udid = device.UDID
	}
	if err := p.Controller.Start(ctx, udid); err != nil {
		return device, &StageError{Stage: StageStart, Err: err}
	}

	if req.Wait && udid != "" {
		if err := p.Controller.EnsureBooted(ctx, udid, req.BootTimeout); err != nil {
			return device, &StageError{Stage: StageStart, Err: err}
		}
	}
	return device, nil
}
