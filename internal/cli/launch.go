package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vburojevic/iossim/internal/launch"
	"github.com/vburojevic/iossim/internal/output"
)

// LaunchCmd installs an app bundle on the resolved simulator and launches it
type LaunchCmd struct {
	AppPath         string   `arg:"" name:"app-path" type:"path" help:"Path to the built .app bundle"`
	Args            []string `arg:"" optional:"" help:"Arguments passed to the app (after --)"`
	DeviceTypeID    string   `name:"devicetypeid" short:"d" default:"${config_devicetypeid}" help:"Device type and optional runtime, e.g. \"iPhone-15, 17.0\""`
	Log             string   `default:"${config_log}" placeholder:"PATH" help:"Stream device logs to PATH (\"-\" for stdout) until interrupted"`
	Exit            bool     `default:"${config_exit}" help:"Exit right after the app is launched"`
	WaitForDebugger bool     `help:"Launch suspended until a debugger attaches"`
}

// Run executes the launch command
func (c *LaunchCmd) Run(globals *Globals) error {
	streamLogs := c.Log != "" && !c.Exit
	if streamLogs && c.Log == "-" && globals.ndjson() {
		return outputErrorCommon(globals, CodeInvalidConfig,
			"--log - cannot be combined with --format ndjson",
			"Stream logs to a file with --log PATH, or use --format text")
	}

	ctx, stop := signal.NotifyContext(globals.context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}

	p, err := globals.pipeline()
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidConfig, err.Error())
	}

	result, err := p.Launch(ctx, launch.Request{
		AppPath:         c.AppPath,
		Args:            c.Args,
		DeviceTypeID:    c.DeviceTypeID,
		WaitForDebugger: c.WaitForDebugger,
	})
	if err != nil {
		return emitFailure(globals, err)
	}
	c.outputResult(globals, result)

	if !streamLogs {
		return nil
	}

	logs, closeLogs, err := c.openLog(globals)
	if err != nil {
		return outputErrorCommon(globals, CodeLogStreamFailed, err.Error())
	}
	defer closeLogs()

	c.announceLogs(globals, result)
	if err := p.StreamLogs(ctx, result, logs); err != nil {
		return emitFailure(globals, err)
	}
	return nil
}

// openLog resolves --log into a writer
func (c *LaunchCmd) openLog(globals *Globals) (io.Writer, func(), error) {
	if c.Log == "-" {
		return globals.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(c.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			globals.Debug("failed to close log file: %v", err)
		}
	}, nil
}

func (c *LaunchCmd) announceLogs(globals *Globals, res *launch.Result) {
	if globals.Quiet {
		return
	}
	msg := "streaming device logs to " + c.Log + " (Ctrl+C to stop)"
	if globals.ndjson() {
		if err := newEmitter(globals).Info(msg, res.Device.Name, res.Device.UDID); err != nil {
			globals.Debug("failed to write info record: %v", err)
		}
		return
	}
	if c.Log == "-" {
		msg = "streaming device logs (Ctrl+C to stop)"
	}
	fmt.Fprintln(globals.Stderr, output.Styles.Label.Render(msg))
}

func (c *LaunchCmd) outputResult(globals *Globals, res *launch.Result) {
	if globals.ndjson() {
		err := newEmitter(globals).Launched(&output.LaunchedOutput{
			BundleID: res.App.BundleID,
			AppPath:  res.App.Path,
			Device:   res.Device.Name,
			UDID:     res.Device.UDID,
			Runtime:  res.Device.Runtime,
			PID:      res.PID,
		})
		if err != nil {
			globals.Debug("failed to write launch result: %v", err)
		}
		return
	}
	if globals.Quiet {
		return
	}
	if _, err := fmt.Fprintf(globals.Stdout, "Launched %s on %s (%s)\n", res.App.BundleID, res.Device.Name, res.Device.Runtime); err != nil {
		globals.Debug("failed to write launch result: %v", err)
	}
}

// StartCmd starts Simulator.app, focused on the resolved device when possible
type StartCmd struct {
	DeviceTypeID string        `name:"devicetypeid" short:"d" default:"${config_devicetypeid}" help:"Device type and optional runtime; Simulator starts anyway if it does not resolve"`
	Wait         bool          `short:"w" help:"Wait until the device reports Booted"`
	BootTimeout  time.Duration `default:"${config_boot_timeout}" help:"How long --wait waits"`
}

// Run executes the start command
func (c *StartCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(globals.context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}

	p, err := globals.pipeline()
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidConfig, err.Error())
	}

	device, err := p.Start(ctx, launch.StartRequest{
		DeviceTypeID: c.DeviceTypeID,
		Wait:         c.Wait,
		BootTimeout:  c.BootTimeout,
	})
	if err != nil {
		return emitFailure(globals, err)
	}

	out := &output.StartedOutput{}
	if device != nil {
		out.Device = device.Name
		out.UDID = device.UDID
		out.Runtime = device.Runtime
		out.Booted = c.Wait
	} else {
		emitWarning(globals, "no device resolved; Simulator started with its last selection")
	}

	if globals.ndjson() {
		return newEmitter(globals).Started(out)
	}
	if globals.Quiet {
		return nil
	}
	if device == nil {
		_, err = fmt.Fprintln(globals.Stdout, "Started Simulator")
		return err
	}
	_, err = fmt.Fprintf(globals.Stdout, "Started Simulator on %s (%s)\n", device.Name, device.Runtime)
	return err
}
