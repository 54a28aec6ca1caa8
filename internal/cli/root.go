package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/vburojevic/iossim/internal/bundle"
	"github.com/vburojevic/iossim/internal/config"
	"github.com/vburojevic/iossim/internal/domain"
	"github.com/vburojevic/iossim/internal/launch"
	"github.com/vburojevic/iossim/internal/logging"
	"github.com/vburojevic/iossim/internal/resolve"
)

// CLI is the root command structure for iossim
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Quiet   bool   `short:"q" help:"Only print errors and requested data"`
	Verbose bool   `short:"v" help:"Show debug output (simctl commands, resolution steps)"`

	// Commands
	ShowSDKs        ShowSDKsCmd        `cmd:"" name:"showsdks" help:"List the installed simulator runtimes"`
	ShowDeviceTypes ShowDeviceTypesCmd `cmd:"" name:"showdevicetypes" help:"List every usable --devicetypeid value"`
	Resolve         ResolveCmd         `cmd:"" help:"Resolve a --devicetypeid to a simulator instance"`
	Launch          LaunchCmd          `cmd:"" help:"Install and launch an .app bundle on a simulator"`
	Start           StartCmd           `cmd:"" help:"Start Simulator.app on a device"`
	Pick            PickCmd            `cmd:"" help:"Interactively pick a --devicetypeid"`
	Config          ConfigCmd          `cmd:"" help:"Show or manage configuration"`
	Doctor          DoctorCmd          `cmd:"" help:"Check system requirements and configuration"`
	Version         VersionCmd         `cmd:"" help:"Show version information"`
	Completion      CompletionCmd      `cmd:"" help:"Generate shell completions"`
}

// SimulatorService is the simctl surface the commands need
type SimulatorService interface {
	resolve.CatalogSource
	launch.Controller
	Runtimes(ctx context.Context) ([]domain.Runtime, error)
	CheckPrerequisites(ctx context.Context) error
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
	Sim     SimulatorService
	Decoder bundle.Decoder
}

// KongVars exposes config values as flag defaults
func KongVars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":       cfg.Format,
		"config_devicetypeid": cfg.Defaults.DeviceTypeID,
		"config_log":          cfg.Defaults.Log,
		"config_exit":         strconv.FormatBool(cfg.Defaults.Exit),
		"config_boot_timeout": bootTimeout(cfg).String(),
	}
}

func bootTimeout(cfg *config.Config) time.Duration {
	d, err := time.ParseDuration(cfg.Defaults.BootTimeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet || cfg.Quiet,
		Verbose: cli.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Logger:  zap.NewNop(),
		Decoder: bundle.NewPlistDecoder(),
	}
	return g
}

// Debug logs a formatted debug message
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger().Sugar().Debugf(format, args...)
}

func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// context returns a base context carrying the logger
func (g *Globals) context() context.Context {
	return logging.WithLogger(context.Background(), g.logger())
}

func (g *Globals) ndjson() bool {
	return g.Format == "ndjson"
}

// resolveOptions reads the resolution tuning from config
func (g *Globals) resolveOptions() (resolve.Options, error) {
	opts := resolve.Options{OSName: resolve.DefaultOSName, Order: resolve.LexicalOrder}
	if g.Config == nil {
		return opts, nil
	}
	if g.Config.Defaults.OSName != "" {
		opts.OSName = g.Config.Defaults.OSName
	}
	order, err := resolve.ParseRuntimeOrder(g.Config.Defaults.RuntimeOrder)
	if err != nil {
		return opts, err
	}
	opts.Order = order
	return opts, nil
}

// resolver builds a Resolver over the simulator service
func (g *Globals) resolver() (*resolve.Resolver, error) {
	opts, err := g.resolveOptions()
	if err != nil {
		return nil, err
	}
	return resolve.NewResolver(g.Sim, opts, g.logger()), nil
}

// pipeline builds the launch pipeline
func (g *Globals) pipeline() (*launch.Pipeline, error) {
	r, err := g.resolver()
	if err != nil {
		return nil, err
	}
	dec := g.Decoder
	if dec == nil {
		dec = bundle.NewPlistDecoder()
	}
	return &launch.Pipeline{
		Resolver:   r,
		Decoder:    dec,
		Controller: g.Sim,
		Logger:     g.logger(),
	}, nil
}

// requireSimctl runs the prerequisite check every simctl-backed command needs
func (g *Globals) requireSimctl(ctx context.Context) error {
	if err := g.Sim.CheckPrerequisites(ctx); err != nil {
		return outputErrorCommon(g, CodePrerequisites, err.Error(), hintForTooling(err))
	}
	return nil
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.ndjson() {
		return newEmitter(globals).Metadata(Version, Commit)
	}
	_, err := fmt.Fprintf(globals.Stdout, "iossim version %s (%s)\n", Version, Commit)
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
