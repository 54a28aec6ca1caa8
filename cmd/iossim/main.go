package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/iossim/internal/cli"
	"github.com/vburojevic/iossim/internal/config"
	"github.com/vburojevic/iossim/internal/logging"
	"github.com/vburojevic/iossim/internal/simulator"
)

const quickStart = `iossim - launch iOS apps in the simulator from the command line

START HERE:
  iossim launch build/Debug-iphonesimulator/MyApp.app --devicetypeid "iPhone-15, 17.0"

Useful commands:
  iossim showdevicetypes                List every --devicetypeid value
  iossim showsdks                       List installed runtimes
  iossim start --devicetypeid iPhone-15 Open Simulator on a device
  iossim pick                           Choose a device interactively
  iossim doctor                         Check your setup
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI
	ctx := kong.Parse(&c,
		kong.Name("iossim"),
		kong.Description("Install and launch iOS apps on simulator devices chosen by device type and runtime"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.KongVars(cfg),
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	logger := logging.New(logging.Options{
		Verbose: globals.Verbose,
		Quiet:   globals.Quiet,
		Output:  os.Stderr,
	})
	globals.Logger = logger
	globals.Sim = simulator.NewManager(simulator.WithLogger(logger))

	err = ctx.Run(globals)
	_ = logger.Sync()
	os.Exit(cli.ExitCode(err))
}
