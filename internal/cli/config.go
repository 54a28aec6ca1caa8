package cli

import (
	"fmt"

	"github.com/vburojevic/iossim/internal/config"
	"github.com/vburojevic/iossim/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.ndjson() {
		return newEmitter(globals).Raw(map[string]interface{}{
			"type":          "config",
			"schemaVersion": output.SchemaVersion,
			"format":        cfg.Format,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"defaults": map[string]interface{}{
				"devicetypeid":  cfg.Defaults.DeviceTypeID,
				"log":           cfg.Defaults.Log,
				"exit":          cfg.Defaults.Exit,
				"os_name":       cfg.Defaults.OSName,
				"runtime_order": cfg.Defaults.RuntimeOrder,
				"boot_timeout":  cfg.Defaults.BootTimeout,
			},
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  devicetypeid:  %s\n", cfg.Defaults.DeviceTypeID)
	fmt.Fprintf(globals.Stdout, "  log:           %s\n", cfg.Defaults.Log)
	fmt.Fprintf(globals.Stdout, "  exit:          %v\n", cfg.Defaults.Exit)
	fmt.Fprintf(globals.Stdout, "  os_name:       %s\n", cfg.Defaults.OSName)
	fmt.Fprintf(globals.Stdout, "  runtime_order: %s\n", cfg.Defaults.RuntimeOrder)
	fmt.Fprintf(globals.Stdout, "  boot_timeout:  %s\n", cfg.Defaults.BootTimeout)

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.ndjson() {
		return newEmitter(globals).Raw(map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.iossim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.iossim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/iossim/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# iossim configuration file
# Place this file at ./.iossim.yaml, ~/.iossim.yaml or ~/.config/iossim/config.yaml

# Output format: "text" (default) or "ndjson"
format: text

# Only print errors and requested data
quiet: false

# Enable debug output
verbose: false

defaults:
  # Used when --devicetypeid is not passed, e.g. "iPhone-15, 17.0"
  # devicetypeid: iPhone-15

  # launch: stream device logs to this file ("-" for stdout)
  # log: /tmp/iossim-device.log

  # launch: return right after the app starts
  exit: false

  # Runtime labels without this token get it prepended ("17.0" -> "iOS 17.0")
  os_name: iOS

  # How the default runtime is chosen when none is given:
  #   lexical - greatest label as a plain string ("iOS 9.3" beats "iOS 10.0")
  #   version - greatest dotted version number
  runtime_order: lexical

  # start --wait timeout
  boot_timeout: 2m
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
