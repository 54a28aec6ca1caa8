package cli

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/iossim/internal/config"
	"github.com/vburojevic/iossim/internal/output"
	"github.com/vburojevic/iossim/internal/resolve"
)

// DoctorCmd checks system requirements and configuration
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// xcodeSelectPath reports the active developer directory
var xcodeSelectPath = func(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "xcode-select", "-p").Output()
	return strings.TrimSpace(string(out)), err
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(globals.context(), 30*time.Second)
	defer cancel()

	checks := []checkResult{
		c.checkSimctl(ctx, globals),
		c.checkXcode(ctx),
		c.checkConfig(globals),
	}
	if checks[0].Status != "error" {
		checks = append(checks, c.checkRuntimes(ctx, globals), c.checkDevices(ctx, globals))
	}

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		switch check.Status {
		case "error":
			errorCount++
		case "warning":
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.ndjson() {
		return newEmitter(globals).Raw(report)
	}

	fmt.Fprintln(globals.Stdout, output.Styles.Header.Render("iossim doctor"))

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Check", "Status", "Message", "Details")
	for _, check := range checks {
		status := output.StatusText(check.Status == "ok", check.Status == "warning")
		if err := table.Append([]string{check.Name, status, check.Message, check.Details}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}
	return nil
}

func (c *DoctorCmd) checkSimctl(ctx context.Context, globals *Globals) checkResult {
	if err := globals.Sim.CheckPrerequisites(ctx); err != nil {
		details := hintForTooling(err)
		if details == "" {
			details = "Install Xcode Command Line Tools: xcode-select --install"
		}
		return checkResult{
			Name:    "simctl",
			Status:  "error",
			Message: err.Error(),
			Details: details,
		}
	}
	return checkResult{
		Name:    "simctl",
		Status:  "ok",
		Message: "xcrun simctl available",
	}
}

func (c *DoctorCmd) checkXcode(ctx context.Context) checkResult {
	path, err := xcodeSelectPath(ctx)
	if err != nil {
		return checkResult{
			Name:    "Xcode",
			Status:  "error",
			Message: "Xcode not found",
			Details: "Install Xcode from the App Store or run: xcode-select --install",
		}
	}

	// Xcode path patterns: Xcode.app, Xcode-16.0.app, Xcode-beta.app, etc.
	if strings.Contains(path, "Xcode") && strings.Contains(path, ".app") {
		return checkResult{
			Name:    "Xcode",
			Status:  "ok",
			Message: "Xcode selected",
			Details: path,
		}
	}

	return checkResult{
		Name:    "Xcode",
		Status:  "warning",
		Message: "Only Command Line Tools installed",
		Details: "Full Xcode is required for simulators: " + path,
	}
}

func (c *DoctorCmd) checkConfig(globals *Globals) checkResult {
	configPath := config.ConfigFile()
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: iossim config generate > ~/.iossim.yaml",
		}
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}
	if _, err := resolve.ParseRuntimeOrder(cfg.Defaults.RuntimeOrder); err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Invalid defaults.runtime_order",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
		Details: fmt.Sprintf("Format: %s, runtime order: %s", cfg.Format, cfg.Defaults.RuntimeOrder),
	}
}

func (c *DoctorCmd) checkRuntimes(ctx context.Context, globals *Globals) checkResult {
	runtimes, err := globals.Sim.Runtimes(ctx)
	if err != nil {
		return checkResult{
			Name:    "Runtimes",
			Status:  "error",
			Message: "Failed to list runtimes",
			Details: err.Error(),
		}
	}

	var available []string
	for _, rt := range runtimes {
		if rt.Available {
			available = append(available, rt.Name)
		}
	}
	if len(available) == 0 {
		return checkResult{
			Name:    "Runtimes",
			Status:  "warning",
			Message: "No available runtimes",
			Details: "Install one in Xcode > Settings > Platforms",
		}
	}
	return checkResult{
		Name:    "Runtimes",
		Status:  "ok",
		Message: fmt.Sprintf("%d available", len(available)),
		Details: strings.Join(available, ", "),
	}
}

func (c *DoctorCmd) checkDevices(ctx context.Context, globals *Globals) checkResult {
	cat, err := globals.Sim.Catalog(ctx)
	if err != nil {
		return checkResult{
			Name:    "Devices",
			Status:  "error",
			Message: "Failed to list simulators",
			Details: err.Error(),
		}
	}

	total, booted := 0, 0
	for _, group := range cat.Devices {
		for _, d := range group.Devices {
			total++
			if d.IsBooted() {
				booted++
			}
		}
	}
	opts, _ := globals.resolveOptions()
	usable := len(resolve.Choices(cat, opts.OSName))

	if usable == 0 {
		return checkResult{
			Name:    "Devices",
			Status:  "warning",
			Message: "No launchable devices",
			Details: "Create simulators in Xcode > Window > Devices and Simulators",
		}
	}
	return checkResult{
		Name:    "Devices",
		Status:  "ok",
		Message: fmt.Sprintf("%d devices, %d booted", total, booted),
		Details: fmt.Sprintf("%d usable --devicetypeid values", usable),
	}
}
