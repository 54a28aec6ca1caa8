package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/iossim/internal/output"
	"github.com/vburojevic/iossim/internal/resolve"
)

const listTimeout = 30 * time.Second

// ShowSDKsCmd lists installed simulator runtimes
type ShowSDKsCmd struct{}

// Run executes the showsdks command
func (c *ShowSDKsCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(globals.context(), listTimeout)
	defer cancel()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}

	runtimes, err := globals.Sim.Runtimes(ctx)
	if err != nil {
		return outputErrorCommon(globals, CodeCatalog, err.Error(), hintFor(CodeCatalog, err))
	}

	if globals.ndjson() {
		emitter := newEmitter(globals)
		for _, rt := range runtimes {
			if err := emitter.SDK(rt); err != nil {
				return err
			}
		}
		return nil
	}

	if len(runtimes) == 0 {
		_, err := fmt.Fprintln(globals.Stdout, "No simulator runtimes installed")
		return err
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Runtime", "Version", "Identifier", "Status")
	for _, rt := range runtimes {
		if err := table.Append([]string{rt.Name, rt.Version, rt.Identifier, output.AvailabilityText(rt.Available)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// ShowDeviceTypesCmd lists every usable --devicetypeid value
type ShowDeviceTypesCmd struct{}

// Run executes the showdevicetypes command
func (c *ShowDeviceTypesCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(globals.context(), listTimeout)
	defer cancel()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}

	cat, err := globals.Sim.Catalog(ctx)
	if err != nil {
		return emitFailure(globals, &resolve.CatalogError{Err: err})
	}
	opts, err := globals.resolveOptions()
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidConfig, err.Error())
	}

	emitter := newEmitter(globals)
	for _, choice := range resolve.Choices(cat, opts.OSName) {
		if globals.ndjson() {
			if err := emitter.DeviceType(choice.Identifier, choice.Name, choice.Runtime); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(globals.Stdout, choice.Identifier); err != nil {
			return err
		}
	}
	return nil
}

// ResolveCmd prints the simulator instance a --devicetypeid resolves to
type ResolveCmd struct {
	DeviceTypeID string `name:"devicetypeid" short:"d" default:"${config_devicetypeid}" help:"Device type and optional runtime, e.g. \"iPhone-15, 17.0\""`
}

// Run executes the resolve command
func (c *ResolveCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(globals.context(), listTimeout)
	defer cancel()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}

	r, err := globals.resolver()
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidConfig, err.Error())
	}
	device, err := r.Resolve(ctx, c.DeviceTypeID)
	if err != nil {
		return emitFailure(globals, err)
	}

	if globals.ndjson() {
		return newEmitter(globals).Device(device)
	}
	return output.NewTextWriter(globals.Stdout).WriteDevice(device)
}
