// Package resolve turns a loose device type identifier such as "iPhone-X" or
// "iPhone-X, 10.3" into exactly one provisioned simulator instance, using a
// catalog snapshot of device types, runtimes and devices.
package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/vburojevic/iossim/internal/domain"
)

// CatalogSource supplies a fresh catalog snapshot
type CatalogSource interface {
	Catalog(ctx context.Context) (*domain.Catalog, error)
}

// Options tune how runtimes are canonicalized and defaulted
type Options struct {
	OSName string       // token a runtime label must contain; "iOS" when empty
	Order  RuntimeOrder // default runtime ordering; LexicalOrder when empty
}

// Resolver resolves identifiers against catalogs fetched from a CatalogSource
type Resolver struct {
	source CatalogSource
	opts   Options
	logger *zap.Logger
}

// NewResolver creates a resolver. A nil logger disables logging.
func NewResolver(source CatalogSource, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{source: source, opts: opts, logger: logger}
}

// Resolve parses raw, queries the catalog and resolves the identifier.
// A missing identifier fails before the catalog is queried.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*domain.ResolvedDevice, error) {
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("parsed device type identifier",
		zap.String("device_type", id.DeviceType),
		zap.String("runtime", id.Runtime))

	cat, err := r.source.Catalog(ctx)
	if err != nil {
		return nil, &CatalogError{Err: err}
	}

	device, err := ResolveIn(cat, id, r.opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved device",
		zap.String("name", device.Name),
		zap.String("runtime", device.Runtime),
		zap.String("udid", device.UDID))
	return device, nil
}

// ResolveIn resolves a parsed identifier against cat. It has no side effects.
func ResolveIn(cat *domain.Catalog, id Identifier, opts Options) (*domain.ResolvedDevice, error) {
	name, ok := deviceTypeName(cat, id.DeviceType)
	if !ok {
		return nil, &UnknownDeviceTypeError{DeviceType: id.DeviceType}
	}

	runtime := id.Runtime
	if !id.HasRuntime() {
		var err error
		runtime, err = DefaultRuntime(cat, name, opts.Order)
		if err != nil {
			return nil, err
		}
	}
	runtime = CanonicalRuntime(runtime, opts.OSName)

	udid, ok := instanceID(cat, runtime, name)
	if !ok {
		return nil, &DeviceNotFoundError{Name: name, Runtime: runtime}
	}

	return &domain.ResolvedDevice{
		Name:    name,
		UDID:    udid,
		Runtime: runtime,
	}, nil
}

// deviceTypeName returns the name of the first device type whose id matches exactly
func deviceTypeName(cat *domain.Catalog, deviceTypeID string) (string, bool) {
	for _, dt := range cat.DeviceTypes {
		if dt.ID == deviceTypeID {
			return dt.Name, true
		}
	}
	return "", false
}

// instanceID returns the first instance named name in a group labelled runtime
func instanceID(cat *domain.Catalog, runtime, name string) (string, bool) {
	for _, group := range cat.Devices {
		if group.Runtime != runtime {
			continue
		}
		for _, device := range group.Devices {
			if device.Name == name {
				return device.UDID, true
			}
		}
	}
	return "", false
}
