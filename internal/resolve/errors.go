package resolve

import (
	"errors"
	"fmt"

	"github.com/vburojevic/iossim/internal/bundle"
)

// ErrorKind classifies a resolution failure
type ErrorKind string

const (
	KindUnknown                ErrorKind = ""
	KindMissingIdentifier      ErrorKind = "MissingIdentifier"
	KindUnknownDeviceType      ErrorKind = "UnknownDeviceType"
	KindNoAvailableRuntime     ErrorKind = "NoAvailableRuntime"
	KindDeviceInstanceNotFound ErrorKind = "DeviceInstanceNotFound"
	KindMetadataDecodeFailure  ErrorKind = "MetadataDecodeFailure"
	KindCatalogUnavailable     ErrorKind = "CatalogUnavailable"
)

// ErrMissingIdentifier is returned when no device type identifier was supplied
var ErrMissingIdentifier = errors.New("--devicetypeid was not specified.")

// UnknownDeviceTypeError is returned when the normalized device type id is
// not in the device type catalog
type UnknownDeviceTypeError struct {
	DeviceType string
}

func (e *UnknownDeviceTypeError) Error() string {
	return fmt.Sprintf("Device type %q could not be found.", e.DeviceType)
}

// NoAvailableRuntimeError is returned when default runtime selection finds no
// available runtime hosting the device name
type NoAvailableRuntimeError struct {
	DeviceName string
}

func (e *NoAvailableRuntimeError) Error() string {
	return fmt.Sprintf("No available runtimes could be found for %q.", e.DeviceName)
}

// DeviceNotFoundError is returned when no instance exists for the resolved
// (name, runtime) pair
type DeviceNotFoundError struct {
	Name    string
	Runtime string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("Device id for device name %q and runtime %q could not be found, or is not available.", e.Name, e.Runtime)
}

// CatalogError wraps a failure to obtain the catalog snapshot
type CatalogError struct {
	Err error
}

func (e *CatalogError) Error() string {
	return "failed to query simulator catalog: " + e.Err.Error()
}

func (e *CatalogError) Unwrap() error { return e.Err }

// Kind reports which resolution failure err is, looking through wrapping
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrMissingIdentifier) {
		return KindMissingIdentifier
	}

	var unknown *UnknownDeviceTypeError
	if errors.As(err, &unknown) {
		return KindUnknownDeviceType
	}
	var noRuntime *NoAvailableRuntimeError
	if errors.As(err, &noRuntime) {
		return KindNoAvailableRuntime
	}
	var notFound *DeviceNotFoundError
	if errors.As(err, &notFound) {
		return KindDeviceInstanceNotFound
	}
	if bundle.IsMetadataError(err) {
		return KindMetadataDecodeFailure
	}
	var catalog *CatalogError
	if errors.As(err, &catalog) {
		return KindCatalogUnavailable
	}
	return KindUnknown
}
