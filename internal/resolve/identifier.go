package resolve

import (
	"strings"
)

// DeviceTypePrefix is the namespace every simctl device type id carries
const DeviceTypePrefix = "com.apple.CoreSimulator.SimDeviceType."

// DefaultOSName is the token a runtime label must contain to be canonical
const DefaultOSName = "iOS"

// Identifier is a parsed --devicetypeid value ("devicetype[, runtime]")
type Identifier struct {
	DeviceType string // always carries DeviceTypePrefix
	Runtime    string // empty when not specified
}

// HasRuntime reports whether the caller named a runtime explicitly
func (id Identifier) HasRuntime() bool {
	return id.Runtime != ""
}

// ParseIdentifier splits raw on commas, trims both parts and namespaces the
// device type. Parts after the second are ignored.
func ParseIdentifier(raw string) (Identifier, error) {
	if strings.TrimSpace(raw) == "" {
		return Identifier{}, ErrMissingIdentifier
	}

	parts := strings.Split(raw, ",")
	id := Identifier{
		DeviceType: NormalizeDeviceType(strings.TrimSpace(parts[0])),
	}
	if len(parts) > 1 {
		id.Runtime = strings.TrimSpace(parts[1])
	}
	return id, nil
}

// NormalizeDeviceType prepends DeviceTypePrefix unless token already starts with it
func NormalizeDeviceType(token string) string {
	if strings.HasPrefix(token, DeviceTypePrefix) {
		return token
	}
	return DeviceTypePrefix + token
}

// CanonicalRuntime prepends "<osName> " to label unless it already mentions osName.
// "10.3" -> "iOS 10.3"; "iOS 10.3" is returned unchanged.
func CanonicalRuntime(label, osName string) string {
	if osName == "" {
		osName = DefaultOSName
	}
	if strings.Contains(label, osName) {
		return label
	}
	return osName + " " + label
}

// TrimDeviceTypePrefix strips DeviceTypePrefix for display
func TrimDeviceTypePrefix(id string) string {
	return strings.TrimPrefix(id, DeviceTypePrefix)
}

// TrimRuntimePrefix strips a leading "<osName> " for display
func TrimRuntimePrefix(label, osName string) string {
	if osName == "" {
		osName = DefaultOSName
	}
	return strings.TrimPrefix(label, osName+" ")
}

// FormatIdentifier renders a device type id and runtime label back into the
// "devicetype, runtime" form accepted by ParseIdentifier.
func FormatIdentifier(deviceTypeID, runtime, osName string) string {
	short := TrimDeviceTypePrefix(deviceTypeID)
	if runtime == "" {
		return short
	}
	return short + ", " + TrimRuntimePrefix(runtime, osName)
}
