package simulator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vburojevic/iossim/internal/domain"
)

const runtimeIdentifierPrefix = "com.apple.CoreSimulator.SimRuntime."

var errInvalidJSON = errors.New("invalid JSON")

// ParseCatalog parses `xcrun simctl list --json` output.
//
// Two shapes are accepted. Current Xcode emits device types with
// "identifier", runtimes with "isAvailable", and devices keyed by runtime
// identifier. Older releases emit "id", "availability": "(available)", and
// devices keyed (or grouped) by runtime name.
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse simctl output: %w", errInvalidJSON)
	}
	root := gjson.ParseBytes(data)

	cat := &domain.Catalog{
		DeviceTypes: parseDeviceTypes(root.Get("devicetypes")),
		Runtimes:    parseRuntimes(root.Get("runtimes")),
	}

	labels := make(map[string]string, len(cat.Runtimes))
	for _, rt := range cat.Runtimes {
		if rt.Identifier != "" {
			labels[rt.Identifier] = rt.Name
		}
	}

	devices := root.Get("devices")
	switch {
	case devices.IsArray():
		devices.ForEach(func(_, group gjson.Result) bool {
			cat.Devices = append(cat.Devices, domain.DeviceGroup{
				Runtime: group.Get("runtime").String(),
				Devices: parseInstances(group.Get("devices")),
			})
			return true
		})
	case devices.IsObject():
		devices.ForEach(func(key, list gjson.Result) bool {
			cat.Devices = append(cat.Devices, domain.DeviceGroup{
				Runtime: runtimeLabel(key.String(), labels),
				Devices: parseInstances(list),
			})
			return true
		})
	}

	return cat, nil
}

// ParseRuntimes parses `xcrun simctl list runtimes --json` output
func ParseRuntimes(data []byte) ([]domain.Runtime, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse simctl output: %w", errInvalidJSON)
	}
	return parseRuntimes(gjson.GetBytes(data, "runtimes")), nil
}

func parseDeviceTypes(list gjson.Result) []domain.DeviceType {
	var types []domain.DeviceType
	list.ForEach(func(_, dt gjson.Result) bool {
		id := dt.Get("identifier").String()
		if id == "" {
			id = dt.Get("id").String()
		}
		types = append(types, domain.DeviceType{
			ID:   id,
			Name: dt.Get("name").String(),
		})
		return true
	})
	return types
}

func parseRuntimes(list gjson.Result) []domain.Runtime {
	var runtimes []domain.Runtime
	list.ForEach(func(_, rt gjson.Result) bool {
		id := rt.Get("identifier").String()
		if id == "" {
			id = rt.Get("id").String()
		}
		runtimes = append(runtimes, domain.Runtime{
			Name:       rt.Get("name").String(),
			Identifier: id,
			Version:    rt.Get("version").String(),
			Available:  runtimeAvailable(rt),
		})
		return true
	})
	return runtimes
}

func runtimeAvailable(rt gjson.Result) bool {
	if v := rt.Get("isAvailable"); v.Exists() {
		// Xcode 10 briefly emitted "YES"/"NO" strings here.
		if v.Type == gjson.String {
			return strings.EqualFold(v.String(), "YES") || strings.EqualFold(v.String(), "true")
		}
		return v.Bool()
	}
	return strings.HasPrefix(rt.Get("availability").String(), "(available")
}

func parseInstances(list gjson.Result) []domain.DeviceInstance {
	var devices []domain.DeviceInstance
	list.ForEach(func(_, dev gjson.Result) bool {
		udid := dev.Get("udid").String()
		if udid == "" {
			udid = dev.Get("id").String()
		}
		devices = append(devices, domain.DeviceInstance{
			Name:  dev.Get("name").String(),
			UDID:  udid,
			State: domain.DeviceState(dev.Get("state").String()),
		})
		return true
	})
	return devices
}

// runtimeLabel maps a devices key onto the runtime's display name
func runtimeLabel(key string, labels map[string]string) string {
	if name, ok := labels[key]; ok && name != "" {
		return name
	}
	if strings.HasPrefix(key, runtimeIdentifierPrefix) {
		return parseRuntimeName(key)
	}
	return key
}

// parseRuntimeName extracts a human-readable runtime name from the identifier
func parseRuntimeName(runtime string) string {
	// Example: "com.apple.CoreSimulator.SimRuntime.iOS-17-0" -> "iOS 17.0"
	// Example: "com.apple.CoreSimulator.SimRuntime.watchOS-10-0" -> "watchOS 10.0"

	parts := strings.Split(runtime, ".")
	if len(parts) == 0 {
		return runtime
	}

	lastPart := parts[len(parts)-1]

	// Replace dashes with dots for version numbers, but keep first part
	// e.g., "iOS-17-0" -> "iOS 17.0"
	segments := strings.Split(lastPart, "-")
	if len(segments) >= 2 {
		os := segments[0]
		version := strings.Join(segments[1:], ".")
		return fmt.Sprintf("%s %s", os, version)
	}

	return lastPart
}
