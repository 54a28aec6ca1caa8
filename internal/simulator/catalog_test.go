package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/iossim/internal/domain"
	"github.com/vburojevic/iossim/internal/resolve"
)

const currentListJSON = `{
  "devicetypes": [
    {"name": "iPhone 15", "identifier": "com.apple.CoreSimulator.SimDeviceType.iPhone-15", "productFamily": "iPhone"},
    {"name": "iPad Air", "identifier": "com.apple.CoreSimulator.SimDeviceType.iPad-Air", "productFamily": "iPad"}
  ],
  "runtimes": [
    {"identifier": "com.apple.CoreSimulator.SimRuntime.iOS-17-0", "name": "iOS 17.0", "version": "17.0", "isAvailable": true},
    {"identifier": "com.apple.CoreSimulator.SimRuntime.iOS-16-4", "name": "iOS 16.4", "version": "16.4", "isAvailable": false}
  ],
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.iOS-17-0": [
      {"name": "iPhone 15", "udid": "AAA-17", "state": "Booted", "isAvailable": true},
      {"name": "iPad Air", "udid": "PAD-17", "state": "Shutdown", "isAvailable": true}
    ],
    "com.apple.CoreSimulator.SimRuntime.iOS-16-4": [
      {"name": "iPhone 15", "udid": "AAA-16", "state": "Shutdown", "isAvailable": false}
    ],
    "com.apple.CoreSimulator.SimRuntime.watchOS-10-0": []
  },
  "pairs": {}
}`

const legacyObjectJSON = `{
  "devicetypes": [
    {"name": "iPhone 6", "id": "com.apple.CoreSimulator.SimDeviceType.iPhone-6"}
  ],
  "runtimes": [
    {"name": "iOS 8.2", "id": "com.apple.CoreSimulator.SimRuntime.iOS-8-2", "availability": "(available)"},
    {"name": "iOS 8.1", "id": "com.apple.CoreSimulator.SimRuntime.iOS-8-1", "availability": "(unavailable, runtime path not found)"}
  ],
  "devices": {
    "iOS 8.2": [{"name": "iPhone 6", "udid": "OLD-82", "state": "Shutdown", "availability": "(available)"}],
    "iOS 8.1": [{"name": "iPhone 6", "udid": "OLD-81", "state": "Shutdown"}]
  }
}`

const legacyArrayJSON = `{
  "devicetypes": [{"name": "iPhone 6", "id": "com.apple.CoreSimulator.SimDeviceType.iPhone-6"}],
  "runtimes": [{"name": "iOS 8.3", "isAvailable": "YES"}],
  "devices": [
    {"runtime": "iOS 8.3", "devices": [{"name": "iPhone 6", "id": "ARR-83"}]}
  ]
}`

func TestParseCatalog_Current(t *testing.T) {
	cat, err := ParseCatalog([]byte(currentListJSON))
	require.NoError(t, err)

	assert.Equal(t, []domain.DeviceType{
		{ID: "com.apple.CoreSimulator.SimDeviceType.iPhone-15", Name: "iPhone 15"},
		{ID: "com.apple.CoreSimulator.SimDeviceType.iPad-Air", Name: "iPad Air"},
	}, cat.DeviceTypes)

	require.Len(t, cat.Runtimes, 2)
	assert.Equal(t, "iOS 17.0", cat.Runtimes[0].Name)
	assert.Equal(t, "17.0", cat.Runtimes[0].Version)
	assert.True(t, cat.Runtimes[0].Available)
	assert.False(t, cat.Runtimes[1].Available)

	require.Len(t, cat.Devices, 3)
	assert.Equal(t, "iOS 17.0", cat.Devices[0].Runtime)
	assert.Equal(t, "iOS 16.4", cat.Devices[1].Runtime)
	assert.Equal(t, "watchOS 10.0", cat.Devices[2].Runtime)
	assert.Empty(t, cat.Devices[2].Devices)

	assert.Equal(t, domain.DeviceInstance{Name: "iPhone 15", UDID: "AAA-17", State: domain.DeviceStateBooted}, cat.Devices[0].Devices[0])
}

func TestParseCatalog_LegacyObject(t *testing.T) {
	cat, err := ParseCatalog([]byte(legacyObjectJSON))
	require.NoError(t, err)

	assert.Equal(t, "com.apple.CoreSimulator.SimDeviceType.iPhone-6", cat.DeviceTypes[0].ID)
	assert.True(t, cat.Runtimes[0].Available)
	assert.False(t, cat.Runtimes[1].Available)
	assert.Equal(t, "iOS 8.2", cat.Devices[0].Runtime)
	assert.Equal(t, "OLD-82", cat.Devices[0].Devices[0].UDID)
}

func TestParseCatalog_LegacyArray(t *testing.T) {
	cat, err := ParseCatalog([]byte(legacyArrayJSON))
	require.NoError(t, err)

	assert.True(t, cat.Runtimes[0].Available)
	require.Len(t, cat.Devices, 1)
	assert.Equal(t, "iOS 8.3", cat.Devices[0].Runtime)
	assert.Equal(t, "ARR-83", cat.Devices[0].Devices[0].UDID)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte(`{"devices": [`))
	assert.ErrorIs(t, err, errInvalidJSON)
}

func TestParseCatalog_Empty(t *testing.T) {
	cat, err := ParseCatalog([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, cat.DeviceTypes)
	assert.Empty(t, cat.Devices)
}

func TestParsedCatalogResolves(t *testing.T) {
	tests := []struct {
		name string
		json string
		raw  string
		udid string
	}{
		{"current default runtime skips unavailable", currentListJSON, "iPhone-15", "AAA-17"},
		{"current explicit runtime", currentListJSON, "iPhone-15, 16.4", "AAA-16"},
		{"legacy object default runtime", legacyObjectJSON, "iPhone-6", "OLD-82"},
		{"legacy array", legacyArrayJSON, "iPhone-6,8.3", "ARR-83"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := ParseCatalog([]byte(tt.json))
			require.NoError(t, err)

			id, err := resolve.ParseIdentifier(tt.raw)
			require.NoError(t, err)

			got, err := resolve.ResolveIn(cat, id, resolve.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.udid, got.UDID)
		})
	}
}

func TestParseRuntimes(t *testing.T) {
	rts, err := ParseRuntimes([]byte(`{"runtimes": [{"name": "iOS 17.0", "identifier": "com.apple.CoreSimulator.SimRuntime.iOS-17-0", "version": "17.0", "isAvailable": true}]}`))
	require.NoError(t, err)
	require.Len(t, rts, 1)
	assert.Equal(t, domain.Runtime{
		Name:       "iOS 17.0",
		Identifier: "com.apple.CoreSimulator.SimRuntime.iOS-17-0",
		Version:    "17.0",
		Available:  true,
	}, rts[0])

	_, err = ParseRuntimes([]byte("nope"))
	assert.Error(t, err)
}

func TestParseRuntimeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-0", "iOS 17.0"},
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-2", "iOS 17.2"},
		{"com.apple.CoreSimulator.SimRuntime.iOS-18-0", "iOS 18.0"},
		{"com.apple.CoreSimulator.SimRuntime.watchOS-10-0", "watchOS 10.0"},
		{"com.apple.CoreSimulator.SimRuntime.tvOS-17-0", "tvOS 17.0"},
		{"com.apple.CoreSimulator.SimRuntime.visionOS-1-0", "visionOS 1.0"},
		{"iOS-17-0", "iOS 17.0"},
		{"simple", "simple"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseRuntimeName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
