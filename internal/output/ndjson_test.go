package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/iossim/internal/domain"
)

func TestNDJSONWriter_WriteDevice(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteDevice(&domain.ResolvedDevice{Name: "iPhone 6", UDID: "UDID-6-82", Runtime: "iOS 8.2"}))

	var out DeviceOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, DeviceOutput{
		Type:          "device",
		SchemaVersion: SchemaVersion,
		Name:          "iPhone 6",
		UDID:          "UDID-6-82",
		Runtime:       "iOS 8.2",
	}, out)
}

func TestNDJSONWriter_WriteDeviceType(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteDeviceType("iPhone-6, 8.2", "iPhone 6", "iOS 8.2"))

	var out DeviceTypeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "devicetype", out.Type)
	assert.Equal(t, "iPhone-6, 8.2", out.DeviceTypeID)
	assert.Equal(t, "iOS 8.2", out.Runtime)
}

func TestNDJSONWriter_WriteSDK(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteSDK(domain.Runtime{Name: "iOS 8.1", Available: false}))

	output := buf.String()
	assert.Contains(t, output, `"available":false`)
	assert.NotContains(t, output, `"identifier":""`)
}

func TestNDJSONWriter_WriteError(t *testing.T) {
	t.Run("with hint", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)

		require.NoError(t, w.WriteError("UNKNOWN_DEVICE_TYPE", `Device type "x" could not be found.`, "run `iossim showdevicetypes`"))

		var out domain.ErrorOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "error", out.Type)
		assert.Equal(t, SchemaVersion, out.SchemaVersion)
		assert.Equal(t, "UNKNOWN_DEVICE_TYPE", out.Code)
		assert.Equal(t, "run `iossim showdevicetypes`", out.Hint)
	})

	t.Run("without hint", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNDJSONWriter(&buf).WriteError("X", "y"))
		assert.NotContains(t, buf.String(), "hint")
	})

	t.Run("does not escape html", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNDJSONWriter(&buf).WriteError("X", "<a> & <b>"))
		assert.Contains(t, buf.String(), "<a> & <b>")
	})
}

func TestNDJSONWriter_WriteLaunched(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteLaunched(&LaunchedOutput{
		BundleID: "com.example.app",
		AppPath:  "/tmp/Example.app",
		Device:   "iPhone 6",
		UDID:     "AAA",
		Runtime:  "iOS 8.2",
		PID:      42,
	}))

	var out LaunchedOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "launched", out.Type)
	assert.Equal(t, 42, out.PID)
}

func TestTextWriter(t *testing.T) {
	t.Run("device line", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter(&buf).WriteDevice(&domain.ResolvedDevice{Name: "iPhone 6", UDID: "AAA", Runtime: "iOS 8.2"}))
		out := buf.String()
		assert.Contains(t, out, "iPhone 6")
		assert.Contains(t, out, "iOS 8.2")
		assert.Contains(t, out, "AAA")
	})

	t.Run("error with hint", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter(&buf).WriteError("MISSING_IDENTIFIER", "--devicetypeid was not specified.", "pass --devicetypeid"))
		out := buf.String()
		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "MISSING_IDENTIFIER")
		assert.Contains(t, out, "--devicetypeid was not specified.")
		assert.Contains(t, out, "pass --devicetypeid")
	})

	t.Run("error without hint is one line", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter(&buf).WriteError("X", "y"))
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
	})
}

func TestAvailabilityText(t *testing.T) {
	assert.Contains(t, AvailabilityText(true), "available")
	assert.Contains(t, AvailabilityText(false), "unavailable")
}
