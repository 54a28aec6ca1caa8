package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/iossim/internal/domain"
)

// NDJSONWriter writes records as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// DeviceOutput is a resolved simulator instance
type DeviceOutput struct {
	Type          string `json:"type"` // Always "device"
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	UDID          string `json:"udid"`
	Runtime       string `json:"runtime"`
}

// SDKOutput describes one installed simulator runtime
type SDKOutput struct {
	Type          string `json:"type"` // Always "sdk"
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	Identifier    string `json:"identifier,omitempty"`
	Version       string `json:"version,omitempty"`
	Available     bool   `json:"available"`
}

// DeviceTypeOutput is one usable --devicetypeid value
type DeviceTypeOutput struct {
	Type          string `json:"type"` // Always "devicetype"
	SchemaVersion int    `json:"schemaVersion"`
	DeviceTypeID  string `json:"devicetypeid"`
	Name          string `json:"name"`
	Runtime       string `json:"runtime"`
}

// LaunchedOutput reports an app started on a device
type LaunchedOutput struct {
	Type          string `json:"type"` // Always "launched"
	SchemaVersion int    `json:"schemaVersion"`
	BundleID      string `json:"bundle_id"`
	AppPath       string `json:"app_path"`
	Device        string `json:"device"`
	UDID          string `json:"udid"`
	Runtime       string `json:"runtime"`
	PID           int    `json:"pid,omitempty"`
}

// StartedOutput reports Simulator.app being opened
type StartedOutput struct {
	Type          string `json:"type"` // Always "started"
	SchemaVersion int    `json:"schemaVersion"`
	Device        string `json:"device,omitempty"`
	UDID          string `json:"udid,omitempty"`
	Runtime       string `json:"runtime,omitempty"`
	Booted        bool   `json:"booted,omitempty"`
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Device        string `json:"device,omitempty"`
	UDID          string `json:"udid,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// MetadataOutput describes the tool build
type MetadataOutput struct {
	Type          string `json:"type"` // Always "version"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

// WriteDevice outputs a resolved device
func (w *NDJSONWriter) WriteDevice(d *domain.ResolvedDevice) error {
	return w.encoder.Encode(&DeviceOutput{
		Type:          "device",
		SchemaVersion: SchemaVersion,
		Name:          d.Name,
		UDID:          d.UDID,
		Runtime:       d.Runtime,
	})
}

// WriteSDK outputs one runtime
func (w *NDJSONWriter) WriteSDK(rt domain.Runtime) error {
	return w.encoder.Encode(&SDKOutput{
		Type:          "sdk",
		SchemaVersion: SchemaVersion,
		Name:          rt.Name,
		Identifier:    rt.Identifier,
		Version:       rt.Version,
		Available:     rt.Available,
	})
}

// WriteDeviceType outputs one device type / runtime pairing
func (w *NDJSONWriter) WriteDeviceType(id, name, runtime string) error {
	return w.encoder.Encode(&DeviceTypeOutput{
		Type:          "devicetype",
		SchemaVersion: SchemaVersion,
		DeviceTypeID:  id,
		Name:          name,
		Runtime:       runtime,
	})
}

// WriteLaunched outputs a launch result
func (w *NDJSONWriter) WriteLaunched(out *LaunchedOutput) error {
	out.Type = "launched"
	out.SchemaVersion = SchemaVersion
	return w.encoder.Encode(out)
}

// WriteStarted outputs a start result
func (w *NDJSONWriter) WriteStarted(out *StartedOutput) error {
	out.Type = "started"
	out.SchemaVersion = SchemaVersion
	return w.encoder.Encode(out)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, device, udid string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Device:        device,
		UDID:          udid,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteMetadata outputs build metadata
func (w *NDJSONWriter) WriteMetadata(version, commit string) error {
	return w.encoder.Encode(&MetadataOutput{
		Type:          "version",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
	})
}

// TextWriter writes records as styled text
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteDevice outputs a resolved device on one line
func (w *TextWriter) WriteDevice(d *domain.ResolvedDevice) error {
	line := Styles.Value.Render(d.Name) + " " +
		Styles.Label.Render("("+d.Runtime+")") + " " +
		d.UDID + "\n"
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteError outputs a styled error, with the hint on its own line
func (w *TextWriter) WriteError(code, message string, hint ...string) error {
	errorLabel := Styles.Danger.Render("Error")
	codeStr := Styles.Warning.Render("[" + code + "]")
	line := errorLabel + " " + codeStr + ": " + message + "\n"
	if len(hint) > 0 && hint[0] != "" {
		line += Styles.Label.Render("Hint: ") + hint[0] + "\n"
	}
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteWarning outputs a styled warning
func (w *TextWriter) WriteWarning(message string) error {
	_, err := io.WriteString(w.w, Styles.Warning.Render("Warning")+": "+message+"\n")
	return err
}
