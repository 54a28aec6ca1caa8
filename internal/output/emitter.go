package output

import (
	"io"

	"github.com/vburojevic/iossim/internal/domain"
)

// Emitter wraps NDJSONWriter with helpers that reuse one encoder.
type Emitter struct {
	w *NDJSONWriter
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w)}
}

func (e *Emitter) Device(d *domain.ResolvedDevice) error        { return e.w.WriteDevice(d) }
func (e *Emitter) SDK(rt domain.Runtime) error                  { return e.w.WriteSDK(rt) }
func (e *Emitter) DeviceType(id, name, runtime string) error    { return e.w.WriteDeviceType(id, name, runtime) }
func (e *Emitter) Launched(out *LaunchedOutput) error           { return e.w.WriteLaunched(out) }
func (e *Emitter) Started(out *StartedOutput) error             { return e.w.WriteStarted(out) }
func (e *Emitter) Error(code, msg string, hint ...string) error { return e.w.WriteError(code, msg, hint...) }
func (e *Emitter) Info(msg, device, udid string) error          { return e.w.WriteInfo(msg, device, udid) }
func (e *Emitter) Warning(msg string) error                     { return e.w.WriteWarning(msg) }
func (e *Emitter) Metadata(version, commit string) error        { return e.w.WriteMetadata(version, commit) }
func (e *Emitter) Raw(v interface{}) error                      { return e.w.WriteRaw(v) }
