package cli

import (
	"github.com/vburojevic/iossim/internal/output"
)

func newEmitter(globals *Globals) *output.Emitter {
	return output.NewEmitter(globals.Stdout)
}

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, msg string) {
	if globals.Quiet {
		return
	}
	if globals.ndjson() {
		_ = newEmitter(globals).Warning(msg)
		return
	}
	_ = output.NewTextWriter(globals.Stderr).WriteWarning(msg)
}
