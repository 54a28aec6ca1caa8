package cli

import (
	"errors"

	"github.com/vburojevic/iossim/internal/launch"
	"github.com/vburojevic/iossim/internal/output"
	"github.com/vburojevic/iossim/internal/resolve"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	h := ""
	if len(hint) > 0 {
		h = hint[0]
	}
	if globals != nil && globals.ndjson() {
		_ = newEmitter(globals).Error(code, message, h)
	} else if globals != nil {
		_ = output.NewTextWriter(globals.Stderr).WriteError(code, message, h)
	}
	return &CLIError{Code: code, Message: message, Hint: h}
}

// emitFailure classifies err, emits it and returns the CLIError
func emitFailure(globals *Globals, err error) error {
	var ce *CLIError
	if errors.As(err, &ce) {
		return err
	}
	code := errorCode(err)
	cliErr := outputErrorCommon(globals, code, errorMessage(err), hintFor(code, err))
	cliErr.(*CLIError).Err = err
	return cliErr
}

// errorCode maps resolution kinds and pipeline stages to error codes
func errorCode(err error) string {
	switch resolve.Kind(err) {
	case resolve.KindMissingIdentifier:
		return CodeMissingIdentifier
	case resolve.KindUnknownDeviceType:
		return CodeUnknownDeviceType
	case resolve.KindNoAvailableRuntime:
		return CodeNoRuntime
	case resolve.KindDeviceInstanceNotFound:
		return CodeDeviceNotFound
	case resolve.KindMetadataDecodeFailure:
		return CodeMetadata
	case resolve.KindCatalogUnavailable:
		return CodeCatalog
	}

	var stageErr *launch.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case launch.StageStart:
			return CodeStartFailed
		case launch.StageInstall:
			return CodeInstallFailed
		case launch.StageLaunch:
			return CodeLaunchFailed
		case launch.StageLogs:
			return CodeLogStreamFailed
		}
	}
	return CodeInternal
}

// errorMessage strips the stage prefix so resolution diagnostics read as-is
func errorMessage(err error) string {
	var stageErr *launch.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case launch.StageDecode, launch.StageResolve:
			return stageErr.Err.Error()
		}
	}
	return err.Error()
}
