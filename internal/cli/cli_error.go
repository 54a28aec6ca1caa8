package cli

import "errors"

// Error codes emitted in NDJSON error records and text output
const (
	CodeMissingIdentifier = "MISSING_IDENTIFIER"
	CodeUnknownDeviceType = "UNKNOWN_DEVICE_TYPE"
	CodeNoRuntime         = "NO_AVAILABLE_RUNTIME"
	CodeDeviceNotFound    = "DEVICE_NOT_FOUND"
	CodeMetadata          = "METADATA_DECODE_FAILED"
	CodeCatalog           = "CATALOG_FAILED"
	CodePrerequisites     = "PREREQUISITES_FAILED"
	CodeStartFailed       = "START_FAILED"
	CodeInstallFailed     = "INSTALL_FAILED"
	CodeLaunchFailed      = "LAUNCH_FAILED"
	CodeLogStreamFailed   = "LOG_STREAM_FAILED"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeNotInteractive    = "NOT_INTERACTIVE"
	CodeInternal          = "INTERNAL_ERROR"
)

// CLIError is a structured error used for consistent NDJSON/text emission.
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Err     error
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCode maps a command error onto the process exit status:
// 0 on success, 2 when the simctl tooling is unusable, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *CLIError
	if errors.As(err, &ce) && ce.Code == CodePrerequisites {
		return 2
	}
	return 1
}
