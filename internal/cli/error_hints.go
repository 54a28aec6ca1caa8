package cli

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// hintFor suggests the next step for an error code
func hintFor(code string, err error) string {
	switch code {
	case CodeMissingIdentifier:
		return "Pass --devicetypeid, e.g. --devicetypeid \"iPhone-15, 17.0\"; or set defaults.devicetypeid in .iossim.yaml"
	case CodeUnknownDeviceType, CodeDeviceNotFound:
		return "Run `iossim showdevicetypes` to list valid values"
	case CodeNoRuntime:
		return "Install a simulator runtime in Xcode > Settings > Platforms; `iossim showsdks` lists what is installed"
	case CodeMetadata:
		return "Pass the path to a built .app bundle (the directory containing Info.plist)"
	}
	if h := hintForTooling(err); h != "" {
		return h
	}
	if code == CodeInternal {
		return ""
	}
	return "Run `iossim doctor` for diagnostics"
}

func hintForTooling(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// Common xcrun/Xcode-select problems.
	if strings.Contains(msg, "invalid active developer path") {
		return "Xcode CLI tools not configured; run `xcode-select --install` or `sudo xcode-select -s /Applications/Xcode.app/Contents/Developer` (then `iossim doctor`)"
	}
	if strings.Contains(strings.ToLower(msg), "license") && strings.Contains(strings.ToLower(msg), "xcodebuild") {
		return "Xcode license may not be accepted; try `sudo xcodebuild -license accept` (then `iossim doctor`)"
	}

	if isCommandNotFound(err, "xcrun") {
		return "xcrun not found; install Xcode Command Line Tools with `xcode-select --install` (then `iossim doctor`)"
	}

	return ""
}

func isCommandNotFound(err error, name string) bool {
	if err == nil {
		return false
	}

	var ee *exec.Error
	if errors.As(err, &ee) && strings.EqualFold(ee.Name, name) && errors.Is(ee.Err, exec.ErrNotFound) {
		return true
	}

	var pe *os.PathError
	if errors.As(err, &pe) && errors.Is(pe.Err, exec.ErrNotFound) {
		if strings.EqualFold(pe.Path, name) || strings.HasSuffix(pe.Path, string(os.PathSeparator)+name) {
			return true
		}
	}

	// Fallback to string matching for wrapped errors.
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") && strings.Contains(msg, name)
}
