// Package bundle reads application bundle metadata from Info.plist.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

// InfoPlistName is the metadata file inside an .app bundle
const InfoPlistName = "Info.plist"

// ErrNoBundleIdentifier is returned when Info.plist lacks CFBundleIdentifier
var ErrNoBundleIdentifier = errors.New("CFBundleIdentifier missing")

// Decoder turns a property list file into a key/value mapping
type Decoder interface {
	DecodeFile(path string) (map[string]interface{}, error)
}

// PlistDecoder decodes binary, XML and OpenStep property lists
type PlistDecoder struct{}

// NewPlistDecoder returns the default Decoder
func NewPlistDecoder() *PlistDecoder {
	return &PlistDecoder{}
}

// DecodeFile reads and decodes path
func (PlistDecoder) DecodeFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var values map[string]interface{}
	if _, err := plist.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse plist: %w", err)
	}
	return values, nil
}

// MetadataError reports an Info.plist that is missing or unreadable
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	if errors.Is(e.Err, os.ErrNotExist) {
		return e.Path + " file not found."
	}
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// AppInfo is the subset of Info.plist the launcher cares about
type AppInfo struct {
	BundleID   string `json:"bundle_id"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Executable string `json:"executable,omitempty"`
	Path       string `json:"path"`
}

// ReadAppInfo decodes <appPath>/Info.plist with dec
func ReadAppInfo(dec Decoder, appPath string) (*AppInfo, error) {
	infoPath := filepath.Join(appPath, InfoPlistName)
	if _, err := os.Stat(infoPath); err != nil {
		return nil, &MetadataError{Path: infoPath, Err: err}
	}

	values, err := dec.DecodeFile(infoPath)
	if err != nil {
		return nil, &MetadataError{Path: infoPath, Err: err}
	}

	info := &AppInfo{
		BundleID:   stringValue(values, "CFBundleIdentifier"),
		Name:       stringValue(values, "CFBundleDisplayName"),
		Version:    stringValue(values, "CFBundleShortVersionString"),
		Executable: stringValue(values, "CFBundleExecutable"),
		Path:       appPath,
	}
	if info.Name == "" {
		info.Name = stringValue(values, "CFBundleName")
	}
	if info.Version == "" {
		info.Version = stringValue(values, "CFBundleVersion")
	}
	if info.BundleID == "" {
		return nil, &MetadataError{Path: infoPath, Err: ErrNoBundleIdentifier}
	}
	return info, nil
}

func stringValue(values map[string]interface{}, key string) string {
	s, _ := values[key].(string)
	return s
}

// IsMetadataError reports whether err came from reading bundle metadata
func IsMetadataError(err error) bool {
	var me *MetadataError
	return errors.As(err, &me)
}
