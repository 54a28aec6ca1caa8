package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into a fresh temp dir for the duration of the test
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Defaults.DeviceTypeID)
	assert.Equal(t, "iOS", cfg.Defaults.OSName)
	assert.Equal(t, "lexical", cfg.Defaults.RuntimeOrder)
	assert.Equal(t, "2m", cfg.Defaults.BootTimeout)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("reads the file found in the working directory", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		content := "format: ndjson\ndefaults:\n  devicetypeid: iPhone-15, 17.0\n"
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".iossim.yaml"), []byte(content), 0644))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ndjson", cfg.Format)
		assert.Equal(t, "iPhone-15, 17.0", cfg.Defaults.DeviceTypeID)
		// untouched keys keep their defaults
		assert.Equal(t, "lexical", cfg.Defaults.RuntimeOrder)
	})

	t.Run("surfaces a broken config file", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".iossim.yaml"), []byte("format: ["), 0644))

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		configContent := `
format: ndjson
quiet: true
verbose: true
defaults:
  devicetypeid: "iPhone-6, 8.2"
  log: /tmp/device.log
  exit: true
  os_name: watchOS
  runtime_order: version
  boot_timeout: 45s
`
		configPath := filepath.Join(t.TempDir(), "iossim.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, DefaultsConfig{
			DeviceTypeID: "iPhone-6, 8.2",
			Log:          "/tmp/device.log",
			Exit:         true,
			OSName:       "watchOS",
			RuntimeOrder: "version",
			BootTimeout:  "45s",
		}, cfg.Defaults)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .iossim.yaml in current directory", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		configPath := filepath.Join(tmpDir, ".iossim.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: text"), 0644))

		found := findConfigFile()
		// Resolve symlinks for comparison (macOS /var -> /private/var)
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers .iossim.yaml over .iossim.yml", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		yamlPath := filepath.Join(tmpDir, ".iossim.yaml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("format: text"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".iossim.yml"), []byte("format: ndjson"), 0644))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(yamlPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("ignores a stray config.yaml outside iossim dirs", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("format: ndjson"), 0644))

		found := findConfigFile()
		if found != "" {
			assert.NotEqual(t, filepath.Join(tmpDir, "config.yaml"), found)
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("IOSSIM_FORMAT", "ndjson")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ndjson", cfg.Format)
	})

	t.Run("quiet and verbose", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("IOSSIM_QUIET", "1")
		t.Setenv("IOSSIM_VERBOSE", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
	})

	t.Run("env wins over file", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".iossim.yaml"),
			[]byte("defaults:\n  devicetypeid: iPad-2\n  runtime_order: lexical\n"), 0644))
		t.Setenv("IOSSIM_DEVICETYPEID", "iPhone-6")
		t.Setenv("IOSSIM_RUNTIME_ORDER", "version")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "iPhone-6", cfg.Defaults.DeviceTypeID)
		assert.Equal(t, "version", cfg.Defaults.RuntimeOrder)
	})
}
