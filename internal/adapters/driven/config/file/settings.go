// Package file loads and persists Scandex settings from a TOML file in
// the user's config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// configFileName is the settings file within the config directory.
const configFileName = "config.toml"

// Settings holds user-tunable defaults. Command-line flags override
// these per invocation.
type Settings struct {
	// DataDir holds the SQLite index. Empty means ~/.scandex/data.
	DataDir string `toml:"data_dir"`

	// CacheDir holds recognition cache entries. Empty means ~/.scandex/cache.
	CacheDir string `toml:"cache_dir"`

	// LogPath is the best-effort action trail. Empty means
	// ~/.scandex/logs/scandex.log.
	LogPath string `toml:"log_path"`

	// Language is the default recognition language code.
	Language string `toml:"language"`

	// DPI is the default render resolution for per-page recognition.
	DPI int `toml:"dpi"`

	// Pipeline selects the whole-document producer backend by default.
	Pipeline bool `toml:"pipeline"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		Language: domain.DefaultLanguage,
		DPI:      domain.DefaultDPI,
	}
}

// LogPathOrDefault resolves the trail location, falling back under the
// user's home directory.
func (s Settings) LogPathOrDefault() string {
	if s.LogPath != "" {
		return s.LogPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scandex", "logs", "scandex.log")
}

// Load reads settings from configDir/config.toml. A missing file yields
// Defaults; a malformed file is an error. If configDir is empty,
// defaults to ~/.scandex.
func Load(configDir string) (Settings, error) {
	dir, err := resolveConfigDir(configDir)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}

	s := Defaults()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}
	return s, nil
}

// Save writes settings to configDir/config.toml, creating the directory
// if needed.
func Save(configDir string, s Settings) error {
	dir, err := resolveConfigDir(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, configFileName), data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// resolveConfigDir applies the home-directory default.
func resolveConfigDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".scandex"), nil
}
