// Package config loads and persists tool settings from a TOML file in
// the roman-xmatch config directory. Settings are defaults for CLI
// flags: a flag given on the command line always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// Settings is the on-disk configuration.
type Settings struct {
	// OutputDir is the default directory for match artifacts.
	OutputDir string `toml:"output_dir"`
	// RowLimit is the default per-catalog row cap.
	RowLimit int `toml:"row_limit"`
	// DataDir holds the run history database. Empty uses
	// ~/.roman-xmatch/data.
	DataDir string `toml:"data_dir"`
	// VizieRBaseURL overrides the VizieR mirror. Empty uses the default.
	VizieRBaseURL string `toml:"vizier_base_url"`
	// NEDBaseURL overrides the NED endpoint. Empty uses the default.
	NEDBaseURL string `toml:"ned_base_url"`
}

// DefaultSettings returns settings with built-in defaults applied.
func DefaultSettings() Settings {
	return Settings{
		OutputDir: domain.DefaultOutputDir,
		RowLimit:  domain.DefaultRowLimit,
	}
}

// DefaultDir returns the roman-xmatch config directory,
// ~/.roman-xmatch.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".roman-xmatch"), nil
}

// Load reads settings from configDir/config.toml. A missing file yields
// defaults; unset fields fall back to defaults. If configDir is empty,
// the default directory is used.
func Load(configDir string) (Settings, error) {
	settings := DefaultSettings()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return settings, err
		}
		configDir = dir
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing config: %w", err)
	}

	if settings.OutputDir == "" {
		settings.OutputDir = domain.DefaultOutputDir
	}
	if settings.RowLimit <= 0 {
		settings.RowLimit = domain.DefaultRowLimit
	}
	return settings, nil
}

// Save writes settings to configDir/config.toml, creating the directory
// if needed. If configDir is empty, the default directory is used.
func Save(configDir string, settings Settings) error {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	// Write with restricted permissions
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
