// Package settings persists reader preferences and the last read position
// between sessions. Bookmarks and highlights deliberately stay in memory.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings is the on-disk state written when the reader exits.
type Settings struct {
	Theme       string `json:"theme"`
	TextScale   int    `json:"text_scale"`
	LastChapter int    `json:"last_chapter"`
	LastVerse   int    `json:"last_verse"`
}

// DefaultPath returns the per-user settings file location, creating the
// parent directory on first use.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "gita")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// Load reads settings from path. A missing file yields the zero value and no
// error so a fresh install starts clean.
func Load(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes settings to path.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
