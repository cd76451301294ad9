// Package toml persists client preferences as a TOML file at the user's
// config path, the terminal analog of the web client's localStorage.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/yasmin-chat/yasmin"
)

// fileName is the config file under the user config directory.
const fileName = "config.toml"

// appDir is the directory under the user config directory.
const appDir = "yasmin"

// prefsFile is the TOML representation of yasmin.Prefs. Pointer fields
// distinguish "absent" from zero so a sparse file keeps its defaults.
type prefsFile struct {
	Theme            *string  `toml:"theme"`
	Speech           *bool    `toml:"speech"`
	Model            *string  `toml:"model"`
	Temperature      *float64 `toml:"temperature"`
	MaxTokens        *int     `toml:"max_tokens"`
	LastConversation *string  `toml:"last_conversation"`
}

// DefaultPath returns the preferences file path under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("toml: resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads preferences from path, layering the file's values over the
// defaults. A missing file is not an error: a fresh install starts with
// defaults. A present but invalid file is an error; silently ignoring it
// would discard the user's settings on the next save.
func Load(path string) (yasmin.Prefs, error) {
	p := yasmin.DefaultPrefs()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("toml: read %s: %w", path, err)
	}

	var f prefsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return p, fmt.Errorf("toml: parse %s: %w", path, err)
	}
	if f.Theme != nil {
		p.Theme = *f.Theme
	}
	if f.Speech != nil {
		p.Speech = *f.Speech
	}
	if f.Model != nil {
		p.Model = *f.Model
	}
	if f.Temperature != nil {
		p.Temperature = *f.Temperature
	}
	if f.MaxTokens != nil {
		p.MaxTokens = *f.MaxTokens
	}
	if f.LastConversation != nil {
		p.LastConversation = *f.LastConversation
	}
	if err := p.Validate(); err != nil {
		return yasmin.DefaultPrefs(), fmt.Errorf("toml: %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating parent directories as
// needed. The write goes through a temp file and rename so a crash never
// leaves a half-written config.
func Save(path string, p yasmin.Prefs) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("toml: save: %w", err)
	}
	f := prefsFile{
		Theme:            &p.Theme,
		Speech:           &p.Speech,
		Model:            &p.Model,
		Temperature:      &p.Temperature,
		MaxTokens:        &p.MaxTokens,
		LastConversation: &p.LastConversation,
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("toml: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("toml: create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("toml: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("toml: rename temp file: %w", err)
	}
	return nil
}
