// Package prefs stores user preferences and workspace files.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StringPreference names a string valued preference.
type StringPreference string

const (
	StartupModule StringPreference = "startup_module"
	WorkspacePath StringPreference = "workspace_path"
)

// BooleanPreference names a boolean preference.
type BooleanPreference string

const (
	SaveWorkspaceOnExit BooleanPreference = "save_workspace_on_exit"
)

// UserContext holds user preferences, persisted to a TOML file on every
// change. An empty path keeps them in memory only.
type UserContext struct {
	path string
	v    *viper.Viper
}

// NewUserContext loads preferences from path when the file exists.
func NewUserContext(path string) (*UserContext, error) {
	u := &UserContext{path: path, v: newPrefsViper()}
	if path == "" {
		return u, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return u, nil
		}
		return nil, fmt.Errorf("stat prefs: %w", err)
	}
	u.v.SetConfigFile(path)
	if err := u.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	return u, nil
}

func newPrefsViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault(string(StartupModule), "")
	v.SetDefault(string(WorkspacePath), "")
	v.SetDefault(string(SaveWorkspaceOnExit), false)
	return v
}

// Path returns the preferences file, empty for in-memory preferences.
func (u *UserContext) Path() string { return u.path }

func (u *UserContext) String(p StringPreference) string { return u.v.GetString(string(p)) }

// SetString stores value and saves the file.
func (u *UserContext) SetString(p StringPreference, value string) error {
	u.v.Set(string(p), value)
	return u.Save()
}

func (u *UserContext) Bool(p BooleanPreference) bool { return u.v.GetBool(string(p)) }

// SetBool stores value and saves the file.
func (u *UserContext) SetBool(p BooleanPreference, value bool) error {
	u.v.Set(string(p), value)
	return u.Save()
}

// Save writes the preferences file.
func (u *UserContext) Save() error {
	if u.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(u.path), 0o755); err != nil {
		return fmt.Errorf("mkdir prefs dir: %w", err)
	}
	if err := u.v.WriteConfigAs(u.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Clear resets every preference to its default and removes the file.
func (u *UserContext) Clear() error {
	u.v = newPrefsViper()
	if u.path == "" {
		return nil
	}
	if err := os.Remove(u.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove prefs: %w", err)
	}
	return nil
}
