package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrWorkspaceIsDir is returned when a workspace path names a directory.
var ErrWorkspaceIsDir = errors.New("workspace path is a directory")

// Workspace is the saved state of every module's selection table.
type Workspace struct {
	ActiveModule string        `yaml:"active_module"`
	SavedAt      time.Time     `yaml:"saved_at"`
	Modules      []ModuleState `yaml:"modules"`
}

// ModuleState is one module's documents, in order, with its selection.
type ModuleState struct {
	Name      string   `yaml:"name"`
	Documents []string `yaml:"documents,omitempty"`
	Selected  []int    `yaml:"selected,omitempty"`
	Focus     int      `yaml:"focus"`
	Output    string   `yaml:"output,omitempty"`
}

// Module returns the state saved for name.
func (w Workspace) Module(name string) (ModuleState, bool) {
	for _, m := range w.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleState{}, false
}

// SaveWorkspace writes ws to path as YAML, replacing any existing file.
func SaveWorkspace(path string, ws Workspace) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrWorkspaceIsDir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir workspace dir: %w", err)
	}
	if ws.SavedAt.IsZero() {
		ws.SavedAt = time.Now().UTC().Truncate(time.Second)
	}
	data, err := yaml.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encode workspace: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write workspace: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadWorkspace reads the workspace at path. A missing file yields an empty
// workspace.
func LoadWorkspace(path string) (Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Workspace{}, nil
		}
		var pe *os.PathError
		if errors.As(err, &pe) {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return Workspace{}, fmt.Errorf("%s: %w", path, ErrWorkspaceIsDir)
			}
		}
		return Workspace{}, err
	}
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return Workspace{}, fmt.Errorf("decode workspace: %w", err)
	}
	return ws, nil
}
