// Package session covers the application lifecycle around the selection
// tables: which module opens first and whether the workspace is saved on
// exit or restored on start.
package session

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/prefs"
)

// Built-in modules, in display order.
const (
	ModuleMerge = "merge"
	ModuleSplit = "split"
)

// DefaultModules lists the modules the application ships with.
var DefaultModules = []string{ModuleMerge, ModuleSplit}

// Session ties user preferences to the registered modules.
type Session struct {
	modules []string
	user    *prefs.UserContext
	logger  *zap.Logger
}

// New creates a session over modules. The first module is the default.
func New(user *prefs.UserContext, logger *zap.Logger, modules ...string) *Session {
	if len(modules) == 0 {
		modules = DefaultModules
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{modules: slices.Clone(modules), user: user, logger: logger}
}

// UserContext returns the preferences shared by all modules.
func (s *Session) UserContext() *prefs.UserContext { return s.user }

// Modules returns the registered module names.
func (s *Session) Modules() []string { return slices.Clone(s.modules) }

// InitActiveModule returns the module to open at startup: the startup module
// preference when it names a registered module, otherwise the default.
func (s *Session) InitActiveModule() string {
	want := strings.TrimSpace(s.user.String(prefs.StartupModule))
	if want != "" {
		if slices.Contains(s.modules, want) {
			s.logger.Debug("startup module from preferences", zap.String("module", want))
			return want
		}
		s.logger.Warn("unknown startup module, using default", zap.String("module", want), zap.String("default", s.modules[0]))
	}
	return s.modules[0]
}

// SaveWorkspaceIfRequired writes ws to the workspace path when saving on exit
// is enabled. It reports whether a file was written. A disabled preference or
// an empty path is a no-op; a path naming a directory is skipped.
func (s *Session) SaveWorkspaceIfRequired(ws prefs.Workspace) (bool, error) {
	if !s.user.Bool(prefs.SaveWorkspaceOnExit) {
		return false, nil
	}
	path := strings.TrimSpace(s.user.String(prefs.WorkspacePath))
	if path == "" {
		s.logger.Debug("save workspace on exit enabled without a workspace path")
		return false, nil
	}
	if err := prefs.SaveWorkspace(path, ws); err != nil {
		if errors.Is(err, prefs.ErrWorkspaceIsDir) {
			s.logger.Warn("workspace path is a directory, not saving", zap.String("path", path))
			return false, nil
		}
		return false, fmt.Errorf("save workspace: %w", err)
	}
	s.logger.Info("workspace saved", zap.String("path", path), zap.Int("modules", len(ws.Modules)))
	return true, nil
}

// RestoreWorkspace loads the workspace saved by SaveWorkspaceIfRequired under
// the same conditions. ok is false when nothing applies.
func (s *Session) RestoreWorkspace() (ws prefs.Workspace, ok bool, err error) {
	if !s.user.Bool(prefs.SaveWorkspaceOnExit) {
		return prefs.Workspace{}, false, nil
	}
	path := strings.TrimSpace(s.user.String(prefs.WorkspacePath))
	if path == "" {
		return prefs.Workspace{}, false, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil || info.IsDir() {
		return prefs.Workspace{}, false, nil
	}
	ws, err = prefs.LoadWorkspace(path)
	if err != nil {
		return prefs.Workspace{}, false, fmt.Errorf("restore workspace: %w", err)
	}
	return ws, true, nil
}
