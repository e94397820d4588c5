package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/pdfsel/internal/prefs"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	user, err := prefs.NewUserContext(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	s := New(user, nil)
	t.Cleanup(func() { _ = s.UserContext().Clear() })
	return s
}

func TestUserContextNonNil(t *testing.T) {
	t.Parallel()
	require.NotNil(t, newSession(t).UserContext())
}

func TestInitActiveModule(t *testing.T) {
	t.Parallel()
	s := newSession(t)

	require.Equal(t, ModuleMerge, s.InitActiveModule())

	require.NoError(t, s.UserContext().SetString(prefs.StartupModule, ""))
	require.Equal(t, ModuleMerge, s.InitActiveModule())

	require.NoError(t, s.UserContext().SetString(prefs.StartupModule, "ChuckNorris"))
	require.Equal(t, ModuleMerge, s.InitActiveModule())

	require.NoError(t, s.UserContext().SetString(prefs.StartupModule, ModuleSplit))
	require.Equal(t, ModuleSplit, s.InitActiveModule())
}

func TestSaveWorkspaceIfRequired(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	u := s.UserContext()
	folder := t.TempDir()
	ws := prefs.Workspace{ActiveModule: ModuleMerge, Modules: []prefs.ModuleState{{Name: ModuleMerge, Documents: []string{"/d/a.pdf"}, Focus: -1}}}

	require.NoError(t, u.SetBool(prefs.SaveWorkspaceOnExit, false))
	saved, err := s.SaveWorkspaceIfRequired(ws)
	require.NoError(t, err)
	require.False(t, saved)

	require.NoError(t, u.SetBool(prefs.SaveWorkspaceOnExit, true))
	saved, err = s.SaveWorkspaceIfRequired(ws)
	require.NoError(t, err)
	require.False(t, saved, "no workspace path")

	require.NoError(t, u.SetString(prefs.WorkspacePath, folder))
	saved, err = s.SaveWorkspaceIfRequired(ws)
	require.NoError(t, err)
	require.False(t, saved, "directory path")

	file := filepath.Join(folder, "tempFile.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	require.NoError(t, u.SetString(prefs.WorkspacePath, file))
	saved, err = s.SaveWorkspaceIfRequired(ws)
	require.NoError(t, err)
	require.True(t, saved)
	require.FileExists(t, file)

	restored, ok, err := s.RestoreWorkspace()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ws.Modules, restored.Modules)
}

func TestRestoreWorkspaceSkips(t *testing.T) {
	t.Parallel()
	s := newSession(t)

	_, ok, err := s.RestoreWorkspace()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.UserContext().SetBool(prefs.SaveWorkspaceOnExit, true))
	require.NoError(t, s.UserContext().SetString(prefs.WorkspacePath, filepath.Join(t.TempDir(), "missing.yaml")))
	_, ok, err = s.RestoreWorkspace()
	require.NoError(t, err)
	require.False(t, ok)
}
