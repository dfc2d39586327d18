package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/logfields"
)

// Manager handles artifact directory operations (both ephemeral and persistent)
type Manager struct {
	baseDir    string
	dir        string
	persistent bool // If true, use the fixed directory without timestamps
}

// NewEphemeralManager creates a manager with timestamped throwaway directories.
func NewEphemeralManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{
		baseDir:    baseDir,
		persistent: false,
	}
}

// NewPersistentManager creates a manager that uses a fixed artifacts directory.
// Relative paths are resolved against root. The directory is kept on Cleanup().
func NewPersistentManager(root, artifactsDir string) *Manager {
	if artifactsDir == "" {
		artifactsDir = "bin"
	}
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(root, artifactsDir)
	}
	return &Manager{
		baseDir:    root,
		dir:        artifactsDir,
		persistent: true,
	}
}

// Create creates the artifacts directory.
// For ephemeral mode: creates a timestamped directory.
// For persistent mode: ensures the fixed directory exists.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return fmt.Errorf("failed to create artifacts directory: %w", err)
		}
		slog.Debug("Using artifacts directory", logfields.Path(m.dir))
		return nil
	}

	timestamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("aocbuild-%s", timestamp))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}

	m.dir = dir
	slog.Info("Created ephemeral artifacts directory", logfields.Path(dir))
	return nil
}

// GetPath returns the path to the artifacts directory
func (m *Manager) GetPath() string {
	return m.dir
}

// ArtifactPath returns where the named unit's binary lands.
func (m *Manager) ArtifactPath(unit string) string {
	return filepath.Join(m.dir, unit)
}

// Cleanup removes the artifacts directory.
// For persistent mode: does nothing (artifacts are kept across invocations).
// For ephemeral mode: removes the timestamped directory.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}

	if m.persistent {
		slog.Debug("Skipping cleanup for persistent artifacts directory", logfields.Path(m.dir))
		return nil
	}

	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup artifacts directory: %w", err)
	}

	slog.Info("Cleaned up artifacts directory", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
