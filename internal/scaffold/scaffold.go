// Package scaffold copies the embedded project template (.claude/
// configuration, .autobot/ seed state, CLAUDE.md) into a target project.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"autobot/internal/state"
)

//go:embed all:templates
var templatesFS embed.FS

// CheckExisting reports whether the .claude and .autobot directories already
// exist in projectDir, and returns the active task record if one is found
// (status in_progress or paused).
func CheckExisting(projectDir string) (claudeExists, autobotExists bool, activeTask *state.Task) {
	if info, err := os.Stat(filepath.Join(projectDir, ".claude")); err == nil && info.IsDir() {
		claudeExists = true
	}

	store := state.NewStore(projectDir)
	if store.Exists() {
		autobotExists = true
		if task := store.LoadTask(); task != nil {
			if task.Status == state.TaskStatusInProgress || task.Status == state.TaskStatusPaused {
				activeTask = task
			}
		}
	}

	return claudeExists, autobotExists, activeTask
}

// Scaffold copies the template tree into projectDir and returns the created
// file paths relative to projectDir. Existing files are preserved unless
// force is set.
func Scaffold(projectDir string, force bool) ([]string, error) {
	var created []string

	copies := []struct {
		source string
		dest   string
	}{
		{"templates/claude", ".claude"},
		{"templates/autobot", state.DirName},
	}

	for _, c := range copies {
		files, err := copyTree(c.source, filepath.Join(projectDir, c.dest), projectDir, force)
		if err != nil {
			return created, err
		}
		created = append(created, files...)
	}

	wrote, err := copyFile("templates/CLAUDE.md", filepath.Join(projectDir, "CLAUDE.md"), force)
	if err != nil {
		return created, err
	}
	if wrote {
		created = append(created, "CLAUDE.md")
	}

	return created, nil
}

// copyTree recursively copies an embedded directory to dest.
func copyTree(source, dest, projectDir string, force bool) ([]string, error) {
	var created []string

	err := fs.WalkDir(templatesFS, source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		wrote, err := copyFile(path, target, force)
		if err != nil {
			return err
		}
		if wrote {
			relTarget, err := filepath.Rel(projectDir, target)
			if err != nil {
				relTarget = target
			}
			created = append(created, relTarget)
		}
		return nil
	})

	return created, err
}

// copyFile writes one embedded file to dest. Returns false when the file
// already exists and force is not set.
func copyFile(source, dest string, force bool) (bool, error) {
	if _, err := os.Stat(dest); err == nil && !force {
		return false, nil
	}

	data, err := templatesFS.ReadFile(source)
	if err != nil {
		return false, fmt.Errorf("failed to read template %s: %w", source, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return true, nil
}
