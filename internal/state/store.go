// Package state provides typed access to the per-project runtime records
// under .autobot/. All whole-file writes go through a temp file + rename so a
// crashed hook never leaves a half-written record behind. Reads are tolerant:
// a missing or corrupt record loads as nil (or defaults), never as an error
// the hooks have to handle.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the state directory created inside a project.
const DirName = ".autobot"

const (
	taskFileName         = "task.json"
	planFileName         = "plan.json"
	metricsFileName      = "metrics.json"
	observationsFileName = "observations.jsonl"
	progressFileName     = "progress.md"
	pauseFileName        = ".paused"
	configFileName       = "config.yml"
)

// ProjectDir returns the project root the hooks operate on: the
// CLAUDE_PROJECT_DIR environment variable when set, otherwise the cwd.
func ProjectDir() string {
	if dir := os.Getenv("CLAUDE_PROJECT_DIR"); dir != "" {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// Store reads and writes the runtime records for one project.
type Store struct {
	dir string
}

// NewStore creates a store rooted at <projectDir>/.autobot.
func NewStore(projectDir string) *Store {
	return &Store{dir: filepath.Join(projectDir, DirName)}
}

// Dir returns the state directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether the state directory is present. When it is not,
// there is nothing to gate and every decision defaults to allow.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Init creates the state directory if needed.
func (s *Store) Init() error {
	return os.MkdirAll(s.dir, 0755)
}

// ConfigPath returns the path of the optional config.yml inside the store.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.dir, configFileName)
}

// LoadTask returns the task record, or nil when absent or unreadable.
func (s *Store) LoadTask() *Task {
	var task Task
	if !s.loadJSON(taskFileName, &task) {
		return nil
	}
	return &task
}

// SaveTask atomically writes the task record.
func (s *Store) SaveTask(task *Task) error {
	return s.saveJSON(taskFileName, task)
}

// LoadPlan returns the plan record, or nil when absent or unreadable.
func (s *Store) LoadPlan() *Plan {
	var plan Plan
	if !s.loadJSON(planFileName, &plan) {
		return nil
	}
	return &plan
}

// SavePlan atomically writes the plan record.
func (s *Store) SavePlan(plan *Plan) error {
	return s.saveJSON(planFileName, plan)
}

// LoadMetrics returns the metrics record. A missing or corrupt file yields
// the zero value; callers apply configured defaults for MaxIterations.
func (s *Store) LoadMetrics() Metrics {
	var metrics Metrics
	s.loadJSON(metricsFileName, &metrics)
	return metrics
}

// HasMetrics reports whether a metrics record exists on disk.
func (s *Store) HasMetrics() bool {
	_, err := os.Stat(filepath.Join(s.dir, metricsFileName))
	return err == nil
}

// SaveMetrics atomically writes the metrics record.
func (s *Store) SaveMetrics(metrics Metrics) error {
	return s.saveJSON(metricsFileName, metrics)
}

// Paused reports whether the presence-only pause flag exists.
func (s *Store) Paused() bool {
	_, err := os.Stat(filepath.Join(s.dir, pauseFileName))
	return err == nil
}

// Pause creates the pause flag.
func (s *Store) Pause() error {
	f, err := os.OpenFile(filepath.Join(s.dir, pauseFileName), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Resume removes the pause flag. Removing an absent flag is not an error.
func (s *Store) Resume() error {
	err := os.Remove(filepath.Join(s.dir, pauseFileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ReadProgress returns the contents of progress.md, or "" when absent.
func (s *Store) ReadProgress() string {
	data, err := os.ReadFile(filepath.Join(s.dir, progressFileName))
	if err != nil {
		return ""
	}
	return string(data)
}

// loadJSON reads and decodes one record. Returns false when the file is
// missing or does not parse; both are treated as absence.
func (s *Store) loadJSON(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// saveJSON writes a record via temp file + rename so readers never observe a
// partial write.
func (s *Store) saveJSON(name string, v any) error {
	path := filepath.Join(s.dir, name)
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
