package state

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// Observation type constants
const (
	ObservationTestFailure = "test_failure"
)

// SnippetLimit caps the captured output stored with an observation.
const SnippetLimit = 500

// Observation is one append-only diagnostic record in observations.jsonl.
// Records are write-once: never mutated or deleted.
type Observation struct {
	Timestamp           time.Time `json:"timestamp"`
	Type                string    `json:"type"`
	File                string    `json:"file,omitempty"`
	Iteration           int       `json:"iteration"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	OutputSnippet       string    `json:"output_snippet,omitempty"`
}

// AppendObservation appends a single record to observations.jsonl.
// The output snippet is truncated to SnippetLimit characters.
func (s *Store) AppendObservation(obs Observation) error {
	obs.OutputSnippet = Truncate(obs.OutputSnippet, SnippetLimit)

	data, err := json.Marshal(obs)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.OpenFile(filepath.Join(s.dir, observationsFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// LoadObservations reads every well-formed record from observations.jsonl,
// oldest first. Malformed lines are skipped; a missing file yields nil.
func (s *Store) LoadObservations() []Observation {
	f, err := os.Open(filepath.Join(s.dir, observationsFileName))
	if err != nil {
		return nil
	}
	defer f.Close()

	var observations []Observation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var obs Observation
		if err := json.Unmarshal(line, &obs); err != nil {
			continue
		}
		observations = append(observations, obs)
	}
	return observations
}

// Truncate cuts s to at most limit bytes without splitting a UTF-8 rune.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
