// Append-only JSONL checkpoint log, one CandidateRecord per line.
// Written before traversal continues so everything extracted so far survives
// a crash. The writer never deduplicates; consumers dedup by URL on load.

package checkpoint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-recruiter-automation/internal/models"

	mapset "github.com/deckarep/golang-set/v2"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Append writes one record and flushes it to disk immediately.
func (s *Store) Append(record models.CandidateRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return f.Sync()
}

// Load returns every record in append order. Duplicates are preserved;
// malformed lines (from a mid-write crash) are skipped with a warning.
func (s *Store) Load() ([]models.CandidateRecord, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer f.Close()

	var records []models.CandidateRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r models.CandidateRecord
		if err := json.Unmarshal(line, &r); err != nil {
			log.Printf("⚠️ Skipping malformed checkpoint line: %v", err)
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read checkpoint file: %w", err)
	}
	return records, nil
}

// Clear deletes the log at the start of a fresh (non-resume) run.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear checkpoint file: %w", err)
	}
	return nil
}

// SeenURLs builds the dedup set a consumer uses when merging a checkpoint
// into a new run.
func SeenURLs(records []models.CandidateRecord) mapset.Set[string] {
	seen := mapset.NewSet[string]()
	for _, r := range records {
		if key := r.DedupKey(); key != "" {
			seen.Add(key)
		}
	}
	return seen
}
