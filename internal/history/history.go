// Package history keeps the append-only log of generated reports.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sonamtobgay/bankrecon/internal/models"
)

// maxRecords caps the log at the most recent runs.
const maxRecords = 50

// Record describes one completed reconciliation run.
type Record struct {
	Filename          string       `json:"filename"`
	Timestamp         string       `json:"timestamp"` // ISO-8601
	DataEntryFile     string       `json:"data_entry_file"`
	BankStatementFile string       `json:"bank_statement_file"`
	Stats             models.Stats `json:"stats"`
}

// Store is the report metadata log. Records come back oldest first;
// consumers reverse for display.
type Store interface {
	All() ([]Record, error)
	Append(Record) error
}

// FileStore persists the log as a single JSON file. A missing or corrupt
// file is treated as an empty log and silently rewritten on the next
// append — the log must never block a reconciliation.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) All() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileStore) Append(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.load(), r)
	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report metadata: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report metadata: %w", err)
	}
	return nil
}

func (s *FileStore) load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt log: start fresh rather than fail the run.
		return nil
	}
	return records
}

// Reversed returns a copy of records newest first.
func Reversed(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
