package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tmap/internal/domain"
)

// JSONStorage reads and writes index snapshots as indented JSON.
type JSONStorage struct{}

// NewJSONStorage creates a new JSONStorage
func NewJSONStorage() *JSONStorage {
	return &JSONStorage{}
}

// Write renders the snapshot to w.
func (s *JSONStorage) Write(snapshot *domain.IndexSnapshot, w io.Writer) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Save writes the snapshot to the given file path, creating parent
// directories as needed.
func (s *JSONStorage) Save(snapshot *domain.IndexSnapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot previously written by Save.
func (s *JSONStorage) Load(path string) (*domain.IndexSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var snapshot domain.IndexSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snapshot, nil
}
