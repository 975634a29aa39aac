package storage

import (
	"io"

	"tmap/internal/domain"
)

// Storage persists cross-reference index snapshots for external tooling.
// Snapshots are a one-way export: resolution never reads them back.
type Storage interface {
	Save(snapshot *domain.IndexSnapshot, path string) error
	Write(snapshot *domain.IndexSnapshot, w io.Writer) error
	Load(path string) (*domain.IndexSnapshot, error)
}
