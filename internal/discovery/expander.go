package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tmap/internal/config"
)

// Expander expands directories into the qualifying files beneath them.
type Expander struct {
	cfg   *config.Config
	index *Index
}

// NewExpander creates a new Expander recording its findings into index.
func NewExpander(cfg *config.Config, index *Index) *Expander {
	return &Expander{cfg: cfg, index: index}
}

// Expand returns the qualifying files beneath name when it is a directory.
// Non-directories pass through unchanged, and so does a directory with no
// qualifying files, so downstream resolution reports it as unhandled
// instead of silently dropping it.
func (e *Expander) Expand(name string) ([]string, error) {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return []string{name}, nil
	}

	files, err := e.CollectFiles(name)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []string{name}, nil
	}
	return files, nil
}

// CollectFiles walks dir recursively, returning every regular file whose
// name ends in one of the traversal suffixes and recording each one in the
// index's directory mapping. Only the fixed traversal suffixes count here;
// this is narrower on purpose than the classifier's source-file notion.
func (e *Expander) CollectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		for _, suffix := range e.cfg.WalkSuffixes {
			if strings.HasSuffix(d.Name(), suffix) {
				files = append(files, path)
				e.index.AddDirFile(dir, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}
	return files, nil
}
