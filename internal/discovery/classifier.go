package discovery

import (
	"os"
	"regexp"
	"strings"

	"tmap/internal/config"
	"tmap/internal/domain"
	"tmap/internal/logging"
)

// packagePattern matches bare identifiers joined by :: separators.
var packagePattern = regexp.MustCompile(`^\w+(?:::\w+)*$`)

// Classifier decides what kind of thing an input name denotes, using
// filesystem existence checks plus naming-convention heuristics. The
// predicate fields are plain functions so downstream users can swap in
// their own naming conventions.
type Classifier struct {
	IsTestScript func(name string) bool
	IsSourceFile func(name string) bool
	IsPackage    func(name string) bool
}

// NewClassifier creates a Classifier with the suffix heuristics from cfg.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{
		IsTestScript: func(name string) bool {
			return strings.HasSuffix(name, cfg.TestSuffix) && notDirectory(name)
		},
		IsSourceFile: func(name string) bool {
			for _, suffix := range cfg.SourceSuffixes {
				if strings.HasSuffix(name, suffix) {
					return notDirectory(name)
				}
			}
			return false
		},
		IsPackage: func(name string) bool {
			if !packagePattern.MatchString(name) {
				return false
			}
			// A name that looks like a package but exists on disk is a path
			if _, err := os.Stat(name); err == nil {
				logging.Debug("package-like name exists on disk, treating as path", "name", name)
				return false
			}
			return true
		},
	}
}

// Classify returns the kind of name. Suffix heuristics run first; the
// directory check only applies when none of them match.
func (c *Classifier) Classify(name string) domain.Kind {
	kind := c.classify(name)
	logging.Debug("classified", "name", name, "kind", kind.String())
	return kind
}

func (c *Classifier) classify(name string) domain.Kind {
	switch {
	case c.IsTestScript(name):
		return domain.KindTestScript
	case c.IsSourceFile(name):
		return domain.KindSourceFile
	case c.IsPackage(name):
		return domain.KindPackage
	}
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		return domain.KindDirectory
	}
	return domain.KindPlainPath
}

// notDirectory reports whether name is absent from disk or exists as a
// regular file. A directory with a file-like suffix is not a file.
func notDirectory(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return true
	}
	return info.Mode().IsRegular()
}
