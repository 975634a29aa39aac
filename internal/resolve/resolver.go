// Package resolve turns a mixed list of names (files, directories,
// packages, test scripts) into the set of test scripts covering them.
package resolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tmap/internal/config"
	"tmap/internal/discovery"
	"tmap/internal/domain"
	"tmap/internal/logging"
)

// Resolver maps input names to the test scripts exercising them. The
// cross-reference index is built on the first call and shared by every
// call after that, so repeated resolutions are idempotent. A Resolver is
// single-use state for one invocation; it is not safe for concurrent use.
type Resolver struct {
	cfg        *config.Config
	classifier *discovery.Classifier
	expander   *discovery.Expander
	scanner    *discovery.Scanner
	index      *discovery.Index
}

// New creates a Resolver with a fresh, unbuilt index.
func New(cfg *config.Config) *Resolver {
	index := discovery.NewIndex()
	expander := discovery.NewExpander(cfg, index)
	return &Resolver{
		cfg:        cfg,
		classifier: discovery.NewClassifier(cfg),
		expander:   expander,
		scanner:    discovery.NewScanner(cfg, index, expander),
		index:      index,
	}
}

// SetProgress forwards a scan progress sink to the scanner.
func (r *Resolver) SetProgress(p discovery.Progress) {
	r.scanner.SetProgress(p)
}

// Classifier exposes the classifier so its predicates can be replaced.
func (r *Resolver) Classifier() *discovery.Classifier {
	return r.classifier
}

type classified struct {
	name string
	kind domain.Kind
}

// Resolve maps names to the deduplicated, lexicographically sorted list of
// test-script paths, each expressed relative to the project root with the
// test-directory prefix. If any name cannot be mapped to at least one test
// script the whole resolution fails, naming every such name at once.
func (r *Resolver) Resolve(names []string) ([]string, error) {
	root, err := r.cfg.ResolveRoot()
	if err != nil {
		return nil, err
	}

	// Expand directories into their qualifying files
	var expanded []string
	for _, name := range names {
		files, err := r.expander.Expand(name)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, files...)
	}

	// Classify everything and collect the extra files the source scan
	// should read: anything that is not a package, test script, or
	// directory, and exists as a file to read.
	items := make([]classified, 0, len(expanded))
	var candidates []string
	for _, name := range expanded {
		kind := r.classifier.Classify(name)
		items = append(items, classified{name: name, kind: kind})
		switch kind {
		case domain.KindPackage, domain.KindTestScript, domain.KindDirectory:
		default:
			if abs, err := filepath.Abs(name); err == nil && existsAsFile(abs) {
				candidates = append(candidates, abs)
			}
		}
	}

	if err := r.scanner.EnsureBuilt(candidates); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	var unresolved []string
	for _, item := range items {
		scripts := r.resolveOne(item, root)
		if item.kind != domain.KindTestScript && len(scripts) == 0 {
			logging.Debug("unresolved", "name", item.name, "kind", item.kind.String())
			unresolved = append(unresolved, item.name)
			continue
		}
		for _, script := range scripts {
			set[r.canonicalize(root, script)] = true
		}
	}

	if len(unresolved) > 0 {
		return nil, &domain.UnresolvedError{Names: unresolved}
	}

	out := make([]string, 0, len(set))
	for script := range set {
		out = append(out, script)
	}
	sort.Strings(out)
	return out, nil
}

// Snapshot builds the index if needed and returns its serializable form,
// with every script reference in canonical test-directory-relative form.
func (r *Resolver) Snapshot() (*domain.IndexSnapshot, error) {
	root, err := r.cfg.ResolveRoot()
	if err != nil {
		return nil, err
	}
	if err := r.scanner.EnsureBuilt(nil); err != nil {
		return nil, err
	}
	snapshot := r.index.Snapshot(root, r.cfg.TestDir)
	r.canonicalizeValues(snapshot.Packages, root)
	r.canonicalizeValues(snapshot.Files, root)
	return snapshot, nil
}

func (r *Resolver) canonicalizeValues(m map[string][]string, root string) {
	for key, scripts := range m {
		out := scripts[:0]
		for _, script := range scripts {
			out = append(out, r.canonicalize(root, script))
		}
		sort.Strings(out)
		m[key] = out
	}
}

// resolveOne dispatches a single classified name to its lookup branch.
// A name that satisfies no heuristic falls through to the plain-file
// branch even if it does not exist on disk; absence simply yields an
// empty result there.
func (r *Resolver) resolveOne(item classified, root string) []string {
	switch item.kind {
	case domain.KindTestScript:
		return []string{item.name}
	case domain.KindPackage:
		return r.index.ScriptsForPackage(item.name)
	case domain.KindDirectory:
		var scripts []string
		for _, file := range r.index.FilesUnder(item.name) {
			if r.classifier.IsTestScript(file) {
				scripts = append(scripts, file)
				continue
			}
			scripts = append(scripts, r.scriptsForFile(file, root)...)
		}
		return scripts
	default:
		return r.scriptsForFile(item.name, root)
	}
}

// scriptsForFile unions the direct file associations of name with the
// scripts covering every package declared in it. Relative names are tried
// against the working directory, the project root, and the library
// subdirectory, so "Foo.pm" finds lib/Foo.pm from anywhere in the project.
func (r *Resolver) scriptsForFile(name string, root string) []string {
	seen := make(map[string]bool)
	var scripts []string
	for _, abs := range r.fileCandidates(name, root) {
		for _, script := range r.index.ScriptsForFile(abs) {
			if !seen[script] {
				seen[script] = true
				scripts = append(scripts, script)
			}
		}
		for _, pkg := range r.index.PackagesIn(abs) {
			for _, script := range r.index.ScriptsForPackage(pkg) {
				if !seen[script] {
					seen[script] = true
					scripts = append(scripts, script)
				}
			}
		}
	}
	return scripts
}

func (r *Resolver) fileCandidates(name string, root string) []string {
	var candidates []string
	add := func(path string) {
		for _, c := range candidates {
			if c == path {
				return
			}
		}
		candidates = append(candidates, path)
	}
	if abs, err := filepath.Abs(name); err == nil {
		add(abs)
	}
	if !filepath.IsAbs(name) {
		add(filepath.Clean(filepath.Join(root, name)))
		add(filepath.Clean(filepath.Join(root, r.cfg.LibDir, name)))
	}
	return candidates
}

// canonicalize expresses a test-script path relative to the project root,
// prefixed with the test-directory name.
func (r *Resolver) canonicalize(root, script string) string {
	s := filepath.Clean(script)
	if filepath.IsAbs(s) {
		if rel, err := filepath.Rel(root, s); err == nil && !strings.HasPrefix(rel, "..") {
			s = rel
		}
	}
	if s == r.cfg.TestDir || strings.HasPrefix(s, r.cfg.TestDir+string(filepath.Separator)) {
		return s
	}
	return filepath.Join(r.cfg.TestDir, s)
}

func existsAsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
