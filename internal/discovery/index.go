package discovery

import (
	"sort"
	"time"

	"tmap/internal/domain"
)

// Index is the in-memory cross-reference index. It is built lazily, once
// per invocation, and read-only afterwards.
type Index struct {
	packageScripts map[string][]string // package name -> test scripts
	fileScripts    map[string][]string // absolute file path -> test scripts
	filePackages   map[string][]string // absolute file path -> declared packages
	dirFiles       map[string][]string // directory -> files found beneath it

	built bool
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		packageScripts: make(map[string][]string),
		fileScripts:    make(map[string][]string),
		filePackages:   make(map[string][]string),
		dirFiles:       make(map[string][]string),
	}
}

// AddPackageScript records that script covers the given package.
func (ix *Index) AddPackageScript(pkg, script string) {
	addUnique(ix.packageScripts, pkg, script)
}

// AddFileScript records that script covers the given file.
func (ix *Index) AddFileScript(path, script string) {
	addUnique(ix.fileScripts, path, script)
}

// AddFilePackage records that path declares the given package.
func (ix *Index) AddFilePackage(path, pkg string) {
	addUnique(ix.filePackages, path, pkg)
}

// AddDirFile records that path was found beneath dir.
func (ix *Index) AddDirFile(dir, path string) {
	addUnique(ix.dirFiles, dir, path)
}

// ScriptsForPackage returns the test scripts covering pkg, in discovery order.
func (ix *Index) ScriptsForPackage(pkg string) []string {
	return ix.packageScripts[pkg]
}

// ScriptsForFile returns the test scripts covering the absolute path.
func (ix *Index) ScriptsForFile(path string) []string {
	return ix.fileScripts[path]
}

// PackagesIn returns the packages declared in the absolute path.
func (ix *Index) PackagesIn(path string) []string {
	return ix.filePackages[path]
}

// FilesUnder returns the files previously discovered beneath dir.
func (ix *Index) FilesUnder(dir string) []string {
	return ix.dirFiles[dir]
}

// Built reports whether the scan passes have populated the index.
func (ix *Index) Built() bool {
	return ix.built
}

// MarkBuilt freezes the index after both scan passes complete.
func (ix *Index) MarkBuilt() {
	ix.built = true
}

// Snapshot returns a serializable copy of the index with sorted values.
func (ix *Index) Snapshot(root, testDir string) *domain.IndexSnapshot {
	return &domain.IndexSnapshot{
		Meta: domain.SnapshotMeta{
			ProjectRoot: root,
			TestDir:     testDir,
			Timestamp:   time.Now().Format(time.RFC3339),
		},
		Packages: sortedCopy(ix.packageScripts),
		Files:    sortedCopy(ix.fileScripts),
		Declares: sortedCopy(ix.filePackages),
		Dirs:     sortedCopy(ix.dirFiles),
	}
}

// addUnique appends value to m[key] unless it is already present,
// preserving discovery order.
func addUnique(m map[string][]string, key, value string) {
	for _, v := range m[key] {
		if v == value {
			return
		}
	}
	m[key] = append(m[key], value)
}

func sortedCopy(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for key, values := range m {
		copied := append([]string(nil), values...)
		sort.Strings(copied)
		out[key] = copied
	}
	return out
}
