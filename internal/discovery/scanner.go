package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tmap/internal/config"
	"tmap/internal/domain"
	"tmap/internal/logging"
)

var (
	// packageDeclPattern matches a package declaration at the start of a line
	packageDeclPattern = regexp.MustCompile(`^package\s+(\w+(?:::\w+)*)`)
	// scriptAnnotation marks a source file as covered by the listed test scripts
	scriptAnnotation = regexp.MustCompile(`^=for\s+test_scripts?\b(.*)`)
	// packageAnnotation marks a test script as covering the listed packages
	packageAnnotation = regexp.MustCompile(`^=for\s+packages?\b(.*)`)
	// fileAnnotation marks a test script as covering the listed files
	fileAnnotation = regexp.MustCompile(`^=for\s+files?\b(.*)`)
	// importPattern matches an import/require statement naming a module
	importPattern = regexp.MustCompile(`^\s*(?:use|require)\s+(\w+(?:::\w+)*)`)
)

// Progress receives scan progress notifications.
type Progress interface {
	Start(total int)
	Add(n int)
	Finish()
}

// Scanner populates the cross-reference index by reading source files and
// test scripts line-by-line. This is a deliberate regex heuristic, not a
// parser: false positives and negatives are accepted in exchange for speed
// and tolerance of partial information. Each scan pass runs at most once.
type Scanner struct {
	cfg      *config.Config
	index    *Index
	expander *Expander
	progress Progress

	sourcesScanned bool
	testsScanned   bool
}

// NewScanner creates a new Scanner populating index.
func NewScanner(cfg *config.Config, index *Index, expander *Expander) *Scanner {
	return &Scanner{cfg: cfg, index: index, expander: expander}
}

// SetProgress installs a sink for per-file scan progress.
func (s *Scanner) SetProgress(p Progress) {
	s.progress = p
}

// EnsureBuilt runs both scan passes unless they already ran: first the
// non-test source universe (the library subdirectory, source files in the
// project root, and the extra candidate files), then the test-script
// universe. The index is frozen afterwards.
func (s *Scanner) EnsureBuilt(extraSources []string) error {
	if s.index.Built() {
		return nil
	}
	if err := s.scanSources(extraSources); err != nil {
		return err
	}
	if err := s.scanTests(); err != nil {
		return err
	}
	s.index.MarkBuilt()
	return nil
}

// scanSources reads every candidate source file, tracking package
// declarations and test-script annotations.
func (s *Scanner) scanSources(extra []string) error {
	if s.sourcesScanned {
		return nil
	}

	root, err := s.cfg.ResolveRoot()
	if err != nil {
		return err
	}

	var files []string

	// Library subdirectory, when present
	libPath := filepath.Join(root, s.cfg.LibDir)
	if info, err := os.Stat(libPath); err == nil && info.IsDir() {
		libFiles, err := s.expander.CollectFiles(libPath)
		if err != nil {
			return err
		}
		files = append(files, libFiles...)
	}

	// Source files directly inside the project root
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read project root %s: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		for _, suffix := range s.cfg.SourceSuffixes {
			if strings.HasSuffix(entry.Name(), suffix) {
				files = append(files, filepath.Join(root, entry.Name()))
				break
			}
		}
	}

	files = append(files, extra...)

	logging.Debug("source scan", "files", len(files))

	seen := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolve path %s: %w", file, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		if err := s.scanSourceFile(abs); err != nil {
			return err
		}
	}

	s.sourcesScanned = true
	return nil
}

// scanSourceFile extracts package declarations and test-script annotations
// from one source file. An annotation is attributed both to the file and to
// the package declared at that point in the file.
func (s *Scanner) scanSourceFile(abs string) error {
	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("open source file %s: %w", abs, err)
	}
	defer f.Close()

	current := s.cfg.DefaultPackage
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if m := packageDeclPattern.FindStringSubmatch(line); m != nil {
			current = m[1]
			s.index.AddFilePackage(abs, current)
			logging.Debug("package declaration", "file", abs, "package", current)
			continue
		}
		if m := scriptAnnotation.FindStringSubmatch(line); m != nil {
			for _, script := range collectTokens(sc, m[1]) {
				s.index.AddFileScript(abs, script)
				s.index.AddPackageScript(current, script)
				logging.Debug("test_script annotation", "file", abs, "package", current, "script", script)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read source file %s: %w", abs, err)
	}
	return nil
}

// scanTests walks the test directory for test scripts and extracts their
// package annotations, file annotations, and import statements. Zero test
// scripts is a fatal configuration error, not a per-name miss.
func (s *Scanner) scanTests() error {
	if s.testsScanned {
		return nil
	}

	root, err := s.cfg.ResolveRoot()
	if err != nil {
		return err
	}
	testPath, err := s.cfg.TestPath()
	if err != nil {
		return err
	}

	var scripts []string
	err = filepath.WalkDir(testPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), s.cfg.TestSuffix) {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk test directory %s: %w", testPath, err)
	}
	if len(scripts) == 0 {
		return fmt.Errorf("%w in %s", domain.ErrNoTestScripts, testPath)
	}

	logging.Debug("test scan", "scripts", len(scripts))

	if s.progress != nil {
		s.progress.Start(len(scripts))
		defer s.progress.Finish()
	}
	for _, script := range scripts {
		if err := s.scanTestScript(root, script); err != nil {
			return err
		}
		if s.progress != nil {
			s.progress.Add(1)
		}
	}

	s.testsScanned = true
	return nil
}

// scanTestScript extracts the associations declared by one test script.
// The script is recorded under its project-root-relative path.
func (s *Scanner) scanTestScript(root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open test script %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if m := packageAnnotation.FindStringSubmatch(line); m != nil {
			for _, pkg := range collectTokens(sc, m[1]) {
				s.index.AddPackageScript(pkg, rel)
				logging.Debug("package annotation", "script", rel, "package", pkg)
			}
			continue
		}
		if m := fileAnnotation.FindStringSubmatch(line); m != nil {
			for _, file := range collectTokens(sc, m[1]) {
				if hasParentSegment(file) {
					return fmt.Errorf("file annotation %q in %s: parent-directory segments are not allowed", file, rel)
				}
				abs := filepath.Clean(filepath.Join(root, file))
				s.index.AddFileScript(abs, rel)
				logging.Debug("file annotation", "script", rel, "file", abs)
			}
			continue
		}
		if m := importPattern.FindStringSubmatch(line); m != nil {
			s.index.AddPackageScript(m[1], rel)
			logging.Debug("import", "script", rel, "package", m[1])
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read test script %s: %w", path, err)
	}
	return nil
}

// collectTokens splits the remainder of an annotation line on whitespace
// and keeps consuming continuation lines until a blank line is reached.
// Empty tokens are discarded.
func collectTokens(sc *bufio.Scanner, rest string) []string {
	tokens := strings.Fields(rest)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens
}

// hasParentSegment reports whether a relative path contains a ".." segment.
func hasParentSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}
