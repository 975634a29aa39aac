package discovery

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"tmap/internal/config"
	"tmap/internal/domain"
)

func newScanner(cfg *config.Config) (*Scanner, *Index) {
	index := NewIndex()
	expander := NewExpander(cfg, index)
	return NewScanner(cfg, index, expander), index
}

func TestScanner_SourceScan(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.New()
	cfg.ProjectRoot = tmp

	writeFile(t, filepath.Join(tmp, "t", "alpha.t"), "use Alpha;\n")
	writeFile(t, filepath.Join(tmp, "lib", "Alpha.pm"), strings.Join([]string{
		"package Alpha;",
		"",
		"=for test_script alpha.t",
		"\tshared.t",
		"",
		"our $VERSION = '1.0';",
		"1;",
		"",
	}, "\n"))
	writeFile(t, filepath.Join(tmp, "Root.pm"), "package Root;\n1;\n")

	scanner, index := newScanner(cfg)
	if err := scanner.EnsureBuilt(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alphaPath := filepath.Join(tmp, "lib", "Alpha.pm")

	t.Run("records package declarations per file", func(t *testing.T) {
		pkgs := index.PackagesIn(alphaPath)
		if len(pkgs) != 1 || pkgs[0] != "Alpha" {
			t.Errorf("expected [Alpha], got %v", pkgs)
		}
	})

	t.Run("annotation continuation consumes lines until blank", func(t *testing.T) {
		scripts := index.ScriptsForFile(alphaPath)
		if len(scripts) != 2 || scripts[0] != "alpha.t" || scripts[1] != "shared.t" {
			t.Errorf("expected [alpha.t shared.t], got %v", scripts)
		}
	})

	t.Run("annotation is attributed to the current package", func(t *testing.T) {
		scripts := index.ScriptsForPackage("Alpha")
		for _, want := range []string{"alpha.t", "shared.t"} {
			if !contains(scripts, want) {
				t.Errorf("expected %s in scripts for Alpha, got %v", want, scripts)
			}
		}
	})

	t.Run("scans source files directly inside the project root", func(t *testing.T) {
		pkgs := index.PackagesIn(filepath.Join(tmp, "Root.pm"))
		if len(pkgs) != 1 || pkgs[0] != "Root" {
			t.Errorf("expected [Root], got %v", pkgs)
		}
	})

	t.Run("scan passes run only once", func(t *testing.T) {
		if err := scanner.EnsureBuilt(nil); err != nil {
			t.Fatalf("unexpected error on second build: %v", err)
		}
		if got := index.ScriptsForFile(alphaPath); len(got) != 2 {
			t.Errorf("expected mappings unchanged after rebuild, got %v", got)
		}
	})
}

func TestScanner_AnnotationBeforePackage(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.New()
	cfg.ProjectRoot = tmp

	writeFile(t, filepath.Join(tmp, "t", "x.t"), "")
	// The annotation precedes the declaration, so it belongs to the
	// implicit default package, not to Beta.
	writeFile(t, filepath.Join(tmp, "lib", "Beta.pm"), strings.Join([]string{
		"=for test_script beta-file.t",
		"",
		"package Beta;",
		"1;",
		"",
	}, "\n"))

	scanner, index := newScanner(cfg)
	if err := scanner.EnsureBuilt(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	betaPath := filepath.Join(tmp, "lib", "Beta.pm")
	if scripts := index.ScriptsForFile(betaPath); !contains(scripts, "beta-file.t") {
		t.Errorf("expected file association, got %v", scripts)
	}
	if scripts := index.ScriptsForPackage("Beta"); contains(scripts, "beta-file.t") {
		t.Errorf("expected no package association for Beta, got %v", scripts)
	}
	if scripts := index.ScriptsForPackage(cfg.DefaultPackage); !contains(scripts, "beta-file.t") {
		t.Errorf("expected association with the default package, got %v", scripts)
	}
}

func TestScanner_TestScan(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.New()
	cfg.ProjectRoot = tmp

	writeFile(t, filepath.Join(tmp, "lib", "Alpha.pm"), "package Alpha;\n1;\n")
	writeFile(t, filepath.Join(tmp, "t", "beta.t"), strings.Join([]string{
		"=for package Beta",
		"Gamma",
		"",
		"=for file lib/Alpha.pm",
		"",
		"use Delta::One;",
		"require Epsilon;",
		"print \"ok\\n\";",
		"",
	}, "\n"))

	scanner, index := newScanner(cfg)
	if err := scanner.EnsureBuilt(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rel := filepath.Join("t", "beta.t")

	t.Run("package annotations with continuation", func(t *testing.T) {
		for _, pkg := range []string{"Beta", "Gamma"} {
			if scripts := index.ScriptsForPackage(pkg); !contains(scripts, rel) {
				t.Errorf("expected %s to map to %s, got %v", pkg, rel, scripts)
			}
		}
	})

	t.Run("file annotations resolve against the project root", func(t *testing.T) {
		abs := filepath.Join(tmp, "lib", "Alpha.pm")
		if scripts := index.ScriptsForFile(abs); !contains(scripts, rel) {
			t.Errorf("expected file annotation for %s, got %v", abs, scripts)
		}
	})

	t.Run("import statements map modules to the script", func(t *testing.T) {
		for _, pkg := range []string{"Delta::One", "Epsilon"} {
			if scripts := index.ScriptsForPackage(pkg); !contains(scripts, rel) {
				t.Errorf("expected %s to map to %s, got %v", pkg, rel, scripts)
			}
		}
	})
}

func TestScanner_NoTestScripts(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.New()
	cfg.ProjectRoot = tmp

	writeFile(t, filepath.Join(tmp, "t", "README"), "no tests here\n")

	scanner, _ := newScanner(cfg)
	err := scanner.EnsureBuilt(nil)
	if !errors.Is(err, domain.ErrNoTestScripts) {
		t.Errorf("expected ErrNoTestScripts, got %v", err)
	}
}

func TestScanner_RejectsParentTraversal(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.New()
	cfg.ProjectRoot = tmp

	writeFile(t, filepath.Join(tmp, "t", "bad.t"), "=for file ../outside.pm\n\n")

	scanner, _ := newScanner(cfg)
	err := scanner.EnsureBuilt(nil)
	if err == nil || !strings.Contains(err.Error(), "parent-directory") {
		t.Errorf("expected parent-directory error, got %v", err)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
