package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func canonical(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("resolve symlinks for %s: %v", path, err)
	}
	return resolved
}

func TestConfig_ResolveRoot(t *testing.T) {
	t.Run("discovers root by walking upward", func(t *testing.T) {
		tmp := t.TempDir()
		deep := filepath.Join(tmp, "proj", "lib", "deep")
		if err := os.MkdirAll(deep, 0755); err != nil {
			t.Fatalf("create dirs: %v", err)
		}
		if err := os.MkdirAll(filepath.Join(tmp, "proj", "t"), 0755); err != nil {
			t.Fatalf("create test dir: %v", err)
		}
		chdir(t, deep)

		cfg := New()
		root, err := cfg.ResolveRoot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if canonical(t, root) != canonical(t, filepath.Join(tmp, "proj")) {
			t.Errorf("expected root %s, got %s", filepath.Join(tmp, "proj"), root)
		}
	})

	t.Run("explicit root wins over discovery", func(t *testing.T) {
		tmp := t.TempDir()
		cfg := New()
		cfg.Flags.Root = tmp

		root, err := cfg.ResolveRoot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		abs, _ := filepath.Abs(tmp)
		if root != abs {
			t.Errorf("expected root %s, got %s", abs, root)
		}
	})

	t.Run("errors when no test directory exists upward", func(t *testing.T) {
		tmp := t.TempDir()
		chdir(t, tmp)

		cfg := New()
		cfg.TestDir = "tmap-no-such-dir-xyz"
		if _, err := cfg.ResolveRoot(); err == nil {
			t.Error("expected error when no test directory is found")
		}
	})

	t.Run("caches the discovered root", func(t *testing.T) {
		tmp := t.TempDir()
		testDir := filepath.Join(tmp, "t")
		if err := os.MkdirAll(testDir, 0755); err != nil {
			t.Fatalf("create test dir: %v", err)
		}
		chdir(t, tmp)

		cfg := New()
		first, err := cfg.ResolveRoot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Removing the test dir must not affect the cached root
		if err := os.Remove(testDir); err != nil {
			t.Fatalf("remove test dir: %v", err)
		}
		second, err := cfg.ResolveRoot()
		if err != nil {
			t.Fatalf("unexpected error on second call: %v", err)
		}
		if first != second {
			t.Errorf("expected cached root %s, got %s", first, second)
		}
	})

	t.Run("errors for nonexistent explicit root", func(t *testing.T) {
		cfg := New()
		cfg.Flags.Root = filepath.Join(t.TempDir(), "missing")
		if _, err := cfg.ResolveRoot(); err == nil {
			t.Error("expected error for nonexistent explicit root")
		}
	})
}

func TestConfig_RunnerCommand(t *testing.T) {
	cfg := New()
	if got := cfg.RunnerCommand(); got != DefaultRunner {
		t.Errorf("expected default runner %q, got %q", DefaultRunner, got)
	}

	cfg.Flags.Runner = "gmake"
	if got := cfg.RunnerCommand(); got != "gmake" {
		t.Errorf("expected flag runner %q, got %q", "gmake", got)
	}
}

func TestDebug(t *testing.T) {
	t.Setenv(DebugEnvVar, "")
	if Debug() {
		t.Error("expected debug to be disabled with empty env")
	}
	t.Setenv(DebugEnvVar, "1")
	if !Debug() {
		t.Error("expected debug to be enabled")
	}
}
