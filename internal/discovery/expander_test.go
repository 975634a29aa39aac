package discovery

import (
	"path/filepath"
	"testing"

	"tmap/internal/config"
)

func TestExpander_Expand(t *testing.T) {
	cfg := config.New()

	t.Run("collects only traversal suffixes", func(t *testing.T) {
		tmp := t.TempDir()
		writeFile(t, filepath.Join(tmp, "a.pm"), "package A;\n")
		writeFile(t, filepath.Join(tmp, "b.t"), "use A;\n")
		writeFile(t, filepath.Join(tmp, "c.txt"), "notes\n")
		writeFile(t, filepath.Join(tmp, "d.pl"), "#!/usr/bin/perl\n")
		writeFile(t, filepath.Join(tmp, "sub", "e.pm"), "package E;\n")

		index := NewIndex()
		expander := NewExpander(cfg, index)
		files, err := expander.Expand(tmp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Only .pm and .t count during traversal; .pl does not
		want := map[string]bool{
			filepath.Join(tmp, "a.pm"):        true,
			filepath.Join(tmp, "b.t"):         true,
			filepath.Join(tmp, "sub", "e.pm"): true,
		}
		if len(files) != len(want) {
			t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
		}
		for _, f := range files {
			if !want[f] {
				t.Errorf("unexpected file %s", f)
			}
		}

		// The directory mapping records what was found beneath the input
		if got := index.FilesUnder(tmp); len(got) != len(want) {
			t.Errorf("expected %d recorded files, got %d", len(want), len(got))
		}
	})

	t.Run("directory without qualifying files passes through", func(t *testing.T) {
		tmp := t.TempDir()
		writeFile(t, filepath.Join(tmp, "notes.txt"), "nothing\n")

		expander := NewExpander(cfg, NewIndex())
		files, err := expander.Expand(tmp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0] != tmp {
			t.Errorf("expected directory to pass through unchanged, got %v", files)
		}
	})

	t.Run("non-directory passes through", func(t *testing.T) {
		expander := NewExpander(cfg, NewIndex())
		files, err := expander.Expand("Foo::Bar")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0] != "Foo::Bar" {
			t.Errorf("expected passthrough, got %v", files)
		}
	})
}
