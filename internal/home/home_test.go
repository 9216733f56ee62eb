package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-promptkit")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-promptkit" {
			t.Errorf("expected path /tmp/test-promptkit, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-promptkit")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CharactersPath", dir.CharactersPath(), "/tmp/test-promptkit/characters"},
		{"ConfigPath", dir.ConfigPath(), "/tmp/test-promptkit/config.yaml"},
		{"ExportsDir", dir.ExportsDir(), "/tmp/test-promptkit/exports"},
		{"CharacterExportsDir", dir.CharacterExportsDir("cf-007"), "/tmp/test-promptkit/exports/cf-007"},
		{"ExportPath text", dir.ExportPath("cf-007", "batch_0_cafe", "midjourney", false), "/tmp/test-promptkit/exports/cf-007/batch_0_cafe.midjourney.txt"},
		{"ExportPath json", dir.ExportPath("cf-007", "sprite_front", "stable_diffusion", true), "/tmp/test-promptkit/exports/cf-007/sprite_front.stable_diffusion.json"},
		{"ExportPath unsafe id", dir.ExportPath("a/b", "x:y", "dalle", false), "/tmp/test-promptkit/exports/a_b/x_y.dalle.txt"},
		{"ExportPath dot-dot id", dir.ExportPath("..", "..", "dalle", false), "/tmp/test-promptkit/exports/_/_.dalle.txt"},
		{"CharacterExportsDir dot", dir.CharacterExportsDir("."), "/tmp/test-promptkit/exports/_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestDir_EnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	homePath := filepath.Join(tmpDir, ".promptkit")

	dir, err := New(homePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.Exists() {
		t.Error("expected directory to not exist yet")
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	if !dir.Exists() {
		t.Error("expected directory to exist after EnsureExists")
	}
	for _, p := range []string{dir.CharactersPath(), dir.ExportsDir()} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			t.Errorf("expected %s to exist", p)
		}
	}

	if dir.ConfigExists() {
		t.Error("expected no config file yet")
	}

	if err := dir.EnsureCharacterExportsDir("cf-007"); err != nil {
		t.Fatalf("EnsureCharacterExportsDir failed: %v", err)
	}
	if _, err := os.Stat(dir.CharacterExportsDir("cf-007")); err != nil {
		t.Errorf("expected character exports dir: %v", err)
	}
}
