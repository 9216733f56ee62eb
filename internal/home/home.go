package home

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName is the default name for the promptkit home directory.
	DefaultDirName = ".promptkit"

	// CharactersDirName is the subdirectory for character record files.
	CharactersDirName = "characters"

	// ExportsDirName is the subdirectory for saved platform exports.
	ExportsDirName = "exports"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the promptkit home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.promptkit).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// CharactersPath returns the default character records directory.
func (d *Dir) CharactersPath() string {
	return filepath.Join(d.path, CharactersDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ExportsDir returns the directory for saved exports.
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, ExportsDirName)
}

// CharacterExportsDir returns the exports directory for one character.
func (d *Dir) CharacterExportsDir(characterID string) string {
	return filepath.Join(d.ExportsDir(), safeName(characterID))
}

// ExportPath returns where an export for a scene and platform is saved.
// JSON platforms get a .json extension, the rest .txt.
func (d *Dir) ExportPath(characterID, sceneID, platform string, isJSON bool) string {
	ext := "txt"
	if isJSON {
		ext = "json"
	}
	name := fmt.Sprintf("%s.%s.%s", safeName(sceneID), safeName(platform), ext)
	return filepath.Join(d.CharacterExportsDir(characterID), name)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Creating the subdirectories also creates the parent
	if err := os.MkdirAll(d.CharactersPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create characters directory: %w", err)
	}
	if err := os.MkdirAll(d.ExportsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create exports directory: %w", err)
	}
	return nil
}

// EnsureCharacterExportsDir creates the exports directory for a character.
func (d *Dir) EnsureCharacterExportsDir(characterID string) error {
	return os.MkdirAll(d.CharacterExportsDir(characterID), 0o755)
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// safeName keeps ids usable as single path elements.
func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
	if s == "." || s == ".." || filepath.Base(s) != s {
		return "_"
	}
	return s
}
