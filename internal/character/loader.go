package character

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cosmicfriends/promptkit/internal/schema"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported record format")

// ErrDuplicateID is returned when two records in a directory share an id.
var ErrDuplicateID = errors.New("duplicate character id")

// Format is the on-disk encoding of a record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor returns the record format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// IsRecordFile reports whether a path looks like a character record.
func IsRecordFile(path string) bool {
	_, err := FormatFor(path)
	return err == nil
}

// Decode validates and decodes one record.
// YAML is normalized to JSON first so both encodings go through the same
// schema check.
func Decode(data []byte, format Format) (*Character, error) {
	doc := data
	if format == FormatYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		converted, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml to json: %w", err)
		}
		doc = converted
	} else if format != FormatJSON {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err := schema.Validate(schema.Character, doc); err != nil {
		return nil, err
	}

	var c Character
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("failed to decode character: %w", err)
	}
	return &c, nil
}

// LoadFile reads, validates and decodes a single record file.
func LoadFile(path string) (*Character, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	c, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// LoadDir loads every record file in dir (non-recursive).
// Files are decoded concurrently; the result is ordered by file name.
func LoadDir(ctx context.Context, dir string) ([]*Character, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read characters directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsRecordFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	chars := make([]*Character, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			c, err := LoadFile(path)
			if err != nil {
				return err
			}
			chars[i] = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(chars))
	for i, c := range chars {
		if prev, ok := seen[c.Identity.ID]; ok {
			return nil, fmt.Errorf("%w %q in %s and %s", ErrDuplicateID, c.Identity.ID,
				filepath.Base(prev), filepath.Base(paths[i]))
		}
		seen[c.Identity.ID] = paths[i]
	}

	return chars, nil
}
