// Package schema holds the embedded JSON Schemas that record files are
// validated against before they are decoded.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema represents one embedded JSON Schema document.
type Schema struct {
	Name   string // Record kind (e.g., "Character")
	Source string // Raw JSON Schema text
}

// Character is the schema name for persona records.
const Character = "Character"

// registry lists every embedded schema.
var registry = []string{
	Character,
}

var (
	compiledMu sync.Mutex
	compiled   = make(map[string]*jsonschema.Schema)
)

// All returns all embedded schemas sorted by name.
func All() ([]Schema, error) {
	schemas := make([]Schema, 0, len(registry))
	for _, name := range registry {
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *s)
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})

	return schemas, nil
}

// Get returns a single schema by name.
func Get(name string) (*Schema, error) {
	for _, n := range registry {
		if n == name {
			content, err := schemaFS.ReadFile(filename(n))
			if err != nil {
				return nil, fmt.Errorf("failed to read schema %s: %w", n, err)
			}
			return &Schema{Name: n, Source: string(content)}, nil
		}
	}
	return nil, fmt.Errorf("schema not found: %s", name)
}

// Validate checks a JSON document against the named schema.
func Validate(name string, doc []byte) error {
	sch, err := compile(name)
	if err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("failed to decode document for validation: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("document does not match %s schema: %w", name, err)
	}
	return nil
}

// compile returns the compiled schema, compiling it on first use.
func compile(name string) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if sch, ok := compiled[name]; ok {
		return sch, nil
	}

	s, err := Get(name)
	if err != nil {
		return nil, err
	}

	url := filename(name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader([]byte(s.Source))); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	compiled[name] = sch
	return sch, nil
}

// filename maps a schema name to its embedded file.
func filename(name string) string {
	return fmt.Sprintf("schemas/%s.json", lowercase(name))
}

// lowercase converts a name to lowercase for filename lookup.
func lowercase(s string) string {
	return strings.ToLower(s)
}
