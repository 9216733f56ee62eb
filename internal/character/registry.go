package character

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/cases"
)

// Registry indexes loaded characters by id and by case-folded name.
// The index is replaced wholesale on reload so readers never see a partial
// set.
type Registry struct {
	mu     sync.RWMutex
	order  []*Character
	byID   map[string]*Character
	byName map[string]*Character
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		byID:   make(map[string]*Character),
		byName: make(map[string]*Character),
		logger: logger,
	}
}

// Replace swaps the registry contents for chars, preserving their order.
func (r *Registry) Replace(chars []*Character) {
	order := make([]*Character, 0, len(chars))
	byID := make(map[string]*Character, len(chars))
	byName := make(map[string]*Character, len(chars))

	for _, c := range chars {
		if c == nil {
			continue
		}
		order = append(order, c)
		byID[c.Identity.ID] = c
		if c.Identity.Name != "" {
			byName[r.foldName(c.Identity.Name)] = c
		}
	}

	r.mu.Lock()
	r.order = order
	r.byID = byID
	r.byName = byName
	r.mu.Unlock()
}

// LoadDir loads dir and replaces the registry contents.
// On error the previous contents are kept.
func (r *Registry) LoadDir(ctx context.Context, dir string) error {
	chars, err := LoadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}
	r.Replace(chars)
	r.logger.Info("loaded characters", "dir", dir, "count", len(chars))
	return nil
}

// Get returns a character by id.
func (r *Registry) Get(id string) (*Character, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return c, ok
}

// GetByName returns a character by display name, ignoring case.
func (r *Registry) GetByName(name string) (*Character, bool) {
	key := r.foldName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[key]
	return c, ok
}

// Find looks a character up by id first, then by name.
func (r *Registry) Find(ref string) (*Character, bool) {
	if c, ok := r.Get(ref); ok {
		return c, true
	}
	return r.GetByName(ref)
}

// All returns the characters in load order.
func (r *Registry) All() []*Character {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Character, len(r.order))
	copy(out, r.order)
	return out
}

// ByColor returns the characters with the given theme color.
func (r *Registry) ByColor(color string) []*Character {
	var out []*Character
	for _, c := range r.All() {
		if c.Identity.Color == color {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of loaded characters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// foldName case-folds a name. A Caser must not be shared between
// goroutines, so each call builds its own.
func (r *Registry) foldName(name string) string {
	return cases.Fold().String(name)
}
