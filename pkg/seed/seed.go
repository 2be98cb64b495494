// Package seed loads the hand-authored starting world into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/legacy-engine/pkg/storage"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"gopkg.in/yaml.v3"
)

//go:embed world.yaml
var defaultWorld []byte

// World is a set of records to load.
type World struct {
	Places []world.Place    `yaml:"places"`
	NPCs   []world.NPC      `yaml:"npcs"`
	Items  []world.GameItem `yaml:"items"`
}

// Report counts what a Load wrote and skipped.
type Report struct {
	Created int
	Skipped int
}

// Default returns the built-in starting world.
func Default() (*World, error) {
	return Parse(defaultWorld)
}

// Parse decodes a world document. Unknown fields are rejected.
func Parse(data []byte) (*World, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var w World
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to parse world: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks that every record has a name and no two places share
// coordinates.
func (w *World) Validate() error {
	seen := make(map[string]string, len(w.Places))
	for i, p := range w.Places {
		if p.Name == "" {
			return fmt.Errorf("place %d: name is required", i)
		}
		key := p.Coordinates.Key()
		if other, ok := seen[key]; ok {
			return fmt.Errorf("places %q and %q share coordinates %s", other, p.Name, key)
		}
		seen[key] = p.Name
	}
	for i, n := range w.NPCs {
		if n.Name == "" {
			return fmt.Errorf("npc %d: name is required", i)
		}
	}
	for i, it := range w.Items {
		if it.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
	}
	return nil
}

// Load writes w into store. Records that already exist are left alone, so
// loading twice is harmless and never undoes evolution.
func Load(ctx context.Context, store storage.Storage, w *World, logger *slog.Logger) (Report, error) {
	var r Report

	for i := range w.Places {
		p := &w.Places[i]
		p.Objects = nonNil(p.Objects)
		p.NPCs = nonNil(p.NPCs)
		existing, err := store.GetPlace(ctx, p.Coordinates)
		if err != nil {
			return r, fmt.Errorf("failed to check place %q: %w", p.Name, err)
		}
		if existing != nil {
			r.Skipped++
			continue
		}
		if err := store.SavePlace(ctx, p); err != nil {
			return r, fmt.Errorf("failed to save place %q: %w", p.Name, err)
		}
		r.Created++
	}

	for i := range w.NPCs {
		n := &w.NPCs[i]
		n.Memory = nonNil(n.Memory)
		existing, err := store.GetNPC(ctx, n.Name)
		if err != nil {
			return r, fmt.Errorf("failed to check npc %q: %w", n.Name, err)
		}
		if existing != nil {
			r.Skipped++
			continue
		}
		if err := store.SaveNPC(ctx, n); err != nil {
			return r, fmt.Errorf("failed to save npc %q: %w", n.Name, err)
		}
		r.Created++
	}

	for i := range w.Items {
		it := &w.Items[i]
		it.History = nonNil(it.History)
		existing, err := store.GetItem(ctx, it.Name)
		if err != nil {
			return r, fmt.Errorf("failed to check item %q: %w", it.Name, err)
		}
		if existing != nil {
			r.Skipped++
			continue
		}
		if err := store.SaveItem(ctx, it); err != nil {
			return r, fmt.Errorf("failed to save item %q: %w", it.Name, err)
		}
		r.Created++
	}

	logger.Info("World seeded", "created", r.Created, "skipped", r.Skipped)
	return r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
