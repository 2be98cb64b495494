package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/legacy-engine/pkg/storage"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefault(t *testing.T) {
	w, err := Default()
	require.NoError(t, err)

	assert.Len(t, w.Places, 4)
	assert.Len(t, w.NPCs, 3)
	assert.Len(t, w.Items, 4)

	origin := w.Places[0]
	assert.Equal(t, "peaceful meadow", origin.Name)
	assert.Equal(t, world.Coordinates{World: "main"}, origin.Coordinates)

	merchant := w.NPCs[1]
	assert.Equal(t, "traveling merchant", merchant.Name)
	assert.Equal(t, "silver coins (50), mysterious trinket", merchant.Inventory.String())

	assert.Equal(t, world.ItemLegendary, w.Items[3].Type)
}

func TestLoad_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()

	w, err := Default()
	require.NoError(t, err)
	first, err := Load(ctx, store, w, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Report{Created: 11}, first)

	w, err = Default()
	require.NoError(t, err)
	second, err := Load(ctx, store, w, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Report{Skipped: 11}, second)
}

func TestLoad_KeepsEvolvedRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	evolved := &world.Place{
		Name:        "bustling plaza",
		Description: "Stalls crowd the plaza.",
		Coordinates: world.Coordinates{World: "main", X: 0, Y: 1},
	}
	require.NoError(t, store.SavePlace(ctx, evolved))

	w, err := Default()
	require.NoError(t, err)
	_, err = Load(ctx, store, w, discardLogger())
	require.NoError(t, err)

	got, err := store.GetPlace(ctx, evolved.Coordinates)
	require.NoError(t, err)
	assert.Equal(t, "bustling plaza", got.Name)

	elder, err := store.GetNPC(ctx, "Village Elder")
	require.NoError(t, err)
	require.NotNil(t, elder)
	assert.Len(t, elder.Memory, 2)
}

func TestLoad_StoreError(t *testing.T) {
	store := storage.NewMockStorage()
	store.FailOn("SavePlace", errors.New("read only"))

	w, err := Default()
	require.NoError(t, err)
	_, err = Load(context.Background(), store, w, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "peaceful meadow")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "places:\n  - name: x\n    colour: red\n"},
		{"missing name", "npcs:\n  - description: nobody\n"},
		{"duplicate coordinates", "places:\n  - name: a\n    coordinates: {world: main, x: 0, y: 0}\n  - name: b\n    coordinates: {world: main, x: 0, y: 0}\n"},
		{"negative inventory", "npcs:\n  - name: a\n    inventory: {coins: -1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
