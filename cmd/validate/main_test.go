package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorld(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

const validWorld = `places:
  - name: quiet glade
    description: Moss blankets a *fallen log* where **the hermit** sleeps.
    coordinates: {world: main, x: 0, y: 0}
    objects: [fallen log]
    npcs: [hermit]
npcs:
  - name: hermit
    description: A grizzled recluse.
    location: {world: main, x: 0, y: 0}
    conversation_id: hermit_conversation
items:
  - name: fallen log
    description: Soft with rot.
    type: common
`

func TestValidateFile_Valid(t *testing.T) {
	v := &WorldValidator{}
	assert.NoError(t, v.validateFile(writeWorld(t, "glade.yaml", validWorld)))
}

func TestValidateFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		doc      string
		wantErr  string
	}{
		{"wrong extension", "glade.json", validWorld, "must have .yaml extension"},
		{"bad filename", "My-Glade.yaml", validWorld, "lowercase snake_case"},
		{"unparseable", "glade.yaml", "places: [", "failed to parse world"},
		{
			"npc without record", "glade.yaml",
			"places:\n  - name: glade\n    description: Quiet.\n    coordinates: {world: main}\n    npcs: [ghost]\n",
			`lists NPC "ghost" with no record`,
		},
		{
			"unbalanced markup", "glade.yaml",
			"places:\n  - name: glade\n    description: A *broken marker.\n    coordinates: {world: main}\n",
			"unbalanced",
		},
		{
			"npc in wrong place", "glade.yaml",
			"places:\n  - name: glade\n    description: Quiet.\n    coordinates: {world: main}\n    npcs: [hermit]\nnpcs:\n  - name: hermit\n    description: Old.\n    location: {world: main, x: 3, y: 3}\n",
			"located at",
		},
		{
			"unknown item type", "glade.yaml",
			"items:\n  - name: rock\n    description: A rock.\n    type: mythic\n",
			`unknown type "mythic"`,
		},
		{
			"bad conversation id", "glade.yaml",
			"npcs:\n  - name: hermit\n    description: Old.\n    conversation_id: Hermit Chat\n",
			"conversation_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &WorldValidator{}
			err := v.validateFile(writeWorld(t, tt.filename, tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmbeddedSeedWorldIsValid(t *testing.T) {
	v := &WorldValidator{}
	assert.NoError(t, v.validateFile(filepath.Join("..", "..", "pkg", "seed", "world.yaml")))
}
