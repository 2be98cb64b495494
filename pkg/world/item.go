package world

// ItemType classifies a GameItem.
type ItemType string

const (
	ItemCommon    ItemType = "common"
	ItemLegendary ItemType = "legendary"
)

// GameItem is an object in the world. Name is the unique, case-insensitive key.
type GameItem struct {
	Name             string            `json:"name" yaml:"name"`
	Description      string            `json:"description" yaml:"description"`
	Type             ItemType          `json:"type" yaml:"type"`
	Attributes       map[string]string `json:"attributes" yaml:"attributes"`
	History          []string          `json:"history" yaml:"history"`
	EvolutionTrigger string            `json:"evolution_trigger" yaml:"evolution_trigger"`
}
