package world

import "fmt"

// NPC is a non-player character. Name is the unique, case-insensitive key.
type NPC struct {
	Name             string      `json:"name" yaml:"name"`
	Description      string      `json:"description" yaml:"description"`
	Location         Coordinates `json:"location" yaml:"location"`
	Inventory        Inventory   `json:"inventory" yaml:"inventory"`
	ConversationID   string      `json:"conversation_id" yaml:"conversation_id"`
	Memory           []string    `json:"memory" yaml:"memory"` // append-only conversation log
	EvolutionTrigger string      `json:"evolution_trigger" yaml:"evolution_trigger"`
}

// NewNPC returns a freshly met NPC standing at place.
func NewNPC(name string, place *Place) *NPC {
	return &NPC{
		Name:             name,
		Description:      fmt.Sprintf("A resident of %s.", place.Name),
		Location:         place.Coordinates,
		ConversationID:   Key(name) + "_conversation",
		Memory:           []string{},
		EvolutionTrigger: "When they share a meaningful moment with a traveler",
	}
}

// Remember appends an entry to the NPC's memory.
func (n *NPC) Remember(entry string) {
	n.Memory = append(n.Memory, entry)
}

// RecentMemory returns up to the last k memory entries, oldest first.
func (n *NPC) RecentMemory(k int) []string {
	return lastN(n.Memory, k)
}
