package world

import "fmt"

// Player is a person playing the game. Name is the unique, case-insensitive key.
type Player struct {
	Name             string         `json:"name"`
	Location         Coordinates    `json:"location"`
	Inventory        Inventory      `json:"inventory"`
	Stats            map[string]int `json:"stats"`
	ActiveStorylines []string       `json:"active_storylines"`
	History          []string       `json:"history"` // append-only
}

// NewPlayer returns the starting state for a player who has never played.
func NewPlayer(name string, world string) *Player {
	if world == "" {
		world = DefaultWorld
	}
	return &Player{
		Name:             name,
		Location:         Coordinates{World: world},
		Stats:            map[string]int{"health": 100, "level": 1},
		ActiveStorylines: []string{},
		History:          []string{fmt.Sprintf("Player %s began their journey.", name)},
	}
}

// RecentHistory returns up to the last n history entries, oldest first.
func (p *Player) RecentHistory(n int) []string {
	return lastN(p.History, n)
}

// JoinStoryline adds id to the active storylines if not already present.
func (p *Player) JoinStoryline(id string) bool {
	for _, s := range p.ActiveStorylines {
		if s == id {
			return false
		}
	}
	p.ActiveStorylines = append(p.ActiveStorylines, id)
	return true
}

func lastN(entries []string, n int) []string {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if len(entries) <= n {
		return append([]string(nil), entries...)
	}
	return append([]string(nil), entries[len(entries)-n:]...)
}
