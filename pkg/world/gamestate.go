package world

// GameState is the per-request working snapshot of a player and where they stand.
// It is never persisted as a unit.
type GameState struct {
	Player          *Player `json:"player"`
	CurrentLocation *Place  `json:"currentLocation"`
}

// StubGameState is returned when no real state could be loaded.
func StubGameState() *GameState {
	return &GameState{
		Player: &Player{
			Name:             "player",
			Location:         Coordinates{World: DefaultWorld},
			Stats:            map[string]int{},
			ActiveStorylines: []string{},
			History:          []string{},
		},
		CurrentLocation: &Place{
			Name:        "unknown",
			Coordinates: Coordinates{World: DefaultWorld},
			Objects:     []string{},
			NPCs:        []string{},
		},
	}
}
