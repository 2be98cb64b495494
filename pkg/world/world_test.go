package world

import (
	"testing"

	"github.com/jwebster45206/legacy-engine/pkg/command"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates_Move(t *testing.T) {
	origin := Coordinates{World: "main"}

	assert.Equal(t, Coordinates{World: "main", X: 0, Y: 1}, origin.Move(command.North))
	assert.Equal(t, Coordinates{World: "main", X: 0, Y: -1}, origin.Move(command.South))
	assert.Equal(t, Coordinates{World: "main", X: 1, Y: 0}, origin.Move(command.East))
	assert.Equal(t, Coordinates{World: "main", X: -1, Y: 0}, origin.Move(command.West))
	assert.Equal(t, origin, origin.Move(command.Direction("up")))

	trip := origin.Move(command.North).Move(command.South).Move(command.East).Move(command.West)
	assert.Equal(t, origin, trip)
}

func TestCoordinates_Key(t *testing.T) {
	assert.Equal(t, "main:-2,5", Coordinates{World: "main", X: -2, Y: 5}.Key())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "village elder", Key("  Village ELDER "))
	assert.True(t, ContainsFold("The Village Elder", "elder"))
	assert.False(t, ContainsFold("merchant", "elder"))
}

func TestPlace_Find(t *testing.T) {
	p := &Place{
		Objects: []string{"stone well", "oak tree"},
		NPCs:    []string{"village elder"},
	}

	obj, ok := p.FindObject("WELL")
	assert.True(t, ok)
	assert.Equal(t, "stone well", obj)

	npc, ok := p.FindNPC("elder")
	assert.True(t, ok)
	assert.Equal(t, "village elder", npc)

	_, ok = p.FindObject("")
	assert.False(t, ok)

	_, ok = p.FindNPC("dragon")
	assert.False(t, ok)
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("Ana", "")

	assert.Equal(t, Coordinates{World: DefaultWorld}, p.Location)
	assert.Equal(t, 0, p.Inventory.Len())
	assert.Equal(t, []string{"Player Ana began their journey."}, p.History)
}

func TestRecentHistory(t *testing.T) {
	p := &Player{History: []string{"a", "b", "c", "d", "e", "f"}}

	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, p.RecentHistory(5))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, p.RecentHistory(10))
	assert.Nil(t, p.RecentHistory(0))
}

func TestPlayer_JoinStoryline(t *testing.T) {
	p := NewPlayer("ana", "")
	assert.True(t, p.JoinStoryline("village_crisis"))
	assert.False(t, p.JoinStoryline("village_crisis"))
	assert.Equal(t, []string{"village_crisis"}, p.ActiveStorylines)
}
