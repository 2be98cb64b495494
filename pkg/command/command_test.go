package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DirectionAliases(t *testing.T) {
	tests := []struct {
		aliases []string
		want    Direction
	}{
		{[]string{"north", "n"}, North},
		{[]string{"south", "s"}, South},
		{[]string{"east", "e"}, East},
		{[]string{"west", "w"}, West},
	}

	for _, tt := range tests {
		for _, alias := range tt.aliases {
			for _, input := range []string{alias, "move " + alias, "go " + alias, "walk " + alias, "  GO " + alias + "  "} {
				t.Run(input, func(t *testing.T) {
					cmd, err := Parse(input)
					require.NoError(t, err)
					assert.Equal(t, ActionMove, cmd.Action)
					assert.Equal(t, tt.want, cmd.Direction)
					assert.Equal(t, input, cmd.Original)
				})
			}
		}
	}
}

func TestParse_TakeSynonyms(t *testing.T) {
	for _, input := range []string{"take sword", "get sword", "pick up sword", "pick sword", "Take Sword"} {
		t.Run(input, func(t *testing.T) {
			cmd, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, ActionTake, cmd.Action)
			assert.Equal(t, "sword", cmd.Target)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		action Action
		target string
		object string
	}{
		{"bare look", "look", ActionLook, "", ""},
		{"short look", "l", ActionLook, "", ""},
		{"look at becomes examine", "look at old sword", ActionExamine, "old sword", ""},
		{"look without at", "look well", ActionExamine, "well", ""},
		{"examine", "examine stone well", ActionExamine, "stone well", ""},
		{"drop", "drop rusty key", ActionDrop, "rusty key", ""},
		{"use alone", "use lantern", ActionUse, "lantern", ""},
		{"use on", "use brass key on iron door", ActionUse, "brass key", "iron door"},
		{"use with leading on is target", "use on", ActionUse, "on", ""},
		{"talk to", "talk to village elder", ActionTalk, "village elder", ""},
		{"speak", "speak merchant", ActionTalk, "merchant", ""},
		{"inventory", "inventory", ActionInventory, "", ""},
		{"inv", "inv", ActionInventory, "", ""},
		{"i", "i", ActionInventory, "", ""},
		{"help", "help", ActionHelp, "", ""},
		{"question mark", "?", ActionHelp, "", ""},
		{"h", "h", ActionHelp, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.target, cmd.Target)
			assert.Equal(t, tt.object, cmd.Object)
			assert.Empty(t, cmd.Direction)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"unknown verb", "xyzzy"},
		{"move without direction", "move"},
		{"move with bad direction", "go up"},
		{"examine without target", "examine"},
		{"take without target", "take"},
		{"pick up without target", "pick up"},
		{"drop without target", "drop"},
		{"use without target", "use"},
		{"talk without target", "talk"},
		{"talk to without target", "talk to"},
		{"look at without target", "look at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err), "expected ParseError, got %T", err)
		})
	}
}

func TestParse_UnknownCommandMessage(t *testing.T) {
	_, err := Parse("xyzzy")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Reason, "unknown command")
	assert.Equal(t, "xyzzy", pe.Input)
}

func TestParse_DirectionWinsOverGrammar(t *testing.T) {
	// "s" and "e" are directions, never anything else.
	cmd, err := Parse("s")
	require.NoError(t, err)
	assert.Equal(t, ActionMove, cmd.Action)
	assert.Equal(t, South, cmd.Direction)

	cmd, err = Parse("e anything")
	require.NoError(t, err)
	assert.Equal(t, ActionMove, cmd.Action)
	assert.Equal(t, East, cmd.Direction)
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	assert.Contains(t, help, "north/n")
	assert.Contains(t, help, "talk to [character]")
}
