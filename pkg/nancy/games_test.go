package nancy

import (
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGames(t *testing.T) {
	games, err := LoadGames(GameOrder)
	require.NoError(t, err)
	require.Len(t, games, len(GameOrder))

	for i, game := range games {
		assert.Equal(t, GameOrder[i], game.ID)
		assert.NotEmpty(t, game.Name)
		assert.True(t, opt.IsSome(game.SoundChannels), game.ID)
	}

	assert.Equal(t, []Language{English}, games[0].Languages)
	assert.True(t, opt.IsNone(games[0].RingingTexts))
	assert.True(t, opt.IsNone(games[0].Hints))
	assert.Empty(t, games[0].Dialogue)

	for _, game := range games[1:] {
		assert.Equal(t, []Language{English, Russian}, game.Languages, game.ID)
		assert.True(t, opt.IsSome(game.RingingTexts), game.ID)
	}
}

func TestLoadHints(t *testing.T) {
	game, err := LoadGame("nancy1")
	require.NoError(t, err)
	require.True(t, opt.IsSome(game.Hints))

	hints := game.Hints.Value.Hints
	first := hints[0][0]
	assert.Equal(t, opt.Some("NDN01"), first.SoundIDs[0])
	assert.True(t, opt.IsNone(first.SoundIDs[1]))
	assert.True(t, opt.IsNone(first.SoundIDs[2]))
	assert.Equal(t, uint16(9999), first.SceneChange.SceneID)

	for _, sound := range hints[2][0].SoundIDs {
		assert.True(t, opt.IsNone(sound))
	}

	assert.Equal(t, InventoryConditions{InventoryItem(5, true)}, hints[2][0].InventoryConditions)
}

func TestLoadUnknownGame(t *testing.T) {
	_, err := LoadGame("nancy99")
	assert.Error(t, err)
}

func TestParseGameErrors(t *testing.T) {
	for name, document := range map[string]string{
		"missing language text": `
id: x
languages: [english, russian]
dialogueText: {english: []}
goodbyeText: {english: [], russian: []}
`,
		"unknown language": `
id: x
languages: [elvish]
`,
		"too many hint sounds": `
id: x
languages: [english]
dialogueText: {english: []}
goodbyeText: {english: []}
hints:
  characters: [[{sounds: [a, b, c, d]}]]
  text: {english: [x]}
`,
		"missing ringing": `
id: x
languages: [english, russian]
dialogueText: {english: [], russian: []}
goodbyeText: {english: [], russian: []}
ringing: {english: Ring}
`,
	} {
		_, err := ParseGame([]byte(document))
		assert.Error(t, err, name)
	}
}
