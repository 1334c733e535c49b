package nancy

import (
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := testGame()
	assert.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(g *Game){
		"no languages": func(g *Game) {
			g.Languages = nil
		},
		"duplicate language": func(g *Game) {
			g.Languages = []Language{English, English}
			g.DialogueTexts = LocalizedText{{"a"}, {"a"}}
			g.GoodbyeTexts = LocalizedText{{"a"}, {"a"}}
		},
		"missing dialogue text": func(g *Game) {
			g.DialogueTexts = LocalizedText{}
		},
		"text out of range": func(g *Game) {
			g.Dialogue[0][0].TextID = 1
		},
		"inventory in flags": func(g *Game) {
			g.Dialogue[0][0].FlagConditions = FlagConditions{InventoryItem(1, true)}
		},
		"flag in inventory": func(g *Game) {
			g.Dialogue[0][0].InventoryConditions = InventoryConditions{EventFlag(1, true)}
		},
		"set inventory": func(g *Game) {
			g.Goodbyes[0].SceneChanges[0].FlagToSet = InventoryItem(1, true)
		},
		"hint text": func(g *Game) {
			g.Hints = opt.Some(HintTable{
				Hints: [][]Hint{{{TextID: 3}}},
				Texts: LocalizedText{{"only one"}},
			})
		},
		"ringing lines": func(g *Game) {
			g.RingingTexts = opt.Some([]string{"a", "b"})
		},
		"nul in dialogue text": func(g *Game) {
			g.DialogueTexts = LocalizedText{{"a\x00b"}}
		},
		"nul in goodbye text": func(g *Game) {
			g.GoodbyeTexts = LocalizedText{{"\x00"}}
		},
		"nul in dialogue sound": func(g *Game) {
			g.Dialogue[0][0].SoundID = opt.Some("TST\x0010")
		},
		"nul in goodbye sound": func(g *Game) {
			g.Goodbyes[0].SoundID = opt.Some("A\x00")
		},
		"nul in event flag name": func(g *Game) {
			g.EventFlagNames = []string{"EV_\x00One"}
		},
		"nul in hint sound": func(g *Game) {
			g.Hints = opt.Some(HintTable{
				Hints: [][]Hint{{{
					SoundIDs: [3]opt.Option[string]{
						opt.None[string](),
						opt.Some("a\x00b"),
						opt.None[string](),
					},
				}}},
				Texts: LocalizedText{{"hint"}},
			})
		},
		"nul in hint text": func(g *Game) {
			g.Hints = opt.Some(HintTable{
				Hints: [][]Hint{{}},
				Texts: LocalizedText{{"a\x00"}},
			})
		},
		"nul in ringing text": func(g *Game) {
			g.RingingTexts = opt.Some([]string{"Ri\x00ng"})
		},
	} {
		game := testGame()
		mutate(&game)
		assert.Error(t, game.Validate(), name)
	}
}

func TestValidateAcceptsHintsWithoutSounds(t *testing.T) {
	game := testGame()
	game.Hints = opt.Some(HintTable{
		Hints: [][]Hint{{{
			SoundIDs: [3]opt.Option[string]{
				opt.None[string](),
				opt.None[string](),
				opt.None[string](),
			},
		}}},
		Texts: LocalizedText{{"hint"}},
	})
	assert.NoError(t, game.Validate())
}
