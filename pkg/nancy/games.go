package nancy

import (
	"embed"
	"fmt"
	"path"

	opt "github.com/repeale/fp-go/option"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// GameOrder is the canonical order of games in nancy.dat.
var GameOrder = []string{
	"vampire",
	"nancy1",
	"nancy2",
	"nancy3",
	"nancy4",
	"nancy5",
}

type dialogueDocument struct {
	Text      uint8               `yaml:"text"`
	Scene     uint16              `yaml:"scene"`
	Sound     *string             `yaml:"sound"`
	Flags     FlagConditions      `yaml:"flags"`
	Inventory InventoryConditions `yaml:"inventory"`
}

type goodbyeSceneDocument struct {
	Scenes []uint16       `yaml:"scenes"`
	Flags  FlagConditions `yaml:"flags"`
	Set    Condition      `yaml:"set"`
}

type goodbyeDocument struct {
	Sound  *string                `yaml:"sound"`
	Scenes []goodbyeSceneDocument `yaml:"scenes"`
}

type hintDocument struct {
	Text      uint8               `yaml:"text"`
	Weight    int16               `yaml:"weight"`
	Scene     SceneChange         `yaml:"scene"`
	Sounds    []*string           `yaml:"sounds"`
	Flags     FlagConditions      `yaml:"flags"`
	Inventory InventoryConditions `yaml:"inventory"`
}

type hintsDocument struct {
	Characters [][]hintDocument    `yaml:"characters"`
	Text       map[string][]string `yaml:"text"`
}

type gameDocument struct {
	ID            string               `yaml:"id"`
	Name          string               `yaml:"name"`
	Constants     Constants            `yaml:"constants"`
	SoundChannels *SoundChannels       `yaml:"soundChannels"`
	Languages     []string             `yaml:"languages"`
	Dialogue      [][]dialogueDocument `yaml:"dialogue"`
	DialogueText  map[string][]string  `yaml:"dialogueText"`
	Goodbyes      []goodbyeDocument    `yaml:"goodbyes"`
	GoodbyeText   map[string][]string  `yaml:"goodbyeText"`
	Hints         *hintsDocument       `yaml:"hints"`
	Ringing       map[string]string    `yaml:"ringing"`
	EventFlags    []string             `yaml:"eventFlags"`
}

func optionalString(value *string) opt.Option[string] {
	if value == nil || *value == "" {
		return opt.None[string]()
	}
	return opt.Some(*value)
}

func orderTexts(languages []Language, texts map[string][]string) (LocalizedText, error) {
	ordered := make(LocalizedText, len(languages))
	for i, language := range languages {
		lines, ok := texts[language.String()]
		if !ok {
			return nil, fmt.Errorf("no text for %s", language)
		}
		ordered[i] = lines
	}

	if len(texts) != len(languages) {
		return nil, fmt.Errorf("text for %d languages, game has %d", len(texts), len(languages))
	}

	return ordered, nil
}

// ParseGame decodes a game table from YAML.
func ParseGame(data []byte) (Game, error) {
	var document gameDocument
	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return Game{}, err
	}

	game := Game{
		ID:             document.ID,
		Name:           document.Name,
		Constants:      document.Constants,
		SoundChannels:  opt.None[SoundChannels](),
		Hints:          opt.None[HintTable](),
		RingingTexts:   opt.None[[]string](),
		EventFlagNames: document.EventFlags,
	}

	if document.SoundChannels != nil {
		game.SoundChannels = opt.Some(*document.SoundChannels)
	}

	for _, name := range document.Languages {
		language, err := ParseLanguage(name)
		if err != nil {
			return Game{}, err
		}
		game.Languages = append(game.Languages, language)
	}

	game.Dialogue = make([][]ConditionalDialogue, len(document.Dialogue))
	for npc, lines := range document.Dialogue {
		game.Dialogue[npc] = make([]ConditionalDialogue, len(lines))
		for i, line := range lines {
			game.Dialogue[npc][i] = ConditionalDialogue{
				TextID:              line.Text,
				SceneID:             line.Scene,
				SoundID:             optionalString(line.Sound),
				FlagConditions:      line.Flags,
				InventoryConditions: line.Inventory,
			}
		}
	}

	game.DialogueTexts, err = orderTexts(game.Languages, document.DialogueText)
	if err != nil {
		return Game{}, fmt.Errorf("dialogue: %w", err)
	}

	game.Goodbyes = make([]Goodbye, len(document.Goodbyes))
	for i, goodbye := range document.Goodbyes {
		changes := make([]GoodbyeSceneChange, len(goodbye.Scenes))
		for j, change := range goodbye.Scenes {
			changes[j] = GoodbyeSceneChange{
				SceneIDs:       change.Scenes,
				FlagConditions: change.Flags,
				FlagToSet:      change.Set,
			}
		}

		game.Goodbyes[i] = Goodbye{
			SoundID:      optionalString(goodbye.Sound),
			SceneChanges: changes,
		}
	}

	game.GoodbyeTexts, err = orderTexts(game.Languages, document.GoodbyeText)
	if err != nil {
		return Game{}, fmt.Errorf("goodbyes: %w", err)
	}

	if document.Hints != nil {
		table := HintTable{
			Hints: make([][]Hint, len(document.Hints.Characters)),
		}

		for character, hints := range document.Hints.Characters {
			table.Hints[character] = make([]Hint, len(hints))
			for i, hint := range hints {
				if len(hint.Sounds) > 3 {
					return Game{}, fmt.Errorf("hint %d/%d has %d sounds, at most 3 allowed", character, i, len(hint.Sounds))
				}

				var sounds [3]opt.Option[string]
				for j := range sounds {
					sounds[j] = opt.None[string]()
					if j < len(hint.Sounds) {
						sounds[j] = optionalString(hint.Sounds[j])
					}
				}

				table.Hints[character][i] = Hint{
					TextID:              hint.Text,
					HintWeight:          hint.Weight,
					SceneChange:         hint.Scene,
					SoundIDs:            sounds,
					FlagConditions:      hint.Flags,
					InventoryConditions: hint.Inventory,
				}
			}
		}

		table.Texts, err = orderTexts(game.Languages, document.Hints.Text)
		if err != nil {
			return Game{}, fmt.Errorf("hints: %w", err)
		}

		game.Hints = opt.Some(table)
	}

	if document.Ringing != nil {
		lines := make([]string, len(game.Languages))
		for i, language := range game.Languages {
			line, ok := document.Ringing[language.String()]
			if !ok {
				return Game{}, fmt.Errorf("ringing: no text for %s", language)
			}
			lines[i] = line
		}
		game.RingingTexts = opt.Some(lines)
	}

	return game, game.Validate()
}

// LoadGame loads one of the built-in game tables.
func LoadGame(id string) (Game, error) {
	data, err := dataFS.ReadFile(path.Join("data", id+".yaml"))
	if err != nil {
		return Game{}, fmt.Errorf("unknown game %q", id)
	}

	game, err := ParseGame(data)
	if err != nil {
		return Game{}, fmt.Errorf("game %s: %w", id, err)
	}

	if game.ID != id {
		return Game{}, fmt.Errorf("game table %s declares id %q", id, game.ID)
	}

	return game, nil
}

// LoadGames loads the built-in tables for ids, in the order given.
func LoadGames(ids []string) ([]Game, error) {
	games := make([]Game, 0, len(ids))
	for _, id := range ids {
		game, err := LoadGame(id)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}
