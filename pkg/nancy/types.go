package nancy

import (
	"github.com/cfoust/nancy/pkg/stream"

	opt "github.com/repeale/fp-go/option"
)

type Constants struct {
	NumItems          uint16   `yaml:"numItems"`
	NumEventFlags     uint16   `yaml:"numEventFlags"`
	GenericEventFlags []uint16 `yaml:"genericEventFlags"`
	NumCursorTypes    uint16   `yaml:"numCursorTypes"`
	LogoEndAfter      uint32   `yaml:"logoEndAfter"`
	WonGameFlagID     int16    `yaml:"wonGameFlagID"`
}

// SoundChannels maps the mixer channels a game reserves for each kind of
// sound.
type SoundChannels struct {
	NumChannels              uint8   `yaml:"numChannels"`
	NumSceneSpecificChannels uint8   `yaml:"numSceneSpecificChannels"`
	SpeechChannels           []uint8 `yaml:"speech"`
	MusicChannels            []uint8 `yaml:"music"`
	SFXChannels              []uint8 `yaml:"sfx"`
}

type SceneChange struct {
	SceneID         uint16 `yaml:"scene"`
	FrameID         uint16 `yaml:"frame"`
	VerticalOffset  uint16 `yaml:"verticalOffset"`
	DoNotStartSound bool   `yaml:"doNotStartSound"`
}

// The sound flag takes a full 16-bit field.
func (c SceneChange) Marshal(s *stream.Stream) error {
	for _, value := range []uint16{c.SceneID, c.FrameID, c.VerticalOffset} {
		err := s.WriteUint16(value)
		if err != nil {
			return err
		}
	}

	var sound uint16
	if c.DoNotStartSound {
		sound = 1
	}
	return s.WriteUint16(sound)
}

func (c *SceneChange) Unmarshal(s *stream.Stream) error {
	values := make([]uint16, 4)
	for i := range values {
		value, err := s.ReadUint16()
		if err != nil {
			return err
		}
		values[i] = value
	}

	c.SceneID = values[0]
	c.FrameID = values[1]
	c.VerticalOffset = values[2]
	c.DoNotStartSound = values[3] != 0
	return nil
}

// ConditionalDialogue is a line an NPC may say once its conditions hold.
// TextID indexes the game's localized dialogue text.
type ConditionalDialogue struct {
	TextID              uint8
	SceneID             uint16
	SoundID             opt.Option[string]
	FlagConditions      FlagConditions
	InventoryConditions InventoryConditions
}

type GoodbyeSceneChange struct {
	SceneIDs       []uint16
	FlagConditions FlagConditions
	FlagToSet      Condition
}

type Goodbye struct {
	SoundID      opt.Option[string]
	SceneChanges []GoodbyeSceneChange
}

// Hint always carries three sound slots; absent ones are written as empty
// strings.
type Hint struct {
	TextID              uint8
	HintWeight          int16
	SceneChange         SceneChange
	SoundIDs            [3]opt.Option[string]
	FlagConditions      FlagConditions
	InventoryConditions InventoryConditions
}

// LocalizedText holds lines per language. The outer index follows the game's
// language order.
type LocalizedText [][]string

type HintTable struct {
	// One list of hints per hint-giving character
	Hints [][]Hint
	Texts LocalizedText
}

// Game is the complete set of tables written for one title.
type Game struct {
	ID   string
	Name string

	Constants     Constants
	SoundChannels opt.Option[SoundChannels]
	Languages     []Language

	// One list of lines per NPC
	Dialogue      [][]ConditionalDialogue
	DialogueTexts LocalizedText

	Goodbyes     []Goodbye
	GoodbyeTexts LocalizedText

	Hints opt.Option[HintTable]

	// One line per language
	RingingTexts opt.Option[[]string]

	EventFlagNames []string
}
