package nancy

import (
	"fmt"
	"io"
	"math"

	"github.com/cfoust/nancy/pkg/serde"
	"github.com/cfoust/nancy/pkg/stream"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

const (
	TagConstants     = "CONS"
	TagSoundChannels = "SCHN"
	TagLanguages     = "LANG"
	TagDialogue      = "CDLG"
	TagGoodbyes      = "GDBY"
	TagHints         = "HINT"
	TagRinging       = "RING"
	TagEventFlags    = "EFLG"
)

// sectionHeaderSize covers the forward offset and the tag.
const sectionHeaderSize = 8

// WrapSection writes a tagged section:
//
//	[uint32 offset of the next section][4-byte tag][payload]
//
// The offset is absolute. It is reserved before write runs and filled in
// once the payload is complete; the cursor is left at the end of the section.
func WrapSection(s *stream.Stream, tag string, write func(s *stream.Stream) error) error {
	if len(tag) != 4 {
		return fmt.Errorf("section tag %q is not four bytes", tag)
	}

	start := s.Pos()

	err := s.Skip(4)
	if err != nil {
		return err
	}

	_, err = s.Write([]byte(tag))
	if err != nil {
		return err
	}

	err = write(s)
	if err != nil {
		return fmt.Errorf("section %s: %w", tag, err)
	}

	next := s.Pos()
	if next > math.MaxUint32 {
		return fmt.Errorf("section %s ends past 4GiB", tag)
	}

	_, err = s.Seek(start, io.SeekStart)
	if err != nil {
		return err
	}

	err = s.WriteUint32(uint32(next))
	if err != nil {
		return err
	}

	_, err = s.Seek(next, io.SeekStart)
	if err != nil {
		return err
	}

	log.Debug().
		Str("tag", tag).
		Int64("start", start).
		Int64("next", next).
		Msg("wrote section")

	return nil
}

func writeConstants(s *stream.Stream, game *Game) error {
	return serde.Marshal(s, game.Constants)
}

// An absent channel map leaves the section empty.
func writeSoundChannels(s *stream.Stream, game *Game) error {
	if opt.IsNone(game.SoundChannels) {
		return nil
	}
	return serde.Marshal(s, game.SoundChannels.Value)
}

func writeLanguages(s *stream.Stream, game *Game) error {
	return serde.Marshal(s, game.Languages)
}

func writeDialogue(s *stream.Stream, game *Game) error {
	err := serde.Marshal(s, game.Dialogue)
	if err != nil {
		return err
	}

	texts, err := encodeLocalized(game.Languages, game.DialogueTexts)
	if err != nil {
		return err
	}

	return WriteMultilangArray(s, texts)
}

func writeGoodbyes(s *stream.Stream, game *Game) error {
	err := serde.Marshal(s, game.Goodbyes)
	if err != nil {
		return err
	}

	texts, err := encodeLocalized(game.Languages, game.GoodbyeTexts)
	if err != nil {
		return err
	}

	return WriteMultilangArray(s, texts)
}

func writeHints(s *stream.Stream, game *Game) error {
	table := game.Hints.Value

	err := serde.Marshal(s, table.Hints)
	if err != nil {
		return err
	}

	texts, err := encodeLocalized(game.Languages, table.Texts)
	if err != nil {
		return err
	}

	return WriteMultilangArray(s, texts)
}

func writeRinging(s *stream.Stream, game *Game) error {
	lines := game.RingingTexts.Value
	if len(lines) != len(game.Languages) {
		return fmt.Errorf("have %d ringing lines, game has %d languages", len(lines), len(game.Languages))
	}

	encoded := make([]string, len(lines))
	for i, line := range lines {
		value, err := game.Languages[i].Encode(line)
		if err != nil {
			return err
		}
		encoded[i] = value
	}

	return serde.Marshal(s, encoded)
}

func writeEventFlags(s *stream.Stream, game *Game) error {
	return serde.Marshal(s, game.EventFlagNames)
}

type sectionWriter struct {
	tag   string
	write func(*stream.Stream, *Game) error
	// nil means the section is always present
	present func(*Game) bool
}

// Sections are written in this order for every game.
var sectionWriters = []sectionWriter{
	{tag: TagConstants, write: writeConstants},
	{tag: TagSoundChannels, write: writeSoundChannels},
	{tag: TagLanguages, write: writeLanguages},
	{tag: TagDialogue, write: writeDialogue},
	{tag: TagGoodbyes, write: writeGoodbyes},
	{
		tag:     TagHints,
		write:   writeHints,
		present: func(g *Game) bool { return opt.IsSome(g.Hints) },
	},
	{
		tag:     TagRinging,
		write:   writeRinging,
		present: func(g *Game) bool { return opt.IsSome(g.RingingTexts) },
	},
	{tag: TagEventFlags, write: writeEventFlags},
}

// WriteGame writes all of the game's sections at the current position.
func WriteGame(s *stream.Stream, game *Game) error {
	for _, section := range sectionWriters {
		if section.present != nil && !section.present(game) {
			continue
		}

		write := section.write
		err := WrapSection(s, section.tag, func(s *stream.Stream) error {
			return write(s, game)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
