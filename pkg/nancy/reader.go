package nancy

import (
	"fmt"
	"io"

	"github.com/cfoust/nancy/pkg/serde"
	"github.com/cfoust/nancy/pkg/stream"

	opt "github.com/repeale/fp-go/option"
)

// Section locates one tagged section inside a container.
type Section struct {
	Tag   string
	Start uint32
	Next  uint32
}

func (s Section) PayloadStart() uint32 {
	return s.Start + sectionHeaderSize
}

func (s Section) PayloadSize() uint32 {
	return s.Next - s.Start - sectionHeaderSize
}

type GameEntry struct {
	Offset   uint32
	Sections []Section
	Game     Game
}

type Container struct {
	Major uint8
	Minor uint8
	Games []GameEntry
}

// Read parses a container. Sections with unknown tags are skipped using their
// forward offset; known sections must be consumed exactly up to it.
func Read(s *stream.Stream) (*Container, error) {
	magic := make([]byte, len(Magic))
	_, err := io.ReadFull(s, magic)
	if err != nil {
		return nil, fmt.Errorf("could not read magic: %w", err)
	}

	if string(magic) != Magic {
		return nil, fmt.Errorf("bad magic %q", magic)
	}

	container := Container{}

	container.Major, err = s.ReadByte()
	if err != nil {
		return nil, err
	}

	container.Minor, err = s.ReadByte()
	if err != nil {
		return nil, err
	}

	if container.Major != MajorVersion {
		return nil, fmt.Errorf("unsupported version %d.%d", container.Major, container.Minor)
	}

	numGames, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, numGames)
	for i := range offsets {
		offsets[i], err = s.ReadUint32()
		if err != nil {
			return nil, err
		}
	}

	size, err := s.Size()
	if err != nil {
		return nil, err
	}

	for i, offset := range offsets {
		limit := uint32(size)
		if i+1 < len(offsets) {
			limit = offsets[i+1]
		}

		if offset > limit {
			return nil, fmt.Errorf("game %d: offset %d is past %d", i, offset, limit)
		}

		entry, err := readGame(s, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}

		container.Games = append(container.Games, *entry)
	}

	return &container, nil
}

func readGame(s *stream.Stream, offset, limit uint32) (*GameEntry, error) {
	entry := GameEntry{
		Offset: offset,
		Game: Game{
			SoundChannels: opt.None[SoundChannels](),
			Hints:         opt.None[HintTable](),
			RingingTexts:  opt.None[[]string](),
		},
	}
	game := &entry.Game

	position := offset
	for position < limit {
		_, err := s.Seek(int64(position), io.SeekStart)
		if err != nil {
			return nil, err
		}

		next, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}

		tag := make([]byte, 4)
		_, err = io.ReadFull(s, tag)
		if err != nil {
			return nil, err
		}

		if next < position+sectionHeaderSize || next > limit {
			return nil, fmt.Errorf("section %q at %d has bad next offset %d", tag, position, next)
		}

		section := Section{
			Tag:   string(tag),
			Start: position,
			Next:  next,
		}

		known, err := readSection(s, game, section)
		if err != nil {
			return nil, fmt.Errorf("section %s at %d: %w", section.Tag, position, err)
		}

		if known && uint32(s.Pos()) != next {
			return nil, fmt.Errorf("section %s at %d ended at %d, next offset is %d", section.Tag, position, s.Pos(), next)
		}

		entry.Sections = append(entry.Sections, section)
		position = next
	}

	return &entry, nil
}

func readTexts(s *stream.Stream, game *Game) (LocalizedText, error) {
	texts, err := ReadMultilangArray(s)
	if err != nil {
		return nil, err
	}
	return decodeLocalized(game.Languages, texts)
}

func readSection(s *stream.Stream, game *Game, section Section) (bool, error) {
	var err error

	switch section.Tag {
	case TagConstants:
		err = serde.Unmarshal(s, &game.Constants)
	case TagSoundChannels:
		if section.PayloadSize() == 0 {
			game.SoundChannels = opt.None[SoundChannels]()
			break
		}

		var channels SoundChannels
		err = serde.Unmarshal(s, &channels)
		game.SoundChannels = opt.Some(channels)
	case TagLanguages:
		err = serde.Unmarshal(s, &game.Languages)
	case TagDialogue:
		err = serde.Unmarshal(s, &game.Dialogue)
		if err == nil {
			game.DialogueTexts, err = readTexts(s, game)
		}
	case TagGoodbyes:
		err = serde.Unmarshal(s, &game.Goodbyes)
		if err == nil {
			game.GoodbyeTexts, err = readTexts(s, game)
		}
	case TagHints:
		var table HintTable
		err = serde.Unmarshal(s, &table.Hints)
		if err == nil {
			table.Texts, err = readTexts(s, game)
		}
		game.Hints = opt.Some(table)
	case TagRinging:
		var lines []string
		err = serde.Unmarshal(s, &lines)
		if err == nil && len(lines) != len(game.Languages) {
			err = fmt.Errorf("have %d ringing lines, game has %d languages", len(lines), len(game.Languages))
		}
		if err == nil {
			for i := range lines {
				lines[i], err = game.Languages[i].Decode(lines[i])
				if err != nil {
					break
				}
			}
		}
		game.RingingTexts = opt.Some(lines)
	case TagEventFlags:
		err = serde.Unmarshal(s, &game.EventFlagNames)
	default:
		return false, nil
	}

	return true, err
}

// ReadFile parses the container stored at path.
func ReadFile(path string) (*Container, error) {
	s, err := stream.Open(path, stream.Read)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return Read(s)
}
