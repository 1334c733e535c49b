// Package nancy builds nancy.dat, the container of per-game tables
// (constants, dialogue, hints, localized text) read by the Nancy Drew engine.
//
// Layout:
//
//	"NNCY" | major u8 | minor u8 | game count u16 | count x u32 game offset
//
// followed by each game's tagged sections in game order.
package nancy

import (
	"fmt"
	"io"
	"math"

	"github.com/cfoust/nancy/pkg/stream"

	"github.com/rs/zerolog/log"
)

const (
	Magic        = "NNCY"
	MajorVersion = 1
	MinorVersion = 0
)

// headerSize is the size of the fixed part of the container header.
const headerSize = 8

// Build writes the container for games to s, starting at the current
// position. Game offsets are absolute.
func Build(s *stream.Stream, games []Game) error {
	if len(games) > math.MaxUint16 {
		return fmt.Errorf("too many games: %d", len(games))
	}

	_, err := s.Write([]byte(Magic))
	if err != nil {
		return err
	}

	err = s.WriteByte(MajorVersion)
	if err != nil {
		return err
	}

	err = s.WriteByte(MinorVersion)
	if err != nil {
		return err
	}

	err = s.WriteUint16(uint16(len(games)))
	if err != nil {
		return err
	}

	tableOffset := s.Pos()
	err = s.Skip(4 * int64(len(games)))
	if err != nil {
		return err
	}

	offsets := make([]uint32, len(games))
	for i := range games {
		game := &games[i]

		err := game.Validate()
		if err != nil {
			return fmt.Errorf("game %s: %w", game.ID, err)
		}

		offsets[i] = uint32(s.Pos())

		err = WriteGame(s, game)
		if err != nil {
			return fmt.Errorf("game %s: %w", game.ID, err)
		}

		log.Debug().
			Str("game", game.ID).
			Uint32("offset", offsets[i]).
			Int64("end", s.Pos()).
			Msg("wrote game")
	}

	end := s.Pos()
	if end > math.MaxUint32 {
		return fmt.Errorf("container is larger than 4GiB")
	}

	_, err = s.Seek(tableOffset, io.SeekStart)
	if err != nil {
		return err
	}

	for _, offset := range offsets {
		err := s.WriteUint32(offset)
		if err != nil {
			return err
		}
	}

	_, err = s.Seek(end, io.SeekStart)
	return err
}

// BuildFile creates or truncates the file at path and writes the container
// to it.
func BuildFile(path string, games []Game) error {
	s, err := stream.Open(path, stream.Write)
	if err != nil {
		return err
	}

	err = Build(s, games)
	if err != nil {
		s.Close()
		return err
	}

	return s.Close()
}
