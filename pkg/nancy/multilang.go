package nancy

import (
	"fmt"
	"io"
	"math"

	"github.com/cfoust/nancy/pkg/serde"
	"github.com/cfoust/nancy/pkg/stream"

	"github.com/rs/zerolog/log"
)

// multilangHeaderSize is the size of the table in front of the string
// blocks: a uint16 count, the uint32 end offset and one uint32 offset per
// language.
func multilangHeaderSize(numLanguages int) int64 {
	return 2 + 4 + 4*int64(numLanguages)
}

// WriteMultilangArray writes one string array per language behind a table of
// absolute offsets, so a reader can jump straight to any language:
//
//	[uint16 count][uint32 end][count x uint32 offset][block 0]...[block n-1]
//
// Each block is a count-prefixed array of NUL-terminated strings. The blocks
// are built in memory first, so all offsets are known before anything is
// written to s.
func WriteMultilangArray(s *stream.Stream, texts [][]string) error {
	if len(texts) > math.MaxUint16 {
		return fmt.Errorf("too many languages: %d", len(texts))
	}

	start := s.Pos()
	headerSize := multilangHeaderSize(len(texts))

	payload := stream.NewBuffer()
	offsets := make([]uint32, len(texts))
	for i, lines := range texts {
		offsets[i] = uint32(start + headerSize + payload.Pos())

		err := serde.Marshal(payload, lines)
		if err != nil {
			return fmt.Errorf("language %d: %w", i, err)
		}
	}

	end := start + headerSize + payload.Pos()
	if end > math.MaxUint32 {
		return fmt.Errorf("multi-language array ends past 4GiB")
	}

	err := s.WriteUint16(uint16(len(texts)))
	if err != nil {
		return err
	}

	err = s.WriteUint32(uint32(end))
	if err != nil {
		return err
	}

	for _, offset := range offsets {
		err := s.WriteUint32(offset)
		if err != nil {
			return err
		}
	}

	if written := s.Pos() - start; written != headerSize {
		return fmt.Errorf("multi-language header is %d bytes, expected %d", written, headerSize)
	}

	_, err = s.Write(payload.Bytes())
	if err != nil {
		return err
	}

	if s.Pos() != end {
		return fmt.Errorf("multi-language array ended at %d, expected %d", s.Pos(), end)
	}

	log.Debug().
		Int("languages", len(texts)).
		Int64("start", start).
		Int64("end", end).
		Msg("wrote multi-language array")

	return nil
}

// ReadMultilangArray reads an array written by WriteMultilangArray and leaves
// the cursor at its end offset.
func ReadMultilangArray(s *stream.Stream) ([][]string, error) {
	count, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}

	end, err := s.ReadUint32()
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i], err = s.ReadUint32()
		if err != nil {
			return nil, err
		}
	}

	texts := make([][]string, count)
	for i, offset := range offsets {
		_, err := s.Seek(int64(offset), io.SeekStart)
		if err != nil {
			return nil, err
		}

		var lines []string
		err = serde.Unmarshal(s, &lines)
		if err != nil {
			return nil, fmt.Errorf("language %d: %w", i, err)
		}
		texts[i] = lines
	}

	_, err = s.Seek(int64(end), io.SeekStart)
	if err != nil {
		return nil, err
	}

	return texts, nil
}

func encodeLocalized(languages []Language, texts LocalizedText) ([][]string, error) {
	if len(texts) != len(languages) {
		return nil, fmt.Errorf("have text for %d languages, game has %d", len(texts), len(languages))
	}

	encoded := make([][]string, len(texts))
	for i, lines := range texts {
		value, err := encodeLines(languages[i], lines)
		if err != nil {
			return nil, err
		}
		encoded[i] = value
	}

	return encoded, nil
}

func decodeLocalized(languages []Language, texts [][]string) (LocalizedText, error) {
	if len(texts) != len(languages) {
		return nil, fmt.Errorf("have text for %d languages, game has %d", len(texts), len(languages))
	}

	decoded := make(LocalizedText, len(texts))
	for i, lines := range texts {
		value, err := decodeLines(languages[i], lines)
		if err != nil {
			return nil, err
		}
		decoded[i] = value
	}

	return decoded, nil
}
