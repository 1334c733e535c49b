package nancy

import (
	"fmt"
	"io"
	"testing"

	"github.com/cfoust/nancy/pkg/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTexts(languages, lines int) [][]string {
	texts := make([][]string, languages)
	for i := range texts {
		texts[i] = make([]string, lines)
		for j := range texts[i] {
			texts[i][j] = fmt.Sprintf("language %d line %d", i, j)
		}
	}
	return texts
}

func TestMultilangLayout(t *testing.T) {
	for _, languages := range []int{0, 1, 2, 5} {
		for _, lines := range []int{0, 1, 50} {
			t.Run(fmt.Sprintf("%dx%d", languages, lines), func(t *testing.T) {
				texts := makeTexts(languages, lines)

				s := stream.NewBuffer()
				// Offsets are absolute, so start somewhere other than zero
				require.NoError(t, s.Fill(0xAA, 13))

				require.NoError(t, WriteMultilangArray(s, texts))
				data := s.Bytes()

				r := stream.FromBytes(data)
				_, err := r.Seek(13, io.SeekStart)
				require.NoError(t, err)

				count, err := r.ReadUint16()
				require.NoError(t, err)
				assert.Equal(t, uint16(languages), count)

				end, err := r.ReadUint32()
				require.NoError(t, err)
				assert.Equal(t, uint32(len(data)), end)

				previous := uint32(13 + multilangHeaderSize(languages))
				for i := 0; i < languages; i++ {
					offset, err := r.ReadUint32()
					require.NoError(t, err)
					if i == 0 {
						assert.Equal(t, previous, offset, "first block follows the header")
					} else {
						assert.Greater(t, offset, previous)
					}
					previous = offset
				}

				_, err = r.Seek(13, io.SeekStart)
				require.NoError(t, err)

				decoded, err := ReadMultilangArray(r)
				require.NoError(t, err)
				assert.Equal(t, int64(end), r.Pos())
				assert.Equal(t, texts, decoded)
			})
		}
	}
}

func TestMultilangBlocks(t *testing.T) {
	s := stream.NewBuffer()
	require.NoError(t, WriteMultilangArray(s, [][]string{{"a"}, {"bc", ""}}))

	assert.Equal(t, []byte{
		2, 0,
		24, 0, 0, 0,
		14, 0, 0, 0,
		18, 0, 0, 0,
		1, 0, 'a', 0,
		2, 0, 'b', 'c', 0, 0,
	}, s.Bytes())
}

func TestMultilangTruncated(t *testing.T) {
	s := stream.NewBuffer()
	require.NoError(t, WriteMultilangArray(s, makeTexts(2, 3)))

	data := s.Bytes()
	_, err := ReadMultilangArray(stream.FromBytes(data[:len(data)-2]))
	assert.Error(t, err)
}
