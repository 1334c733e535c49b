package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cfoust/nancy/pkg/blit"
	"github.com/cfoust/nancy/pkg/utils"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

// ScaleCache memoises scaled surfaces in a Store. Scaling is deterministic,
// so the key only depends on the source pixels and the requested geometry.
type ScaleCache struct {
	store    Store
	compress bool
}

func NewScaleCache(store Store, compress bool) *ScaleCache {
	return &ScaleCache{
		store:    store,
		compress: compress,
	}
}

func ScaleKey(src blit.Surface, w, h int, flip blit.Flip) string {
	geometry := fmt.Sprintf(
		"%dx%d:%d:%d>%dx%d:%d",
		src.W, src.H, src.Pitch, src.BytesPerPixel,
		w, h, flip,
	)
	return "scale-" + utils.HashParts([]byte(geometry), src.Pixels, src.Palette)
}

func Compress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	gz := gzip.NewWriter(&buffer)
	_, err := gz.Write(data)
	if err != nil {
		return nil, err
	}

	err = gz.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

func isCompressed(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

func (c *ScaleCache) encode(surface blit.Surface) ([]byte, error) {
	data, err := cbor.Marshal(surface)
	if err != nil {
		return nil, err
	}

	if !c.compress {
		return data, nil
	}

	return Compress(data)
}

// Entries are decoded whether or not they were compressed, so toggling
// compression does not invalidate the cache.
func (c *ScaleCache) decode(data []byte) (blit.Surface, error) {
	var err error
	if isCompressed(data) {
		data, err = Decompress(data)
		if err != nil {
			return blit.Surface{}, err
		}
	}

	var surface blit.Surface
	err = cbor.Unmarshal(data, &surface)
	if err != nil {
		return blit.Surface{}, err
	}

	if len(surface.Pixels) < surface.Pitch*surface.H {
		return blit.Surface{}, fmt.Errorf("cached surface is truncated")
	}

	return surface, nil
}

// Scale returns src scaled to w x h, from the store when possible. A nil
// store disables caching.
func (c *ScaleCache) Scale(ctx context.Context, src blit.Surface, w, h int, flip blit.Flip) (blit.Surface, error) {
	if c.store == nil {
		return src.Scale(w, h, flip)
	}

	key := ScaleKey(src, w, h, flip)
	logger := log.With().Str("key", key).Logger()

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		surface, err := c.decode(data)
		if err == nil {
			logger.Debug().Msg("scale cache hit")
			return surface, nil
		}
		logger.Warn().Err(err).Msg("discarding unreadable cache entry")
	case errors.Is(err, Missing):
		logger.Debug().Msg("scale cache miss")
	default:
		return blit.Surface{}, err
	}

	scaled, err := src.Scale(w, h, flip)
	if err != nil {
		return blit.Surface{}, err
	}

	encoded, err := c.encode(scaled)
	if err != nil {
		return blit.Surface{}, err
	}

	err = c.store.Set(ctx, key, encoded)
	if err != nil {
		return blit.Surface{}, err
	}

	return scaled, nil
}
