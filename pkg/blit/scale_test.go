package blit

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(w, h, bpp int) Surface {
	surface := NewSurface(w, h, bpp)
	for i := range surface.Pixels {
		surface.Pixels[i] = byte(i*7 + 3)
	}
	return surface
}

// pixel returns the bytes of the pixel at (x, y).
func pixel(s Surface, x, y int) []byte {
	offset := y*s.Pitch + x*s.BytesPerPixel
	return s.Pixels[offset : offset+s.BytesPerPixel]
}

func TestScaleIdentity(t *testing.T) {
	for bpp := 1; bpp <= 4; bpp++ {
		src := pattern(13, 7, bpp)

		dst, err := src.Scale(13, 7, FlipNone)
		require.NoError(t, err)
		assert.Equal(t, src.Pixels, dst.Pixels, "bpp %d", bpp)
	}
}

func TestScaleDeterministic(t *testing.T) {
	for bpp := 1; bpp <= 4; bpp++ {
		for _, flip := range []Flip{FlipNone, FlipH, FlipV, FlipH | FlipV} {
			src := pattern(17, 11, bpp)

			first, err := src.Scale(40, 5, flip)
			require.NoError(t, err)
			second, err := src.Scale(40, 5, flip)
			require.NoError(t, err)

			assert.Equal(t, first.Pixels, second.Pixels, "bpp %d flip %d", bpp, flip)
		}
	}
}

func TestScaleDouble(t *testing.T) {
	src := NewSurface(2, 2, 1)
	copy(src.Pixels, []byte{1, 2, 3, 4})

	dst, err := src.Scale(4, 4, FlipNone)
	require.NoError(t, err)

	assert.Equal(t, []byte{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, dst.Pixels)
}

func TestScaleHalf(t *testing.T) {
	src := NewSurface(4, 2, 2)
	for i := range src.Pixels {
		src.Pixels[i] = byte(i)
	}

	dst, err := src.Scale(2, 1, FlipNone)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 4, 5}, dst.Pixels)
}

func TestScaleFlips(t *testing.T) {
	for bpp := 1; bpp <= 4; bpp++ {
		t.Run(fmt.Sprint(bpp), func(t *testing.T) {
			src := pattern(5, 3, bpp)

			h, err := src.Scale(5, 3, FlipH)
			require.NoError(t, err)
			v, err := src.Scale(5, 3, FlipV)
			require.NoError(t, err)
			both, err := src.Scale(5, 3, FlipH|FlipV)
			require.NoError(t, err)

			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					expected := pixel(src, x, y)
					assert.Equal(t, expected, pixel(h, 4-x, y))
					assert.Equal(t, expected, pixel(v, x, 2-y))
					assert.Equal(t, expected, pixel(both, 4-x, 2-y))
				}
			}
		})
	}
}

func TestScaleVerticalOnly(t *testing.T) {
	src := NewSurface(3, 2, 1)
	copy(src.Pixels, []byte{1, 2, 3, 4, 5, 6})

	dst, err := src.Scale(3, 4, FlipNone)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		1, 2, 3,
		1, 2, 3,
		4, 5, 6,
		4, 5, 6,
	}, dst.Pixels)

	dst, err = src.Scale(3, 4, FlipV)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		4, 5, 6,
		4, 5, 6,
		1, 2, 3,
		1, 2, 3,
	}, dst.Pixels)
}

func TestScalePitch(t *testing.T) {
	// Rows carry two bytes of padding that must not be sampled
	src := Surface{
		W:             2,
		H:             2,
		Pitch:         4,
		BytesPerPixel: 1,
		Pixels:        []byte{1, 2, 0xEE, 0xEE, 3, 4, 0xEE, 0xEE},
	}

	dst, err := src.Scale(2, 2, FlipNone)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, dst.Pixels)

	dst, err = src.Scale(1, 1, FlipNone)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, dst.Pixels)
}

func TestScaleUnsupported(t *testing.T) {
	dst := make([]byte, 100)
	src := make([]byte, 100)

	assert.False(t, ScaleBlit(dst, src, 10, 10, 2, 2, 2, 2, 0, FlipNone))
	assert.False(t, ScaleBlit(dst, src, 10, 10, 2, 2, 2, 2, 5, FlipNone))

	_, err := Surface{W: 1, H: 1, Pitch: 8, BytesPerPixel: 8, Pixels: make([]byte, 8)}.Scale(2, 2, FlipNone)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestScaleTooLarge(t *testing.T) {
	assert.Panics(t, func() {
		ScaleBlit(nil, nil, 0, 0, 1, 1, MaxDimension+1, 1, 1, FlipNone)
	})
}

func TestSurfaceImage(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	surface := FromImage(rgba)
	assert.Equal(t, 4, surface.BytesPerPixel)

	img, err := surface.Image()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.At(1, 0))

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, A: 255},
	})
	paletted.SetColorIndex(1, 1, 1)

	surface = FromImage(paletted)
	assert.Equal(t, 1, surface.BytesPerPixel)
	assert.Equal(t, []byte{0, 0, 0, 1}, surface.Pixels)

	scaled, err := surface.Scale(4, 4, FlipH)
	require.NoError(t, err)

	img, err = scaled.Image()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(0, 3))
	assert.Equal(t, color.RGBA{A: 255}, img.At(3, 3))

	_, err = Surface{BytesPerPixel: 3}.Image()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
