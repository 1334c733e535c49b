package blit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Surface describes a block of pixels. Rows are Pitch bytes apart and may
// carry padding after W*BytesPerPixel bytes.
type Surface struct {
	W             int    `cbor:"w"`
	H             int    `cbor:"h"`
	Pitch         int    `cbor:"pitch"`
	BytesPerPixel int    `cbor:"bpp"`
	Pixels        []byte `cbor:"pixels"`
	// RGBA quadruples, only used when BytesPerPixel is 1
	Palette []byte `cbor:"palette,omitempty"`
}

func NewSurface(w, h, bpp int) Surface {
	return Surface{
		W:             w,
		H:             h,
		Pitch:         w * bpp,
		BytesPerPixel: bpp,
		Pixels:        make([]byte, w*h*bpp),
	}
}

func (s Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.W, s.H)
}

// FromImage copies img into a surface. Paletted images keep their indices
// and palette, everything else becomes 4-byte RGBA.
func FromImage(img image.Image) Surface {
	bounds := img.Bounds()

	if paletted, ok := img.(*image.Paletted); ok {
		surface := NewSurface(bounds.Dx(), bounds.Dy(), 1)
		for y := 0; y < surface.H; y++ {
			start := paletted.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(surface.Pixels[y*surface.Pitch:], paletted.Pix[start:start+surface.W])
		}

		for _, entry := range paletted.Palette {
			c := color.RGBAModel.Convert(entry).(color.RGBA)
			surface.Palette = append(surface.Palette, c.R, c.G, c.B, c.A)
		}

		return surface
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return Surface{
		W:             bounds.Dx(),
		H:             bounds.Dy(),
		Pitch:         rgba.Stride,
		BytesPerPixel: 4,
		Pixels:        rgba.Pix,
	}
}

// Image wraps the surface's pixels in an image without copying them.
func (s Surface) Image() (image.Image, error) {
	switch s.BytesPerPixel {
	case 1:
		palette := make(color.Palette, 0, len(s.Palette)/4)
		for i := 0; i+3 < len(s.Palette); i += 4 {
			palette = append(palette, color.RGBA{
				R: s.Palette[i],
				G: s.Palette[i+1],
				B: s.Palette[i+2],
				A: s.Palette[i+3],
			})
		}

		return &image.Paletted{
			Pix:     s.Pixels,
			Stride:  s.Pitch,
			Rect:    s.Bounds(),
			Palette: palette,
		}, nil
	case 4:
		return &image.RGBA{
			Pix:    s.Pixels,
			Stride: s.Pitch,
			Rect:   s.Bounds(),
		}, nil
	}

	return nil, fmt.Errorf("%d: %w", s.BytesPerPixel, ErrUnsupportedFormat)
}

// Scale returns a new w x h surface with the same format.
func (s Surface) Scale(w, h int, flip Flip) (Surface, error) {
	if w <= 0 || h <= 0 {
		return Surface{}, fmt.Errorf("invalid target size %dx%d", w, h)
	}

	result := NewSurface(w, h, s.BytesPerPixel)
	result.Palette = s.Palette

	ok := ScaleBlit(
		result.Pixels,
		s.Pixels,
		result.Pitch,
		s.Pitch,
		w,
		h,
		s.W,
		s.H,
		s.BytesPerPixel,
		flip,
	)
	if !ok {
		return Surface{}, fmt.Errorf("%d: %w", s.BytesPerPixel, ErrUnsupportedFormat)
	}

	return result, nil
}
