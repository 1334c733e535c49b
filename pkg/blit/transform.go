package blit

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// DefaultZoom is the zoom percentage that leaves a sprite unscaled.
const DefaultZoom = 100

type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendSubtractive
	BlendMultiply
)

func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	case BlendSubtractive:
		return "subtractive"
	case BlendMultiply:
		return "multiply"
	}
	return "unknown"
}

// TransformStruct describes how a sprite is drawn. Zoom is in percent per
// axis, Angle in degrees and Hotspot is the pivot in sprite coordinates.
// A zero zoom is degenerate and must not reach the scaler.
type TransformStruct struct {
	Zoom         image.Point
	Angle        float32
	Hotspot      image.Point
	Flip         Flip
	AlphaDisable bool
	BlendMode    BlendMode
	RGBAMod      color.RGBA
	NumTimesX    int
	NumTimesY    int
}

func NewTransformStruct() TransformStruct {
	return TransformStruct{
		Zoom:      image.Pt(DefaultZoom, DefaultZoom),
		RGBAMod:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		NumTimesX: 1,
		NumTimesY: 1,
	}
}

func (t TransformStruct) IsIdentity() bool {
	return t.Zoom == image.Pt(DefaultZoom, DefaultZoom) &&
		t.Angle == 0 &&
		t.Flip == FlipNone
}

type FloatPoint struct {
	X, Y float32
}

// TransformPoint scales point by zoom/100, rotates it by angle degrees around
// the origin and then mirrors it. Mirroring happens after the rotation; the
// legacy renderer places pixels that way.
func TransformPoint(point FloatPoint, angle float32, zoom image.Point, flip Flip) FloatPoint {
	radians := angle * math32.Pi / 180

	x := point.X * float32(zoom.X) / DefaultZoom
	y := point.Y * float32(zoom.Y) / DefaultZoom

	sin, cos := math32.Sincos(radians)
	result := FloatPoint{
		X: x*cos - y*sin,
		Y: x*sin + y*cos,
	}

	if flip&FlipH != 0 {
		result.X = -result.X
	}
	if flip&FlipV != 0 {
		result.Y = -result.Y
	}

	return result
}

// NewRect returns the smallest rectangle holding rect once it is transformed
// around the hotspot, and the hotspot's position relative to the top left
// corner of that rectangle.
func NewRect(rect image.Rectangle, t TransformStruct) (image.Rectangle, image.Point) {
	corners := []image.Point{
		rect.Min,
		image.Pt(rect.Max.X, rect.Min.Y),
		image.Pt(rect.Min.X, rect.Max.Y),
		rect.Max,
	}

	left, top := math32.Inf(1), math32.Inf(1)
	right, bottom := math32.Inf(-1), math32.Inf(-1)
	for _, corner := range corners {
		relative := corner.Sub(t.Hotspot)
		p := TransformPoint(
			FloatPoint{X: float32(relative.X), Y: float32(relative.Y)},
			t.Angle,
			t.Zoom,
			t.Flip,
		)

		left = math32.Min(left, p.X)
		top = math32.Min(top, p.Y)
		right = math32.Max(right, p.X)
		bottom = math32.Max(bottom, p.Y)
	}

	minX := int(math32.Floor(left))
	minY := int(math32.Floor(top))
	maxX := int(math32.Ceil(right))
	maxY := int(math32.Ceil(bottom))

	result := image.Rectangle{
		Min: image.Pt(minX, minY).Add(t.Hotspot),
		Max: image.Pt(maxX, maxY).Add(t.Hotspot),
	}

	// The hotspot is relative to the new rectangle's top left corner.
	return result, image.Pt(-minX, -minY)
}
