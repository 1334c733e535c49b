package blit

import (
	"fmt"
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewTransformStruct(t *testing.T) {
	transform := NewTransformStruct()
	assert.Equal(t, 1, transform.NumTimesX)
	assert.Equal(t, 1, transform.NumTimesY)
	assert.Equal(t, BlendNormal, transform.BlendMode)
	assert.True(t, transform.IsIdentity())

	transform.Angle = 10
	assert.False(t, transform.IsIdentity())
}

func TestNewRectIdentity(t *testing.T) {
	for _, rect := range []image.Rectangle{
		image.Rect(0, 0, 10, 20),
		image.Rect(-5, 3, 7, 9),
		image.Rect(100, 200, 640, 480),
	} {
		for _, hotspot := range []image.Point{{}, {3, 4}, {-2, 50}} {
			transform := NewTransformStruct()
			transform.Hotspot = hotspot

			result, newHotspot := NewRect(rect, transform)
			assert.Equal(t, rect, result)
			assert.Equal(t, hotspot.Sub(rect.Min), newHotspot)
		}
	}
}

func TestNewRectContainment(t *testing.T) {
	rect := image.Rect(-10, 5, 30, 25)

	for _, angle := range []float32{0, 45, 90, 180, 270} {
		for _, zoom := range []int{50, 100, 200} {
			for _, flip := range []Flip{FlipNone, FlipH, FlipV} {
				name := fmt.Sprintf("angle %v zoom %d flip %d", angle, zoom, flip)

				transform := NewTransformStruct()
				transform.Angle = angle
				transform.Zoom = image.Pt(zoom, zoom)
				transform.Hotspot = image.Pt(4, 9)
				transform.Flip = flip

				result, _ := NewRect(rect, transform)

				for _, corner := range []image.Point{
					rect.Min,
					{rect.Max.X, rect.Min.Y},
					{rect.Min.X, rect.Max.Y},
					rect.Max,
				} {
					relative := corner.Sub(transform.Hotspot)
					p := TransformPoint(
						FloatPoint{float32(relative.X), float32(relative.Y)},
						angle,
						transform.Zoom,
						flip,
					)
					x := p.X + float32(transform.Hotspot.X)
					y := p.Y + float32(transform.Hotspot.Y)

					assert.GreaterOrEqual(t, x, float32(result.Min.X), name)
					assert.LessOrEqual(t, x, float32(result.Max.X), name)
					assert.GreaterOrEqual(t, y, float32(result.Min.Y), name)
					assert.LessOrEqual(t, y, float32(result.Max.Y), name)
				}
			}
		}
	}
}

func TestNewRectRotation(t *testing.T) {
	transform := NewTransformStruct()
	transform.Angle = 90

	result, hotspot := NewRect(image.Rect(0, 0, 10, 20), transform)

	// Rounding in the trig calls may widen the box by a pixel at most
	assert.InDelta(t, -20, result.Min.X, 1)
	assert.InDelta(t, 0, result.Min.Y, 1)
	assert.InDelta(t, 0, result.Max.X, 1)
	assert.InDelta(t, 10, result.Max.Y, 1)
	assert.Equal(t, image.Pt(-result.Min.X, -result.Min.Y), hotspot)

	transform = NewTransformStruct()
	transform.Zoom = image.Pt(200, 50)

	result, hotspot = NewRect(image.Rect(0, 0, 10, 20), transform)
	assert.Equal(t, image.Rect(0, 0, 20, 10), result)
	assert.Equal(t, image.Pt(0, 0), hotspot)
}

func assertPoint(t *testing.T, expected, actual FloatPoint) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-4)
	assert.InDelta(t, expected.Y, actual.Y, 1e-4)
}

// Mirroring is applied after rotation. Except for the 180 degree case, where
// both orders agree, mirroring first would move these points elsewhere.
func TestTransformPointMirrorAfterRotate(t *testing.T) {
	identity := image.Pt(DefaultZoom, DefaultZoom)

	assertPoint(t,
		FloatPoint{0, 10},
		TransformPoint(FloatPoint{10, 0}, 90, identity, FlipH),
	)

	assertPoint(t,
		FloatPoint{-10, 0},
		TransformPoint(FloatPoint{0, 20}, 90, image.Pt(100, 50), FlipV),
	)

	assertPoint(t,
		FloatPoint{3, 4},
		TransformPoint(FloatPoint{3, 4}, 180, identity, FlipH|FlipV),
	)

	// Mirroring first would give (-4, -3)
	assertPoint(t,
		FloatPoint{4, 3},
		TransformPoint(FloatPoint{3, 4}, 90, identity, FlipH),
	)

	assertPoint(t,
		FloatPoint{-math32.Sqrt2 * 5, math32.Sqrt2 * 5},
		TransformPoint(FloatPoint{10, 0}, 45, identity, FlipH),
	)
}

func TestTransformPointIdentity(t *testing.T) {
	p := FloatPoint{12.5, -7}
	assert.Equal(t, p, TransformPoint(p, 0, image.Pt(DefaultZoom, DefaultZoom), FlipNone))
}
