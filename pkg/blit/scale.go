// Package blit scales raw pixel buffers with nearest-neighbour sampling and
// computes the bounds of transformed sprites.
package blit

import (
	"errors"
	"fmt"
)

type Flip uint8

const (
	FlipH Flip = 1 << iota
	FlipV

	FlipNone Flip = 0
)

// Source dimensions must fit in 16 bits so that 16.16 fixed point steps do
// not overflow.
const MaxDimension = 0xFFFF

var ErrUnsupportedFormat = errors.New("unsupported bytes per pixel")

type kernel func(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH int, flip Flip)

var kernels = [...]kernel{
	1: scaleNN1,
	2: scaleNN2,
	3: scaleNN3,
	4: scaleNN4,
}

// ScaleBlit fills the dstW x dstH region of dst with the srcW x srcH image in
// src, resampled by nearest neighbour and mirrored according to flip. Pitches
// are in bytes. It returns false if bpp is not 1, 2, 3 or 4.
func ScaleBlit(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH, bpp int, flip Flip) bool {
	if bpp < 1 || bpp >= len(kernels) {
		return false
	}

	if srcW > MaxDimension || srcH > MaxDimension {
		panic(fmt.Sprintf("source is %dx%d, dimensions are limited to %d", srcW, srcH, MaxDimension))
	}

	if dstW <= 0 || dstH <= 0 || srcW <= 0 || srcH <= 0 {
		return true
	}

	if dstW == srcW && flip&FlipH == 0 {
		if dstH == srcH && flip&FlipV == 0 {
			copyBlit(dst, src, dstPitch, srcPitch, dstW, dstH, bpp)
		} else {
			scaleVertical(dst, src, dstPitch, srcPitch, dstW, dstH, srcH, bpp, flip)
		}
		return true
	}

	kernels[bpp](dst, src, dstPitch, srcPitch, dstW, dstH, srcW, srcH, flip)
	return true
}

func copyBlit(dst, src []byte, dstPitch, srcPitch, w, h, bpp int) {
	rowSize := w * bpp
	for y := 0; y < h; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowSize], src[y*srcPitch:y*srcPitch+rowSize])
	}
}

// firstRow returns the offset of the first destination row and the stride
// between rows, which is negative when flipping vertically.
func firstRow(dstPitch, dstH int, flip Flip) (int, int) {
	if flip&FlipV != 0 {
		return (dstH - 1) * dstPitch, -dstPitch
	}
	return 0, dstPitch
}

func scaleVertical(dst, src []byte, dstPitch, srcPitch, w, dstH, srcH, bpp int, flip Flip) {
	rowSize := w * bpp
	scaleY := (srcH << 16) / dstH

	row, stride := firstRow(dstPitch, dstH, flip)
	yoff := 0
	for y := 0; y < dstH; y++ {
		srcRow := (yoff >> 16) * srcPitch
		copy(dst[row:row+rowSize], src[srcRow:srcRow+rowSize])

		yoff += scaleY
		row += stride
	}
}

// columns maps each destination column to the byte offset of its source
// pixel within a row. Horizontal flips are folded into the mapping.
func columns(dstW, srcW, bpp int, flip Flip) []int {
	scaleX := (srcW << 16) / dstW
	cache := make([]int, dstW)

	xoff := 0
	for x := 0; x < dstW; x++ {
		column := x
		if flip&FlipH != 0 {
			column = dstW - 1 - x
		}
		cache[column] = (xoff >> 16) * bpp
		xoff += scaleX
	}

	return cache
}

func scaleNN1(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH int, flip Flip) {
	cache := columns(dstW, srcW, 1, flip)
	scaleY := (srcH << 16) / dstH

	row, stride := firstRow(dstPitch, dstH, flip)
	yoff := 0
	for y := 0; y < dstH; y++ {
		srcRow := src[(yoff>>16)*srcPitch:]
		dstRow := dst[row : row+dstW]
		for x, offset := range cache {
			dstRow[x] = srcRow[offset]
		}

		yoff += scaleY
		row += stride
	}
}

func scaleNN2(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH int, flip Flip) {
	cache := columns(dstW, srcW, 2, flip)
	scaleY := (srcH << 16) / dstH

	row, stride := firstRow(dstPitch, dstH, flip)
	yoff := 0
	for y := 0; y < dstH; y++ {
		srcRow := src[(yoff>>16)*srcPitch:]
		dstRow := dst[row : row+dstW*2]
		for x, offset := range cache {
			d := dstRow[x*2 : x*2+2]
			d[0] = srcRow[offset]
			d[1] = srcRow[offset+1]
		}

		yoff += scaleY
		row += stride
	}
}

func scaleNN3(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH int, flip Flip) {
	cache := columns(dstW, srcW, 3, flip)
	scaleY := (srcH << 16) / dstH

	row, stride := firstRow(dstPitch, dstH, flip)
	yoff := 0
	for y := 0; y < dstH; y++ {
		srcRow := src[(yoff>>16)*srcPitch:]
		dstRow := dst[row : row+dstW*3]
		for x, offset := range cache {
			copy(dstRow[x*3:x*3+3], srcRow[offset:offset+3])
		}

		yoff += scaleY
		row += stride
	}
}

func scaleNN4(dst, src []byte, dstPitch, srcPitch, dstW, dstH, srcW, srcH int, flip Flip) {
	cache := columns(dstW, srcW, 4, flip)
	scaleY := (srcH << 16) / dstH

	row, stride := firstRow(dstPitch, dstH, flip)
	yoff := 0
	for y := 0; y < dstH; y++ {
		srcRow := src[(yoff>>16)*srcPitch:]
		dstRow := dst[row : row+dstW*4]
		for x, offset := range cache {
			d := dstRow[x*4 : x*4+4]
			s := srcRow[offset : offset+4]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
		}

		yoff += scaleY
		row += stride
	}
}
