// Package debug provides debug visualization utilities.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nfnt/resize"

	"github.com/Faultbox/planetterrain/pkg/planet"
)

// GridStyle controls the look of the chunk grid texture.
type GridStyle struct {
	Thickness float64    // Line half-width, in cells
	Steepness float64    // How fast lines fade into the background
	Base      color.RGBA // Cell interior color
	Intensity float64    // Brightness added on line centers
}

// DefaultGridStyle returns dark green cells with pale lines.
func DefaultGridStyle() GridStyle {
	return GridStyle{
		Thickness: 0.04,
		Steepness: 8,
		Base:      color.RGBA{R: 30, G: 40, B: 30, A: 255},
		Intensity: 210,
	}
}

// GridTexture renders a square texture with grid lines at every multiple of
// 1/chunkRes in both directions, including the texture edges. Mapping it
// over a chunk mesh whose UVs span 0..1 outlines every mesh cell when
// chunkRes is the mesh resolution minus one.
func GridTexture(textureRes, chunkRes int, style GridStyle) (*image.RGBA, error) {
	if textureRes < 2 {
		return nil, fmt.Errorf("%w: texture resolution %d, need at least 2", planet.ErrInvalidArgument, textureRes)
	}
	if chunkRes < 1 {
		return nil, fmt.Errorf("%w: chunk resolution %d, need at least 1", planet.ErrInvalidArgument, chunkRes)
	}

	img := image.NewRGBA(image.Rect(0, 0, textureRes, textureRes))
	last := float64(textureRes - 1)
	cells := float64(chunkRes)

	// Intensity only depends on one coordinate per axis.
	line := make([]float64, textureRes)
	for i := range line {
		line[i] = lineCoverage(float64(i)/last*cells, style.Thickness)
	}

	for y := 0; y < textureRes; y++ {
		for x := 0; x < textureRes; x++ {
			g := math.Max(line[x], line[y])
			v := style.Intensity * (1 - math.Min(1, (1-g)*style.Steepness))
			img.SetRGBA(x, y, color.RGBA{
				R: addClamped(style.Base.R, v),
				G: addClamped(style.Base.G, v),
				B: addClamped(style.Base.B, v),
				A: 255,
			})
		}
	}
	return img, nil
}

// lineCoverage is 1 on a grid line, falling off linearly to thickness at
// the middle of a cell. w is measured in cells.
func lineCoverage(w, thickness float64) float64 {
	f := w - 0.5
	f -= math.Floor(f)
	return clamp01(1 + thickness - 2*math.Abs(f-0.5))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func addClamped(base uint8, v float64) uint8 {
	s := float64(base) + v
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return 0
	}
	return uint8(s)
}

// MipChain returns img followed by successively halved copies, down to the
// first level whose larger side is at most minSize.
func MipChain(img *image.RGBA, minSize int) []*image.RGBA {
	if minSize < 1 {
		minSize = 1
	}
	levels := []*image.RGBA{img}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for max(w, h) > minSize {
		w, h = max(1, w/2), max(1, h/2)
		levels = append(levels, toRGBA(resize.Resize(uint(w), uint(h), img, resize.Lanczos3)))
	}
	return levels
}

// Downscale resizes img to fit within size×size, keeping its aspect ratio.
func Downscale(img image.Image, size int) *image.RGBA {
	return toRGBA(resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3))
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
