package debug

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetterrain/pkg/planet"
)

func brightness(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestGridTextureLinesBrighterThanCells(t *testing.T) {
	const res = 257
	img, err := GridTexture(res, 4, DefaultGridStyle())
	if err != nil {
		t.Fatalf("GridTexture failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != res || b.Dy() != res {
		t.Fatalf("expected %dx%d texture, got %v", res, res, b)
	}

	// u = 64/256 = 0.25 lies on the first inner line; 32/256 is mid-cell.
	line := img.RGBAAt(64, 100)
	cell := img.RGBAAt(32, 32)
	if brightness(line) <= brightness(cell) {
		t.Errorf("expected line pixel %v brighter than cell pixel %v", line, cell)
	}

	if want := (color.RGBA{R: 240, G: 250, B: 240, A: 255}); line != want {
		t.Errorf("expected line center %v, got %v", want, line)
	}
	if want := (color.RGBA{R: 30, G: 40, B: 30, A: 255}); cell != want {
		t.Errorf("expected cell interior %v, got %v", want, cell)
	}

	for _, p := range [][2]int{{0, 37}, {res - 1, 200}, {90, 0}, {5, res - 1}} {
		if c := img.RGBAAt(p[0], p[1]); c != line {
			t.Errorf("expected border pixel %v to be a line, got %v", p, c)
		}
	}
}

func TestGridTextureBorderVersusInterior(t *testing.T) {
	tests := []struct {
		name           string
		res, cells     int
		border, inside [2]int
	}{
		{"4px two cells", 4, 2, [2]int{0, 2}, [2]int{1, 1}},
		{"257px four cells", 257, 4, [2]int{0, 100}, [2]int{32, 32}},
		{"64px one cell", 64, 1, [2]int{63, 20}, [2]int{31, 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := GridTexture(tt.res, tt.cells, DefaultGridStyle())
			if err != nil {
				t.Fatalf("GridTexture failed: %v", err)
			}
			border := img.RGBAAt(tt.border[0], tt.border[1])
			inside := img.RGBAAt(tt.inside[0], tt.inside[1])
			if brightness(border) <= brightness(inside) {
				t.Errorf("expected border pixel %v (%d) brighter than interior %v (%d)",
					tt.border, brightness(border), tt.inside, brightness(inside))
			}
		})
	}
}

func TestGridTextureLineCount(t *testing.T) {
	const res = 512
	for _, cells := range []int{1, 3, 7} {
		img, err := GridTexture(res, cells, DefaultGridStyle())
		if err != nil {
			t.Fatalf("GridTexture failed: %v", err)
		}

		// Count bright runs along a row that crosses no horizontal line.
		y := int(0.5 / float64(cells) * (res - 1))
		runs, inLine := 0, false
		for x := 0; x < res; x++ {
			bright := img.RGBAAt(x, y).R > 130
			if bright && !inLine {
				runs++
			}
			inLine = bright
		}
		if runs != cells+1 {
			t.Errorf("cells=%d: expected %d lines, got %d", cells, cells+1, runs)
		}
	}
}

func TestGridTextureCustomStyle(t *testing.T) {
	style := GridStyle{Thickness: 0.04, Steepness: 8, Base: color.RGBA{R: 100, G: 0, B: 200, A: 255}, Intensity: 210}
	img, err := GridTexture(9, 2, style)
	if err != nil {
		t.Fatalf("GridTexture failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 210, B: 255, A: 255}) {
		t.Errorf("expected saturated line color, got %v", got)
	}
}

func TestGridTextureErrors(t *testing.T) {
	tests := []struct {
		name       string
		textureRes int
		chunkRes   int
	}{
		{"tiny texture", 1, 4},
		{"zero texture", 0, 4},
		{"zero cells", 64, 0},
		{"negative cells", 64, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GridTexture(tt.textureRes, tt.chunkRes, DefaultGridStyle())
			if !errors.Is(err, planet.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestMipChain(t *testing.T) {
	img, err := GridTexture(256, 8, DefaultGridStyle())
	if err != nil {
		t.Fatalf("GridTexture failed: %v", err)
	}

	levels := MipChain(img, 1)
	if len(levels) != 9 {
		t.Fatalf("expected 9 levels, got %d", len(levels))
	}
	if levels[0] != img {
		t.Error("expected level 0 to be the source image")
	}
	for i, l := range levels {
		if want := 256 >> i; l.Bounds().Dx() != want || l.Bounds().Dy() != want {
			t.Errorf("level %d: expected %dx%d, got %v", i, want, want, l.Bounds())
		}
	}

	if got := len(MipChain(img, 32)); got != 4 {
		t.Errorf("expected 4 levels down to 32, got %d", got)
	}
}

func TestDownscale(t *testing.T) {
	img, err := GridTexture(300, 3, DefaultGridStyle())
	if err != nil {
		t.Fatalf("GridTexture failed: %v", err)
	}
	small := Downscale(img, 64)
	if b := small.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("expected 64x64 preview, got %v", b)
	}
}

func TestSavePNG(t *testing.T) {
	img, err := GridTexture(16, 2, DefaultGridStyle())
	if err != nil {
		t.Fatalf("GridTexture failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "grid.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open PNG: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// Two rows: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if filepath.Base(path) != "shot_2024-05-01_12-30-00.png" {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode screenshot: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("expected blue top row, got %v", img.At(0, 0))
	}

	if _, err := sc.CaptureFromPixels(pixels[:4], 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestBBoxWireframe(t *testing.T) {
	verts := BBoxWireframe(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-1, 4, 5}, 0.5)
	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(verts))
	}

	for i := 0; i < len(verts); i += 6 {
		a := mgl32.Vec3{verts[i], verts[i+1], verts[i+2]}
		b := mgl32.Vec3{verts[i+3], verts[i+4], verts[i+5]}
		diff := 0
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge %v-%v is not axis-aligned", a, b)
		}
		for k, v := range []float32{a[0], a[1], a[2]} {
			lo := []float32{-1.5, 1.5, 2.5}[k]
			hi := []float32{1.5, 4.5, 5.5}[k]
			if v != lo && v != hi {
				t.Errorf("coordinate %g on axis %d is not on the padded box", v, k)
			}
		}
	}
}
