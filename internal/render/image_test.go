package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

func newEngine(w, h int) *ant.Engine {
	cfg := ant.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return ant.New(cfg, rules.Classic, nil)
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestSnapshotBounds(t *testing.T) {
	e := newEngine(8, 5)
	img := NewImageRenderer(palette.Default, 10).Snapshot(e)

	b := img.Bounds()
	if b.Dx() != 80 || b.Dy() != 50 {
		t.Errorf("expected 80x50 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSnapshotCells(t *testing.T) {
	e := newEngine(8, 5)
	e.EditCell(1, 1)
	e.EditCell(2, 1)
	e.EditCell(2, 1)

	r := NewImageRenderer(palette.Default, 10)
	img := r.Snapshot(e)

	if got := rgbaAt(img, 15, 15); got != palette.Default.RGBA(1) {
		t.Errorf("cell (1,1) center = %+v, expected state 1 color", got)
	}
	if got := rgbaAt(img, 25, 15); got != palette.Default.RGBA(2) {
		t.Errorf("cell (2,1) center = %+v, expected state 2 color", got)
	}
	if got := rgbaAt(img, 10, 10); got != palette.ToRGBA(palette.Backdrop) {
		t.Errorf("cell gap = %+v, expected backdrop", got)
	}
	if got := rgbaAt(img, 5, 45); got != palette.ToRGBA(palette.EmptyColor) {
		t.Errorf("inactive cell = %+v, expected empty tile", got)
	}

	// Ant sits at (4,2), heading up: the base row of the triangle is solid.
	if got := rgbaAt(img, 45, 27); got != palette.ToRGBA(palette.AntColor) {
		t.Errorf("ant base = %+v, expected ant color", got)
	}
}

func TestSnapshotArtMode(t *testing.T) {
	e := newEngine(8, 5)
	e.EditCell(1, 1)

	r := NewImageRenderer(palette.Default, 10)
	r.ArtMode = true
	img := r.Snapshot(e)

	if got := rgbaAt(img, 10, 10); got != palette.Default.RGBA(1) {
		t.Errorf("art mode cell edge = %+v, expected no gap", got)
	}
	if got := rgbaAt(img, 45, 27); got != palette.ToRGBA(palette.Backdrop) {
		t.Errorf("art mode ant cell = %+v, expected hidden ant", got)
	}
}

func TestAntTrianglePointsAlongHeading(t *testing.T) {
	// A 10px cell leaves a 6x6 triangle square at offset (2,2). The apex
	// row has zero width, so check the pixel one row in from the apex and
	// the corner behind it, which is always part of the base.
	tests := []struct {
		heading        ant.Heading
		nearX, nearY   int
		cornerX, cornY int
	}{
		{ant.Up, 2, 1, 0, 5},
		{ant.Right, 4, 2, 0, 0},
		{ant.Down, 3, 4, 5, 0},
		{ant.Left, 1, 3, 5, 5},
	}

	red := color.RGBA{R: 255, A: 255}
	for _, tc := range tests {
		t.Run(tc.heading.String(), func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 10, 10))
			drawAnt(img, ant.Ant{Heading: tc.heading}, 10, red)

			if got := img.RGBAAt(2+tc.nearX, 2+tc.nearY); got != red {
				t.Errorf("expected pixel near apex lit, got %+v", got)
			}
			if got := img.RGBAAt(2+tc.cornerX, 2+tc.cornY); got != red {
				t.Errorf("expected base corner lit, got %+v", got)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	e := newEngine(4, 4)
	for range 10 {
		e.Step()
	}
	e.SetRenderer(NewImageRenderer(palette.Default, 4))

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := SavePNG(dir, e.Steps(), e.SnapshotImage())
	if err != nil {
		t.Fatalf("SavePNG() failed: %v", err)
	}
	if filepath.Base(path) != "chromatic-ant-10.png" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("decoded bounds %v", b)
	}

	if _, err := SavePNG(dir, 0, nil); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestSnapshotCustomAntColor(t *testing.T) {
	e := newEngine(8, 5)
	r := NewImageRenderer(palette.Default, 10)
	r.AntColor = palette.MustParse([]string{"#00ff00", "#000000", "#000000", "#000000"})[0]

	if got := rgbaAt(r.Snapshot(e), 45, 27); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("ant base = %+v, expected custom ant color", got)
	}
}
