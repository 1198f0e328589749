// Package render draws engine state into raster images and exports them as PNG.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
)

// DefaultCellSize is the pixel size of one cell in exported images.
const DefaultCellSize = 12

// ImageRenderer rasterizes the grid, one CellSize square per cell.
//
// Outside art mode inactive cells are drawn as dark tiles with a one pixel
// gap, active cells use the palette with the same gap, and the ant is drawn
// as a triangle pointing along its heading. In art mode the ant is hidden,
// inactive cells show the backdrop and active cells fill their square.
type ImageRenderer struct {
	Palette  palette.Palette
	AntColor colorful.Color
	CellSize int
	ArtMode  bool
}

// NewImageRenderer creates a renderer with the given palette and cell size.
func NewImageRenderer(p palette.Palette, cellSize int) *ImageRenderer {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &ImageRenderer{Palette: p, AntColor: palette.AntColor, CellSize: cellSize}
}

// Snapshot implements ant.Renderer.
func (r *ImageRenderer) Snapshot(v ant.View) image.Image {
	cs := r.CellSize
	if cs <= 0 {
		cs = DefaultCellSize
	}
	img := image.NewRGBA(image.Rect(0, 0, v.Width()*cs, v.Height()*cs))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: palette.ToRGBA(palette.Backdrop)}, image.Point{}, draw.Src)

	empty := palette.ToRGBA(palette.EmptyColor)
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			state := v.State(x, y)
			switch {
			case state == 0 && r.ArtMode:
				continue
			case state == 0:
				fillCell(img, x, y, cs, 1, empty)
			case r.ArtMode:
				fillCell(img, x, y, cs, 0, r.Palette.RGBA(state))
			default:
				fillCell(img, x, y, cs, 1, r.Palette.RGBA(state))
			}
		}
	}

	if !r.ArtMode {
		drawAnt(img, v.Ant(), cs, palette.ToRGBA(r.AntColor))
	}
	return img
}

// fillCell paints the square of cell (x, y) inset by gap pixels on each side.
func fillCell(img *image.RGBA, x, y, cs, gap int, c color.RGBA) {
	rect := image.Rect(x*cs+gap, y*cs+gap, (x+1)*cs-gap, (y+1)*cs-gap)
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// drawAnt draws an isosceles triangle inside the ant's cell with its apex
// toward the heading.
func drawAnt(img *image.RGBA, a ant.Ant, cs int, c color.RGBA) {
	const margin = 2
	size := cs - 2*margin
	if size <= 0 {
		return
	}
	ox, oy := a.X*cs+margin, a.Y*cs+margin

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			// Triangle pointing up in local coordinates: apex at the top
			// center, base along the bottom row.
			u, w := rotate(i, j, size, a.Heading)
			half := float64(w) / 2
			center := float64(size-1) / 2
			if float64(u) >= center-half && float64(u) <= center+half {
				img.SetRGBA(ox+i, oy+j, c)
			}
		}
	}
}

// rotate maps pixel (i, j) of a size x size square into the frame of an
// up-pointing triangle for the given heading. It returns the column and the
// row counted from the apex.
func rotate(i, j, size int, h ant.Heading) (u, w int) {
	last := size - 1
	switch h {
	case ant.Right:
		return j, last - i
	case ant.Down:
		return last - i, last - j
	case ant.Left:
		return last - j, i
	default:
		return i, j
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: cannot encode png: %w", err)
	}
	return nil
}

// ExportName returns the file name used for an exported run.
func ExportName(steps int) string {
	return fmt.Sprintf("chromatic-ant-%d.png", steps)
}

// SavePNG writes img into dir using ExportName and returns the full path.
// The directory is created if needed.
func SavePNG(dir string, steps int, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("render: no image to save")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("render: cannot create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ExportName(steps))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("render: cannot create %s: %w", path, err)
	}

	if err := WritePNG(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("render: cannot close %s: %w", path, err)
	}
	return path, nil
}

var _ ant.Renderer = (*ImageRenderer)(nil)
