package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

// Raster is an offscreen Surface backed by a gg software context.
type Raster struct {
	ctx    *gg.Context
	source *text.FontSource
	faces  map[float64]text.Face
}

// NewRaster returns a w×h raster. fontData may be nil, in which case Go Bold is used.
func NewRaster(w, h int, fontData []byte) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas: invalid size %dx%d", w, h)
	}
	if fontData == nil {
		fontData = gobold.TTF
	}
	source, err := text.NewFontSource(fontData)
	if err != nil {
		return nil, fmt.Errorf("canvas: load font: %w", err)
	}
	return &Raster{ctx: gg.NewContext(w, h), source: source, faces: map[float64]text.Face{}}, nil
}

// Size returns the raster dimensions.
func (r *Raster) Size() (int, int) {
	return r.ctx.Width(), r.ctx.Height()
}

// Resize reallocates the pixels. The previous frame is lost.
func (r *Raster) Resize(w, h int) error {
	if err := r.ctx.Resize(w, h); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}

func (r *Raster) Clear(bg color.RGBA) {
	r.ctx.ClearWithColor(gg.FromColor(bg))
}

func (r *Raster) Push() { r.ctx.Push() }

func (r *Raster) Pop() { r.ctx.Pop() }

func (r *Raster) Translate(x, y float64) { r.ctx.Translate(x, y) }

func (r *Raster) Rotate(angle float64) { r.ctx.Rotate(angle) }

func (r *Raster) RoundedRect(x, y, w, h, radius float64, fill, stroke color.RGBA, strokeWidth float64) {
	r.ctx.DrawRoundedRectangle(x, y, w, h, radius)
	r.ctx.SetColor(fill)
	_ = r.ctx.FillPreserve()
	r.ctx.SetColor(stroke)
	r.ctx.SetLineWidth(strokeWidth)
	_ = r.ctx.Stroke()
}

// TextCentered draws text centered on (x, y) under the current transform, so it turns with the
// shape it labels.
func (r *Raster) TextCentered(s string, x, y, size float64, col color.RGBA) {
	r.ctx.SetFont(r.face(size))
	r.ctx.SetColor(col)
	r.ctx.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (r *Raster) face(size float64) text.Face {
	f, ok := r.faces[size]
	if !ok {
		f = r.source.Face(size)
		r.faces[size] = f
	}
	return f
}

// Image returns the current frame.
func (r *Raster) Image() image.Image {
	return r.ctx.Image()
}

// SavePNG writes the current frame to path.
func (r *Raster) SavePNG(path string) error {
	if err := imgio.Save(path, r.ctx.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("canvas: save %s: %w", path, err)
	}
	return nil
}

// Close releases the gg context.
func (r *Raster) Close() error {
	return r.ctx.Close()
}
