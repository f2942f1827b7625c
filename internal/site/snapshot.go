package site

import (
	"fmt"

	"portfolio/internal/canvas"
	"portfolio/internal/scene"
)

// Snapshot renders the tile scene offscreen at its current size and writes it to path as PNG.
// fontData may be nil for the built-in font.
func (s *Site) Snapshot(path string, fontData []byte) error {
	if s.Scene.State() != scene.Running {
		return fmt.Errorf("site: snapshot: scene is %s", s.Scene.State())
	}
	w, h := s.Scene.Size()
	r, err := canvas.NewRaster(w, h, fontData)
	if err != nil {
		return fmt.Errorf("site: snapshot: %w", err)
	}
	defer r.Close()
	s.Scene.RenderFrame(r)
	if err := r.SavePNG(path); err != nil {
		return fmt.Errorf("site: snapshot: %w", err)
	}
	s.log.Logf("site: snapshot %dx%d written to %s", w, h, path)
	return nil
}
