package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the native window Run opens.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Run opens the window and runs the main loop. init runs once after the window (and its GL context)
// exists, which is where fonts are loaded. Each frame calls update with the frame time, then clears the
// screen and calls draw. The window is resizable; ESC belongs to the dev console, so closing is via the
// window button.
func Run(win Window, init func(), update func(dt time.Duration), draw func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := win.Width, win.Height
	if win.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := win.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	if init != nil {
		init()
	}
	for !rl.WindowShouldClose() {
		update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

// LoadFont uploads TTF/OTF bytes as a raylib font. Call from Run's init. A zero texture ID means the
// font could not be loaded and callers fall back to the raylib default.
func LoadFont(data []byte) rl.Font {
	f := rl.LoadFontFromMemory(".ttf", data, fontBaseSize, nil)
	if f.Texture.ID != 0 {
		rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	}
	return f
}

// fontBaseSize is the glyph atlas size; text is scaled from it.
const fontBaseSize = 48
