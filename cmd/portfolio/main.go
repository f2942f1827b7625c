package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"portfolio/internal/contact"
	"portfolio/internal/content"
	"portfolio/internal/debug"
	"portfolio/internal/engineconfig"
	"portfolio/internal/env"
	"portfolio/internal/fonts"
	"portfolio/internal/graphics"
	"portfolio/internal/logger"
	"portfolio/internal/site"
	"portfolio/internal/terminal"
)

const frameStep = time.Second / 60

func main() {
	snapshot := flag.String("snapshot", "", "render the skill tiles to this PNG and exit (no window)")
	frames := flag.Int("frames", 120, "frames to simulate before -snapshot")
	width := flag.Int("width", 0, "window or snapshot width (0 = engine config)")
	height := flag.Int("height", 0, "window or snapshot height (0 = engine config)")
	flag.Parse()

	if err := run(*snapshot, *frames, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(snapshot string, frames, width, height int) error {
	ctx := context.Background()
	log := logger.NewFile(logger.LogFilePath)

	if err := env.Load(env.DotEnvPath); err != nil {
		return err
	}
	settings, err := env.Process(ctx)
	if err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(settings.LogLevel)); err != nil {
		log.Logf("env: log level %q: %v, using info", settings.LogLevel, err)
		level = slog.LevelInfo
	}
	gg.SetLogger(slog.New(log.Handler(level)))

	c, err := content.Load(settings.SiteConfig)
	if err != nil {
		return err
	}
	prefs, _ := engineconfig.Load()
	if width > 0 && height > 0 {
		prefs.WindowWidth, prefs.WindowHeight = int32(width), int32(height)
	}
	fontData, fontName, err := fonts.Load(prefs.Font)
	if err != nil {
		log.Log(err.Error())
	}
	log.Logf("fonts: using %s", fontName)

	seed := prefs.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	var sender contact.Sender
	if settings.EmailJS.Configured() {
		sender = contact.NewEmailJS(settings.EmailJS.Contact())
	} else {
		log.Log("contact: EmailJS not configured, sending disabled")
	}

	s, err := site.New(site.Options{
		Content: c,
		Sender:  sender,
		Log:     log,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Context: ctx,
	})
	if err != nil {
		return err
	}

	if snapshot != "" {
		s.Start(int(prefs.WindowWidth), int(prefs.WindowHeight))
		for range frames {
			s.Update(frameStep)
		}
		return s.Snapshot(snapshot, fontData)
	}

	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)
	reg := newConsole(s, dbg, &prefs, fontData, log)
	term := terminal.New(log, reg)
	input := graphics.NewInput(s, term)
	var painter *graphics.Painter

	win := graphics.Window{
		Title:      c.Title,
		Width:      prefs.WindowWidth,
		Height:     prefs.WindowHeight,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	}
	setup := func() {
		font := graphics.LoadFont(fontData)
		painter = graphics.NewPainter(s, font)
		term.SetFont(font)
		dbg.SetFont(font)
		s.Start(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}
	update := func(dt time.Duration) {
		term.Update()
		input.Update()
		s.Update(dt)
	}
	draw := func() {
		painter.Draw()
		term.Draw()
		info := debug.SceneInfo{Tiles: len(s.Scene.Tiles()), Slide: s.Deck.Current()}
		if t, ok := s.Themes.Current(); ok {
			info.Theme = t.Name
		}
		dbg.Draw(info)
	}
	graphics.Run(win, setup, update, draw)
	return nil
}
