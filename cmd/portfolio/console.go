package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"portfolio/internal/commands"
	"portfolio/internal/debug"
	"portfolio/internal/engineconfig"
	"portfolio/internal/fonts"
	"portfolio/internal/logger"
	"portfolio/internal/site"
)

// newConsole registers the dev console commands. Toggles that are preferences also update prefs,
// which "cmd save" writes to config/engine.json.
func newConsole(s *site.Site, dbg *debug.Debug, prefs *engineconfig.EnginePrefs, fontData []byte, log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry()

	themeFS := commands.NewFlagSet("theme")
	next := themeFS.Bool("next", false, "advance to the next theme")
	reg.Register("theme", "--next (print the current theme without flags)", themeFS, func() error {
		if *next {
			s.Themes.Advance()
			*next = false
		}
		t, ok := s.Themes.Current()
		if !ok {
			return fmt.Errorf("no themes")
		}
		log.Logf("theme %d/%d: %s", s.Themes.Index()+1, s.Themes.Len(), t.Name)
		return nil
	})

	gotoFS := commands.NewFlagSet("goto")
	slide := gotoFS.Int("slide", -1, "slide index")
	instant := gotoFS.Bool("instant", false, "jump without the transition")
	reg.Register("goto", "--slide N [--instant]", gotoFS, func() error {
		if *slide < 0 {
			return fmt.Errorf("goto: --slide is required")
		}
		s.Deck.GoTo(*slide, *instant)
		*slide, *instant = -1, false
		return nil
	})

	reg.Register("fps", "--show|--hide", toggle("fps", func(on bool) {
		dbg.SetShowFPS(on)
		prefs.ShowFPS = on
	}), func() error { return nil })
	reg.Register("memalloc", "--show|--hide", toggle("memalloc", func(on bool) {
		dbg.SetShowMemAlloc(on)
		prefs.ShowMemAlloc = on
	}), func() error { return nil })
	reg.Register("scene", "--show|--hide (tile count, theme, slide)", toggle("scene", dbg.SetShowScene), func() error { return nil })

	reg.Register("reset", "rebuild the tile scene", nil, func() error {
		s.Scene.Reset()
		w, h := s.Scene.Size()
		log.Logf("scene reset: %d tiles in %dx%d", len(s.Scene.Tiles()), w, h)
		return nil
	})

	snapFS := commands.NewFlagSet("snapshot")
	out := snapFS.String("out", "snapshot.png", "PNG path")
	reg.Register("snapshot", "--out file.png", snapFS, func() error {
		return s.Snapshot(*out, fontData)
	})

	fontFS := commands.NewFlagSet("font")
	fetch := fontFS.String("fetch", "", "Google Fonts family to download into "+fonts.BaseDirs[0])
	reg.Register("font", "--fetch Family_Name (underscores for spaces; used after save and restart)", fontFS, func() error {
		family := strings.ReplaceAll(*fetch, "_", " ")
		*fetch = ""
		if family == "" {
			return fmt.Errorf("font: --fetch is required")
		}
		go func() {
			saved, err := fonts.NewFetcher().Fetch(context.Background(), family, fonts.BaseDirs[0])
			if err != nil {
				log.Log(err.Error())
				return
			}
			log.Logf("font: saved %s", saved)
		}()
		prefs.Font = family
		return nil
	})

	reg.Register("save", "write window and overlay preferences", nil, func() error {
		if err := engineconfig.Save(*prefs); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.Logf("saved %s", engineconfig.EngineConfigPath)
		return nil
	})
	return reg
}

// toggle returns a flag set whose --show/--hide flags call set while parsing.
func toggle(name string, set func(bool)) *flag.FlagSet {
	fs := commands.NewFlagSet(name)
	fs.BoolFunc("show", "show the overlay", func(string) error { set(true); return nil })
	fs.BoolFunc("hide", "hide the overlay", func(string) error { set(false); return nil })
	return fs
}
