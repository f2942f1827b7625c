// Package fonts finds the page font on disk. When none is found the Go Bold face is used, so the
// window and the offscreen raster always draw with the same glyphs.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs are the candidate font directories (relative to process cwd), tried in order.
var BaseDirs = []string{"assets/fonts", "../../assets/fonts"}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Bold.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// FindFont searches BaseDirs for a font whose path contains search (fuzzy: case, spaces, dashes and
// underscores ignored). Tile labels are bold, so a "Bold" file wins over other matches.
func FindFont(search string) (relPath, fullPath string, err error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", os.ErrNotExist
	}
	var candidates []struct{ rel, full string }
	for _, base := range BaseDirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, struct{ rel, full string }{rel, base + "/" + rel})
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "bold") {
			return c.rel, c.full, nil
		}
	}
	return candidates[0].rel, candidates[0].full, nil
}

// Load returns the bytes of the font matching family, or Go Bold when family is empty or not found.
// name reports what was loaded ("gobold" for the fallback).
func Load(family string) (data []byte, name string, err error) {
	if strings.TrimSpace(family) == "" {
		return gobold.TTF, "gobold", nil
	}
	rel, full, err := FindFont(family)
	if err != nil {
		return gobold.TTF, "gobold", nil
	}
	data, err = os.ReadFile(full)
	if err != nil {
		return gobold.TTF, "gobold", fmt.Errorf("fonts: %s: %w", rel, err)
	}
	return data, rel, nil
}
