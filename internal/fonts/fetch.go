package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// GitHubAPI lists the google/fonts repository. Only files served from RawPrefix are downloaded.
var (
	GitHubAPI = "https://api.github.com/repos/google/fonts/contents/ofl"
	RawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Fetcher downloads font families from Google Fonts into a local font directory.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a fetcher with a 60s timeout per request.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 60 * time.Second}}
}

// NormalizeFamily converts a display name to the folder names used in google/fonts ofl.
// e.g. "Inter" -> ["inter"], "Work Sans" -> ["worksans", "work-sans"].
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// Fetch finds family on Google Fonts and saves its boldest upright face under destDir/<folder>/.
// It returns the saved path.
func (f *Fetcher) Fetch(ctx context.Context, family, destDir string) (string, error) {
	folders := NormalizeFamily(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range folders {
		u, err := f.downloadURL(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		return f.save(ctx, u, filepath.Join(destDir, folder))
	}
	return "", lastErr
}

func (f *Fetcher) downloadURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GitHubAPI+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fonts: %q not found on Google Fonts", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	return pickFace(files, folder)
}

// pickFace prefers a bold upright file, then any upright file, then an italic one.
func pickFace(files []githubFile, folder string) (string, error) {
	var bold, upright, italic string
	for _, f := range files {
		if f.Type != "file" || !isFont(f.Name) || !strings.HasPrefix(f.DownloadURL, RawPrefix) {
			continue
		}
		lower := strings.ToLower(f.Name)
		switch {
		case strings.Contains(lower, "italic"):
			if italic == "" {
				italic = f.DownloadURL
			}
		case strings.Contains(lower, "bold") && !strings.Contains(lower, "semibold") && !strings.Contains(lower, "extrabold"):
			if bold == "" {
				bold = f.DownloadURL
			}
		default:
			if upright == "" {
				upright = f.DownloadURL
			}
		}
	}
	for _, u := range []string{bold, upright, italic} {
		if u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("fonts: no .ttf/.otf file for %q on Google Fonts", folder)
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.\[\],-]+`)

func (f *Fetcher) save(ctx context.Context, rawURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: download: HTTP %d", resp.StatusCode)
	}
	name := fileName(rawURL)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	saved := filepath.Join(destDir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(saved)
		return "", fmt.Errorf("fonts: download: %w", err)
	}
	return saved, nil
}

// fileName returns a safe file name for the last segment of rawURL.
func fileName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	name := safeNameRe.ReplaceAllString(filepath.Base(p), "_")
	if name == "" || name == "." || name == "/" {
		name = "font.ttf"
	}
	return name
}
