package render

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template file names accepted from render requests. Anything else falls
// back to the classic layout.
const (
	DefaultTemplate = "briteside-email.html"
	PlayfulTemplate = "briteside-email-playful.html"
	TealTemplate    = "briteside-email-teal.html"
)

var templateNames = []string{DefaultTemplate, PlayfulTemplate, TealTemplate}

// tokenPattern matches the {{NAME}} placeholders filled at render time.
var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// vocabulary is every placeholder the renderer knows how to fill. Templates
// referencing anything outside this set are rejected at startup, which beats
// discovering a typo as literal {{...}} text in everyone's inbox.
var vocabulary = map[string]bool{
	"MONTH":                   true,
	"YEAR":                    true,
	"PREHEADER":               true,
	"INTRO_LINE":              true,
	"INTRO_DISPLAY":           true,
	"JOKE":                    true,
	"JOKE_SETUP":              true,
	"JOKE_PUNCHLINE":          true,
	"PUNCHLINE_DISPLAY":       true,
	"BIRTHDAY_DISPLAY":        true,
	"BIRTHDAY_SECTION":        true,
	"WELCOME_DISPLAY":         true,
	"WELCOME_SECTION":         true,
	"SPOTLIGHT_SECTION":       true,
	"SPOTLIGHT_IMAGE":         true,
	"SPOTLIGHT_NAME":          true,
	"SPOTLIGHT_TITLE":         true,
	"SPOTLIGHT_BLURB":         true,
	"UPDATES_DISPLAY":         true,
	"UPDATE_1_TITLE":          true,
	"UPDATE_1_BODY":           true,
	"UPDATE_1_PHOTOS":         true,
	"UPDATE_2_TITLE":          true,
	"UPDATE_2_BODY":           true,
	"UPDATE_2_PHOTOS":         true,
	"UPDATE_2_DISPLAY":        true,
	"UPDATE_3_TITLE":          true,
	"UPDATE_3_BODY":           true,
	"UPDATE_3_PHOTOS":         true,
	"UPDATE_3_DISPLAY":        true,
	"SPECIAL_TITLE":           true,
	"SPECIAL_BODY":            true,
	"SPECIAL_SECTION_DISPLAY": true,
	"GAME_DISPLAY":            true,
	"GAME_SECTION":            true,
}

// loadTemplates reads and validates every known template from fsys.
func loadTemplates(fsys fs.FS) (map[string]string, error) {
	out := make(map[string]string, len(templateNames))
	for _, name := range templateNames {
		raw, err := fs.ReadFile(fsys, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		body := string(raw)
		for _, m := range tokenPattern.FindAllStringSubmatch(body, -1) {
			if !vocabulary[m[1]] {
				return nil, fmt.Errorf("template %s: unknown placeholder {{%s}}", name, m[1])
			}
		}
		out[name] = body
	}
	return out, nil
}

// Files exposes the embedded template sources rooted at templates/, for the
// editor UI's live preview fetches.
func Files() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// fs.Sub fails only on an invalid dir name, which cannot happen here.
		panic(fmt.Sprintf("render: template sub fs: %v", err))
	}
	return sub
}

// normalizeTemplate maps a requested template file to a known one.
func normalizeTemplate(name string) string {
	for _, known := range templateNames {
		if name == known {
			return name
		}
	}
	return DefaultTemplate
}
