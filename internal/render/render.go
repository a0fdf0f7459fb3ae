// Package render assembles The BriteSide monthly email. Structured content
// comes in as a Payload, section builders turn the list-valued parts into
// table-based markup, and a single-pass substitution fills the chosen
// template's {{...}} placeholders. Substituted values are never re-scanned,
// so a joke that happens to mention {{GAME_SECTION}} stays text.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// logoPath is the root-relative logo reference inside the templates. It is
// rewritten to an absolute URL when a base URL is known, since mail clients
// and preview iframes cannot resolve the relative form.
const logoPath = "/static/briteco-logo-white.png"

// Options adjusts a single render.
type Options struct {
	// BaseURL is the externally reachable origin, e.g. "https://briteside.brite.co".
	// Empty leaves asset paths root-relative.
	BaseURL string
}

// Meta summarizes what a render produced, for the editor UI's status line.
type Meta struct {
	Month             string `json:"month"`
	Year              int    `json:"year"`
	BirthdayCount     int    `json:"birthday_count"`
	UpdateCount       int    `json:"update_count"`
	HasSpotlight      bool   `json:"has_spotlight"`
	HasSpecialSection bool   `json:"has_special_section"`
}

// Result is a finished render.
type Result struct {
	HTML string
	Meta Meta
}

// Renderer holds the validated templates and the timezone used to default
// the issue month and year.
type Renderer struct {
	templates map[string]string
	loc       *time.Location
	now       func() time.Time
}

// New loads the embedded templates and validates their placeholders.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	templates, err := loadTemplates(templateFS)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates, loc: loc, now: time.Now}, nil
}

// Templates lists the selectable template file names.
func (r *Renderer) Templates() []string {
	out := make([]string, len(templateNames))
	copy(out, templateNames)
	return out
}

// Render fills the payload's template and reports content metadata. Missing
// month and year default to the current ones in the renderer's timezone.
func (r *Renderer) Render(p Payload, opts Options) Result {
	now := r.now().In(r.loc)
	month := p.Month
	if month == "" {
		month = now.Month().String()
	}
	year := p.Year
	if year == 0 {
		year = now.Year()
	}

	template := r.templates[normalizeTemplate(p.Template)]

	updates := p.Updates
	if !p.updatesOn() {
		updates = nil
	}
	type updateSlot struct {
		title, body, photos string
	}
	var slots [3]updateSlot
	for i, u := range updates {
		if i == len(slots) {
			break
		}
		slots[i] = updateSlot{title: esc(u.Title), body: esc(u.Body), photos: updatePhotos(u.Photos)}
	}

	spotlights := p.effectiveSpotlights()

	// The joke splits on the first pipe into setup and punchline. Without a
	// pipe the whole joke is the setup and the punchline row stays hidden.
	rawJoke := p.Joke
	setup := esc(rawJoke)
	punchline := ""
	if i := strings.Index(rawJoke, "|"); i >= 0 {
		setup = esc(strings.TrimSpace(rawJoke[:i]))
		punchline = esc(strings.TrimSpace(rawJoke[i+1:]))
	}

	specialTitle, specialBody := "", ""
	if p.SpecialSection != nil {
		specialTitle = esc(p.SpecialSection.Title)
		specialBody = esc(p.SpecialSection.Body)
	}

	welcomeHTML := ""
	if p.WelcomeEnabled && len(p.WelcomeHires) > 0 {
		welcomeHTML = hireRows(p.WelcomeHires)
	}

	gameHTML := gameSection(p.Game)

	legacyName, legacyTitle, legacyBlurb := "", "", ""
	if p.Spotlight != nil {
		legacyName = esc(p.Spotlight.Name)
		legacyTitle = esc(p.Spotlight.Title)
		legacyBlurb = esc(p.Spotlight.Blurb)
	}

	// Inbox preview text: the joke setup when there is one, clipped to 100
	// characters, otherwise the issue name.
	preheader := fmt.Sprintf("The BriteSide - %s %d", esc(month), year)
	if setup != "" {
		preheader = truncate(setup, 100)
	}

	pairs := []string{
		"{{MONTH}}", esc(month),
		"{{YEAR}}", strconv.Itoa(year),
		"{{PREHEADER}}", preheader,
		"{{INTRO_LINE}}", "",
		"{{INTRO_DISPLAY}}", "none",
		"{{JOKE}}", esc(rawJoke),
		"{{JOKE_SETUP}}", setup,
		"{{JOKE_PUNCHLINE}}", punchline,
		"{{PUNCHLINE_DISPLAY}}", displayValue(punchline != ""),
		"{{BIRTHDAY_DISPLAY}}", displayValue(len(p.Birthdays) > 0),
		"{{BIRTHDAY_SECTION}}", birthdayRows(month, p.Birthdays),
		"{{WELCOME_DISPLAY}}", displayValue(welcomeHTML != ""),
		"{{WELCOME_SECTION}}", welcomeHTML,
		"{{SPOTLIGHT_SECTION}}", spotlightSection(spotlights),
		"{{SPOTLIGHT_IMAGE}}", spotlightImage(p.Spotlight),
		"{{SPOTLIGHT_NAME}}", legacyName,
		"{{SPOTLIGHT_TITLE}}", legacyTitle,
		"{{SPOTLIGHT_BLURB}}", legacyBlurb,
		"{{UPDATES_DISPLAY}}", displayValue(len(updates) > 0),
		"{{UPDATE_1_TITLE}}", slots[0].title,
		"{{UPDATE_1_BODY}}", slots[0].body,
		"{{UPDATE_1_PHOTOS}}", slots[0].photos,
		"{{UPDATE_2_TITLE}}", slots[1].title,
		"{{UPDATE_2_BODY}}", slots[1].body,
		"{{UPDATE_2_PHOTOS}}", slots[1].photos,
		"{{UPDATE_2_DISPLAY}}", displayValue(slots[1].title != "" || slots[1].body != ""),
		"{{UPDATE_3_TITLE}}", slots[2].title,
		"{{UPDATE_3_BODY}}", slots[2].body,
		"{{UPDATE_3_PHOTOS}}", slots[2].photos,
		"{{UPDATE_3_DISPLAY}}", displayValue(slots[2].title != "" || slots[2].body != ""),
		"{{SPECIAL_TITLE}}", specialTitle,
		"{{SPECIAL_BODY}}", specialBody,
		"{{SPECIAL_SECTION_DISPLAY}}", displayValue(specialTitle != "" || specialBody != ""),
		"{{GAME_DISPLAY}}", displayValue(gameHTML != ""),
		"{{GAME_SECTION}}", gameHTML,
	}
	if opts.BaseURL != "" {
		base := strings.TrimRight(opts.BaseURL, "/")
		pairs = append(pairs, logoPath, base+logoPath)
	}

	return Result{
		HTML: strings.NewReplacer(pairs...).Replace(template),
		Meta: Meta{
			Month:             month,
			Year:              year,
			BirthdayCount:     len(p.Birthdays),
			UpdateCount:       len(updates),
			HasSpotlight:      len(spotlights) > 0,
			HasSpecialSection: specialTitle != "",
		},
	}
}

// displayValue converts a visibility flag to the inline display value the
// templates use on their section rows.
func displayValue(visible bool) string {
	if visible {
		return "table-row"
	}
	return "none"
}

// truncate clips s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
