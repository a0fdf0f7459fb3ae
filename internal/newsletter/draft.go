package newsletter

import "github.com/britecreationsdylanne/brite-side/internal/render"

// Draft is a work-in-progress issue as the editor saves it. Top-level keys
// are camelCase to match the editor's state shape; the nested content types
// are shared with the renderer and keep their snake_case fields.
type Draft struct {
	Month             string                 `json:"month"`
	Year              int                    `json:"year"`
	CurrentStep       int                    `json:"currentStep"`
	Joke              string                 `json:"joke"`
	JokeOptions       []string               `json:"jokeOptions"`
	SelectedJokeIndex *int                   `json:"selectedJokeIndex"`
	Birthdays         []render.Birthday      `json:"birthdays"`
	Spotlight         *render.Spotlight      `json:"spotlight"`
	Spotlights        []render.Spotlight     `json:"spotlights"`
	Updates           []render.Update        `json:"updates"`
	UpdatesEnabled    *bool                  `json:"updatesEnabled"`
	SpecialSection    *render.SpecialSection `json:"specialSection"`
	WelcomeHires      []render.Hire          `json:"welcomeHires"`
	WelcomeEnabled    bool                   `json:"welcomeEnabled"`
	Game              *render.Game           `json:"game"`
	Subject           string                 `json:"subject"`
	LastSavedBy       string                 `json:"lastSavedBy"`
	LastSavedAt       string                 `json:"lastSavedAt"`
}

// DraftSummary is one row of the draft picker.
type DraftSummary struct {
	Month       string `json:"month"`
	Year        int    `json:"year"`
	CurrentStep int    `json:"currentStep"`
	LastSavedBy string `json:"lastSavedBy"`
	LastSavedAt string `json:"lastSavedAt"`
	Filename    string `json:"filename"`
}

// PublishedSummary is one row of the published-issue archive.
type PublishedSummary struct {
	Filename    string `json:"filename"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	LastSavedBy string `json:"lastSavedBy"`
	LastSavedAt string `json:"lastSavedAt"`
}

// Payload converts the draft's content into the renderer's input shape.
func (d Draft) Payload() render.Payload {
	return render.Payload{
		Month:          d.Month,
		Year:           d.Year,
		Joke:           d.Joke,
		Birthdays:      d.Birthdays,
		Spotlight:      d.Spotlight,
		Spotlights:     d.Spotlights,
		Updates:        d.Updates,
		UpdatesEnabled: d.UpdatesEnabled,
		SpecialSection: d.SpecialSection,
		WelcomeHires:   d.WelcomeHires,
		WelcomeEnabled: d.WelcomeEnabled,
		Game:           d.Game,
	}
}
