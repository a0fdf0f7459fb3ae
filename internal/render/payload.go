package render

// Payload carries one issue's worth of newsletter content. It is the JSON
// body of the render endpoint and the content portion of a saved draft, so
// field names here are load-bearing for both.
type Payload struct {
	Month          string          `json:"month"`
	Year           int             `json:"year"`
	Joke           string          `json:"joke"`
	Birthdays      []Birthday      `json:"birthdays"`
	Spotlight      *Spotlight      `json:"spotlight"`
	Spotlights     []Spotlight     `json:"spotlights"`
	Updates        []Update        `json:"updates"`
	UpdatesEnabled *bool           `json:"updates_enabled"`
	SpecialSection *SpecialSection `json:"special_section"`
	WelcomeHires   []Hire          `json:"welcome_hires"`
	WelcomeEnabled bool            `json:"welcome_enabled"`
	Game           *Game           `json:"game"`
	Template       string          `json:"template"`
}

// Birthday is one row of the birthday table.
type Birthday struct {
	Name        string `json:"name"`
	BirthdayDay int    `json:"birthday_day"`
	Department  string `json:"department"`
}

// Hire is one entry in the new-hire welcome list.
type Hire struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	FunFact string `json:"fun_fact"`
}

// Spotlight is a featured-employee block. Up to three render per issue.
type Spotlight struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Blurb    string `json:"blurb"`
	FunFacts string `json:"fun_facts"`
	ImageURL string `json:"image_url"`
	QA       []QA   `json:"qa"`
}

// QA is a question/answer pair inside a spotlight. Pairs missing either half
// are skipped at render time.
type QA struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Update is a company-news item. The first three render; extras are kept in
// the draft but never shown.
type Update struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Photos []string `json:"photos"`
}

// SpecialSection is a free-form one-off block (party recap, announcement).
type SpecialSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Game is the monthly brain-teaser block.
type Game struct {
	Content        string `json:"content"`
	ImageURL       string `json:"image_url"`
	PreviousAnswer string `json:"previous_answer"`
}

// updatesOn reports whether the updates section participates in the render.
// An absent flag means enabled; only an explicit false turns it off.
func (p *Payload) updatesOn() bool {
	return p.UpdatesEnabled == nil || *p.UpdatesEnabled
}

// effectiveSpotlights resolves the plural field against the legacy single
// field: the plural list wins when non-empty, otherwise the single spotlight
// is promoted. Entries without a name are dropped either way.
func (p *Payload) effectiveSpotlights() []Spotlight {
	list := p.Spotlights
	if len(list) == 0 && p.Spotlight != nil && p.Spotlight.Name != "" {
		list = []Spotlight{*p.Spotlight}
	}
	out := make([]Spotlight, 0, len(list))
	for _, sp := range list {
		if sp.Name == "" {
			continue
		}
		out = append(out, sp)
	}
	return out
}
