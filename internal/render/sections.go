package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// fontStack is the font-family applied to every piece of generated markup so
// built sections match the templates in clients that drop <style> blocks.
const fontStack = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif"

// esc HTML-escapes user-entered text before it is spliced into markup. URLs
// get the same treatment because they land in attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// birthdayRows builds one <tr> per birthday: name, "<month> <day>", department.
func birthdayRows(month string, birthdays []Birthday) string {
	rows := make([]string, 0, len(birthdays))
	for _, b := range birthdays {
		day := ""
		if b.BirthdayDay > 0 {
			day = strconv.Itoa(b.BirthdayDay)
		}
		rows = append(rows, fmt.Sprintf(
			`<tr><td style="padding: 6px 12px; font-family: %[1]s; font-size: 15px; font-weight: 600; color: #272D3F;">%[2]s</td>`+
				`<td style="padding: 6px 12px; font-family: %[1]s; font-size: 15px; color: #6b7280;">%[3]s %[4]s</td>`+
				`<td style="padding: 6px 12px; font-family: %[1]s; font-size: 15px; color: #6b7280;">%[5]s</td></tr>`,
			fontStack, esc(b.Name), esc(month), day, esc(b.Department)))
	}
	return strings.Join(rows, "\n")
}

// hireRows builds the welcome list: one centered row per hire with name,
// role, and an optional fun fact line.
func hireRows(hires []Hire) string {
	rows := make([]string, 0, len(hires))
	for _, h := range hires {
		var b strings.Builder
		fmt.Fprintf(&b,
			`<tr><td align="center" style="padding: 14px 0; border-bottom: 1px solid #e8f5f5; font-family: %[1]s; text-align: center;">`+
				`<p style="margin: 0 0 2px 0; font-family: %[1]s; font-size: 17px; font-weight: 700; color: #272D3F;">%[2]s</p>`+
				`<p style="margin: 0; font-family: %[1]s; font-size: 14px; color: #31D7CA; font-style: italic;">%[3]s</p>`,
			fontStack, esc(h.Name), esc(h.Role))
		if fact := esc(h.FunFact); fact != "" {
			fmt.Fprintf(&b,
				`<p style="margin: 4px 0 0 0; font-family: %s; font-size: 13px; color: #6b7280;">Fun fact: %s</p>`,
				fontStack, fact)
		}
		b.WriteString(`</td></tr>`)
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// spotlightDivider separates stacked spotlights with a dashed teal rule.
const spotlightDivider = `<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%">` +
	`<tr><td style="height: 1px; padding: 28px 0; font-size: 1px; line-height: 1px;">` +
	`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%">` +
	`<tr><td style="height: 0; border-top: 2px dashed #31D7CA; font-size: 1px; line-height: 1px;">&nbsp;</td></tr>` +
	`</table></td></tr></table>`

// spotlightSection builds the full spotlight block. Each entry gets its own
// table: optional circular photo, name, uppercase title, centered Q&A pairs,
// italic blurb, and a fun-fact footer line.
func spotlightSection(spotlights []Spotlight) string {
	var b strings.Builder
	for i, sp := range spotlights {
		name := esc(sp.Name)
		title := esc(sp.Title)
		blurb := esc(sp.Blurb)
		funFacts := esc(sp.FunFacts)
		imageURL := esc(sp.ImageURL)

		if i > 0 {
			b.WriteString(spotlightDivider)
		}
		b.WriteString(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%">`)

		if imageURL != "" {
			// Outlook ignores border-radius, so it gets a plain square image
			// behind an MSO conditional instead of the circular crop.
			fmt.Fprintf(&b,
				`<tr><td align="center" style="padding-bottom: 16px;">`+
					`<!--[if !mso]><!-->`+
					`<img src="%[1]s" width="120" alt="%[2]s" style="width: 120px; height: 120px; border-radius: 50%%; object-fit: cover; display: block;">`+
					`<!--<![endif]-->`+
					`<!--[if mso]>`+
					`<img src="%[1]s" width="120" alt="%[2]s" style="width: 120px; height: auto; display: block;">`+
					`<![endif]-->`+
					`</td></tr>`,
				imageURL, name)
		}

		fmt.Fprintf(&b,
			`<tr><td align="center" style="padding-bottom: 2px;">`+
				`<p style="margin: 0; font-family: %[1]s; font-size: 20px; font-weight: 800; color: #272D3F;">%[2]s</p>`+
				`</td></tr>`+
				`<tr><td align="center" style="padding-bottom: 16px;">`+
				`<p style="margin: 0; font-family: %[1]s; font-size: 13px; font-weight: 700; color: #31D7CA; text-transform: uppercase; letter-spacing: 1px;">%[3]s</p>`+
				`</td></tr>`,
			fontStack, name, title)

		var qa strings.Builder
		for _, pair := range sp.QA {
			q, a := esc(pair.Q), esc(pair.A)
			if q == "" || a == "" {
				continue
			}
			fmt.Fprintf(&qa,
				`<tr><td align="center" style="padding: 6px 0; text-align: center;">`+
					`<p style="margin: 0; font-family: %[1]s; font-size: 14px; color: #272D3F; font-weight: 700;">%[2]s</p>`+
					`<p style="margin: 0; font-family: %[1]s; font-size: 15px; color: #444444;">%[3]s</p>`+
					`</td></tr>`,
				fontStack, q, a)
		}
		if qa.Len() > 0 {
			fmt.Fprintf(&b,
				`<tr><td style="padding: 0 0 16px 0;">`+
					`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%">%s</table></td></tr>`,
				qa.String())
		}

		if blurb != "" {
			fmt.Fprintf(&b,
				`<tr><td align="center" style="padding-bottom: 8px; text-align: center;">`+
					`<p style="margin: 0; font-family: %s; font-size: 15px; line-height: 25px; color: #444444; font-style: italic;">%s</p>`+
					`</td></tr>`,
				fontStack, blurb)
		}
		if funFacts != "" {
			fmt.Fprintf(&b,
				`<tr><td align="center" style="padding-bottom: 8px; text-align: center;">`+
					`<p style="margin: 0; font-family: %s; font-size: 14px; line-height: 22px; color: #6b7280;">Fun fact: %s</p>`+
					`</td></tr>`,
				fontStack, funFacts)
		}

		b.WriteString(`</table>`)
	}
	return b.String()
}

// spotlightImage builds the standalone circular-photo tag for the legacy
// single-spotlight placeholders.
func spotlightImage(sp *Spotlight) string {
	if sp == nil || sp.ImageURL == "" {
		return ""
	}
	return fmt.Sprintf(
		`<img src="%s" width="120" alt="%s" style="width: 120px; height: 120px; border-radius: 50%%; object-fit: cover; display: block;" class="mobile-img-full">`,
		esc(sp.ImageURL), esc(sp.Name))
}

// updatePhotos lays out an update's photo attachments. One photo spans the
// column; two or more flow into a two-up grid where an odd trailing photo
// stretches across both cells.
func updatePhotos(photos []string) string {
	kept := make([]string, 0, len(photos))
	for _, p := range photos {
		if p != "" {
			kept = append(kept, p)
		}
	}
	switch {
	case len(kept) == 0:
		return ""
	case len(kept) == 1:
		return fmt.Sprintf(
			`<img src="%s" width="516" style="width: 100%%; height: auto; border-radius: 8px; margin-top: 12px; display: block;" alt="Update photo" class="mobile-img-full">`,
			esc(kept[0]))
	}

	var b strings.Builder
	b.WriteString(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%" style="margin-top: 12px;"><tr>`)
	for i, photo := range kept {
		if i > 0 && i%2 == 0 {
			b.WriteString(`</tr><tr>`)
		}
		cellWidth := "100%"
		if len(kept)-i >= 2 || i%2 == 1 {
			cellWidth = "50%"
		}
		padRight := "0"
		if i%2 == 0 && i+1 < len(kept) {
			padRight = "4px"
		}
		padLeft := "0"
		if i%2 == 1 {
			padLeft = "4px"
		}
		colspan := ""
		if cellWidth == "100%" {
			colspan = ` colspan="2"`
		}
		fmt.Fprintf(&b,
			`<td%s width="%s" style="padding-right: %s; padding-left: %s; padding-bottom: 8px;" valign="top">`+
				`<img src="%s" width="248" style="width: 100%%; height: auto; border-radius: 8px; display: block;" alt="Update photo" class="mobile-img-full">`+
				`</td>`,
			colspan, cellWidth, padRight, padLeft, esc(photo))
	}
	b.WriteString(`</tr></table>`)
	return b.String()
}

// gameSection builds the brain-teaser block: optional puzzle image, puzzle
// text, the fixed answer call-to-action, and an optional last-month's-answer
// box. Empty when the game has neither text nor image.
func gameSection(g *Game) string {
	if g == nil || (g.Content == "" && g.ImageURL == "") {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%">`)
	if g.ImageURL != "" {
		fmt.Fprintf(&b,
			`<tr><td align="center" style="padding-bottom: 10px; text-align: center;">`+
				`<img src="%s" width="460" style="width: 100%%; max-width: 460px; height: auto; border-radius: 8px; display: block; margin: 0 auto;" alt="BriteSide Brain Teaser">`+
				`</td></tr>`,
			esc(g.ImageURL))
	}
	if g.Content != "" {
		fmt.Fprintf(&b,
			`<tr><td align="center" style="padding-bottom: 10px; text-align: center;">`+
				`<p style="margin: 0; font-family: %s; font-size: 15px; line-height: 24px; color: #444444; text-align: center;">%s</p>`+
				`</td></tr>`,
			fontStack, esc(g.Content))
	}
	fmt.Fprintf(&b,
		`<tr><td align="center" style="text-align: center;">`+
			`<p style="margin: 0; font-family: %s; font-size: 15px; font-weight: 700; color: #018181; text-align: center;">`+
			`Email Dove your answer &mdash; the winner gets 100 BriteCo Bucks!</p>`+
			`</td></tr>`,
		fontStack)
	if g.PreviousAnswer != "" {
		fmt.Fprintf(&b,
			`<tr><td align="center" style="padding-top: 10px; text-align: center;">`+
				`<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="margin: 0 auto;">`+
				`<tr><td style="padding: 10px 14px; background-color: #f0fdf4; border-radius: 8px; border: 1px solid #86efac; text-align: center;">`+
				`<p style="margin: 0 0 2px 0; font-family: %[1]s; font-size: 12px; font-weight: 700; text-transform: uppercase; color: #059669; letter-spacing: 1px;">Last Month's Answer</p>`+
				`<p style="margin: 0; font-family: %[1]s; font-size: 15px; color: #272D3F;">%[2]s</p>`+
				`</td></tr></table>`+
				`</td></tr>`,
			fontStack, esc(g.PreviousAnswer))
	}
	b.WriteString(`</table>`)
	return b.String()
}
