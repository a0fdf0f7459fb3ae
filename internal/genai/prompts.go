package genai

import "strings"

// SystemPrompt sets the newsletter voice for every generation call.
const SystemPrompt = "You are a fun, punny internal newsletter writer for BriteCo, a jewelry insurance company. " +
	"This newsletter is called 'The BriteSide' — it's the monthly internal employee newsletter.\n\n" +
	"VOICE & TONE:\n" +
	"- Fun, warm, celebratory, and punny\n" +
	"- Think: the cool coworker who organizes birthday celebrations\n" +
	"- Jewelry puns, wedding puns, and watch puns are ALWAYS welcome\n" +
	"- Keep it upbeat and positive — this is internal morale-building\n" +
	"- Light humor, emoji-friendly, casual but professional\n\n" +
	"CONTEXT:\n" +
	"- BriteCo provides jewelry insurance, watch insurance, and event insurance\n" +
	"- The audience is internal employees who know the company well\n" +
	"- No need to explain what BriteCo does — they work here!\n\n" +
	"AVOID:\n" +
	"- Corporate-speak or HR-sounding language\n" +
	"- Overly formal tone\n" +
	"- Anything that sounds like a press release\n" +
	"- Generic 'we are a family' platitudes without personality"

const jokePrompt = "Write 3 short, fun jokes or puns related to {theme}. " +
	"These are for the opening of an internal company newsletter at a jewelry insurance company.\n\n" +
	"Requirements:\n" +
	"- Each joke should be 1-2 sentences max\n" +
	"- Puns about jewelry, weddings, watches, or insurance are great\n" +
	"- Keep it office-appropriate and upbeat\n" +
	"- Number them 1, 2, 3 so the user can pick their favorite\n" +
	"- Seasonal tie-ins for {month} are welcome\n\n" +
	"Return ONLY the 3 numbered jokes, nothing else."

const spotlightPrompt = "Write a fun, warm employee spotlight blurb for an internal company newsletter.\n\n" +
	"Employee: {name}\n" +
	"Title: {title}\n" +
	"Department: {department}\n" +
	"Fun Facts: {fun_facts}\n\n" +
	"Requirements:\n" +
	"- 3-4 sentences, max 80 words\n" +
	"- Celebratory and warm tone\n" +
	"- Weave in the fun facts naturally\n" +
	"- Include a jewelry/insurance pun if it fits naturally\n" +
	"- Do NOT include any heading or label — return ONLY the blurb text"

const birthdayPrompt = "Write a short, fun birthday shoutout for an internal company newsletter. " +
	"The birthday person is {name} from {department}.\n\n" +
	"Month: {month}\n\n" +
	"Requirements:\n" +
	"- 1 sentence, max 20 words\n" +
	"- Fun, warm, punny if possible\n" +
	"- Jewelry/sparkle themed is great\n" +
	"- Return ONLY the shoutout text, no names or labels"

const gamePrompt = "Create a {game_type} puzzle for the {month} edition of an internal company newsletter " +
	"at a jewelry insurance company.\n\n" +
	"Context: {context}\n\n" +
	"Requirements:\n" +
	"- Office-appropriate and solvable in under a minute\n" +
	"- Jewelry, watch, wedding, or insurance themed\n" +
	"- State the puzzle clearly, then on a new line write \"ANSWER:\" followed by the answer\n" +
	"- Return ONLY the puzzle text and the answer line, nothing else"

const rewritePrompt = "Rewrite the following text in a {tone} tone, keeping the same meaning and key information.\n\n" +
	"Original text:\n{content}\n\n" +
	"Requirements:\n" +
	"- Maintain the core message and facts\n" +
	"- Apply the requested tone consistently\n" +
	"- Keep it concise — aim for 2-3 sentences max, no filler\n" +
	"- Return ONLY the rewritten text, nothing else"

// JokePrompt asks for three numbered joke options for the issue opener.
func JokePrompt(month, theme string) string {
	return strings.NewReplacer("{theme}", theme, "{month}", month).Replace(jokePrompt)
}

// SpotlightPrompt asks for a spotlight blurb about one employee.
func SpotlightPrompt(name, title, department, funFacts string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{title}", title,
		"{department}", department,
		"{fun_facts}", funFacts,
	).Replace(spotlightPrompt)
}

// BirthdayPrompt asks for a one-line birthday shoutout.
func BirthdayPrompt(name, department, month string) string {
	return strings.NewReplacer(
		"{name}", name,
		"{department}", department,
		"{month}", month,
	).Replace(birthdayPrompt)
}

// GamePrompt asks for a monthly puzzle of the given type with its answer on
// a separate trailing line.
func GamePrompt(gameType, context, month string) string {
	return strings.NewReplacer(
		"{game_type}", gameType,
		"{context}", context,
		"{month}", month,
	).Replace(gamePrompt)
}

// RewritePrompt asks for the given text redone in another tone.
func RewritePrompt(content, tone string) string {
	return strings.NewReplacer(
		"{tone}", tone,
		"{content}", content,
	).Replace(rewritePrompt)
}
