package recap

import (
	"fmt"
	"strings"

	"recapstream/models"
)

const noOverview = "No overview available."

// BuildMoviePrompt renders the full movie recap prompt: five fixed sections, a ban on
// mood-only phrasing and a 400 to 800 word target.
func BuildMoviePrompt(c models.MovieContext) string {
	spoiler := "You may include the ending and key revelations."
	if !c.IncludeEnding {
		spoiler = "Do not reveal the ending or major twists. Strike a balance between analysis and preserving the enjoyment of watching the film."
	}

	var b strings.Builder
	b.WriteString(`Act as a skilled movie recap writer. Your task is to write a detailed, engaging recap of the following movie. Use only the information provided below; do not invent events or characters. Infer major characters and key moments from the plot summary where possible.

# Requirements

1. **Concise Summary**: Start with a captivating opening that summarizes the main storyline in concrete terms (what the protagonist faces, what they do, what's at stake). Keep it engaging but state actual events, not vague mood.
2. **Character Overview**: Briefly introduce the major characters implied by the plot, their motivations, and how they contribute to the story. State **facts** about them; avoid filling space with rhetorical questions the reader cannot answer.
3. **Key Moments**: Identify and elaborate on **specific** pivotal plot points: what happens, who is involved, and what follows. Discuss why they matter. Do not replace plot with phrases like "something wicked stirs" or "darkness lurks"; name the events and outcomes.
4. **Humor and Commentary**: Incorporate light humor and witty observations where appropriate. Use a conversational, entertaining tone. Rhetorical questions are fine here and in the Conclusion.
5. **Engagement**: You may include rhetorical questions or prompts in **Commentary** and **Conclusion** only. In **Plot Summary** and **Character Breakdown**, state what happens and who the characters are; do not substitute questions for information.
6. **Well-Structured Format**: Use clear headings, bullet points for lists, and **bold** or *italic* for key phrases. Flow logically with clear transitions between sections.

# Avoid (vague / teaser language)

Do not use vague phrasing instead of plot. Prefer concrete descriptions of events and character actions. Avoid phrases such as: "something wicked," "darkness lurking," "evil afoot," "sinister secret," "we can only assume," "stirs up something," "genuine evil," "tangible darkness," "open, sinister arms," or any similar mood-only lines that do not say what actually occurs.

**Bad:** "Their arrival stirs up something wicked in the town."
**Good:** "When they return, [specific thing that happens]: e.g. they discover X, confront Y, and the town's [specific person or force] does Z."

# Output Structure

Use this structure with markdown headings and formatting:

- **Introduction:** Brief hook that also states the core setup (who, what situation, what they're trying to do).
- **Plot Summary:** What happens in the story: specific events and cause-and-effect. No beating around the bush.
- **Character Breakdown:** Main characters and their roles; state what we learn about them from the plot.
- **Pivotal Moments:** Key scenes or plot turns: what happens, who's involved, what it leads to.
- **Conclusion:** Wrap up with final thoughts.

# Notes

`)
	fmt.Fprintf(&b, "- %s\n", spoiler)
	b.WriteString(`- Total length: aim for a detailed but concise recap (approximately 400-800 words). Do not write a 15,000-word script.
- Align tone with a conversational, analytical style that feels like a thoughtful video recap.

---

`)
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	if c.Tagline != "" {
		fmt.Fprintf(&b, "Tagline: %s\n\n", c.Tagline)
	}
	fmt.Fprintf(&b, "Plot: %s\n", c.Overview)
	if c.CanonSummary != "" {
		fmt.Fprintf(&b, "\nDetailed synopsis and plot from the film's wiki (prefer these specifics over the short plot above):\n%s\n", c.CanonSummary)
	}
	b.WriteString("\n\nNow write the recap using the structure above.")
	return b.String()
}

// BuildMovieQuickPrompt asks for 5 to 7 dash-prefixed bullet lines.
func BuildMovieQuickPrompt(c models.MovieContext) string {
	spoiler := "You may include key revelations."
	if !c.IncludeEnding {
		spoiler = "Do not reveal the ending or major twists."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional movie recap writer. Provide a quick catch-up in exactly 5 to 7 bullet points. Use the provided plot. Keep the tone engaging and concise. %s\n\n", spoiler)
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Plot: %s\n", c.Overview)
	if c.CanonSummary != "" {
		fmt.Fprintf(&b, "Wiki synopsis: %s\n", c.CanonSummary)
	}
	b.WriteString("\nBullet points (one per line, start each with \"-\"):")
	return b.String()
}

// BuildSeriesPromptStructured renders the grounded series recap prompt for one season's
// episode range, grouped by episodes and limited to roughly 200 to 400 words.
func BuildSeriesPromptStructured(c models.SeriesContext) string {
	rng := rangeDescription(c.EpisodeFrom, c.EpisodeTo)

	lines := make([]string, 0, len(c.Episodes))
	for _, e := range c.Episodes {
		lines = append(lines, fmt.Sprintf("Episode %d \"%s\": %s", e.EpisodeNumber, e.Name, overviewOrDefault(e.Overview)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a detailed series recap covering %s of Season %d for the TV series below. ", rng, c.Season)
	b.WriteString(`The recap should summarize key plot developments, character arcs, and major events in a concise yet comprehensive manner. Shorter episode ranges often produce clearer, more focused recaps. Ensure the recap is clear, structured, and easy to follow, providing context for important storylines without assuming prior detailed knowledge of the series.

# Steps

`)
	fmt.Fprintf(&b, "1. Identify the title of the TV series and confirm the specific season and episode range (%s of Season %d).\n", rng, c.Season)
	b.WriteString(`2. Summarize the main plot points and significant events in chronological order.
3. Highlight major character developments and changes throughout these episodes.
4. Mention any important relationships, conflicts, or resolutions.
5. Conclude with an overview of the narrative progression for this episode range.

# Output Format

- Provide the series name and season number as a heading.
- Use bullet points or short paragraphs to delineate episode groupings or key events.
- Keep summaries concise but informative, approximately 200-400 words in total.

# Example structure

Series: [Series Name]
`)
	fmt.Fprintf(&b, "Season: %d\n", c.Season)
	b.WriteString(`
Recap:
- Episodes 1-3: [Summary of key events and character developments]
- Episodes 4-6: [Summary of key events and character developments]
(Adjust grouping to match the episode range above.)

# Notes

- Adapt the recap based on the genre and tone of the series.
- Focus on plot relevance and avoid minor details that do not impact the main stories.
- Use neutral and clear language suitable for a general audience.
- Describe what actually happened, not themes. Mention character names and explain cause-and-effect.
- Forbidden phrases include: "new threats emerge", "the stakes rise", "a difficult choice", "things escalate", "everything changes", "mysterious forces".
- Do NOT invent events or characters. Use only the episode information provided below.

---

`)
	fmt.Fprintf(&b, "Series: %s\nSeason: %d\nEpisode range: %s\n\n", c.SeriesName, c.Season, rng)
	b.WriteString("Episode summaries:\n")
	b.WriteString(strings.Join(lines, "\n"))
	if c.CanonSummary != "" {
		b.WriteString("\n\nEpisode synopses and plots from the series wiki (use them for concrete details):\n")
		b.WriteString(c.CanonSummary)
	}
	b.WriteString("\n\nNow write the recap following the format above.")
	return b.String()
}

// BuildSeriesMergePrompt asks the model to fold per-season recaps, in season order,
// into one "Previously on..." summary.
func BuildSeriesMergePrompt(seasonRecaps []string) string {
	blocks := make([]string, len(seasonRecaps))
	for i, text := range seasonRecaps {
		blocks[i] = fmt.Sprintf("Season %d recap:\n%s", i+1, text)
	}
	return `You are writing a TV series "Previously on..." recap. Below are recaps for each season so far. Merge them into one cohesive "Previously on..." summary. Keep it engaging and avoid repeating details. Do not add new events.

` + strings.Join(blocks, "\n\n---\n\n") + `

Merged "Previously on..." recap:`
}

// BuildPreviouslyOnPrompt renders a cumulative context as a single factual refresher
// covering everything up to the target episode.
func BuildPreviouslyOnPrompt(c models.SeriesContext) string {
	blocks := make([]string, 0, len(c.Episodes))
	for _, e := range c.Episodes {
		blocks = append(blocks, fmt.Sprintf("Season %d Episode %d:\n%s", e.SeasonNumber, e.EpisodeNumber, overviewOrDefault(e.Overview)))
	}

	var b strings.Builder
	b.WriteString(`You are writing a factual "Previously on..." recap to refresh a viewer's memory before they continue watching.
This is NOT a promo and NOT a teaser.

Rules:
- Describe what actually happened, not themes.
- Mention character names when relevant.
- Explain cause-and-effect between events.
- Include concrete plot developments and revelations.
- Do NOT invent events or characters.
- Do NOT include anything beyond the episodes provided.
- Give more weight to recent episodes; compress early seasons to their essentials.

Forbidden phrases include:
"new threats emerge", "the stakes rise", "a difficult choice",
"things escalate", "everything changes", "mysterious forces".

`)
	fmt.Fprintf(&b, "Series: %s\n", c.SeriesName)
	fmt.Fprintf(&b, "Scope: everything up to and including Season %d, Episode %d.\n\n", c.Season, c.EpisodeTo)
	b.WriteString("Episode summaries:\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString(`

Write a clear, grounded recap in paragraph form.
Do NOT use bullet points.
Do NOT add a title.
Do NOT use marketing language.`)
	return b.String()
}

func rangeDescription(from, to int) string {
	if from == to {
		return fmt.Sprintf("Episode %d", from)
	}
	return fmt.Sprintf("Episodes %d through %d", from, to)
}

func overviewOrDefault(overview string) string {
	if strings.TrimSpace(overview) == "" {
		return noOverview
	}
	return overview
}
