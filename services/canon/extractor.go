package canon

import "strings"

// rawFallbackLimit caps the text returned when a page has no recognisable sections.
const rawFallbackLimit = 6000

// Section headings as they appear after tag stripping. The bracketed form carries the
// wiki's edit-link residue and is preferred over the bare word.
const (
	synopsisBracket = "Synopsis [ ]"
	synopsisBare    = "Synopsis "
	plotBracket     = "Plot [ ]"
	plotBare        = "Plot "
)

// sectionEndMarkers end the Plot section; the closest one after the section start wins.
var sectionEndMarkers = []string{
	"Trivia [ ]",
	"Appearances [ ]",
	"Cast [ ]",
	"Locations [ ]",
	"Deaths [ ]",
	"Categories",
	"Community content is available",
	"Sign in to edit",
}

// ExtractSynopsisAndPlot isolates the Synopsis and Plot sections of tag-stripped wiki
// text. It returns "Synopsis: ..." and "Plot: ..." blocks separated by a blank line, or
// the first 6000 characters of raw when neither section is present.
func ExtractSynopsisAndPlot(raw string) string {
	text := " " + raw + " "

	synopsisAt, synopsisLen := findHeading(text, synopsisBracket, synopsisBare)
	plotAt, plotLen := findHeading(text, plotBracket, plotBare)

	var parts []string
	if synopsisAt != -1 && plotAt != -1 && plotAt > synopsisAt {
		if synopsis := strings.TrimSpace(text[synopsisAt+synopsisLen : plotAt]); synopsis != "" {
			parts = append(parts, "Synopsis: "+synopsis)
		}
	}
	if plotAt != -1 {
		start := plotAt + plotLen
		if plot := strings.TrimSpace(text[start:sectionEnd(text, start)]); plot != "" {
			parts = append(parts, "Plot: "+plot)
		}
	}

	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}
	return strings.TrimSpace(truncate(raw, rawFallbackLimit))
}

func findHeading(text, bracketed, bare string) (int, int) {
	if i := strings.Index(text, bracketed); i != -1 {
		return i, len(bracketed)
	}
	if i := strings.Index(text, bare); i != -1 {
		return i, len(bare)
	}
	return -1, 0
}

func sectionEnd(text string, start int) int {
	end := len(text)
	for _, m := range sectionEndMarkers {
		if i := strings.Index(text[start:], m); i != -1 && start+i < end {
			end = start + i
		}
	}
	return end
}

// truncate returns at most n characters of s without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
