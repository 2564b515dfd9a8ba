package recap

import (
	"fmt"
	"regexp"
	"strings"
)

// MovieKey fingerprints a movie recap. Enriched and plain recaps never share a key.
func MovieKey(movieID int64, enriched bool) string {
	key := fmt.Sprintf("movie:%d", movieID)
	if enriched {
		key += ":enriched"
	}
	return key
}

// SeriesKey fingerprints a recap of an episode range within one season.
func SeriesKey(seriesID int64, season, from, to int, enriched bool) string {
	key := fmt.Sprintf("series:%d:s%d:e%d-%d", seriesID, season, from, to)
	if enriched {
		key += ":enriched"
	}
	return key
}

// PreviouslyOnKey fingerprints a cumulative recap ending at season/episode.
func PreviouslyOnKey(seriesID int64, season, episode int) string {
	return fmt.Sprintf("series:%d:previously:s%de%d", seriesID, season, episode)
}

var bulletPrefix = regexp.MustCompile(`^[\s\-*•]+`)

// ParseBulletPoints splits model output into bullet texts, dropping list markers and
// blank lines.
func ParseBulletPoints(text string) []string {
	var points []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}
