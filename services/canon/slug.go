package canon

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9_]`)
)

// WikiSlug derives the wiki subdomain for a title: lower-cased, whitespace runs joined
// with underscores and everything outside [a-z0-9_] removed. Accented Latin letters are
// folded to ASCII first; other scripts are stripped, so such titles yield no slug.
func WikiSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(foldLatin(title)))
	s = whitespaceRun.ReplaceAllString(s, "_")
	return nonSlugChars.ReplaceAllString(s, "")
}

func foldLatin(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r <= unicode.MaxASCII:
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.Is(unicode.Latin, r):
			b.WriteString(unidecode.Unidecode(string(r)))
		}
	}
	return b.String()
}

// WikiPagePath encodes a page name for the /wiki/ path: whitespace becomes underscores
// and the result is percent-encoded component-style, apostrophes included.
func WikiPagePath(name string) string {
	return encodeComponent(whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_"))
}

// WikiURL is the default page address for a wiki slug and encoded page path.
func WikiURL(slug, pagePath string) string {
	return fmt.Sprintf("https://%s.fandom.com/wiki/%s", slug, pagePath)
}

// episodePageName is the wiki page for an episode; unnamed episodes use the
// Season_N_Episode_M convention.
func episodePageName(season, episode int, name string) string {
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("Season_%d_Episode_%d", season, episode)
	}
	return name
}

func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*()", c) != -1
}
