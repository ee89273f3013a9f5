package product

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	slugBad    = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun    = regexp.MustCompile(`-+`)
	uuidRegexp = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	accents = strings.NewReplacer(
		"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "î", "i", "ï", "i",
		"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ç", "c",
	)
)

// Slugify makes a URL-safe slug: "Caftan Impérial" -> "caftan-imperial".
func Slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = spaceRun.ReplaceAllString(s, "-")
	s = accents.Replace(s)
	s = slugBad.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ShortID is the first 8 hex chars of an id.
func ShortID(id string) string {
	s := strings.ReplaceAll(id, "-", "")
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// ProductSlug builds the short product URL segment, e.g. 93ee8be9-imperial-caftan.
func ProductSlug(id, name string) string {
	short := ShortID(id)
	if slug := Slugify(name); slug != "" {
		return short + "-" + slug
	}
	return short
}

func IsUUID(s string) bool { return uuidRegexp.MatchString(s) }
