package transcript

import "strings"

// entityReplacer covers the references caption payloads actually carry.
// Anything else is left as-is.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&#x2F;", "/",
	"&nbsp;", " ",
)

// DecodeEntities replaces the known character references in s.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}

// normalizeSpace collapses runs of whitespace, newlines included, to a
// single space and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanText is the per-fragment pipeline shared by all parsers: entities
// are decoded after tag stripping and before whitespace normalization.
func cleanText(s string) string {
	return normalizeSpace(DecodeEntities(s))
}

// Clean decodes entities and normalizes whitespace in display text
// scraped outside the wire parsers.
func Clean(s string) string { return cleanText(s) }
