package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentAndroid = "com.google.android.youtube/20.10.38 (Linux; U; Android 11) gzip"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// TruncateLines keeps whole lines of s while the total stays within
// limit runes. A first line longer than limit is cut at a word boundary.
func TruncateLines(s string, limit int) string {
	if len([]rune(s)) <= limit {
		return s
	}
	lines := strings.Split(s, "\n")
	var sb strings.Builder
	used := 0
	for _, l := range lines {
		n := len([]rune(l)) + 1
		if used+n > limit {
			break
		}
		sb.WriteString(l)
		sb.WriteByte('\n')
		used += n
	}
	if sb.Len() == 0 {
		return strutil.TruncateAtWord(lines[0], limit)
	}
	return strings.TrimRight(sb.String(), "\n")
}
