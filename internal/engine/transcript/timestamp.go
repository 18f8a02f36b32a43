package transcript

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxTimestampSeconds caps what FormatTimestamp renders.
const maxTimestampSeconds = math.MaxInt32

var timestampFieldRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// FormatTimestamp renders seconds as M:SS, or H:MM:SS from one hour up.
// Sub-second precision is dropped; negative or non-finite input renders
// as 0:00.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || !finite(seconds) {
		seconds = 0
	}
	if seconds > maxTimestampSeconds {
		seconds = maxTimestampSeconds
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseTimestamp converts "M:SS" or "H:MM:SS" back to seconds.
// Each component must be a plain decimal number. Component ranges are not
// validated: "99:99" is 99*60+99.
func ParseTimestamp(display string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(display), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("timestamp %q: want M:SS or H:MM:SS", display)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !timestampFieldRe.MatchString(p) {
			return 0, fmt.Errorf("timestamp %q: bad component %q", display, p)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || !finite(v) {
			return 0, fmt.Errorf("timestamp %q: bad component %q", display, p)
		}
		vals[i] = v
	}
	if len(vals) == 2 {
		return vals[0]*60 + vals[1], nil
	}
	return vals[0]*3600 + vals[1]*60 + vals[2], nil
}
