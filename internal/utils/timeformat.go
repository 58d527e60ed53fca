package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration renders a millisecond length as MM:SS, or HH:MM:SS
// once there is more than an hour of it.
func FormatDuration(millis int) string {
	seconds := (millis / 1000) % 60
	minutes := (millis / (1000 * 60)) % 60
	hours := millis / (1000 * 60 * 60)
	if hours >= 1 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ParseDuration parses "SS", "MM:SS" or "HH:MM:SS" into milliseconds.
// Returns false when the input does not look like a time string.
func ParseDuration(input string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		// Fields below the leading one are capped like a clock face
		if i > 0 && n > 59 {
			return 0, false
		}
		total = total*60 + n
	}
	return total * 1000, true
}
