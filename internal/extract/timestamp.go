package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var timestampTrim = strings.NewReplacer("[", "", "]", "", "(", "", ")", "")

// ParseTimestamp converts SS, MM:SS or HH:MM:SS (optionally bracketed) into
// seconds. Fractional seconds are truncated. Components after the first must
// be below 60.
func ParseTimestamp(value string) (int, bool) {
	value = strings.TrimSpace(timestampTrim.Replace(strings.TrimSpace(value)))
	if value == "" {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}
	if last := parts[len(parts)-1]; strings.Contains(last, ".") {
		parts[len(parts)-1] = last[:strings.Index(last, ".")]
	}
	total := 0
	for i, part := range parts {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		if i > 0 && n >= 60 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// FormatTimestamp renders seconds as MM:SS under an hour and HH:MM:SS otherwise.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

var durationUnits = []string{"seconds", "second", "secs", "sec", "s"}

// ParseDuration accepts "30", "30s", "30 seconds", "0:30" and "1:00:00".
func ParseDuration(value string) (int, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}
	if strings.Contains(value, ":") {
		return ParseTimestamp(value)
	}
	for _, unit := range durationUnits {
		if strings.HasSuffix(value, unit) {
			value = strings.TrimSpace(strings.TrimSuffix(value, unit))
			break
		}
	}
	f, ok := parseNumber(value)
	if !ok || f < 0 {
		return 0, false
	}
	return int(math.Floor(f)), true
}

// FormatDuration renders seconds as "<n>s".
func FormatDuration(seconds int) string {
	return strconv.Itoa(seconds) + "s"
}

// parseNumber reads the leading numeric token of value. NaN and infinities
// are rejected.
func parseNumber(value string) (float64, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, false
	}
	token := strings.TrimRight(fields[0], ",;)]%")
	token = strings.TrimLeft(token, "([")
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
