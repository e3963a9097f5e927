// Package helio holds the heliographic source location parsing and the
// CME Earth-impact estimation heuristics.
package helio

import (
	"regexp"
	"strconv"
)

// sourceLocationPattern matches fixed-format heliographic source location
// strings like "N12W34" or "S05E120". The hemisphere letter is optional but
// the latitude digits are not, so a bare "W45" does not parse.
var sourceLocationPattern = regexp.MustCompile(`(?i)^[NS]?\d{1,2}([EW])(\d{1,3})$`)

// ParseLongitude extracts the signed longitude offset from a source
// location string. West is positive and East is negative: this is the
// Earth-view angular offset from the central meridian, not the standard
// heliographic sign convention, and callers must not re-flip it.
// The second return value is false for empty or malformed input.
func ParseLongitude(location string) (float64, bool) {
	if location == "" {
		return 0, false
	}
	m := sourceLocationPattern.FindStringSubmatch(location)
	if m == nil {
		return 0, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	if m[1] == "E" || m[1] == "e" {
		lon = -lon
	}
	return lon, true
}
