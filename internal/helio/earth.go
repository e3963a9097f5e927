package helio

import (
	"math"

	"auroracast/internal/models"
)

// DefaultEarthWindowDeg is the half-width of the longitude window around
// the central meridian inside which an eruption counts as potentially
// Earth-directed. A heuristic proxy for a full cone model, tunable via
// configuration.
const DefaultEarthWindowDeg = 30.0

// IsPotentialEarthDirected reports whether a flare with a linked CME
// erupted close enough to the Earth-facing meridian to plausibly matter,
// using the default longitude window.
func IsPotentialEarthDirected(flare models.FlareEvent) bool {
	return IsEarthDirectedWithin(flare, DefaultEarthWindowDeg)
}

// IsEarthDirectedWithin is IsPotentialEarthDirected with an explicit
// longitude half-width. It is false for flares without a linked CME and
// for unparseable source locations.
func IsEarthDirectedWithin(flare models.FlareEvent, halfWidthDeg float64) bool {
	if !flare.HasCME {
		return false
	}
	lon, ok := ParseLongitude(flare.SourceLocation)
	if !ok {
		return false
	}
	return math.Abs(lon) <= halfWidthDeg
}
