package scale

import (
	"fmt"
	"math"
	"strings"
)

// AuroraScoreBucket classifies an aurora score (0-100) into its display
// band. The breakpoints are fixed and intentionally not driven by a
// ThresholdTable; this band layout matches the dashboard gauge exactly.
func AuroraScoreBucket(score float64) Bucket {
	switch {
	case math.IsNaN(score):
		return Gray
	case score >= 80:
		return Pink
	case score >= 50:
		return Purple
	case score >= 40:
		return Red
	case score >= 25:
		return Orange
	case score >= 10:
		return Yellow
	default:
		return Gray
	}
}

// XrayClass converts a GOES X-ray flux (W/m^2) to its letter class label,
// e.g. 2.3e-5 -> "M2.3". Log decade boundaries: 1e-4 X, 1e-5 M, 1e-6 C,
// 1e-7 B, else A. Non-positive or NaN flux yields "N/A".
func XrayClass(flux float64) string {
	if math.IsNaN(flux) || flux <= 0 {
		return "N/A"
	}
	letter, base := "A", 1e-8
	switch {
	case flux >= 1e-4:
		letter, base = "X", 1e-4
	case flux >= 1e-5:
		letter, base = "M", 1e-5
	case flux >= 1e-6:
		letter, base = "C", 1e-6
	case flux >= 1e-7:
		letter, base = "B", 1e-7
	}
	return fmt.Sprintf("%s%.1f", letter, flux/base)
}

// FlareClassFlux parses a flare class label like "M5.0" back to its
// absolute flux in W/m^2. The inverse of XrayClass for well-formed labels.
func FlareClassFlux(class string) (float64, bool) {
	class = strings.ToUpper(strings.TrimSpace(class))
	if len(class) < 2 {
		return 0, false
	}
	var base float64
	switch class[0] {
	case 'A':
		base = 1e-8
	case 'B':
		base = 1e-7
	case 'C':
		base = 1e-6
	case 'M':
		base = 1e-5
	case 'X':
		base = 1e-4
	default:
		return 0, false
	}
	var mult float64
	if _, err := fmt.Sscanf(class[1:], "%f", &mult); err != nil || mult <= 0 {
		return 0, false
	}
	return base * mult, true
}

// ProtonClass converts a >=10 MeV integral proton flux (pfu) to its NOAA
// S-scale label. Below the S1 breakpoint everything is S0.
func ProtonClass(pfu float64) string {
	switch {
	case math.IsNaN(pfu):
		return "S0"
	case pfu >= 100000:
		return "S5"
	case pfu >= 10000:
		return "S4"
	case pfu >= 1000:
		return "S3"
	case pfu >= 100:
		return "S2"
	case pfu >= 10:
		return "S1"
	default:
		return "S0"
	}
}

// Overall activity status labels in ascending severity
const (
	StatusQuiet    = "Quiet"
	StatusModerate = "Moderate"
	StatusHigh     = "High"
	StatusVeryHigh = "Very High"
)

// OverallActivityStatus combines an X-ray class label and a proton S-scale
// label into a single status. Both are ranked independently and the
// maximum severity wins: X or S4/S5 is Very High, M or S2/S3 is High,
// C or S1 is Moderate, anything else is Quiet.
func OverallActivityStatus(xrayClass, protonClass string) string {
	rank := xrayRank(xrayClass)
	if pr := protonRank(protonClass); pr > rank {
		rank = pr
	}
	switch rank {
	case 3:
		return StatusVeryHigh
	case 2:
		return StatusHigh
	case 1:
		return StatusModerate
	default:
		return StatusQuiet
	}
}

func xrayRank(class string) int {
	if class == "" {
		return 0
	}
	switch strings.ToUpper(class[:1]) {
	case "X":
		return 3
	case "M":
		return 2
	case "C":
		return 1
	default:
		return 0
	}
}

func protonRank(class string) int {
	switch strings.ToUpper(class) {
	case "S4", "S5":
		return 3
	case "S2", "S3":
		return 2
	case "S1":
		return 1
	default:
		return 0
	}
}
