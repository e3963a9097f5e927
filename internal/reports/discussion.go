package reports

import (
	"fmt"
	"math"
	"strings"

	"auroracast/internal/models"
	"auroracast/internal/scale"
)

// BuildFallbackDiscussion produces a deterministic markdown discussion from
// the snapshot when no LLM is configured or the call fails
func BuildFallbackDiscussion(snap *models.Snapshot) string {
	var md strings.Builder
	conditions := snap.Conditions

	md.WriteString("## Forecast Discussion\n\n")

	md.WriteString(fmt.Sprintf("Overall solar activity is **%s**. ", conditions.OverallStatus))
	md.WriteString(fmt.Sprintf("The current X-ray background is %s with proton levels at %s.\n\n",
		conditions.XrayClass, conditions.ProtonClass))

	md.WriteString("### Solar Wind\n\n")
	if speed, ok := snap.LatestSolarWind(); ok {
		md.WriteString(describeSolarWind(speed))
	} else {
		md.WriteString("Real-time solar wind data is currently unavailable.\n")
	}
	md.WriteString("\n")

	if score := conditions.AuroraScore; !math.IsNaN(score.Value) {
		md.WriteString("### Aurora Outlook\n\n")
		md.WriteString(describeAuroraOutlook(score))
		md.WriteString("\n\n")
	}

	if earthDirected := countEarthDirected(snap.CMEs); earthDirected > 0 {
		md.WriteString("### Coronal Mass Ejections\n\n")
		md.WriteString(fmt.Sprintf("%d Earth-directed CME(s) are being tracked:\n\n", earthDirected))
		for _, cme := range snap.CMEs {
			if !cme.IsEarthDirected {
				continue
			}
			if cme.PredictedArrival != nil {
				md.WriteString(fmt.Sprintf("- **%s** launched %s at %.0f km/s, estimated arrival **%s**\n",
					cme.ID,
					cme.StartTime.Format("Jan 2 15:04 UTC"),
					cme.Speed,
					cme.PredictedArrival.Format("Jan 2 15:04 UTC")))
			} else {
				md.WriteString(fmt.Sprintf("- **%s** launched %s, arrival estimate unavailable\n",
					cme.ID, cme.StartTime.Format("Jan 2 15:04 UTC")))
			}
		}
		md.WriteString("\n")
	}

	md.WriteString("### Past 24 Hours\n\n")
	if snap.Summary == nil {
		md.WriteString("No significant flare or proton activity was recorded in the past 24 hours.\n")
	} else {
		s := snap.Summary
		if !s.HighestXray.Time.IsZero() {
			md.WriteString(fmt.Sprintf("- Peak X-ray flux reached **%s** at %s\n",
				s.HighestXray.Class, s.HighestXray.Time.Format("15:04 UTC")))
		}
		if !s.HighestProton.Time.IsZero() {
			md.WriteString(fmt.Sprintf("- Peak proton flux reached **%s** at %s\n",
				s.HighestProton.Class, s.HighestProton.Time.Format("15:04 UTC")))
		}
		if s.XFlareCount > 0 || s.MFlareCount > 0 {
			md.WriteString(fmt.Sprintf("- %d X-class and %d M-class flares were observed\n",
				s.XFlareCount, s.MFlareCount))
		}
		if s.PotentialCMECount > 0 {
			md.WriteString(fmt.Sprintf("- %d flare(s) launched potentially Earth-directed CMEs\n",
				s.PotentialCMECount))
		}
	}

	return md.String()
}

func describeSolarWind(sample models.SolarWindSample) string {
	speedBucket := scale.SpeedTable.Classify(sample.Speed)
	var tone string
	switch {
	case speedBucket.Severity() >= scale.Red.Severity():
		tone = "strongly enhanced, consistent with a coronal hole stream or CME passage"
	case speedBucket.Severity() >= scale.Yellow.Severity():
		tone = "moderately elevated"
	default:
		tone = "near ambient background levels"
	}

	out := fmt.Sprintf("Solar wind speed is %.0f km/s, %s.", sample.Speed, tone)
	if !math.IsNaN(sample.Bz) && sample.Bz < 0 {
		out += fmt.Sprintf(" The interplanetary magnetic field is tilted southward (Bz %.1f nT), which favors coupling with the magnetosphere.", sample.Bz)
	}
	return out + "\n"
}

func describeAuroraOutlook(score models.GaugeReading) string {
	switch scale.ParseBucket(score.Bucket) {
	case scale.Pink, scale.Purple:
		return "Conditions strongly favor visible aurora at mid latitudes. Watch for substorm onset over the next few hours."
	case scale.Red, scale.Orange:
		return "Aurora is likely at high latitudes and possible on camera from mid latitudes if the southward field holds."
	case scale.Yellow:
		return "Minor auroral activity is possible at high latitudes."
	default:
		return "Auroral activity is expected to remain at background levels."
	}
}

func countEarthDirected(cmes []models.ProcessedCME) int {
	n := 0
	for _, cme := range cmes {
		if cme.IsEarthDirected {
			n++
		}
	}
	return n
}
