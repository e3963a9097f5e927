// Package summary reduces the rolling 24-hour flux and flare series into
// the headline activity summary shown on the dashboard.
package summary

import (
	"math"
	"strings"
	"time"

	"auroracast/internal/helio"
	"auroracast/internal/models"
	"auroracast/internal/scale"
)

// Window is the rolling reduction window
const Window = 24 * time.Hour

// Summarizer reduces time series into an ActivitySummary. The Earth
// window is injected so the potential-CME count follows the configured
// heuristic.
type Summarizer struct {
	EarthWindowDeg float64
}

// NewSummarizer creates a summarizer with the default Earth window
func NewSummarizer() *Summarizer {
	return &Summarizer{EarthWindowDeg: helio.DefaultEarthWindowDeg}
}

// Summarize reduces the three series over [now-24h, now], inclusive on
// both ends. It returns nil when all three inputs have no samples in the
// window, distinguishing "no data" from "all quiet". The reduction is
// pure and idempotent: peaks break ties by earliest timestamp.
func (s *Summarizer) Summarize(xray, proton []models.FluxSample, flares []models.FlareEvent, now time.Time) *models.ActivitySummary {
	cutoff := now.Add(-Window)

	xrayPeak, xrayOK := peakIn(xray, cutoff, now)
	protonPeak, protonOK := peakIn(proton, cutoff, now)

	flareSeen := false
	var xCount, mCount, cmeCount int
	for _, flare := range flares {
		ref := flareReferenceTime(flare)
		if ref.IsZero() || ref.Before(cutoff) || ref.After(now) {
			continue
		}
		flareSeen = true
		switch firstClassLetter(flare.ClassType) {
		case 'X':
			xCount++
		case 'M':
			mCount++
		}
		if helio.IsEarthDirectedWithin(flare, s.EarthWindowDeg) {
			cmeCount++
		}
	}

	if !xrayOK && !protonOK && !flareSeen {
		return nil
	}

	out := &models.ActivitySummary{
		XFlareCount:       xCount,
		MFlareCount:       mCount,
		PotentialCMECount: cmeCount,
	}
	if xrayOK {
		out.HighestXray = models.PeakReading{
			Flux:  xrayPeak.Flux,
			Class: scale.XrayClass(xrayPeak.Flux),
			Time:  xrayPeak.Time,
		}
	}
	if protonOK {
		out.HighestProton = models.PeakReading{
			Flux:  protonPeak.Flux,
			Class: scale.ProtonClass(protonPeak.Flux),
			Time:  protonPeak.Time,
		}
	}
	return out
}

// peakIn finds the in-window sample with the largest flux. NaN samples
// are skipped; ties keep the earliest sample.
func peakIn(series []models.FluxSample, cutoff, now time.Time) (models.FluxSample, bool) {
	var best models.FluxSample
	found := false
	for _, sample := range series {
		if sample.Time.Before(cutoff) || sample.Time.After(now) {
			continue
		}
		if math.IsNaN(sample.Flux) {
			continue
		}
		if !found || sample.Flux > best.Flux {
			best = sample
			found = true
		}
	}
	return best, found
}

// flareReferenceTime picks the window timestamp for a flare: peak time,
// falling back to begin then end when peak is absent
func flareReferenceTime(flare models.FlareEvent) time.Time {
	if !flare.PeakTime.IsZero() {
		return flare.PeakTime
	}
	if !flare.BeginTime.IsZero() {
		return flare.BeginTime
	}
	return flare.EndTime
}

func firstClassLetter(classType string) rune {
	if classType == "" {
		return 0
	}
	return rune(strings.ToUpper(classType[:1])[0])
}
