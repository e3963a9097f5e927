package fetchers

import (
	"math"
	"sort"
	"strings"
	"time"

	"auroracast/internal/helio"
	"auroracast/internal/logger"
	"auroracast/internal/models"
	"auroracast/internal/scale"
	"auroracast/internal/summary"

	"github.com/mmcdole/gofeed"
)

// timeTagFormats covers the timestamp variants across the SWPC products
// and the DONKI catalogs
var timeTagFormats = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Normalizer turns the raw payloads of one poll cycle into a Snapshot.
// All derived fields (HasCME, IsEarthDirected, PredictedArrival, the
// activity summary, the classified gauges) are computed here, once per
// cycle, and treated as immutable afterwards.
type Normalizer struct {
	estimator  *helio.ArrivalEstimator
	summarizer *summary.Summarizer
	alertFlux  float64
}

// NewNormalizer creates a normalizer with the given heuristics. Flares at
// or above alertClass produce alert events in the snapshot.
func NewNormalizer(earthWindowDeg, speedFloorKmS float64, alertClass string) *Normalizer {
	alertFlux, ok := scale.FlareClassFlux(alertClass)
	if !ok {
		alertFlux = math.Inf(1)
	}
	return &Normalizer{
		estimator: &helio.ArrivalEstimator{
			EarthWindowDeg: earthWindowDeg,
			SpeedFloorKmS:  speedFloorKmS,
		},
		summarizer: &summary.Summarizer{EarthWindowDeg: earthWindowDeg},
		alertFlux:  alertFlux,
	}
}

// Normalize builds the snapshot for one poll cycle
func (n *Normalizer) Normalize(raw *SourceData, now time.Time) *models.Snapshot {
	snap := &models.Snapshot{Timestamp: now}

	snap.SolarWind = n.solarWindSamples(raw.Plasma, raw.Mag)
	snap.Xray = xrayFluxSamples(raw.Xray)
	snap.Proton = protonFluxSamples(raw.Proton)
	snap.Flares = n.flareEvents(raw.Flares)
	snap.CMEs = n.processCMEs(raw.CMEs)
	snap.Events = n.bulletinEvents(raw.SIDC, now)
	snap.Events = append(snap.Events, n.flareAlerts(snap.Flares, now)...)
	snap.Summary = n.summarizer.Summarize(snap.Xray, snap.Proton, snap.Flares, now)
	snap.Conditions = n.classifyConditions(snap)

	logger.Debug("snapshot normalized", map[string]interface{}{
		"solar_wind_samples": len(snap.SolarWind),
		"xray_samples":       len(snap.Xray),
		"flares":             len(snap.Flares),
		"cmes":               len(snap.CMEs),
	})
	return snap
}

// solarWindSamples merges the plasma and magnetometer products by time
// tag. Rows missing from either product are kept with NaN for the absent
// quantities; the classifiers treat NaN as the quiet baseline.
func (n *Normalizer) solarWindSamples(plasma, mag [][]string) []models.SolarWindSample {
	byTime := make(map[time.Time]*models.SolarWindSample)

	densityIdx, speedIdx := columnIndex(plasma, "density"), columnIndex(plasma, "speed")
	forEachRow(plasma, func(t time.Time, row []string) {
		s := sampleAt(byTime, t)
		s.Density = floatColumn(row, densityIdx)
		s.Speed = floatColumn(row, speedIdx)
	})

	bzIdx, btIdx := columnIndex(mag, "bz_gsm"), columnIndex(mag, "bt")
	forEachRow(mag, func(t time.Time, row []string) {
		s := sampleAt(byTime, t)
		s.Bz = floatColumn(row, bzIdx)
		s.Bt = floatColumn(row, btIdx)
	})

	samples := make([]models.SolarWindSample, 0, len(byTime))
	for _, s := range byTime {
		samples = append(samples, *s)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})
	return samples
}

// columnIndex finds a column position from the product header row
func columnIndex(rows [][]string, name string) int {
	if len(rows) == 0 {
		return -1
	}
	for i, col := range rows[0] {
		if col == name {
			return i
		}
	}
	return -1
}

// forEachRow walks the data rows of a header-array product, skipping rows
// whose time tag does not parse
func forEachRow(rows [][]string, fn func(time.Time, []string)) {
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		t, ok := parseTimeTag(row[0])
		if !ok {
			continue
		}
		fn(t, row)
	}
}

func sampleAt(byTime map[time.Time]*models.SolarWindSample, t time.Time) *models.SolarWindSample {
	if s, ok := byTime[t]; ok {
		return s
	}
	s := &models.SolarWindSample{
		Time:    t,
		Speed:   math.NaN(),
		Density: math.NaN(),
		Bt:      math.NaN(),
		Bz:      math.NaN(),
	}
	byTime[t] = s
	return s
}

func floatColumn(row []string, idx int) float64 {
	if idx < 0 || idx >= len(row) {
		return math.NaN()
	}
	v, err := parseFloat(row[idx])
	if err != nil {
		return math.NaN()
	}
	return v
}

func xrayFluxSamples(points []models.GOESXrayPoint) []models.FluxSample {
	var samples []models.FluxSample
	for _, p := range points {
		if t, ok := parseTimeTag(p.TimeTag); ok {
			samples = append(samples, models.FluxSample{Time: t, Flux: p.Flux})
		}
	}
	return samples
}

func protonFluxSamples(points []models.GOESProtonPoint) []models.FluxSample {
	var samples []models.FluxSample
	for _, p := range points {
		if t, ok := parseTimeTag(p.TimeTag); ok {
			samples = append(samples, models.FluxSample{Time: t, Flux: p.Flux})
		}
	}
	return samples
}

// flareEvents normalizes DONKI flare records. HasCME is derived here by
// scanning linked event IDs for a CME reference and is never recomputed
// downstream.
func (n *Normalizer) flareEvents(flares []models.DONKIFlare) []models.FlareEvent {
	events := make([]models.FlareEvent, 0, len(flares))
	for _, f := range flares {
		event := models.FlareEvent{
			ID:              f.FlrID,
			ClassType:       f.ClassType,
			SourceLocation:  f.SourceLocation,
			ActiveRegionNum: f.ActiveRegionNum,
		}
		event.BeginTime, _ = parseTimeTag(f.BeginTime)
		event.PeakTime, _ = parseTimeTag(f.PeakTime)
		event.EndTime, _ = parseTimeTag(f.EndTime)
		for _, linked := range f.LinkedEvents {
			event.LinkedEventIDs = append(event.LinkedEventIDs, linked.ActivityID)
			if strings.Contains(linked.ActivityID, "CME") {
				event.HasCME = true
			}
		}
		events = append(events, event)
	}
	return events
}

// processCMEs normalizes DONKI CME records and computes the derived
// Earth-impact fields once at ingestion
func (n *Normalizer) processCMEs(cmes []models.DONKICME) []models.ProcessedCME {
	processed := make([]models.ProcessedCME, 0, len(cmes))
	for _, c := range cmes {
		p := models.ProcessedCME{
			ID:             c.ActivityID,
			SourceLocation: c.SourceLocation,
			Note:           c.Note,
		}
		p.StartTime, _ = parseTimeTag(c.StartTime)

		analysis, ok := c.BestAnalysis()
		if ok {
			if analysis.Speed != nil {
				p.Speed = *analysis.Speed
			}
			if analysis.HalfAngle != nil {
				p.HalfAngle = *analysis.HalfAngle
			}
			if analysis.Latitude != nil {
				p.Latitude = *analysis.Latitude
			}
			if analysis.Longitude != nil {
				// DONKI longitudes are Stonyhurst: west positive already
				p.Longitude = *analysis.Longitude
				p.HasLocation = true
			}
		}
		if !p.HasLocation {
			if lon, ok := helio.ParseLongitude(c.SourceLocation); ok {
				p.Longitude = lon
				p.HasLocation = true
			}
		}

		k := helio.CMEKinematics{
			StartTime:    p.StartTime,
			SpeedKmS:     p.Speed,
			LongitudeDeg: p.Longitude,
			HasLongitude: p.HasLocation,
			HalfAngleDeg: p.HalfAngle,
		}
		p.IsEarthDirected = n.estimator.EarthDirected(k)
		if arrival, ok := n.estimator.Estimate(k); ok {
			p.PredictedArrival = &arrival
		}
		processed = append(processed, p)
	}
	return processed
}

// flareAlerts emits an alert event for each recent flare at or above the
// configured alert class
func (n *Normalizer) flareAlerts(flares []models.FlareEvent, now time.Time) []models.SourceEvent {
	var events []models.SourceEvent
	for _, f := range flares {
		flux, ok := scale.FlareClassFlux(f.ClassType)
		if !ok || flux < n.alertFlux {
			continue
		}
		ref := f.PeakTime
		if ref.IsZero() {
			ref = f.BeginTime
		}
		if ref.IsZero() || !ref.After(now.Add(-summary.Window)) {
			continue
		}
		events = append(events, models.SourceEvent{
			Source:      "DONKI",
			EventType:   "Flare Alert",
			Severity:    "High",
			Description: f.ClassType + " flare from " + f.SourceLocation,
			Timestamp:   ref,
		})
	}
	return events
}

// bulletinEvents converts recent SIDC bulletin items into source events
// with keyword-based severity
func (n *Normalizer) bulletinEvents(items []*gofeed.Item, now time.Time) []models.SourceEvent {
	var events []models.SourceEvent
	for _, item := range items {
		if item.PublishedParsed == nil || !item.PublishedParsed.After(now.Add(-summary.Window)) {
			continue
		}
		event := models.SourceEvent{
			Source:      "SIDC",
			EventType:   "Solar Event",
			Description: item.Title,
			Timestamp:   *item.PublishedParsed,
		}
		title := strings.ToLower(item.Title)
		switch {
		case strings.Contains(title, "x-class") || strings.Contains(title, "extreme"):
			event.Severity = "Extreme"
		case strings.Contains(title, "m-class") || strings.Contains(title, "major") || strings.Contains(title, "severe"):
			event.Severity = "High"
		case strings.Contains(title, "c-class") || strings.Contains(title, "moderate") || strings.Contains(title, "storm"):
			event.Severity = "Moderate"
		default:
			event.Severity = "Low"
		}
		events = append(events, event)
	}
	return events
}

// classifyConditions builds the display gauges from the newest samples
func (n *Normalizer) classifyConditions(snap *models.Snapshot) models.CurrentConditions {
	cond := models.CurrentConditions{
		XrayClass:   "N/A",
		ProtonClass: "S0",
	}

	if sw, ok := snap.LatestSolarWind(); ok {
		cond.Speed = gauge(sw.Speed, scale.SpeedTable)
		cond.Density = gauge(sw.Density, scale.DensityTable)
		cond.Bt = gauge(sw.Bt, scale.BtTable)
		cond.Bz = gauge(sw.Bz, scale.BzTable)

		score := AuroraScore(sw)
		bucket := scale.AuroraScoreBucket(score)
		cond.AuroraScore = models.GaugeReading{
			Value:  score,
			Bucket: bucket.String(),
			Color:  bucket.Color(),
		}
	}
	if x, ok := snap.LatestXray(); ok {
		cond.XrayClass = scale.XrayClass(x.Flux)
	}
	if p, ok := snap.LatestProton(); ok {
		cond.ProtonClass = scale.ProtonClass(p.Flux)
	}
	cond.OverallStatus = scale.OverallActivityStatus(cond.XrayClass, cond.ProtonClass)
	return cond
}

func gauge(value float64, table *scale.ThresholdTable) models.GaugeReading {
	bucket := table.Classify(value)
	return models.GaugeReading{
		Value:  value,
		Bucket: bucket.String(),
		Color:  bucket.Color(),
	}
}

// AuroraScore is a 0-100 composite of the latest solar wind sample.
// The weights are display heuristics: southward Bz dominates, then
// speed, then field strength and density. Deterministic and pure.
func AuroraScore(sw models.SolarWindSample) float64 {
	score := 0.0
	if !math.IsNaN(sw.Bz) && sw.Bz < 0 {
		score += clamp(-sw.Bz*2, 0, 40)
	}
	if !math.IsNaN(sw.Speed) {
		score += clamp((sw.Speed-350)/10, 0, 25)
	}
	if !math.IsNaN(sw.Bt) {
		score += clamp(sw.Bt, 0, 15)
	}
	if !math.IsNaN(sw.Density) {
		score += clamp(sw.Density, 0, 20)
	}
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseTimeTag parses a SWPC or DONKI timestamp in any known format
func parseTimeTag(tag string) (time.Time, bool) {
	for _, format := range timeTagFormats {
		if t, err := time.Parse(format, tag); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
