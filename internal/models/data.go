package models

import "time"

// SolarWindSample is one normalized solar wind measurement. Gaps in the
// upstream feeds are preserved as missing samples, never interpolated.
type SolarWindSample struct {
	Time    time.Time `json:"time"`
	Speed   float64   `json:"speed"`   // km/s
	Density float64   `json:"density"` // protons/cm^3
	Bt      float64   `json:"bt"`      // nT
	Bz      float64   `json:"bz"`      // nT, negative is geomagnetically significant
}

// FluxSample is one point of a GOES flux series (X-ray W/m^2 or proton pfu)
type FluxSample struct {
	Time time.Time `json:"time"`
	Flux float64   `json:"flux"`
}

// FlareEvent is a normalized DONKI solar flare record. HasCME is derived
// once at ingestion from the linked event IDs and never recomputed.
type FlareEvent struct {
	ID              string    `json:"id"`
	ClassType       string    `json:"class_type"` // letter + magnitude, e.g. "M5.2"
	SourceLocation  string    `json:"source_location"`
	BeginTime       time.Time `json:"begin_time"`
	PeakTime        time.Time `json:"peak_time"`
	EndTime         time.Time `json:"end_time"`
	ActiveRegionNum int       `json:"active_region_num"`
	HasCME          bool      `json:"has_cme"`
	LinkedEventIDs  []string  `json:"linked_event_ids"`
}

// ProcessedCME is a normalized DONKI CME record. IsEarthDirected and
// PredictedArrival are derived at ingestion and immutable afterwards.
type ProcessedCME struct {
	ID               string     `json:"id"`
	StartTime        time.Time  `json:"start_time"`
	Speed            float64    `json:"speed"`      // km/s
	Longitude        float64    `json:"longitude"`  // deg, west positive (Earth view)
	Latitude         float64    `json:"latitude"`   // deg
	HalfAngle        float64    `json:"half_angle"` // deg
	HasLocation      bool       `json:"has_location"`
	IsEarthDirected  bool       `json:"is_earth_directed"`
	PredictedArrival *time.Time `json:"predicted_arrival,omitempty"`
	SourceLocation   string     `json:"source_location"`
	Note             string     `json:"note"`
}

// PeakReading is the largest sample of a flux series within a window
type PeakReading struct {
	Flux  float64   `json:"flux"`
	Class string    `json:"class"`
	Time  time.Time `json:"time"`
}

// ActivitySummary is the rolling 24-hour reduction of the X-ray, proton and
// flare series. It is fully replaced on every refresh cycle, never merged.
type ActivitySummary struct {
	HighestXray       PeakReading `json:"highest_xray"`
	HighestProton     PeakReading `json:"highest_proton"`
	XFlareCount       int         `json:"x_flare_count"`
	MFlareCount       int         `json:"m_flare_count"`
	PotentialCMECount int         `json:"potential_cme_count"`
}

// ColorSet is the display palette entry for a severity bucket
type ColorSet struct {
	Solid string `json:"solid"`
	Semi  string `json:"semi"`
	Trans string `json:"trans"`
}

// GaugeReading is a classified scalar reading ready for display
type GaugeReading struct {
	Value  float64  `json:"value"`
	Bucket string   `json:"bucket"`
	Color  ColorSet `json:"color"`
}

// CurrentConditions is the classified view of the latest samples
type CurrentConditions struct {
	Speed         GaugeReading `json:"speed"`
	Density       GaugeReading `json:"density"`
	Bt            GaugeReading `json:"bt"`
	Bz            GaugeReading `json:"bz"`
	AuroraScore   GaugeReading `json:"aurora_score"`
	XrayClass     string       `json:"xray_class"`
	ProtonClass   string       `json:"proton_class"`
	OverallStatus string       `json:"overall_status"`
}

// SourceEvent is a notable bulletin from an external data source
type SourceEvent struct {
	Source      string    `json:"source"`
	EventType   string    `json:"event_type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Snapshot is the full normalized state of one poll cycle. A snapshot is
// built once by the normalizer and replaced wholesale on the next cycle;
// readers never see a partially updated snapshot.
type Snapshot struct {
	Timestamp  time.Time         `json:"timestamp"`
	SolarWind  []SolarWindSample `json:"solar_wind"`
	Xray       []FluxSample      `json:"xray"`
	Proton     []FluxSample      `json:"proton"`
	Flares     []FlareEvent      `json:"flares"`
	CMEs       []ProcessedCME    `json:"cmes"`
	Events     []SourceEvent     `json:"events"`
	Summary    *ActivitySummary  `json:"summary,omitempty"`
	Conditions CurrentConditions `json:"conditions"`
}

// LatestSolarWind returns the newest solar wind sample, if any
func (s *Snapshot) LatestSolarWind() (SolarWindSample, bool) {
	if len(s.SolarWind) == 0 {
		return SolarWindSample{}, false
	}
	return s.SolarWind[len(s.SolarWind)-1], true
}

// LatestXray returns the newest X-ray flux sample, if any
func (s *Snapshot) LatestXray() (FluxSample, bool) {
	if len(s.Xray) == 0 {
		return FluxSample{}, false
	}
	return s.Xray[len(s.Xray)-1], true
}

// LatestProton returns the newest proton flux sample, if any
func (s *Snapshot) LatestProton() (FluxSample, bool) {
	if len(s.Proton) == 0 {
		return FluxSample{}, false
	}
	return s.Proton[len(s.Proton)-1], true
}
