package helio

import (
	"math"
	"time"
)

const (
	// Ambient solar wind values the impact profile rises from and decays to
	ambientSpeedKmS = 380.0
	ambientDensity  = 5.0

	// profileStep is the sampling interval of the impact profile
	profileStep = 30 * time.Minute

	// profileTail is how far past predicted arrival the profile extends
	profileTail = 12 * time.Hour
)

// ImpactSample is one point of a CME impact profile
type ImpactSample struct {
	Time     time.Time `json:"time"`
	SpeedKmS float64   `json:"speed"`
	Density  float64   `json:"density"`
}

// ImpactProfile is a lazy, finite sequence of impact samples spanning from
// CME liftoff to twelve hours past predicted arrival. Speed and density
// follow a raised-cosine ramp peaking at arrival and decaying back to
// ambient. The sequence is deterministic for a given CME record and is
// consumed once; it cannot be restarted.
type ImpactProfile struct {
	start     time.Time
	arrival   time.Time
	end       time.Time
	peakSpeed float64
	peakDens  float64
	cursor    time.Time
	done      bool
}

// NewImpactProfile builds the impact profile for an Earth-directed CME.
// The arrival time must come from Estimate on the same kinematics.
func NewImpactProfile(k CMEKinematics, arrival time.Time) *ImpactProfile {
	peakSpeed := k.SpeedKmS
	if peakSpeed < ambientSpeedKmS {
		peakSpeed = ambientSpeedKmS
	}
	// Density enhancement scales with speed; a deterministic stand-in for
	// the unmeasured sheath compression.
	peakDens := ambientDensity + k.SpeedKmS/25.0
	return &ImpactProfile{
		start:     k.StartTime,
		arrival:   arrival,
		end:       arrival.Add(profileTail),
		peakSpeed: peakSpeed,
		peakDens:  peakDens,
		cursor:    k.StartTime,
	}
}

// Next yields the next sample. The second return value is false once the
// profile is exhausted.
func (p *ImpactProfile) Next() (ImpactSample, bool) {
	if p.done || p.cursor.After(p.end) {
		p.done = true
		return ImpactSample{}, false
	}
	sample := ImpactSample{
		Time:     p.cursor,
		SpeedKmS: p.valueAt(p.cursor, ambientSpeedKmS, p.peakSpeed),
		Density:  p.valueAt(p.cursor, ambientDensity, p.peakDens),
	}
	p.cursor = p.cursor.Add(profileStep)
	return sample, true
}

// Drain consumes the remaining samples into a slice
func (p *ImpactProfile) Drain() []ImpactSample {
	var samples []ImpactSample
	for {
		s, ok := p.Next()
		if !ok {
			return samples
		}
		samples = append(samples, s)
	}
}

// valueAt evaluates the raised-cosine ramp: monotone rise from ambient to
// peak over [start, arrival], monotone decay back to ambient over
// [arrival, end].
func (p *ImpactProfile) valueAt(t time.Time, ambient, peak float64) float64 {
	if !t.After(p.start) {
		return ambient
	}
	if !t.After(p.arrival) {
		rise := p.arrival.Sub(p.start)
		if rise <= 0 {
			return peak
		}
		u := float64(t.Sub(p.start)) / float64(rise)
		return ambient + (peak-ambient)*0.5*(1-math.Cos(math.Pi*u))
	}
	decay := p.end.Sub(p.arrival)
	if decay <= 0 {
		return ambient
	}
	v := float64(t.Sub(p.arrival)) / float64(decay)
	if v > 1 {
		v = 1
	}
	return ambient + (peak-ambient)*0.5*(1+math.Cos(math.Pi*v))
}
