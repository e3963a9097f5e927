package helio

import (
	"math"
	"time"
)

const (
	// SunEarthDistanceKm treats the Sun-Earth distance as a fixed 1 AU
	SunEarthDistanceKm = 1.496e8

	// DefaultSpeedFloorKmS rejects catalog speeds too low to be a real
	// transient. Garbage catalog values below the floor produce no
	// prediction instead of an arrival date years out.
	DefaultSpeedFloorKmS = 100.0
)

// CMEKinematics is the subset of a CME catalog record the estimator needs
type CMEKinematics struct {
	StartTime    time.Time
	SpeedKmS     float64
	LongitudeDeg float64
	HasLongitude bool
	HalfAngleDeg float64
}

// ArrivalEstimator predicts CME arrival times with a flat 1 AU ballistic
// model. Zero value is not usable; construct with NewArrivalEstimator.
type ArrivalEstimator struct {
	EarthWindowDeg float64
	SpeedFloorKmS  float64
}

// NewArrivalEstimator creates an estimator with the default heuristics
func NewArrivalEstimator() *ArrivalEstimator {
	return &ArrivalEstimator{
		EarthWindowDeg: DefaultEarthWindowDeg,
		SpeedFloorKmS:  DefaultSpeedFloorKmS,
	}
}

// EarthDirected reports whether the CME source longitude falls inside the
// Earth-directed window
func (e *ArrivalEstimator) EarthDirected(k CMEKinematics) bool {
	if !k.HasLongitude {
		return false
	}
	return math.Abs(k.LongitudeDeg) <= e.EarthWindowDeg
}

// Estimate returns the predicted arrival time for an Earth-directed CME.
// Travel time is distance over speed at constant velocity. The second
// return value is false when the CME is not Earth-directed, has no start
// time, or its speed is below the sanity floor.
func (e *ArrivalEstimator) Estimate(k CMEKinematics) (time.Time, bool) {
	if !e.EarthDirected(k) {
		return time.Time{}, false
	}
	if k.StartTime.IsZero() {
		return time.Time{}, false
	}
	if math.IsNaN(k.SpeedKmS) || k.SpeedKmS < e.SpeedFloorKmS {
		return time.Time{}, false
	}
	travelSeconds := SunEarthDistanceKm / k.SpeedKmS
	return k.StartTime.Add(time.Duration(travelSeconds * float64(time.Second))), true
}
