package helio

import (
	"math"
	"testing"
	"time"
)

func TestEarthDirected(t *testing.T) {
	estimator := NewArrivalEstimator()

	tests := []struct {
		name     string
		k        CMEKinematics
		expected bool
	}{
		{"central meridian", CMEKinematics{LongitudeDeg: 0, HasLongitude: true}, true},
		{"inside window west", CMEKinematics{LongitudeDeg: 20, HasLongitude: true}, true},
		{"inside window east", CMEKinematics{LongitudeDeg: -25, HasLongitude: true}, true},
		{"exactly on boundary", CMEKinematics{LongitudeDeg: 30, HasLongitude: true}, true},
		{"outside window", CMEKinematics{LongitudeDeg: 45, HasLongitude: true}, false},
		{"far side", CMEKinematics{LongitudeDeg: -120, HasLongitude: true}, false},
		{"no longitude known", CMEKinematics{LongitudeDeg: 0, HasLongitude: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimator.EarthDirected(tt.k); got != tt.expected {
				t.Errorf("EarthDirected(%+v) = %v, want %v", tt.k, got, tt.expected)
			}
		})
	}
}

func TestEarthDirectedCustomWindow(t *testing.T) {
	wide := &ArrivalEstimator{EarthWindowDeg: 45, SpeedFloorKmS: DefaultSpeedFloorKmS}
	k := CMEKinematics{LongitudeDeg: 40, HasLongitude: true}

	if !wide.EarthDirected(k) {
		t.Error("40 degrees should be inside a 45 degree window")
	}
	if NewArrivalEstimator().EarthDirected(k) {
		t.Error("40 degrees should be outside the default 30 degree window")
	}
}

func TestEstimateArrival(t *testing.T) {
	estimator := NewArrivalEstimator()
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	k := CMEKinematics{
		StartTime:    start,
		SpeedKmS:     500,
		LongitudeDeg: 10,
		HasLongitude: true,
	}

	arrival, ok := estimator.Estimate(k)
	if !ok {
		t.Fatal("expected an arrival estimate")
	}

	// 1.496e8 km at 500 km/s is 299200 s, about 83.1 hours
	wantTransit := time.Duration(1.496e8 / 500 * float64(time.Second))
	gotTransit := arrival.Sub(start)
	if diff := gotTransit - wantTransit; diff < -time.Second || diff > time.Second {
		t.Errorf("transit time = %v, want %v", gotTransit, wantTransit)
	}
	if hours := gotTransit.Hours(); math.Abs(hours-83.1) > 0.1 {
		t.Errorf("transit hours = %.2f, want about 83.1", hours)
	}
}

func TestEstimateFasterCMEArrivesSooner(t *testing.T) {
	estimator := NewArrivalEstimator()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	slow, okSlow := estimator.Estimate(CMEKinematics{StartTime: start, SpeedKmS: 400, HasLongitude: true})
	fast, okFast := estimator.Estimate(CMEKinematics{StartTime: start, SpeedKmS: 1200, HasLongitude: true})
	if !okSlow || !okFast {
		t.Fatal("both estimates should succeed")
	}
	if !fast.Before(slow) {
		t.Errorf("faster CME should arrive sooner: fast=%v slow=%v", fast, slow)
	}
}

func TestEstimateRejections(t *testing.T) {
	estimator := NewArrivalEstimator()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		k    CMEKinematics
	}{
		{"not earth directed", CMEKinematics{StartTime: start, SpeedKmS: 500, LongitudeDeg: 90, HasLongitude: true}},
		{"no start time", CMEKinematics{SpeedKmS: 500, HasLongitude: true}},
		{"below speed floor", CMEKinematics{StartTime: start, SpeedKmS: 50, HasLongitude: true}},
		{"zero speed", CMEKinematics{StartTime: start, SpeedKmS: 0, HasLongitude: true}},
		{"NaN speed", CMEKinematics{StartTime: start, SpeedKmS: math.NaN(), HasLongitude: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := estimator.Estimate(tt.k); ok {
				t.Errorf("Estimate(%+v) should not produce a prediction", tt.k)
			}
		})
	}
}

func TestEstimateSpeedExactlyAtFloor(t *testing.T) {
	estimator := NewArrivalEstimator()
	k := CMEKinematics{
		StartTime:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SpeedKmS:     DefaultSpeedFloorKmS,
		HasLongitude: true,
	}
	if _, ok := estimator.Estimate(k); !ok {
		t.Error("speed exactly at the floor should still produce an estimate")
	}
}
