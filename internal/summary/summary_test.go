package summary

import (
	"math"
	"testing"
	"time"

	"auroracast/internal/models"
)

var testNow = time.Date(2024, 5, 11, 12, 0, 0, 0, time.UTC)

func sample(offset time.Duration, flux float64) models.FluxSample {
	return models.FluxSample{Time: testNow.Add(offset), Flux: flux}
}

func TestSummarizeNilWhenEmpty(t *testing.T) {
	s := NewSummarizer()

	if got := s.Summarize(nil, nil, nil, testNow); got != nil {
		t.Errorf("Summarize(nil, nil, nil) = %+v, want nil", got)
	}

	// Samples and flares entirely outside the window count as no data.
	stale := []models.FluxSample{sample(-25*time.Hour, 1e-5)}
	future := []models.FluxSample{sample(time.Minute, 1e-5)}
	oldFlare := []models.FlareEvent{{
		ClassType: "X1.0",
		PeakTime:  testNow.Add(-30 * time.Hour),
	}}
	if got := s.Summarize(stale, future, oldFlare, testNow); got != nil {
		t.Errorf("Summarize with only out-of-window inputs = %+v, want nil", got)
	}
}

func TestSummarizeWindowInclusive(t *testing.T) {
	s := NewSummarizer()

	// Both window edges are inclusive.
	edges := []models.FluxSample{
		sample(-24*time.Hour, 2e-6),
		sample(0, 1e-6),
	}
	got := s.Summarize(edges, nil, nil, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil for samples at window edges")
	}
	if got.HighestXray.Flux != 2e-6 {
		t.Errorf("HighestXray.Flux = %v, want 2e-6", got.HighestXray.Flux)
	}

	// One nanosecond past either edge is excluded.
	outside := []models.FluxSample{
		sample(-24*time.Hour-time.Nanosecond, 1e-4),
		sample(time.Nanosecond, 1e-4),
	}
	if got := s.Summarize(outside, nil, nil, testNow); got != nil {
		t.Errorf("Summarize with samples just outside window = %+v, want nil", got)
	}
}

func TestSummarizePeaks(t *testing.T) {
	s := NewSummarizer()

	xray := []models.FluxSample{
		sample(-10*time.Hour, 3e-6),
		sample(-6*time.Hour, 5.2e-5),
		sample(-2*time.Hour, math.NaN()),
		sample(-1*time.Hour, 1e-6),
	}
	proton := []models.FluxSample{
		sample(-8*time.Hour, 2.0),
		sample(-3*time.Hour, 15.0),
	}

	got := s.Summarize(xray, proton, nil, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil")
	}
	if got.HighestXray.Flux != 5.2e-5 {
		t.Errorf("HighestXray.Flux = %v, want 5.2e-5", got.HighestXray.Flux)
	}
	if got.HighestXray.Class != "M5.2" {
		t.Errorf("HighestXray.Class = %q, want M5.2", got.HighestXray.Class)
	}
	if want := testNow.Add(-6 * time.Hour); !got.HighestXray.Time.Equal(want) {
		t.Errorf("HighestXray.Time = %v, want %v", got.HighestXray.Time, want)
	}
	if got.HighestProton.Class != "S1" {
		t.Errorf("HighestProton.Class = %q, want S1", got.HighestProton.Class)
	}
}

func TestSummarizePeakTieKeepsEarliest(t *testing.T) {
	s := NewSummarizer()

	xray := []models.FluxSample{
		sample(-5*time.Hour, 1e-5),
		sample(-12*time.Hour, 1e-5),
		sample(-2*time.Hour, 1e-5),
	}
	got := s.Summarize(xray, nil, nil, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil")
	}
	if want := testNow.Add(-12 * time.Hour); !got.HighestXray.Time.Equal(want) {
		t.Errorf("tied peak time = %v, want earliest %v", got.HighestXray.Time, want)
	}
}

func TestSummarizeNaNOnlySeries(t *testing.T) {
	s := NewSummarizer()

	xray := []models.FluxSample{
		sample(-4*time.Hour, math.NaN()),
		sample(-3*time.Hour, math.NaN()),
	}
	proton := []models.FluxSample{sample(-1*time.Hour, 3.0)}

	got := s.Summarize(xray, proton, nil, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil")
	}
	if !got.HighestXray.Time.IsZero() {
		t.Errorf("HighestXray should be unset for a NaN-only series, got %+v", got.HighestXray)
	}
	if got.HighestProton.Flux != 3.0 {
		t.Errorf("HighestProton.Flux = %v, want 3.0", got.HighestProton.Flux)
	}
}

func TestSummarizeFlareCounts(t *testing.T) {
	s := NewSummarizer()

	flares := []models.FlareEvent{
		{ClassType: "X2.1", PeakTime: testNow.Add(-2 * time.Hour)},
		{ClassType: "x1.0", PeakTime: testNow.Add(-4 * time.Hour)},
		{ClassType: "M5.0", PeakTime: testNow.Add(-6 * time.Hour)},
		{ClassType: "C9.9", PeakTime: testNow.Add(-8 * time.Hour)},
		{ClassType: "M1.2", PeakTime: testNow.Add(-30 * time.Hour)},
		{ClassType: "", PeakTime: testNow.Add(-1 * time.Hour)},
	}
	got := s.Summarize(nil, nil, flares, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil")
	}
	if got.XFlareCount != 2 {
		t.Errorf("XFlareCount = %d, want 2", got.XFlareCount)
	}
	if got.MFlareCount != 1 {
		t.Errorf("MFlareCount = %d, want 1", got.MFlareCount)
	}
}

func TestSummarizePotentialCMECount(t *testing.T) {
	s := &Summarizer{EarthWindowDeg: 30}

	flares := []models.FlareEvent{
		// Counted: linked CME, |lon| within the window.
		{ClassType: "M3.0", SourceLocation: "N12W10", HasCME: true, PeakTime: testNow.Add(-1 * time.Hour)},
		{ClassType: "M1.0", SourceLocation: "S05E30", HasCME: true, PeakTime: testNow.Add(-2 * time.Hour)},
		// Not counted: outside the window.
		{ClassType: "X1.0", SourceLocation: "N08W75", HasCME: true, PeakTime: testNow.Add(-3 * time.Hour)},
		// Not counted: no linked CME.
		{ClassType: "M9.0", SourceLocation: "N01W01", HasCME: false, PeakTime: testNow.Add(-4 * time.Hour)},
		// Not counted: unparseable location.
		{ClassType: "M2.0", SourceLocation: "near disk center", HasCME: true, PeakTime: testNow.Add(-5 * time.Hour)},
	}
	got := s.Summarize(nil, nil, flares, testNow)
	if got == nil {
		t.Fatal("Summarize returned nil")
	}
	if got.PotentialCMECount != 2 {
		t.Errorf("PotentialCMECount = %d, want 2", got.PotentialCMECount)
	}

	wide := &Summarizer{EarthWindowDeg: 80}
	got = wide.Summarize(nil, nil, flares, testNow)
	if got.PotentialCMECount != 3 {
		t.Errorf("PotentialCMECount with 80 degree window = %d, want 3", got.PotentialCMECount)
	}
}

func TestFlareReferenceTimeFallback(t *testing.T) {
	s := NewSummarizer()

	// A flare with only a begin time still lands in the window.
	beginOnly := []models.FlareEvent{{
		ClassType: "M1.0",
		BeginTime: testNow.Add(-2 * time.Hour),
	}}
	got := s.Summarize(nil, nil, beginOnly, testNow)
	if got == nil || got.MFlareCount != 1 {
		t.Errorf("begin-time fallback: got %+v, want MFlareCount 1", got)
	}

	endOnly := []models.FlareEvent{{
		ClassType: "X1.0",
		EndTime:   testNow.Add(-2 * time.Hour),
	}}
	got = s.Summarize(nil, nil, endOnly, testNow)
	if got == nil || got.XFlareCount != 1 {
		t.Errorf("end-time fallback: got %+v, want XFlareCount 1", got)
	}

	// All timestamps zero means the flare cannot be placed in any window.
	noTimes := []models.FlareEvent{{ClassType: "X5.0"}}
	if got := s.Summarize(nil, nil, noTimes, testNow); got != nil {
		t.Errorf("flare without timestamps produced %+v, want nil", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	s := NewSummarizer()

	xray := []models.FluxSample{sample(-6*time.Hour, 5.2e-5)}
	flares := []models.FlareEvent{
		{ClassType: "M5.2", SourceLocation: "N12W10", HasCME: true, PeakTime: testNow.Add(-6 * time.Hour)},
	}

	first := s.Summarize(xray, nil, flares, testNow)
	second := s.Summarize(xray, nil, flares, testNow)
	if first == nil || second == nil {
		t.Fatal("Summarize returned nil")
	}
	if *first != *second {
		t.Errorf("repeated Summarize differs: %+v vs %+v", *first, *second)
	}
}
