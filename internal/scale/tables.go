package scale

import (
	"fmt"
	"math"
)

// Direction controls how a threshold table is evaluated
type Direction int

const (
	// AscendingSeverity means larger values are worse (speed, density, flux)
	AscendingSeverity Direction = iota
	// DescendingSeverity means more negative values are worse (Bz)
	DescendingSeverity
)

// Threshold is one boundary of a table
type Threshold struct {
	Bucket Bucket
	Bound  float64
}

// ThresholdTable maps a scalar reading of one physical quantity to a
// severity bucket. Boundaries are ordered most severe first so the first
// match wins.
type ThresholdTable struct {
	Quantity  string
	Direction Direction
	Steps     []Threshold
}

// NewThresholdTable validates and builds a table. Steps must be ordered
// most severe bucket first with boundaries strictly ordered accordingly.
func NewThresholdTable(quantity string, direction Direction, steps []Threshold) (*ThresholdTable, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("threshold table %q has no steps", quantity)
	}
	for i, s := range steps {
		if s.Bucket == Gray {
			return nil, fmt.Errorf("threshold table %q: gray is the implicit baseline, not a step", quantity)
		}
		if i == 0 {
			continue
		}
		prev := steps[i-1]
		if s.Bucket.Severity() >= prev.Bucket.Severity() {
			return nil, fmt.Errorf("threshold table %q: steps must descend in severity", quantity)
		}
		switch direction {
		case AscendingSeverity:
			if s.Bound >= prev.Bound {
				return nil, fmt.Errorf("threshold table %q: bounds must descend with severity", quantity)
			}
		case DescendingSeverity:
			if s.Bound <= prev.Bound {
				return nil, fmt.Errorf("threshold table %q: bounds must ascend with severity", quantity)
			}
		}
	}
	return &ThresholdTable{Quantity: quantity, Direction: direction, Steps: steps}, nil
}

func mustTable(quantity string, direction Direction, steps []Threshold) *ThresholdTable {
	t, err := NewThresholdTable(quantity, direction, steps)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify maps a reading to its severity bucket. The function is total:
// NaN classifies as the gray baseline, infinities follow the comparisons.
func (t *ThresholdTable) Classify(value float64) Bucket {
	if math.IsNaN(value) {
		return Gray
	}
	for _, s := range t.Steps {
		switch t.Direction {
		case AscendingSeverity:
			if value >= s.Bound {
				return s.Bucket
			}
		case DescendingSeverity:
			if value <= s.Bound {
				return s.Bucket
			}
		}
	}
	return Gray
}

// Built-in tables for the solar wind gauges. The boundaries are display
// heuristics tuned for mid-latitude aurora hunting, not NOAA G-scale values.
var (
	SpeedTable = mustTable("speed", AscendingSeverity, []Threshold{
		{Pink, 800}, {Purple, 700}, {Red, 600}, {Orange, 500}, {Yellow, 400},
	})

	DensityTable = mustTable("density", AscendingSeverity, []Threshold{
		{Pink, 50}, {Purple, 30}, {Red, 20}, {Orange, 15}, {Yellow, 10},
	})

	PowerTable = mustTable("power", AscendingSeverity, []Threshold{
		{Pink, 200}, {Purple, 100}, {Red, 75}, {Orange, 50}, {Yellow, 25},
	})

	BtTable = mustTable("bt", AscendingSeverity, []Threshold{
		{Pink, 50}, {Purple, 30}, {Red, 20}, {Orange, 15}, {Yellow, 10},
	})

	BzTable = mustTable("bz", DescendingSeverity, []Threshold{
		{Pink, -50}, {Purple, -30}, {Red, -20}, {Orange, -15}, {Yellow, -10},
	})
)
