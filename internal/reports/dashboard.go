package reports

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"auroracast/internal/models"
	"auroracast/internal/scale"
)

// DashboardBuilder renders interactive ECharts panels for the bundle page
type DashboardBuilder struct{}

// NewDashboardBuilder creates a dashboard builder
func NewDashboardBuilder() *DashboardBuilder {
	return &DashboardBuilder{}
}

// BuildAuroraGauge renders a gauge for the composite aurora score
func (d *DashboardBuilder) BuildAuroraGauge(conditions models.CurrentConditions) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "400px",
			Height: "300px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Aurora Score",
		}),
	)

	score := conditions.AuroraScore.Value
	if math.IsNaN(score) {
		score = 0
	}
	gauge.AddSeries("Aurora Score", []opts.GaugeData{
		{Name: conditions.AuroraScore.Bucket, Value: math.Round(score)},
	})

	var buf bytes.Buffer
	if err := gauge.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render aurora gauge: %w", err)
	}
	return buf.String(), nil
}

// BuildSolarWindTrend renders a line chart of speed and density over the
// snapshot window
func (d *DashboardBuilder) BuildSolarWindTrend(samples []models.SolarWindSample) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Solar Wind Trends",
			Subtitle: "Speed and Density from DSCOVR/ACE",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time (UTC)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Value",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	var xAxis []string
	var speedData, densityData []opts.LineData
	for _, sample := range samples {
		if math.IsNaN(sample.Speed) && math.IsNaN(sample.Density) {
			continue
		}
		xAxis = append(xAxis, sample.Time.Format("15:04"))
		speedData = append(speedData, lineValue(sample.Speed))
		densityData = append(densityData, lineValue(sample.Density*10))
	}

	line.SetXAxis(xAxis).
		AddSeries("Speed (km/s)", speedData).
		AddSeries("Density (x10 p/cm3)", densityData).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render solar wind trend: %w", err)
	}
	return buf.String(), nil
}

// BuildConditionBars renders the classified gauge readings as a bar chart
// colored by severity bucket
func (d *DashboardBuilder) BuildConditionBars(conditions models.CurrentConditions) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Current Conditions",
			Subtitle: fmt.Sprintf("Overall activity: %s", conditions.OverallStatus),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Quantity",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Severity",
		}),
	)

	readings := []struct {
		label   string
		reading models.GaugeReading
	}{
		{"Speed", conditions.Speed},
		{"Density", conditions.Density},
		{"Bt", conditions.Bt},
		{"Bz", conditions.Bz},
		{"Aurora", conditions.AuroraScore},
	}

	xAxis := make([]string, 0, len(readings))
	barData := make([]opts.BarData, 0, len(readings))
	for _, r := range readings {
		xAxis = append(xAxis, r.label)
		barData = append(barData, opts.BarData{
			Value: scale.ParseBucket(r.reading.Bucket).Severity(),
			ItemStyle: &opts.ItemStyle{
				Color: r.reading.Color.Solid,
			},
		})
	}

	bar.SetXAxis(xAxis).AddSeries("Severity", barData)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render condition bars: %w", err)
	}
	return buf.String(), nil
}

// BuildImpactTimeline renders predicted CME arrivals as a scatter over the
// next days
func (d *DashboardBuilder) BuildImpactTimeline(cmes []models.ProcessedCME, now time.Time) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "300px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Predicted CME Arrivals",
			Subtitle: "Earth-directed events with transit estimates",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Arrival (UTC)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Speed (km/s)",
		}),
	)

	var xAxis []string
	var speeds []opts.LineData
	for _, cme := range cmes {
		if !cme.IsEarthDirected || cme.PredictedArrival == nil {
			continue
		}
		xAxis = append(xAxis, cme.PredictedArrival.Format("Jan 2 15:04"))
		speeds = append(speeds, opts.LineData{Value: cme.Speed, Name: cme.ID})
	}
	if len(xAxis) == 0 {
		return "", fmt.Errorf("no Earth-directed CMEs to plot")
	}

	line.SetXAxis(xAxis).AddSeries("CME speed", speeds)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render impact timeline: %w", err)
	}
	return buf.String(), nil
}

func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: nil}
	}
	return opts.LineData{Value: v}
}

// severityLegend builds the textual color legend shown under the gauges
func severityLegend() string {
	var out string
	for _, b := range scale.Buckets() {
		out += fmt.Sprintf(`<span class="legend-item" style="color:%s">%s</span> `, b.Color().Solid, b.String())
	}
	return out
}
