package reports

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"auroracast/internal/fetchers"
	"auroracast/internal/helio"
	"auroracast/internal/models"
)

// ChartGenerator handles creation of static chart images
type ChartGenerator struct {
	outputDir string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
	}
}

// GenerateCharts creates all chart images for the forecast bundle
func (cg *ChartGenerator) GenerateCharts(snap *models.Snapshot) ([]string, error) {
	var chartFiles []string

	if speedChart, err := cg.generateSolarWindChart(snap); err == nil {
		chartFiles = append(chartFiles, speedChart)
	}

	if xrayChart, err := cg.generateXrayFluxChart(snap); err == nil {
		chartFiles = append(chartFiles, xrayChart)
	}

	if bzChart, err := cg.generateBzChart(snap); err == nil {
		chartFiles = append(chartFiles, bzChart)
	}

	if scoreChart, err := cg.generateAuroraScoreChart(snap); err == nil {
		chartFiles = append(chartFiles, scoreChart)
	}

	if impactChart, err := cg.generateImpactChart(snap); err == nil {
		chartFiles = append(chartFiles, impactChart)
	}

	return chartFiles, nil
}

// generateSolarWindChart creates a time series chart of solar wind speed
// with severity reference lines
func (cg *ChartGenerator) generateSolarWindChart(snap *models.Snapshot) (string, error) {
	filename := filepath.Join(cg.outputDir, "solar_wind_speed.png")

	var xValues []time.Time
	var yValues []float64
	for _, sample := range snap.SolarWind {
		if math.IsNaN(sample.Speed) {
			continue
		}
		xValues = append(xValues, sample.Time)
		yValues = append(yValues, sample.Speed)
	}
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough solar wind samples for chart")
	}

	graph := chart.Chart{
		Title: "Solar Wind Speed (24 Hours)",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Speed (km/s)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Speed",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	// Reference lines at the elevated and high thresholds
	minTime := float64(xValues[0].UnixNano())
	maxTime := float64(xValues[len(xValues)-1].UnixNano())
	for _, ref := range []struct {
		label string
		value float64
		color drawing.Color
	}{
		{"Elevated", 500, drawing.Color{R: 251, G: 146, B: 60, A: 255}},
		{"High", 600, drawing.Color{R: 248, G: 113, B: 113, A: 255}},
	} {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: ref.label,
			Style: chart.Style{
				StrokeColor:     ref.color,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []float64{minTime, maxTime},
			YValues: []float64{ref.value, ref.value},
		})
	}

	return cg.renderToFile(graph, filename)
}

// generateXrayFluxChart creates a log-scale time series of GOES X-ray flux.
// Flux is plotted as log10 with decade ticks labeled by flare class.
func (cg *ChartGenerator) generateXrayFluxChart(snap *models.Snapshot) (string, error) {
	filename := filepath.Join(cg.outputDir, "xray_flux.png")

	var xValues []time.Time
	var yValues []float64
	for _, sample := range snap.Xray {
		if math.IsNaN(sample.Flux) || sample.Flux <= 0 {
			continue
		}
		xValues = append(xValues, sample.Time)
		yValues = append(yValues, math.Log10(sample.Flux))
	}
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough X-ray samples for chart")
	}

	graph := chart.Chart{
		Title: "GOES X-ray Flux (24 Hours)",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Flux (W/m2)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: -9,
				Max: -3,
			},
			Ticks: []chart.Tick{
				{Value: -9, Label: "1e-9"},
				{Value: -8, Label: "A"},
				{Value: -7, Label: "B"},
				{Value: -6, Label: "C"},
				{Value: -5, Label: "M"},
				{Value: -4, Label: "X"},
				{Value: -3, Label: "X10"},
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Long 0.1-0.8nm",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 192, G: 132, B: 252, A: 255},
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	return cg.renderToFile(graph, filename)
}

// generateBzChart creates a time series of the IMF Bz component. Southward
// (negative) Bz is what drives aurora, so the zero line is marked.
func (cg *ChartGenerator) generateBzChart(snap *models.Snapshot) (string, error) {
	filename := filepath.Join(cg.outputDir, "imf_bz.png")

	var xValues []time.Time
	var yValues []float64
	for _, sample := range snap.SolarWind {
		if math.IsNaN(sample.Bz) {
			continue
		}
		xValues = append(xValues, sample.Time)
		yValues = append(yValues, sample.Bz)
	}
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough magnetometer samples for chart")
	}

	graph := chart.Chart{
		Title: "IMF Bz (24 Hours)",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Bz (nT)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Bz GSM",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
			chart.ContinuousSeries{
				Name: "Zero",
				Style: chart.Style{
					StrokeColor:     drawing.Color{R: 128, G: 128, B: 128, A: 255},
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []float64{float64(xValues[0].UnixNano()), float64(xValues[len(xValues)-1].UnixNano())},
				YValues: []float64{0, 0},
			},
		},
	}

	return cg.renderToFile(graph, filename)
}

// generateAuroraScoreChart creates a time series of the composite aurora
// score over the snapshot window
func (cg *ChartGenerator) generateAuroraScoreChart(snap *models.Snapshot) (string, error) {
	filename := filepath.Join(cg.outputDir, "aurora_score.png")

	var xValues []time.Time
	var yValues []float64
	for _, sample := range snap.SolarWind {
		score := fetchers.AuroraScore(sample)
		xValues = append(xValues, sample.Time)
		yValues = append(yValues, score)
	}
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough solar wind samples for chart")
	}

	graph := chart.Chart{
		Title: "Aurora Score (24 Hours)",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Score",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Aurora score",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 52, G: 211, B: 153, A: 255},
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	return cg.renderToFile(graph, filename)
}

// generateImpactChart plots the modeled solar wind disturbance for the
// soonest-arriving Earth-directed CME
func (cg *ChartGenerator) generateImpactChart(snap *models.Snapshot) (string, error) {
	cme, ok := soonestArrival(snap.CMEs)
	if !ok {
		return "", fmt.Errorf("no Earth-directed CME with arrival estimate")
	}

	filename := filepath.Join(cg.outputDir, "cme_impact.png")

	kinematics := helio.CMEKinematics{
		StartTime:    cme.StartTime,
		SpeedKmS:     cme.Speed,
		LongitudeDeg: cme.Longitude,
		HasLongitude: cme.HasLocation,
	}
	profile := helio.NewImpactProfile(kinematics, *cme.PredictedArrival)

	var xValues []time.Time
	var speeds []float64
	for {
		sample, more := profile.Next()
		if !more {
			break
		}
		xValues = append(xValues, sample.Time)
		speeds = append(speeds, sample.SpeedKmS)
	}
	if len(xValues) < 2 {
		return "", fmt.Errorf("impact profile produced no samples")
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Modeled CME Impact (%s)", cme.ID),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("Jan 2 15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Speed (km/s)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Modeled speed",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 244, G: 114, B: 182, A: 255},
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: speeds,
			},
		},
	}

	return cg.renderToFile(graph, filename)
}

func (cg *ChartGenerator) renderToFile(graph chart.Chart, filename string) (string, error) {
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return filename, nil
}

// soonestArrival picks the Earth-directed CME with the earliest predicted
// arrival still in the future or recent past
func soonestArrival(cmes []models.ProcessedCME) (models.ProcessedCME, bool) {
	var best models.ProcessedCME
	found := false
	for _, cme := range cmes {
		if !cme.IsEarthDirected || cme.PredictedArrival == nil {
			continue
		}
		if !found || cme.PredictedArrival.Before(*best.PredictedArrival) {
			best = cme
			found = true
		}
	}
	return best, found
}
