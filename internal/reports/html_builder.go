package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"auroracast/internal/models"
)

// HTMLBuilder assembles the bundle index page with goldmark
type HTMLBuilder struct {
	goldmark goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // chart snippets are raw HTML
		),
	)

	return &HTMLBuilder{goldmark: md}
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildCompleteHTML creates the full bundle index document with summary
// cards, the converted discussion, and chart sections
func (h *HTMLBuilder) BuildCompleteHTML(discussionHTML string, snap *models.Snapshot, dashboardSections []string, chartsHTML string) string {
	timestamp := snap.Timestamp.Format("2006-01-02 15:04:05 UTC")
	conditions := snap.Conditions

	var dashboards strings.Builder
	for _, section := range dashboardSections {
		dashboards.WriteString(`<div class="chart-container">
`)
		dashboards.WriteString(section)
		dashboards.WriteString(`</div>
`)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Aurora Forecast - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #e5e7eb;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #0f172a;
        }
        .header {
            background: linear-gradient(135deg, #1e293b 0%%, #312e81 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 { margin: 0; font-size: 2.2em; }
        .header .timestamp { opacity: 0.8; margin-top: 10px; }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: #1e293b;
            padding: 20px;
            border-radius: 8px;
            border-left: 4px solid %s;
        }
        .card h3 { margin-top: 0; color: #94a3b8; }
        .metric { font-size: 1.5em; font-weight: bold; }
        .content, .charts-section {
            background: #1e293b;
            padding: 30px;
            border-radius: 8px;
            margin-bottom: 30px;
        }
        .chart-container { margin-bottom: 40px; background: #f8fafc; border-radius: 8px; padding: 10px; }
        .chart-image { max-width: 100%%; height: auto; border-radius: 6px; }
        .legend-item { font-weight: bold; margin-right: 10px; }
        .footer { text-align: center; color: #64748b; font-size: 0.9em; margin-top: 30px; }
        h2 { border-bottom: 2px solid #312e81; padding-bottom: 5px; }
        table { border-collapse: collapse; width: 100%%; margin: 20px 0; }
        th, td { border: 1px solid #334155; padding: 10px; text-align: left; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Aurora Forecast</h1>
        <div class="timestamp">Generated: %s</div>
    </div>

    <div class="summary-cards">
        <div class="card" style="border-left-color:%s">
            <h3>Solar Wind</h3>
            <div class="metric" style="color:%s">%s km/s</div>
            <div>Speed (%s)</div>
        </div>
        <div class="card" style="border-left-color:%s">
            <h3>IMF Bz</h3>
            <div class="metric" style="color:%s">%s nT</div>
            <div>Southward drives aurora (%s)</div>
        </div>
        <div class="card" style="border-left-color:%s">
            <h3>Aurora Score</h3>
            <div class="metric" style="color:%s">%s / 100</div>
            <div>%s</div>
        </div>
        <div class="card">
            <h3>Activity</h3>
            <div class="metric">%s</div>
            <div>X-ray %s, Proton %s</div>
        </div>
    </div>

    <div class="content">
        %s
    </div>

    <div class="charts-section">
        <h2>Live Panels</h2>
        <div>%s</div>
%s    </div>

    %s

    <div class="footer">
        <p>Data sources: NOAA SWPC, NASA DONKI, SIDC</p>
    </div>
</body>
</html>`,
		snap.Timestamp.Format("2006-01-02"),
		conditions.AuroraScore.Color.Solid,
		timestamp,
		conditions.Speed.Color.Solid,
		conditions.Speed.Color.Solid,
		formatGaugeValue(conditions.Speed.Value, "%.0f"),
		conditions.Speed.Bucket,
		conditions.Bz.Color.Solid,
		conditions.Bz.Color.Solid,
		formatGaugeValue(conditions.Bz.Value, "%.1f"),
		conditions.Bz.Bucket,
		conditions.AuroraScore.Color.Solid,
		conditions.AuroraScore.Color.Solid,
		formatGaugeValue(conditions.AuroraScore.Value, "%.0f"),
		conditions.AuroraScore.Bucket,
		conditions.OverallStatus,
		conditions.XrayClass,
		conditions.ProtonClass,
		discussionHTML,
		severityLegend(),
		dashboards.String(),
		chartsHTML,
	)
}

// BuildSummaryTable renders the 24-hour activity summary as an HTML table
func (h *HTMLBuilder) BuildSummaryTable(summary *models.ActivitySummary) template.HTML {
	if summary == nil {
		return template.HTML("<p>No significant activity in the past 24 hours.</p>")
	}

	var buf strings.Builder
	buf.WriteString(`<table class="activity-summary">`)
	buf.WriteString(`<thead><tr><th>Metric</th><th>Value</th><th>Time (UTC)</th></tr></thead><tbody>`)

	writeRow := func(name string, peak models.PeakReading) {
		if peak.Time.IsZero() {
			buf.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>n/a</td><td></td></tr>`, name))
			return
		}
		buf.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
			name, template.HTMLEscapeString(peak.Class), peak.Time.Format("Jan 2 15:04")))
	}
	writeRow("Highest X-ray flux", summary.HighestXray)
	writeRow("Highest proton flux", summary.HighestProton)

	buf.WriteString(fmt.Sprintf(`<tr><td>X-class flares</td><td>%d</td><td></td></tr>`, summary.XFlareCount))
	buf.WriteString(fmt.Sprintf(`<tr><td>M-class flares</td><td>%d</td><td></td></tr>`, summary.MFlareCount))
	buf.WriteString(fmt.Sprintf(`<tr><td>Potential Earth-directed CMEs</td><td>%d</td><td></td></tr>`, summary.PotentialCMECount))
	buf.WriteString(`</tbody></table>`)

	return template.HTML(buf.String())
}

func formatGaugeValue(v float64, format string) string {
	if v != v { // NaN
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}
