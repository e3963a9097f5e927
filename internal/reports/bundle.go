package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"auroracast/internal/fetchers"
	"auroracast/internal/logger"
	"auroracast/internal/models"
	"auroracast/internal/storage"
)

// GeneratedFiles contains all files produced for one forecast bundle
type GeneratedFiles struct {
	HTMLContent string
	ChartFiles  []string // absolute paths in the temp dir
	JSONFiles   map[string][]byte
	FolderPath  string
}

// BundleGenerator produces the complete set of bundle files for a snapshot
type BundleGenerator struct {
	htmlBuilder *HTMLBuilder
	dashboard   *DashboardBuilder
	chartHTML   *ChartHTMLBuilder
	log         *logger.Logger
}

// NewBundleGenerator creates a bundle generator
func NewBundleGenerator() *BundleGenerator {
	return &BundleGenerator{
		htmlBuilder: NewHTMLBuilder(),
		dashboard:   NewDashboardBuilder(),
		chartHTML:   NewChartHTMLBuilder(),
		log:         logger.Global().WithComponent("reports"),
	}
}

// GenerateAllFiles creates all bundle files (HTML, charts, JSON) in a
// temporary directory. The caller stores them and removes the directory.
func (bg *BundleGenerator) GenerateAllFiles(ctx context.Context, snap *models.Snapshot, sourceData *fetchers.SourceData, discussion string) (*GeneratedFiles, string, error) {
	tempDir, err := os.MkdirTemp("", "auroracast_bundle_")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	files := &GeneratedFiles{
		JSONFiles:  make(map[string][]byte),
		FolderPath: storage.BundleFolderPath(snap.Timestamp),
	}

	if err := bg.generateJSONFiles(snap, sourceData, files); err != nil {
		bg.log.Warn("Failed to generate JSON files", map[string]interface{}{"error": err.Error()})
	}

	chartGen := NewChartGenerator(tempDir)
	chartFiles, err := chartGen.GenerateCharts(snap)
	if err != nil {
		bg.log.Warn("Chart generation incomplete", map[string]interface{}{"error": err.Error()})
	}
	files.ChartFiles = chartFiles

	if err := bg.generateHTML(snap, discussion, files); err != nil {
		os.RemoveAll(tempDir)
		return nil, "", fmt.Errorf("failed to generate HTML: %w", err)
	}

	return files, tempDir, nil
}

// generateJSONFiles serializes the snapshot and raw source payloads
func (bg *BundleGenerator) generateJSONFiles(snap *models.Snapshot, sourceData *fetchers.SourceData, files *GeneratedFiles) error {
	snapJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	files.JSONFiles["snapshot.json"] = snapJSON

	if sourceData == nil {
		return nil
	}

	store := func(name string, v interface{}) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			bg.log.Warnf("Failed to marshal %s: %v", name, err)
			return
		}
		files.JSONFiles[name] = data
	}
	if sourceData.Plasma != nil {
		store("swpc_plasma.json", sourceData.Plasma)
	}
	if sourceData.Mag != nil {
		store("swpc_mag.json", sourceData.Mag)
	}
	if sourceData.Xray != nil {
		store("goes_xray.json", sourceData.Xray)
	}
	if sourceData.Proton != nil {
		store("goes_proton.json", sourceData.Proton)
	}
	if sourceData.Flares != nil {
		store("donki_flares.json", sourceData.Flares)
	}
	if sourceData.CMEs != nil {
		store("donki_cmes.json", sourceData.CMEs)
	}
	return nil
}

// generateHTML assembles the bundle index page
func (bg *BundleGenerator) generateHTML(snap *models.Snapshot, discussion string, files *GeneratedFiles) error {
	discussionHTML, err := bg.htmlBuilder.ConvertMarkdownToHTML(discussion)
	if err != nil {
		return fmt.Errorf("failed to convert discussion markdown: %w", err)
	}
	discussionHTML += string(bg.htmlBuilder.BuildSummaryTable(snap.Summary))

	var sections []string
	if gauge, err := bg.dashboard.BuildAuroraGauge(snap.Conditions); err == nil {
		sections = append(sections, gauge)
	}
	if bars, err := bg.dashboard.BuildConditionBars(snap.Conditions); err == nil {
		sections = append(sections, bars)
	}
	if trend, err := bg.dashboard.BuildSolarWindTrend(snap.SolarWind); err == nil {
		sections = append(sections, trend)
	}
	if timeline, err := bg.dashboard.BuildImpactTimeline(snap.CMEs, snap.Timestamp); err == nil {
		sections = append(sections, timeline)
	}

	chartsHTML := bg.chartHTML.BuildChartsHTML(files.ChartFiles, files.FolderPath)

	files.HTMLContent = bg.htmlBuilder.BuildCompleteHTML(discussionHTML, snap, sections, chartsHTML)
	bg.log.Debug("Generated bundle HTML", map[string]interface{}{"bytes": len(files.HTMLContent)})
	return nil
}

// StoreBundle uploads all generated files through the storage client and
// returns the bundle folder path
func StoreBundle(ctx context.Context, client storage.Client, files *GeneratedFiles, tempDir string, timestamp time.Time) (string, error) {
	defer os.RemoveAll(tempDir)

	if _, err := client.StoreBundleFile(ctx, []byte(files.HTMLContent), "index.html", timestamp); err != nil {
		return "", fmt.Errorf("failed to store bundle index: %w", err)
	}

	for filename, data := range files.JSONFiles {
		if _, err := client.StoreBundleFile(ctx, data, filename, timestamp); err != nil {
			return "", fmt.Errorf("failed to store %s: %w", filename, err)
		}
	}

	for _, chartPath := range files.ChartFiles {
		data, err := os.ReadFile(chartPath)
		if err != nil {
			return "", fmt.Errorf("failed to read chart %s: %w", chartPath, err)
		}
		if _, err := client.StoreBundleFile(ctx, data, filepath.Base(chartPath), timestamp); err != nil {
			return "", fmt.Errorf("failed to store chart %s: %w", chartPath, err)
		}
	}

	return files.FolderPath, nil
}
