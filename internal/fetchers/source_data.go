package fetchers

import (
	"auroracast/internal/models"

	"github.com/mmcdole/gofeed"
)

// SourceData holds the raw payloads of one poll cycle before normalization
type SourceData struct {
	Plasma [][]string               `json:"plasma"`
	Mag    [][]string               `json:"mag"`
	Xray   []models.GOESXrayPoint   `json:"xray"`
	Proton []models.GOESProtonPoint `json:"proton"`
	Flares []models.DONKIFlare      `json:"flares"`
	CMEs   []models.DONKICME        `json:"cmes"`
	SIDC   []*gofeed.Item           `json:"sidc"`
}
