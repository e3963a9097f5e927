package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auroracast/internal/models"

	"github.com/go-resty/resty/v2"
)

// CatalogWindowDays is how far back the DONKI catalogs are queried
const CatalogWindowDays = 7

// DONKIFetcher handles fetching flare and CME catalogs from NASA DONKI
type DONKIFetcher struct {
	client *resty.Client
	apiKey string
}

// NewDONKIFetcher creates a new DONKI fetcher instance
func NewDONKIFetcher(client *resty.Client, apiKey string) *DONKIFetcher {
	return &DONKIFetcher{client: client, apiKey: apiKey}
}

// FetchFlares fetches the FLR catalog for the last CatalogWindowDays days
func (f *DONKIFetcher) FetchFlares(ctx context.Context, url string, now time.Time) ([]models.DONKIFlare, error) {
	body, err := f.fetchCatalog(ctx, url, "FLR", now)
	if err != nil {
		return nil, err
	}

	var flares []models.DONKIFlare
	if err := json.Unmarshal(body, &flares); err != nil {
		return nil, fmt.Errorf("failed to parse DONKI FLR response: %w", err)
	}
	return flares, nil
}

// FetchCMEs fetches the CME catalog for the last CatalogWindowDays days
func (f *DONKIFetcher) FetchCMEs(ctx context.Context, url string, now time.Time) ([]models.DONKICME, error) {
	body, err := f.fetchCatalog(ctx, url, "CME", now)
	if err != nil {
		return nil, err
	}

	var cmes []models.DONKICME
	if err := json.Unmarshal(body, &cmes); err != nil {
		return nil, fmt.Errorf("failed to parse DONKI CME response: %w", err)
	}
	return cmes, nil
}

func (f *DONKIFetcher) fetchCatalog(ctx context.Context, url, name string, now time.Time) ([]byte, error) {
	start := now.AddDate(0, 0, -CatalogWindowDays)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"startDate": start.UTC().Format("2006-01-02"),
			"endDate":   now.UTC().Format("2006-01-02"),
			"api_key":   f.apiKey,
		}).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch DONKI %s catalog: %w", name, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("DONKI %s API returned status %d", name, resp.StatusCode())
	}
	return resp.Body(), nil
}
