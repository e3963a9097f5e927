package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"auroracast/internal/models"

	"github.com/go-resty/resty/v2"
)

// GOES energy channels used by the dashboard
const (
	xrayLongChannel    = "0.1-0.8nm"
	proton10MeVChannel = ">=10 MeV"
)

// SWPCFetcher handles fetching data from the NOAA SWPC services
type SWPCFetcher struct {
	client *resty.Client
}

// NewSWPCFetcher creates a new SWPC fetcher instance
func NewSWPCFetcher(client *resty.Client) *SWPCFetcher {
	return &SWPCFetcher{client: client}
}

// FetchPlasma fetches the solar wind plasma product. SWPC "products"
// endpoints return an array of rows with a header row first:
// [["time_tag","density","speed","temperature"], ["2025-08-27 00:00:00.000","4.5","420.1","90000"], ...]
func (f *SWPCFetcher) FetchPlasma(ctx context.Context, url string) ([][]string, error) {
	return f.fetchProduct(ctx, url, "plasma")
}

// FetchMag fetches the solar wind magnetometer product, same row format:
// [["time_tag","bx_gsm","by_gsm","bz_gsm","lon_gsm","lat_gsm","bt"], ...]
func (f *SWPCFetcher) FetchMag(ctx context.Context, url string) ([][]string, error) {
	return f.fetchProduct(ctx, url, "mag")
}

func (f *SWPCFetcher) fetchProduct(ctx context.Context, url, name string) ([][]string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SWPC %s product: %w", name, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("SWPC %s product returned status %d", name, resp.StatusCode())
	}

	var rows [][]string
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse SWPC %s product: %w", name, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("SWPC %s product has no data rows", name)
	}
	return rows, nil
}

// FetchXray fetches the GOES X-ray flux feed, keeping only the long
// (0.1-0.8nm) channel the class scale is defined on
func (f *SWPCFetcher) FetchXray(ctx context.Context, url string) ([]models.GOESXrayPoint, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GOES X-ray flux: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("GOES X-ray API returned status %d", resp.StatusCode())
	}

	var points []models.GOESXrayPoint
	if err := json.Unmarshal(resp.Body(), &points); err != nil {
		return nil, fmt.Errorf("failed to parse GOES X-ray response: %w", err)
	}

	var filtered []models.GOESXrayPoint
	for _, p := range points {
		if p.Energy == xrayLongChannel {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// FetchProtons fetches the GOES integral proton flux feed, keeping only
// the >=10 MeV channel the S-scale is defined on
func (f *SWPCFetcher) FetchProtons(ctx context.Context, url string) ([]models.GOESProtonPoint, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GOES proton flux: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("GOES proton API returned status %d", resp.StatusCode())
	}

	var points []models.GOESProtonPoint
	if err := json.Unmarshal(resp.Body(), &points); err != nil {
		return nil, fmt.Errorf("failed to parse GOES proton response: %w", err)
	}

	var filtered []models.GOESProtonPoint
	for _, p := range points {
		if p.Energy == proton10MeVChannel {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// parseFloat safely parses a string to float64
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	return strconv.ParseFloat(s, 64)
}
