package fetchers

import (
	"context"
	"fmt"
	"time"

	"auroracast/internal/config"
	"auroracast/internal/logger"
	"auroracast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// DataFetcher handles fetching and normalizing data from all sources
type DataFetcher struct {
	cfg        *config.Config
	swpc       *SWPCFetcher
	donki      *DONKIFetcher
	sidc       *SIDCFetcher
	normalizer *Normalizer
	log        *logger.Logger
}

// NewDataFetcher creates a data fetcher for the configured sources
func NewDataFetcher(cfg *config.Config) *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &DataFetcher{
		cfg:        cfg,
		swpc:       NewSWPCFetcher(client),
		donki:      NewDONKIFetcher(client, cfg.NASAAPIKey),
		sidc:       NewSIDCFetcher(client),
		normalizer: NewNormalizer(cfg.EarthWindowDeg, cfg.CMESpeedFloor, cfg.FlareAlertClass),
		log:        logger.Global().WithComponent("fetcher"),
	}
}

// FetchSnapshot fetches every source concurrently and normalizes the
// results into one snapshot. A failed source is logged and left empty;
// the snapshot is still produced from whatever arrived.
func (f *DataFetcher) FetchSnapshot(ctx context.Context) (*models.Snapshot, *SourceData, error) {
	f.log.Info("starting data fetch from all sources")
	now := time.Now().UTC()

	plasmaChan := make(chan [][]string, 1)
	magChan := make(chan [][]string, 1)
	xrayChan := make(chan []models.GOESXrayPoint, 1)
	protonChan := make(chan []models.GOESProtonPoint, 1)
	flareChan := make(chan []models.DONKIFlare, 1)
	cmeChan := make(chan []models.DONKICME, 1)
	sidcChan := make(chan []*gofeed.Item, 1)

	const sources = 7
	errChan := make(chan error, sources)

	go func() {
		data, err := f.swpc.FetchPlasma(ctx, f.cfg.SWPCPlasmaURL)
		if err != nil {
			errChan <- fmt.Errorf("plasma fetch failed: %w", err)
			return
		}
		plasmaChan <- data
	}()

	go func() {
		data, err := f.swpc.FetchMag(ctx, f.cfg.SWPCMagURL)
		if err != nil {
			errChan <- fmt.Errorf("mag fetch failed: %w", err)
			return
		}
		magChan <- data
	}()

	go func() {
		data, err := f.swpc.FetchXray(ctx, f.cfg.SWPCXrayURL)
		if err != nil {
			errChan <- fmt.Errorf("xray fetch failed: %w", err)
			return
		}
		xrayChan <- data
	}()

	go func() {
		data, err := f.swpc.FetchProtons(ctx, f.cfg.SWPCProtonURL)
		if err != nil {
			errChan <- fmt.Errorf("proton fetch failed: %w", err)
			return
		}
		protonChan <- data
	}()

	go func() {
		data, err := f.donki.FetchFlares(ctx, f.cfg.DONKIFlareURL, now)
		if err != nil {
			errChan <- fmt.Errorf("flare catalog fetch failed: %w", err)
			return
		}
		flareChan <- data
	}()

	go func() {
		data, err := f.donki.FetchCMEs(ctx, f.cfg.DONKICMEURL, now)
		if err != nil {
			errChan <- fmt.Errorf("CME catalog fetch failed: %w", err)
			return
		}
		cmeChan <- data
	}()

	go func() {
		data, err := f.sidc.FetchBulletins(ctx, f.cfg.SIDCBulletinURL)
		if err != nil {
			errChan <- fmt.Errorf("SIDC fetch failed: %w", err)
			return
		}
		sidcChan <- data
	}()

	raw := &SourceData{}
	completed := 0
	failures := 0
	for completed < sources {
		select {
		case raw.Plasma = <-plasmaChan:
			completed++
		case raw.Mag = <-magChan:
			completed++
		case raw.Xray = <-xrayChan:
			completed++
		case raw.Proton = <-protonChan:
			completed++
		case raw.Flares = <-flareChan:
			completed++
		case raw.CMEs = <-cmeChan:
			completed++
		case raw.SIDC = <-sidcChan:
			completed++
		case err := <-errChan:
			f.log.Error("source fetch failed", err)
			completed++
			failures++
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	if failures == sources {
		return nil, nil, fmt.Errorf("all %d data sources failed", sources)
	}

	snap := f.normalizer.Normalize(raw, now)
	f.log.Info("data fetch and normalization completed", map[string]interface{}{
		"failed_sources": failures,
	})
	return snap, raw, nil
}
