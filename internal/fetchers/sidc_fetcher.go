package fetchers

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// SIDCFetcher fetches the SIDC "URSIgram" bulletin RSS feed
type SIDCFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewSIDCFetcher creates a new SIDC fetcher instance
func NewSIDCFetcher(client *resty.Client) *SIDCFetcher {
	return &SIDCFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// FetchBulletins fetches and parses the bulletin feed
func (f *SIDCFetcher) FetchBulletins(ctx context.Context, url string) ([]*gofeed.Item, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SIDC bulletins: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("SIDC bulletin feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SIDC bulletin feed: %w", err)
	}
	return feed.Items, nil
}
