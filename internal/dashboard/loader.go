package dashboard

import (
	"context"
	"fmt"

	"github.com/Wikid82/snare/internal/models"
)

// Fetcher is the slice of the backend client the dashboard needs.
type Fetcher interface {
	ListSources(ctx context.Context) ([]models.Source, error)
	ListHoneypots(ctx context.Context) ([]models.Honeypot, error)
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	ListHits(ctx context.Context) ([]models.Hit, error)
}

// Dataset holds the raw records behind a dashboard.
type Dataset struct {
	Sources   []models.Source   `json:"sources"`
	Honeypots []models.Honeypot `json:"honeypots"`
	Campaigns []models.Campaign `json:"campaigns"`
	Hits      []models.Hit      `json:"hits"`
}

// Load fetches sources, honeypots, campaigns and hits, in that order. Each
// request starts after the previous one succeeded. On failure the records
// fetched so far are returned along with the error.
func Load(ctx context.Context, f Fetcher) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Sources, err = f.ListSources(ctx); err != nil {
		return ds, fmt.Errorf("load sources: %w", err)
	}
	if ds.Honeypots, err = f.ListHoneypots(ctx); err != nil {
		return ds, fmt.Errorf("load honeypots: %w", err)
	}
	if ds.Campaigns, err = f.ListCampaigns(ctx); err != nil {
		return ds, fmt.Errorf("load campaigns: %w", err)
	}
	if ds.Hits, err = f.ListHits(ctx); err != nil {
		return ds, fmt.Errorf("load hits: %w", err)
	}
	return ds, nil
}
