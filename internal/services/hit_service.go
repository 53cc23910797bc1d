package services

import (
	"context"
	"time"

	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/models"
)

// HitRow is a hit with its references resolved to names.
type HitRow struct {
	ID        uint           `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	IPAddress string         `json:"ipAddress"`
	Email     string         `json:"email,omitempty"`
	Type      models.HitType `json:"type"`
	TypeName  string         `json:"typeName"`
	Source    string         `json:"source"`
	Campaign  string         `json:"campaign"`
	Honeypot  string         `json:"honeypot"`
}

type HitService struct {
	backend Backend
}

func NewHitService(b Backend) *HitService {
	return &HitService{backend: b}
}

// List fetches hits, then the sources and campaigns needed to name them.
func (s *HitService) List(ctx context.Context) ([]HitRow, error) {
	hits, err := s.backend.ListHits(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]HitRow, len(hits))
	for i, h := range hits {
		rows[i] = hitRow(h, lookup)
	}
	return rows, nil
}

func (s *HitService) Get(ctx context.Context, id uint) (*HitRow, error) {
	hit, err := s.backend.GetHit(ctx, id)
	if err != nil {
		return nil, err
	}
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	row := hitRow(*hit, lookup)
	return &row, nil
}

func (s *HitService) Delete(ctx context.Context, id uint) error {
	return s.backend.DeleteHit(ctx, id)
}

func (s *HitService) lookup(ctx context.Context) (*dashboard.Lookup, error) {
	sources, err := s.backend.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.backend.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.NewLookup(sources, campaigns, nil, nil), nil
}

func hitRow(h models.Hit, lookup *dashboard.Lookup) HitRow {
	return HitRow{
		ID:        h.ID,
		CreatedAt: h.CreatedAt,
		IPAddress: h.IPAddress,
		Email:     h.Email,
		Type:      h.Type,
		TypeName:  h.Type.String(),
		Source:    lookup.SourceLabel(h.SourceID),
		Campaign:  lookup.CampaignLabel(h.CampaignID),
		Honeypot:  lookup.HoneypotLabel(h.HoneypotID),
	}
}
