package services

import (
	"context"
	"time"

	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/models"
)

// CampaignRow is one line of the campaign list.
type CampaignRow struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Honeypots int        `json:"honeypots"`
}

// HoneypotRow is a honeypot with its listener and source names resolved.
type HoneypotRow struct {
	models.Honeypot
	Listener string `json:"listener"`
	Source   string `json:"source"`
}

type CampaignDetail struct {
	Campaign  models.Campaign `json:"campaign"`
	Honeypots []HoneypotRow   `json:"honeypots"`
}

// CampaignForm is everything the campaign editor needs.
type CampaignForm struct {
	Mode      FormMode          `json:"mode"`
	Title     string            `json:"title"`
	Campaign  models.Campaign   `json:"campaign"`
	Listeners []models.Listener `json:"listeners"`
	Sources   []models.Source   `json:"sources"`
	// HoneypotTemplate prefills a new honeypot row with the first listener
	// and source.
	HoneypotTemplate models.Honeypot `json:"honeypotTemplate"`
}

type CampaignService struct {
	backend Backend
}

func NewCampaignService(b Backend) *CampaignService {
	return &CampaignService{backend: b}
}

func (s *CampaignService) List(ctx context.Context) ([]CampaignRow, error) {
	campaigns, err := s.backend.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return campaignRows(campaigns), nil
}

func campaignRows(campaigns []models.Campaign) []CampaignRow {
	rows := make([]CampaignRow, len(campaigns))
	for i, c := range campaigns {
		rows[i] = CampaignRow{ID: c.ID, Name: c.Name, UpdatedAt: c.UpdatedAt, Honeypots: len(c.Honeypots)}
	}
	return rows
}

// Get returns a campaign with honeypot references resolved.
func (s *CampaignService) Get(ctx context.Context, id uint) (*CampaignDetail, error) {
	campaign, err := s.backend.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	listeners, err := s.backend.ListListeners(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.backend.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	lookup := dashboard.NewLookup(sources, nil, listeners, nil)
	rows := make([]HoneypotRow, len(campaign.Honeypots))
	for i, hp := range campaign.Honeypots {
		rows[i] = HoneypotRow{
			Honeypot: hp,
			Listener: lookup.ListenerLabel(hp.ListenerID),
			Source:   lookup.SourceLabel(hp.SourceID),
		}
	}
	return &CampaignDetail{Campaign: *campaign, Honeypots: rows}, nil
}

// Form loads the editor model. id is ignored in create mode.
func (s *CampaignService) Form(ctx context.Context, mode FormMode, id uint) (*CampaignForm, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	sources, err := s.backend.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	listeners, err := s.backend.ListListeners(ctx)
	if err != nil {
		return nil, err
	}

	form := &CampaignForm{
		Mode:      mode,
		Campaign:  models.Campaign{Honeypots: []models.Honeypot{}},
		Listeners: listeners,
		Sources:   sources,
	}
	if len(listeners) > 0 {
		form.HoneypotTemplate.ListenerID = listeners[0].ID
	}
	if len(sources) > 0 {
		form.HoneypotTemplate.SourceID = sources[0].ID
	}

	if mode != FormCreate {
		campaign, err := s.backend.GetCampaign(ctx, id)
		if err != nil {
			return nil, err
		}
		form.Campaign = *campaign
		form.HoneypotTemplate.CampaignID = campaign.ID
	}
	form.Title = formTitle(mode, "Campaign", form.Campaign.ID)
	return form, nil
}

func (s *CampaignService) Create(ctx context.Context, c models.Campaign) (*models.Campaign, error) {
	c.ID = 0
	if err := c.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.backend.CreateCampaign(ctx, c)
}

func (s *CampaignService) Update(ctx context.Context, id uint, c models.Campaign) (*models.Campaign, error) {
	if err := c.Validate(); err != nil {
		return nil, invalid(err)
	}
	for i := range c.Honeypots {
		c.Honeypots[i].CampaignID = id
	}
	return s.backend.UpdateCampaign(ctx, id, c)
}

func (s *CampaignService) Delete(ctx context.Context, id uint) error {
	return s.backend.DeleteCampaign(ctx, id)
}
