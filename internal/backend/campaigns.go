package backend

import (
	"context"
	"net/http"

	"github.com/Wikid82/snare/internal/models"
)

// ListCampaigns fetches every campaign with its honeypots.
func (c *Client) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := c.do(ctx, http.MethodGet, "/campaign", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := c.do(ctx, http.MethodGet, itemPath("campaign", id), nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error) {
	var created models.Campaign
	if err := c.do(ctx, http.MethodPost, "/campaign", campaign, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id uint, campaign models.Campaign) (*models.Campaign, error) {
	campaign.ID = id
	var updated models.Campaign
	if err := c.do(ctx, http.MethodPut, itemPath("campaign", id), campaign, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath("campaign", id), nil, nil)
}
