package backend

import (
	"context"
	"net/http"

	"github.com/Wikid82/snare/internal/models"
)

// ListHits fetches every recorded hit. Hits are read-only apart from delete.
func (c *Client) ListHits(ctx context.Context) ([]models.Hit, error) {
	var hits []models.Hit
	if err := c.do(ctx, http.MethodGet, "/hit", nil, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

func (c *Client) GetHit(ctx context.Context, id uint) (*models.Hit, error) {
	var hit models.Hit
	if err := c.do(ctx, http.MethodGet, itemPath("hit", id), nil, &hit); err != nil {
		return nil, err
	}
	return &hit, nil
}

func (c *Client) DeleteHit(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath("hit", id), nil, nil)
}

// ListHoneypots fetches the honeypots of every campaign as one flat list.
func (c *Client) ListHoneypots(ctx context.Context) ([]models.Honeypot, error) {
	var honeypots []models.Honeypot
	if err := c.do(ctx, http.MethodGet, "/honeypot", nil, &honeypots); err != nil {
		return nil, err
	}
	return honeypots, nil
}
