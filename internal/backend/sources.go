package backend

import (
	"context"
	"net/http"

	"github.com/Wikid82/snare/internal/models"
)

func (c *Client) ListSources(ctx context.Context) ([]models.Source, error) {
	var sources []models.Source
	if err := c.do(ctx, http.MethodGet, "/source", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (c *Client) GetSource(ctx context.Context, id uint) (*models.Source, error) {
	var source models.Source
	if err := c.do(ctx, http.MethodGet, itemPath("source", id), nil, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

func (c *Client) CreateSource(ctx context.Context, source models.Source) (*models.Source, error) {
	var created models.Source
	if err := c.do(ctx, http.MethodPost, "/source", source, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSource(ctx context.Context, id uint, source models.Source) (*models.Source, error) {
	source.ID = id
	var updated models.Source
	if err := c.do(ctx, http.MethodPut, itemPath("source", id), source, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteSource(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath("source", id), nil, nil)
}
