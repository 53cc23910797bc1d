package backend

import (
	"context"
	"net/http"

	"github.com/Wikid82/snare/internal/models"
)

func (c *Client) ListListeners(ctx context.Context) ([]models.Listener, error) {
	var listeners []models.Listener
	if err := c.do(ctx, http.MethodGet, "/listener", nil, &listeners); err != nil {
		return nil, err
	}
	return listeners, nil
}

func (c *Client) GetListener(ctx context.Context, id uint) (*models.Listener, error) {
	var listener models.Listener
	if err := c.do(ctx, http.MethodGet, itemPath("listener", id), nil, &listener); err != nil {
		return nil, err
	}
	return &listener, nil
}

func (c *Client) CreateListener(ctx context.Context, listener models.Listener) (*models.Listener, error) {
	var created models.Listener
	if err := c.do(ctx, http.MethodPost, "/listener", listener, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateListener(ctx context.Context, id uint, listener models.Listener) (*models.Listener, error) {
	listener.ID = id
	var updated models.Listener
	if err := c.do(ctx, http.MethodPut, itemPath("listener", id), listener, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteListener(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath("listener", id), nil, nil)
}
