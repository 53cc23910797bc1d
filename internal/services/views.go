package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidMode  = errors.New("invalid form mode")
)

// Backend is the honeypot backend API as the console services use it.
// *backend.Client satisfies it.
type Backend interface {
	dashboard.Fetcher

	GetCampaign(ctx context.Context, id uint) (*models.Campaign, error)
	CreateCampaign(ctx context.Context, c models.Campaign) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id uint, c models.Campaign) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, id uint) error

	ListListeners(ctx context.Context) ([]models.Listener, error)
	GetListener(ctx context.Context, id uint) (*models.Listener, error)
	CreateListener(ctx context.Context, l models.Listener) (*models.Listener, error)
	UpdateListener(ctx context.Context, id uint, l models.Listener) (*models.Listener, error)
	DeleteListener(ctx context.Context, id uint) error

	GetSource(ctx context.Context, id uint) (*models.Source, error)
	CreateSource(ctx context.Context, s models.Source) (*models.Source, error)
	UpdateSource(ctx context.Context, id uint, s models.Source) (*models.Source, error)
	DeleteSource(ctx context.Context, id uint) error

	GetHit(ctx context.Context, id uint) (*models.Hit, error)
	DeleteHit(ctx context.Context, id uint) error
}

// FormMode is how a record form is opened.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormView   FormMode = "view"
	FormEdit   FormMode = "edit"
)

func (m FormMode) Valid() bool {
	return m == FormCreate || m == FormView || m == FormEdit
}

// formTitle builds headings like "Create Campaign", "View Campaign 3" and
// "Edit Campaign 3".
func formTitle(mode FormMode, entity string, id uint) string {
	switch mode {
	case FormEdit:
		return fmt.Sprintf("Edit %s %d", entity, id)
	case FormView:
		return fmt.Sprintf("View %s %d", entity, id)
	default:
		return "Create " + entity
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
