package services

import (
	"context"
	"time"

	"github.com/Wikid82/snare/internal/models"
)

type ListenerRow struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Type      models.ListenerType `json:"type"`
	TypeName  string              `json:"typeName"`
	Target    string              `json:"target"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}

type ListenerForm struct {
	Mode     FormMode        `json:"mode"`
	Title    string          `json:"title"`
	Listener models.Listener `json:"listener"`
	Types    []TypeOption    `json:"types"`
}

// TypeOption is one entry of a type picker.
type TypeOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type ListenerService struct {
	backend Backend
}

func NewListenerService(b Backend) *ListenerService {
	return &ListenerService{backend: b}
}

func (s *ListenerService) List(ctx context.Context) ([]ListenerRow, error) {
	listeners, err := s.backend.ListListeners(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ListenerRow, len(listeners))
	for i, l := range listeners {
		target := l.URL()
		if l.Type == models.ListenerTypeSocial {
			target = l.Email()
		}
		rows[i] = ListenerRow{
			ID:        l.ID,
			Name:      l.Name,
			Type:      l.Type,
			TypeName:  l.Type.String(),
			Target:    target,
			UpdatedAt: l.UpdatedAt,
		}
	}
	return rows, nil
}

func (s *ListenerService) Get(ctx context.Context, id uint) (*models.Listener, error) {
	return s.backend.GetListener(ctx, id)
}

// Form loads the editor model. New listeners start as Login listeners.
func (s *ListenerService) Form(ctx context.Context, mode FormMode, id uint) (*ListenerForm, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	form := &ListenerForm{
		Mode:     mode,
		Listener: models.NewListener("", models.ListenerTypeLogin),
	}
	for _, t := range models.ListenerTypes() {
		form.Types = append(form.Types, TypeOption{Value: int(t), Label: t.String()})
	}
	if mode != FormCreate {
		l, err := s.backend.GetListener(ctx, id)
		if err != nil {
			return nil, err
		}
		form.Listener = *l
	}
	form.Title = formTitle(mode, "Listener", form.Listener.ID)
	return form, nil
}

func (s *ListenerService) Create(ctx context.Context, l models.Listener) (*models.Listener, error) {
	l.ID = 0
	l.SetType(l.Type)
	if err := l.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.backend.CreateListener(ctx, l)
}

func (s *ListenerService) Update(ctx context.Context, id uint, l models.Listener) (*models.Listener, error) {
	l.SetType(l.Type)
	if err := l.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.backend.UpdateListener(ctx, id, l)
}

func (s *ListenerService) Delete(ctx context.Context, id uint) error {
	return s.backend.DeleteListener(ctx, id)
}
