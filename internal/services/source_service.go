package services

import (
	"context"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/util"
)

// SourceRow is one line of the source list. The API key is masked.
type SourceRow struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Type     models.SourceType `json:"type"`
	TypeName string            `json:"typeName"`
	APIKey   string            `json:"apiKey,omitempty"`
	Email    string            `json:"email,omitempty"`
}

type SourceForm struct {
	Mode   FormMode      `json:"mode"`
	Title  string        `json:"title"`
	Source models.Source `json:"source"`
	Types  []TypeOption  `json:"types"`
}

type SourceService struct {
	backend Backend
}

func NewSourceService(b Backend) *SourceService {
	return &SourceService{backend: b}
}

func (s *SourceService) List(ctx context.Context) ([]SourceRow, error) {
	sources, err := s.backend.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]SourceRow, len(sources))
	for i, src := range sources {
		rows[i] = SourceRow{
			ID:       src.ID,
			Name:     src.Name,
			Type:     src.Type,
			TypeName: src.Type.String(),
			APIKey:   util.MaskSecret(src.APIKey()),
			Email:    src.Email(),
		}
	}
	return rows, nil
}

func (s *SourceService) Get(ctx context.Context, id uint) (*models.Source, error) {
	return s.backend.GetSource(ctx, id)
}

// Form loads the editor model. New sources start as Facebook sources.
func (s *SourceService) Form(ctx context.Context, mode FormMode, id uint) (*SourceForm, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	form := &SourceForm{
		Mode:   mode,
		Source: models.NewSource("", models.SourceTypeFacebook),
	}
	for _, t := range models.SourceTypes() {
		form.Types = append(form.Types, TypeOption{Value: int(t), Label: t.String()})
	}
	if mode != FormCreate {
		src, err := s.backend.GetSource(ctx, id)
		if err != nil {
			return nil, err
		}
		form.Source = *src
	}
	form.Title = formTitle(mode, "Source", form.Source.ID)
	return form, nil
}

func (s *SourceService) Create(ctx context.Context, src models.Source) (*models.Source, error) {
	src.ID = 0
	src.SetType(src.Type)
	if err := src.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.backend.CreateSource(ctx, src)
}

func (s *SourceService) Update(ctx context.Context, id uint, src models.Source) (*models.Source, error) {
	src.SetType(src.Type)
	if err := src.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.backend.UpdateSource(ctx, id, src)
}

func (s *SourceService) Delete(ctx context.Context, id uint) error {
	return s.backend.DeleteSource(ctx, id)
}
