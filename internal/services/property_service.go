package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"keur/internal/core"
	"keur/internal/store"
)

// PropertyService manages the rental portfolio. Property changes do not
// trigger report refreshes; summaries read properties live.
type PropertyService struct {
	store store.PropertyStore
}

func NewPropertyService(s store.PropertyStore) *PropertyService {
	return &PropertyService{store: s}
}

func (s *PropertyService) CreateProperty(ctx context.Context, p core.Property) (core.Property, error) {
	p.ID = uuid.NewString()
	if p.Status == "" {
		p.Status = core.PropertyActive
	}

	if err := p.Validate(); err != nil {
		return core.Property{}, fmt.Errorf("validate property: %w", err)
	}

	if err := s.store.CreateProperty(ctx, p); err != nil {
		return core.Property{}, fmt.Errorf("save property: %w", err)
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]core.Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (core.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *PropertyService) UpdatePropertyStatus(ctx context.Context, id string, status core.PropertyStatus) error {
	if !status.Valid() {
		return core.ErrInvalidProperty
	}
	if err := s.store.UpdatePropertyStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update property status: %w", err)
	}
	return nil
}
