package catalog

import (
	"context"
	"log/slog"

	"spellbudex/internal/api"
)

// Lister is the slice of the backend client the catalog needs.
type Lister interface {
	ListEquipment(ctx context.Context, query api.EquipmentQuery) ([]api.EquipmentView, error)
	GetEquipment(ctx context.Context, id int64) (*api.EquipmentView, error)
}

type Service struct {
	backend Lister
	log     *slog.Logger
}

func NewService(backend Lister, log *slog.Logger) *Service {
	return &Service{backend: backend, log: log}
}

// FetchAvailable returns only items the backend reports as rentable.
func (s *Service) FetchAvailable(ctx context.Context) ([]Equipment, error) {
	views, err := s.backend.ListEquipment(ctx, api.EquipmentQuery{AvailableOnly: true})
	if err != nil {
		return nil, err
	}
	items, err := FromViews(views)
	if err != nil {
		return nil, err
	}
	s.log.Debug("fetched catalog", "count", len(items))
	return items, nil
}

// FetchAll returns the full listing regardless of availability.
func (s *Service) FetchAll(ctx context.Context) ([]Equipment, error) {
	views, err := s.backend.ListEquipment(ctx, api.EquipmentQuery{})
	if err != nil {
		return nil, err
	}
	return FromViews(views)
}

func (s *Service) Get(ctx context.Context, id int64) (Equipment, error) {
	view, err := s.backend.GetEquipment(ctx, id)
	if err != nil {
		return Equipment{}, err
	}
	return FromView(*view)
}
