//go:build unit || e2e

package builder

import (
	"time"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
)

type EquipmentBuilder struct {
	ID        int64
	Name      string
	Category  catalog.Category
	DailyRate float64
	Available bool
	Features  []string
}

func NewEquipmentBuilder() *EquipmentBuilder {
	return &EquipmentBuilder{
		ID:        1,
		Name:      "Koparka gąsienicowa CAT 320",
		Category:  catalog.CategoryEarthmoving,
		DailyRate: 850,
		Available: true,
		Features:  []string{"GPS", "Klimatyzacja"},
	}
}

func (e *EquipmentBuilder) With(mutate func(*EquipmentBuilder)) *EquipmentBuilder {
	mutate(e)
	return e
}

func (e *EquipmentBuilder) Build() catalog.Equipment {
	return catalog.Equipment{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		DailyRate: e.DailyRate,
		Available: e.Available,
		Features:  e.Features,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (e *EquipmentBuilder) BuildView() api.EquipmentView {
	return api.EquipmentView{
		ID:        e.ID,
		Name:      e.Name,
		Category:  string(e.Category),
		DailyRate: e.DailyRate,
		Available: e.Available,
		Features:  e.Features,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
