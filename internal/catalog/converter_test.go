//go:build unit

package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
	"spellbudex/tests/common/builder"
)

func TestFromView_MapsWireItemOntoDomainModel(t *testing.T) {
	t.Parallel()

	b := builder.NewEquipmentBuilder().With(func(e *builder.EquipmentBuilder) {
		e.ID = 7
		e.Name = "Żuraw wieżowy Liebherr"
		e.Category = catalog.CategoryCranes
		e.DailyRate = 2100
	})

	got, err := catalog.FromView(b.BuildView())
	require.NoError(t, err)

	if diff := cmp.Diff(b.Build(), got); diff != "" {
		t.Errorf("converted equipment mismatch (-want +got):\n%s", diff)
	}
}

func TestFromView_DereferencesImageURL(t *testing.T) {
	t.Parallel()

	url := "https://cdn.spellbudex.example/koparka.jpg"
	view := builder.NewEquipmentBuilder().BuildView()
	view.ImageURL = &url

	got, err := catalog.FromView(view)
	require.NoError(t, err)
	assert.Equal(t, url, got.ImageURL)
}

func TestFromViews_ConvertsInOrder(t *testing.T) {
	t.Parallel()

	first := builder.NewEquipmentBuilder()
	second := builder.NewEquipmentBuilder().With(func(e *builder.EquipmentBuilder) {
		e.ID = 2
		e.Name = "Rusztowanie ramowe"
		e.Category = catalog.CategoryScaffolding
		e.DailyRate = 120
	})

	got, err := catalog.FromViews([]api.EquipmentView{first.BuildView(), second.BuildView()})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Rusztowanie ramowe", got[1].Name)
	assert.Equal(t, catalog.CategoryScaffolding, got[1].Category)
}
