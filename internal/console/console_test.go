//go:build unit

package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbudex/internal/catalog"
	"spellbudex/internal/wizard"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestGuardMessage_TranslatesWizardGuards(t *testing.T) {
	t.Parallel()

	m := wizard.NewWithEquipment(catalog.Equipment{ID: 1, Name: "Koparka", DailyRate: 100})

	_, incomplete := m.Apply(wizard.Next{})
	assert.Equal(t, "Podaj obie daty.", guardMessage(incomplete))

	m, err := m.Apply(wizard.SetSchedule{Start: day(t, "2025-06-03"), End: day(t, "2025-06-01")})
	require.NoError(t, err)
	_, inverted := m.Apply(wizard.Next{})
	assert.Equal(t, "Data końcowa nie może być wcześniejsza niż początkowa.", guardMessage(inverted))

	fresh := wizard.New()
	_, noEquipment := fresh.Apply(wizard.Next{})
	assert.Equal(t, "Najpierw wybierz sprzęt.", guardMessage(noEquipment))

	assert.Equal(t, "", guardMessage(nil))
}
