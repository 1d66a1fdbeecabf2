//go:build unit

package wizard_test

import (
	"testing"
	"time"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
	"spellbudex/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func excavator() catalog.Equipment {
	return catalog.Equipment{
		ID:        1,
		Name:      "Koparka gąsienicowa CAT 320",
		Category:  catalog.CategoryEarthmoving,
		DailyRate: 850,
		Available: true,
	}
}

func fullContact() wizard.Contact {
	return wizard.Contact{
		FirstName: "Anna",
		LastName:  "Kowalska",
		Email:     "anna@example.pl",
		Phone:     "+48 600 100 200",
		Company:   "BudMax Sp. z o.o.",
		Address:   "ul. Długa 12, Warszawa",
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// apply feeds a sequence of events, failing the test on any guard error.
func apply(t *testing.T, m wizard.Machine, events ...wizard.Event) wizard.Machine {
	t.Helper()
	for _, ev := range events {
		next, err := m.Apply(ev)
		require.NoError(t, err)
		m = next
	}
	return m
}

func atConfirm(t *testing.T) wizard.Machine {
	t.Helper()
	return apply(t, wizard.New(),
		wizard.SelectEquipment{Equipment: excavator()},
		wizard.Next{},
		wizard.SetSchedule{Start: date("2025-06-01"), End: date("2025-06-03")},
		wizard.Next{},
	)
}

func TestMachine_HappyPath(t *testing.T) {
	m := atConfirm(t)
	assert.Equal(t, wizard.StepConfirm, m.Step)

	m = apply(t, m, wizard.SetContact{Contact: fullContact()})
	assert.True(t, m.CanSubmit())

	m = apply(t, m, wizard.SubmitSucceeded{Reservation: api.ReservationView{ID: 42, ContractNumber: "RES-2025-042"}})
	assert.Equal(t, wizard.StepSubmitted, m.Step)
	require.NotNil(t, m.Reservation)
	assert.Equal(t, int64(42), m.Reservation.ID)
	assert.Zero(t, m.Draft, "draft is discarded once submission succeeds")
}

func TestMachine_CannotAdvanceWithoutEquipment(t *testing.T) {
	m := wizard.New()
	next, err := m.Apply(wizard.Next{})
	assert.ErrorIs(t, err, wizard.ErrNoEquipmentSelected)
	assert.Equal(t, wizard.StepSelectEquipment, next.Step)
}

func TestMachine_CannotAdvanceWithoutBothDates(t *testing.T) {
	m := apply(t, wizard.New(), wizard.SelectEquipment{Equipment: excavator()}, wizard.Next{})

	_, err := m.Apply(wizard.Next{})
	assert.ErrorIs(t, err, wizard.ErrScheduleIncomplete)

	m = apply(t, m, wizard.SetSchedule{Start: date("2025-06-01")})
	_, err = m.Apply(wizard.Next{})
	assert.ErrorIs(t, err, wizard.ErrScheduleIncomplete)
}

func TestMachine_RejectsInvertedSchedule(t *testing.T) {
	m := apply(t, wizard.New(), wizard.SelectEquipment{Equipment: excavator()}, wizard.Next{},
		wizard.SetSchedule{Start: date("2025-06-05"), End: date("2025-06-01")})

	_, err := m.Apply(wizard.Next{})
	assert.ErrorIs(t, err, wizard.ErrScheduleInverted)
}

func TestMachine_SubmitDisabledUntilContactComplete(t *testing.T) {
	m := atConfirm(t)
	assert.False(t, m.CanSubmit())

	// One required field missing keeps the control disabled.
	partial := fullContact()
	partial.Phone = ""
	m = apply(t, m, wizard.SetContact{Contact: partial})
	assert.False(t, m.CanSubmit())
	assert.Equal(t, []string{"phone"}, m.Draft.Contact.MissingFields())

	m = apply(t, m, wizard.SetContact{Contact: fullContact()})
	assert.True(t, m.CanSubmit())
}

func TestMachine_TaxIDIsOptional(t *testing.T) {
	c := fullContact()
	c.NIP = ""
	assert.True(t, c.Complete())
}

func TestMachine_PreselectedEquipmentStartsAtSchedule(t *testing.T) {
	m := wizard.NewWithEquipment(excavator())
	assert.Equal(t, wizard.StepSchedule, m.Step)
	assert.Equal(t, int64(1), m.Draft.EquipmentID)
}

func TestMachine_DerivedTotalTracksSchedule(t *testing.T) {
	m := wizard.NewWithEquipment(excavator())
	assert.Zero(t, m.Total())

	m = apply(t, m, wizard.SetSchedule{Start: date("2025-06-01"), End: date("2025-06-03")})
	assert.Equal(t, 2550.0, m.Total())

	m = apply(t, m, wizard.SetSchedule{Start: date("2025-06-01"), End: date("2025-06-01")})
	assert.Equal(t, 850.0, m.Total())
}

func TestMachine_FailureKeepsWizardOnConfirm(t *testing.T) {
	m := apply(t, atConfirm(t), wizard.SetContact{Contact: fullContact()})

	m = apply(t, m, wizard.SubmitFailed{Message: "Email już jest zarejestrowany"})
	assert.Equal(t, wizard.StepConfirm, m.Step)
	assert.True(t, m.Failed())
	assert.Equal(t, "Email już jest zarejestrowany", m.FailureMsg)

	// The user can still edit and resubmit.
	assert.True(t, m.CanSubmit())
	m = apply(t, m, wizard.SubmitSucceeded{Reservation: api.ReservationView{ID: 7}})
	assert.Equal(t, wizard.StepSubmitted, m.Step)
	assert.Empty(t, m.FailureMsg)
}

func TestMachine_BackClearsFailureAndRetreats(t *testing.T) {
	m := apply(t, atConfirm(t),
		wizard.SetContact{Contact: fullContact()},
		wizard.SubmitFailed{Message: "Serwer chwilowo niedostępny"})

	m = apply(t, m, wizard.Back{})
	assert.Equal(t, wizard.StepSchedule, m.Step)
	assert.Empty(t, m.FailureMsg)

	m = apply(t, m, wizard.Back{})
	assert.Equal(t, wizard.StepSelectEquipment, m.Step)

	_, err := m.Apply(wizard.Back{})
	assert.ErrorIs(t, err, wizard.ErrNotAtStep)
}

func TestMachine_EventsOutOfStepAreRejected(t *testing.T) {
	m := wizard.New()

	_, err := m.Apply(wizard.SetSchedule{Start: date("2025-06-01"), End: date("2025-06-02")})
	assert.ErrorIs(t, err, wizard.ErrNotAtStep)

	_, err = m.Apply(wizard.SetContact{Contact: fullContact()})
	assert.ErrorIs(t, err, wizard.ErrNotAtStep)

	_, err = m.Apply(wizard.SubmitSucceeded{})
	assert.ErrorIs(t, err, wizard.ErrNotAtStep)
}

func TestMachine_SubmittedIsTerminal(t *testing.T) {
	m := apply(t, atConfirm(t),
		wizard.SetContact{Contact: fullContact()},
		wizard.SubmitSucceeded{Reservation: api.ReservationView{ID: 9}})

	for _, ev := range []wizard.Event{wizard.Next{}, wizard.Back{}, wizard.SetNotes{Notes: "x"}} {
		_, err := m.Apply(ev)
		assert.ErrorIs(t, err, wizard.ErrAlreadySubmitted)
	}
}
