package wizard

import (
	"time"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
	"spellbudex/internal/pkg/errs"
	"spellbudex/internal/pricing"
)

// Step is the wizard's current variant. The flow is strictly ordered:
// equipment, then schedule, then identity confirmation, then done.
type Step int

const (
	StepSelectEquipment Step = iota
	StepSchedule
	StepConfirm
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSelectEquipment:
		return "select_equipment"
	case StepSchedule:
		return "schedule"
	case StepConfirm:
		return "confirm"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Transition guard violations. Callers render these inline next to the
// offending step; none of them is fatal to the wizard.
var (
	ErrNoEquipmentSelected = errs.New("no equipment selected")
	ErrScheduleIncomplete  = errs.New("schedule incomplete")
	ErrScheduleInverted    = errs.New("schedule inverted")
	ErrContactIncomplete   = errs.New("contact incomplete")
	ErrNotAtStep           = errs.New("event not valid at current step")
	ErrAlreadySubmitted    = errs.New("reservation already submitted")
)

// Event is one user action or submission outcome fed to the reducer.
type Event interface{ isEvent() }

type SelectEquipment struct{ Equipment catalog.Equipment }
type SetSchedule struct{ Start, End time.Time }
type SetNotes struct{ Notes string }
type SetContact struct{ Contact Contact }
type Next struct{}
type Back struct{}
type SubmitSucceeded struct{ Reservation api.ReservationView }
type SubmitFailed struct{ Message string }

func (SelectEquipment) isEvent() {}
func (SetSchedule) isEvent()     {}
func (SetNotes) isEvent()        {}
func (SetContact) isEvent()      {}
func (Next) isEvent()            {}
func (Back) isEvent()            {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Machine is the wizard state. It is a value: Apply returns the successor
// state and never mutates the receiver, so a rejected transition leaves the
// caller holding the unchanged state plus the guard error.
type Machine struct {
	Step      Step
	Draft     Draft
	Equipment catalog.Equipment

	// Set only after a submission outcome.
	Reservation *api.ReservationView
	FailureMsg  string
}

// New starts an empty wizard at the equipment step.
func New() Machine {
	return Machine{Step: StepSelectEquipment}
}

// NewWithEquipment starts a wizard with the item already chosen, as when
// the user arrives from a catalog detail page. It begins at the schedule
// step.
func NewWithEquipment(eq catalog.Equipment) Machine {
	return Machine{
		Step:      StepSchedule,
		Equipment: eq,
		Draft:     Draft{EquipmentID: eq.ID},
	}
}

// Total is the derived price for the current draft. Zero until both dates
// are set; recomputed from scratch on every read.
func (m Machine) Total() float64 {
	return pricing.Total(m.Equipment.DailyRate, m.Draft.StartDate, m.Draft.EndDate)
}

// CanSubmit reports whether the confirm step's submit control is enabled.
func (m Machine) CanSubmit() bool {
	return m.Step == StepConfirm && m.Draft.Contact.Complete()
}

// Failed reports whether the last submission attempt was rejected. The
// wizard stays on the confirm step so the user can correct and resubmit.
func (m Machine) Failed() bool {
	return m.Step == StepConfirm && m.FailureMsg != ""
}

// Apply is the single reducer. Every transition guard lives here.
func (m Machine) Apply(ev Event) (Machine, error) {
	if m.Step == StepSubmitted {
		return m, ErrAlreadySubmitted
	}

	switch ev := ev.(type) {
	case SelectEquipment:
		if m.Step != StepSelectEquipment {
			return m, ErrNotAtStep
		}
		m.Equipment = ev.Equipment
		m.Draft.EquipmentID = ev.Equipment.ID
		return m, nil

	case SetSchedule:
		if m.Step != StepSchedule {
			return m, ErrNotAtStep
		}
		m.Draft.StartDate = ev.Start
		m.Draft.EndDate = ev.End
		return m, nil

	case SetNotes:
		if m.Step != StepSchedule && m.Step != StepConfirm {
			return m, ErrNotAtStep
		}
		m.Draft.Notes = ev.Notes
		return m, nil

	case SetContact:
		if m.Step != StepConfirm {
			return m, ErrNotAtStep
		}
		m.Draft.Contact = ev.Contact
		return m, nil

	case Next:
		return m.advance()

	case Back:
		return m.retreat()

	case SubmitSucceeded:
		if m.Step != StepConfirm {
			return m, ErrNotAtStep
		}
		m.Step = StepSubmitted
		m.Reservation = &ev.Reservation
		m.FailureMsg = ""
		m.Draft = Draft{} // the draft's lifetime ends with a successful submission
		return m, nil

	case SubmitFailed:
		if m.Step != StepConfirm {
			return m, ErrNotAtStep
		}
		m.FailureMsg = ev.Message
		return m, nil
	}
	return m, errs.New("unhandled wizard event")
}

func (m Machine) advance() (Machine, error) {
	switch m.Step {
	case StepSelectEquipment:
		if m.Draft.EquipmentID == 0 {
			return m, ErrNoEquipmentSelected
		}
		m.Step = StepSchedule
		return m, nil
	case StepSchedule:
		if err := m.Draft.validateSchedule(); err != nil {
			return m, err
		}
		m.Step = StepConfirm
		return m, nil
	case StepConfirm:
		// Leaving the confirm step forward happens only through a
		// submission outcome event, never through Next.
		return m, ErrNotAtStep
	}
	return m, ErrNotAtStep
}

func (m Machine) retreat() (Machine, error) {
	switch m.Step {
	case StepSchedule:
		m.Step = StepSelectEquipment
		return m, nil
	case StepConfirm:
		m.Step = StepSchedule
		m.FailureMsg = ""
		return m, nil
	}
	return m, ErrNotAtStep
}
