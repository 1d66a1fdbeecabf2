package wizard

import (
	"strings"
	"time"

	"spellbudex/internal/pkg/errs"
)

// Contact carries the identity confirmed on the final step. Every field is
// required before submission except the tax id.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	NIP       string
	Address   string
}

// MissingFields lists required contact fields that are still empty, in
// display order. Empty result means the contact is submittable.
func (c Contact) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"company", c.Company},
		{"address", c.Address},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (c Contact) Complete() bool {
	return len(c.MissingFields()) == 0
}

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Draft is the transient, wizard-local reservation state. It is discarded
// when the wizard is torn down or the submission succeeds.
type Draft struct {
	EquipmentID int64
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	Contact     Contact
}

func (d Draft) HasSchedule() bool {
	return !d.StartDate.IsZero() && !d.EndDate.IsZero()
}

func (d Draft) validateSchedule() error {
	if !d.HasSchedule() {
		return errs.Wrap(ErrScheduleIncomplete, "both dates are required")
	}
	if d.EndDate.Before(d.StartDate) {
		return errs.Wrap(ErrScheduleInverted, "end date precedes start date")
	}
	return nil
}
