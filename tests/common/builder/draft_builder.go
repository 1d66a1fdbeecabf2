//go:build unit || e2e

package builder

import (
	"time"

	"spellbudex/internal/wizard"
)

type DraftBuilder struct {
	EquipmentID int64
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	Contact     wizard.Contact
}

func NewDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		EquipmentID: 1,
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Notes:       "Dostawa na plac budowy",
		Contact: wizard.Contact{
			FirstName: "Anna",
			LastName:  "Kowalska",
			Email:     "anna@example.pl",
			Phone:     "+48 600 100 200",
			Company:   "BudMax Sp. z o.o.",
			NIP:       "5213017228",
			Address:   "ul. Długa 12, Warszawa",
		},
	}
}

func (d *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(d)
	return d
}

func (d *DraftBuilder) Build() wizard.Draft {
	return wizard.Draft{
		EquipmentID: d.EquipmentID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Notes:       d.Notes,
		Contact:     d.Contact,
	}
}
