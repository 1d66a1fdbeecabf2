package catalog

import "time"

// Category is the fixed set the backend serves. The wildcard matches every
// category during filtering but is never a category of an item itself.
type Category string

const (
	CategoryAll         Category = "Wszystkie"
	CategoryEarthmoving Category = "Maszyny ziemne"
	CategoryCranes      Category = "Żurawie"
	CategoryScaffolding Category = "Rusztowania"
)

// Categories returns the selectable set, wildcard first.
func Categories() []Category {
	return []Category{CategoryAll, CategoryEarthmoving, CategoryCranes, CategoryScaffolding}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategoryEarthmoving, CategoryCranes, CategoryScaffolding:
		return true
	}
	return false
}

// Equipment is the client-side listing item. Supplied entirely by the
// backend; the client filters and sorts local copies, never mutates them.
type Equipment struct {
	ID             int64
	Name           string
	Category       Category
	DailyRate      float64
	Status         string
	Description    string
	Weight         string
	FuelType       string
	Power          string
	Reach          string
	ImageURL       string
	Features       []string
	Specifications map[string]string
	Available      bool
	CreatedAt      time.Time
}
