package catalog

import (
	"github.com/jinzhu/copier"

	"spellbudex/internal/api"
	"spellbudex/internal/pkg/errs"
)

// FromView maps a wire listing item onto the domain model. Field names line
// up except for the typed category and the pointer image URL.
func FromView(view api.EquipmentView) (Equipment, error) {
	var eq Equipment
	if err := copier.Copy(&eq, &view); err != nil {
		return Equipment{}, errs.Wrap(err, "failed to convert equipment view")
	}
	eq.Category = Category(view.Category)
	if view.ImageURL != nil {
		eq.ImageURL = *view.ImageURL
	}
	return eq, nil
}

func FromViews(views []api.EquipmentView) ([]Equipment, error) {
	items := make([]Equipment, 0, len(views))
	for _, v := range views {
		eq, err := FromView(v)
		if err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, nil
}
