package shopping

import (
	"foodgram/domain"
	"foodgram/entities"
	"sort"
)

// Aggregate merges ingredient rows by (name, measurement unit), summing
// amounts. Output order is name ascending with unit as the tie-break, so
// the same cart always renders the same list regardless of row order.
func Aggregate(rows []*entities.RecipeIngredient) []domain.ShoppingItem {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int, len(rows))
	for _, row := range rows {
		if row.Ingredient == nil {
			continue
		}
		k := key{name: row.Ingredient.Name, unit: row.Ingredient.MeasurementUnit}
		totals[k] += row.Amount
	}

	items := make([]domain.ShoppingItem, 0, len(totals))
	for k, amount := range totals {
		items = append(items, domain.ShoppingItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Amount:          amount,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})

	return items
}
