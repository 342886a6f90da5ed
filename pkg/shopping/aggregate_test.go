package shopping

import (
	"foodgram/domain"
	"foodgram/entities"
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(name, unit string, amount int) *entities.RecipeIngredient {
	return &entities.RecipeIngredient{
		Amount:     amount,
		Ingredient: &entities.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestAggregateSumsByNameAndUnit(t *testing.T) {
	items := Aggregate([]*entities.RecipeIngredient{
		row("Flour", "g", 200),
		row("Egg", "pcs", 2),
		row("Flour", "g", 300),
	})

	assert.Equal(t, []domain.ShoppingItem{
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
	}, items)
}

func TestAggregateKeepsDifferentUnitsSeparate(t *testing.T) {
	items := Aggregate([]*entities.RecipeIngredient{
		row("Milk", "ml", 250),
		row("Milk", "g", 100),
	})

	assert.Equal(t, []domain.ShoppingItem{
		{Name: "Milk", MeasurementUnit: "g", Amount: 100},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 250},
	}, items)
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := Aggregate([]*entities.RecipeIngredient{
		row("Sugar", "g", 50),
		row("Butter", "g", 80),
		row("Sugar", "g", 25),
	})
	reversed := Aggregate([]*entities.RecipeIngredient{
		row("Sugar", "g", 25),
		row("Butter", "g", 80),
		row("Sugar", "g", 50),
	})

	assert.Equal(t, forward, reversed)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregateSkipsRowsWithoutIngredient(t *testing.T) {
	items := Aggregate([]*entities.RecipeIngredient{
		{Amount: 10},
		row("Salt", "g", 5),
	})

	assert.Equal(t, []domain.ShoppingItem{
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
	}, items)
}
