package domain

import (
	"errors"
)

var (
	MessageSuccessDownloadCart = "shopping list generated"

	MessageFailedDownloadCart = "failed to generate shopping list"

	ErrEmptyShoppingList = errors.New("shopping list is empty")
)

type (
	// ShoppingItem is one consolidated line of the exported list: a
	// (name, unit) pair with amounts summed across every carted recipe.
	ShoppingItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Subscription struct {
		User
		Recipes      []RecipeShort `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Subscriptions []Subscription `json:"subscriptions"`
		Pagination    Pagination     `json:"pagination"`
	}
)
