package shopping

import (
	"context"
	"foodgram/entities"
	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		GetCartIngredients(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

// GetCartIngredients returns every ingredient row of every recipe in the
// user's shopping list, unaggregated.
func (r *shoppingRepository) GetCartIngredients(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error) {
	var rows []*entities.RecipeIngredient

	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN shopping_list_entries ON shopping_list_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_list_entries.user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
