package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author can modify this recipe")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
	ErrDuplicateIngredient = errors.New("ingredient listed more than once")
	ErrInvalidAmount       = errors.New("ingredient amount must be positive")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrNoTags              = errors.New("recipe must have at least one tag")
	ErrDuplicateTag        = errors.New("tag listed more than once")
	ErrTagNotFound         = errors.New("tag not found")
	ErrInvalidImage        = errors.New("invalid image payload")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required,max=2000"`
		Image       string                    `json:"image,omitempty"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
		Tags        []string                  `json:"tags"`
	}

	UpdateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required,max=2000"`
		Image       string                    `json:"image,omitempty"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
		Tags        []string                  `json:"tags"`
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID                string             `json:"id"`
		Author            User               `json:"author"`
		Name              string             `json:"name"`
		Text              string             `json:"text"`
		ImageURL          string             `json:"image_url,omitempty"`
		CookingTime       int                `json:"cooking_time"`
		PubDate           time.Time          `json:"pub_date"`
		Ingredients       []RecipeIngredient `json:"ingredients"`
		Tags              []Tag              `json:"tags"`
		IsFavorited       bool               `json:"is_favorited"`
		IsInShoppingCart  bool               `json:"is_in_shopping_cart"`
	}

	// RecipeShort is the trimmed shape used inside subscription listings.
	RecipeShort struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeFilter enumerates every recognized recipe list parameter.
	// Viewer-scoped fields are ignored for anonymous viewers.
	RecipeFilter struct {
		TagSlugs         []string
		AuthorID         string
		IsFavorited      *bool
		IsInShoppingCart *bool
		Page             int
		Limit            int
	}

	RecipeListResponse struct {
		Recipes    []Recipe   `json:"recipes"`
		Pagination Pagination `json:"pagination"`
	}

	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)
