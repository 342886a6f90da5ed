package domain

import (
	"errors"
)

var (
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"
	MessageSuccessAddToCart      = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart = "recipe removed from shopping cart"

	MessageFailedAddFavorite    = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite = "failed to remove recipe from favorites"
	MessageFailedAddToCart      = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart = "failed to remove recipe from shopping cart"

	ErrRelationExists   = errors.New("relation already exists")
	ErrRelationNotFound = errors.New("relation does not exist")
	ErrSelfFollow       = errors.New("cannot subscribe to yourself")
)
