package handlers

import (
	"errors"
	"foodgram/domain"
	"github.com/gofiber/fiber/v2"
)

// statusForError picks the HTTP status for a domain error so every
// validation failure stays machine-distinguishable at the edge.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRelationExists),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrRelationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeAuthor):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCredentialsInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNoIngredients),
		errors.Is(err, domain.ErrDuplicateIngredient),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNoTags),
		errors.Is(err, domain.ErrDuplicateTag),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrEmptyShoppingList),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func viewerID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}
