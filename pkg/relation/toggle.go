package relation

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Toggle gives every (user, target) relation the same add/remove
// semantics: add conflicts instead of double-inserting, remove reports
// not-found instead of deleting nothing silently.
type Toggle[R any] struct {
	repo          Repository[R]
	makeRow       func(userID, targetID uuid.UUID) R
	selfForbidden bool
}

func NewToggle[R any](repo Repository[R], makeRow func(userID, targetID uuid.UUID) R, selfForbidden bool) *Toggle[R] {
	return &Toggle[R]{
		repo:          repo,
		makeRow:       makeRow,
		selfForbidden: selfForbidden,
	}
}

func (t *Toggle[R]) Add(ctx context.Context, userID, targetID uuid.UUID) (R, error) {
	var zero R

	if t.selfForbidden && userID == targetID {
		return zero, domain.ErrSelfFollow
	}

	row := t.makeRow(userID, targetID)
	if err := t.repo.Insert(ctx, &row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return zero, domain.ErrRelationExists
		}
		return zero, err
	}
	return row, nil
}

func (t *Toggle[R]) Remove(ctx context.Context, userID, targetID uuid.UUID) error {
	affected, err := t.repo.DeletePair(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRelationNotFound
	}
	return nil
}

func NewFavoriteToggle(db *gorm.DB) *Toggle[entities.Favorite] {
	return NewToggle(
		NewRepository[entities.Favorite](db, "user_id", "recipe_id"),
		func(userID, targetID uuid.UUID) entities.Favorite {
			return entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: targetID}
		},
		false,
	)
}

func NewShoppingCartToggle(db *gorm.DB) *Toggle[entities.ShoppingListEntry] {
	return NewToggle(
		NewRepository[entities.ShoppingListEntry](db, "user_id", "recipe_id"),
		func(userID, targetID uuid.UUID) entities.ShoppingListEntry {
			return entities.ShoppingListEntry{ID: uuid.New(), UserID: userID, RecipeID: targetID}
		},
		false,
	)
}

func NewFollowToggle(db *gorm.DB) *Toggle[entities.Follow] {
	return NewToggle(
		NewRepository[entities.Follow](db, "user_id", "author_id"),
		func(userID, targetID uuid.UUID) entities.Follow {
			return entities.Follow{ID: uuid.New(), UserID: userID, AuthorID: targetID}
		},
		true,
	)
}
