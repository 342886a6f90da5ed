package relation

import (
	"context"
	"foodgram/domain"
	"foodgram/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	rows map[[2]uuid.UUID]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeRepository) Insert(_ context.Context, row *entities.Favorite) error {
	key := [2]uuid.UUID{row.UserID, row.RecipeID}
	if f.rows[key] {
		return gorm.ErrDuplicatedKey
	}
	f.rows[key] = true
	return nil
}

func (f *fakeRepository) DeletePair(_ context.Context, userID, targetID uuid.UUID) (int64, error) {
	key := [2]uuid.UUID{userID, targetID}
	if !f.rows[key] {
		return 0, nil
	}
	delete(f.rows, key)
	return 1, nil
}

func newTestToggle(repo Repository[entities.Favorite], selfForbidden bool) *Toggle[entities.Favorite] {
	return NewToggle(repo, func(userID, targetID uuid.UUID) entities.Favorite {
		return entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: targetID}
	}, selfForbidden)
}

func TestToggleAddThenAddConflicts(t *testing.T) {
	toggle := newTestToggle(newFakeRepository(), false)
	userID, recipeID := uuid.New(), uuid.New()

	row, err := toggle.Add(context.Background(), userID, recipeID)
	require.NoError(t, err)
	assert.Equal(t, userID, row.UserID)
	assert.Equal(t, recipeID, row.RecipeID)

	_, err = toggle.Add(context.Background(), userID, recipeID)
	assert.ErrorIs(t, err, domain.ErrRelationExists)
}

func TestToggleRemoveMissingRelation(t *testing.T) {
	toggle := newTestToggle(newFakeRepository(), false)

	err := toggle.Remove(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRelationNotFound)
}

func TestToggleAddRemoveAddAgain(t *testing.T) {
	toggle := newTestToggle(newFakeRepository(), false)
	userID, recipeID := uuid.New(), uuid.New()

	_, err := toggle.Add(context.Background(), userID, recipeID)
	require.NoError(t, err)
	require.NoError(t, toggle.Remove(context.Background(), userID, recipeID))

	_, err = toggle.Add(context.Background(), userID, recipeID)
	assert.NoError(t, err)
}

func TestToggleSelfRelationForbidden(t *testing.T) {
	toggle := newTestToggle(newFakeRepository(), true)
	id := uuid.New()

	_, err := toggle.Add(context.Background(), id, id)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
}

func TestToggleDifferentUsersIndependent(t *testing.T) {
	toggle := newTestToggle(newFakeRepository(), false)
	recipeID := uuid.New()

	_, err := toggle.Add(context.Background(), uuid.New(), recipeID)
	require.NoError(t, err)

	_, err = toggle.Add(context.Background(), uuid.New(), recipeID)
	assert.NoError(t, err)
}
