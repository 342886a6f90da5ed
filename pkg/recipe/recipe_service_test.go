package recipe

import (
	"context"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/relation"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepo struct {
	recipes map[string]*entities.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[string]*entities.Recipe)}
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag) error {
	recipe.Tags = tags
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepo) UpdateRecipe(_ context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tags []entities.Tag) error {
	stored, ok := f.recipes[recipe.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = recipe.Name
	stored.Text = recipe.Text
	stored.ImageURL = recipe.ImageURL
	stored.CookingTime = recipe.CookingTime
	stored.Ingredients = ingredients
	stored.Tags = tags
	return nil
}

func (f *fakeRecipeRepo) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepo) GetRecipes(_ context.Context, filter domain.RecipeFilter, _ string) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	for _, r := range f.recipes {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepo) GetRecipesByAuthor(_ context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var out []*entities.Recipe
	for _, r := range f.recipes {
		if r.AuthorID.String() == authorID {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecipeRepo) CountRecipesByAuthor(_ context.Context, authorID string) (int64, error) {
	var count int64
	for _, r := range f.recipes {
		if r.AuthorID.String() == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) IsRecipeFavorited(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRecipeRepo) IsRecipeInShoppingCart(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type fakeIngredientRepo struct {
	ingredients map[uuid.UUID]*entities.Ingredient
}

func (f *fakeIngredientRepo) GetIngredients(_ context.Context, _ string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (f *fakeIngredientRepo) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	ing, ok := f.ingredients[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ing, nil
}

func (f *fakeIngredientRepo) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var out []*entities.Ingredient
	for _, id := range ids {
		if ing, ok := f.ingredients[id]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) BulkCreateIngredients(_ context.Context, _ []*entities.Ingredient) error {
	return nil
}

type fakeTagRepo struct {
	tags map[uuid.UUID]*entities.Tag
}

func (f *fakeTagRepo) GetTags(_ context.Context) ([]*entities.Tag, error) {
	return nil, nil
}

func (f *fakeTagRepo) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	t, ok := f.tags[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTagRepo) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var out []*entities.Tag
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeS3 struct{}

func (fakeS3) UploadBytes(_ context.Context, key string, _ string, _ []byte) (string, error) {
	return fmt.Sprintf("https://bucket.s3.test.amazonaws.com/%s", key), nil
}

type fakePairRepo[R any] struct {
	pairs map[[2]uuid.UUID]bool
	key   func(*R) [2]uuid.UUID
}

func (f *fakePairRepo[R]) Insert(_ context.Context, row *R) error {
	k := f.key(row)
	if f.pairs[k] {
		return gorm.ErrDuplicatedKey
	}
	f.pairs[k] = true
	return nil
}

func (f *fakePairRepo[R]) DeletePair(_ context.Context, userID, targetID uuid.UUID) (int64, error) {
	k := [2]uuid.UUID{userID, targetID}
	if !f.pairs[k] {
		return 0, nil
	}
	delete(f.pairs, k)
	return 1, nil
}

type serviceFixture struct {
	service     RecipeService
	recipes     *fakeRecipeRepo
	ingredients *fakeIngredientRepo
	tags        *fakeTagRepo

	flourID uuid.UUID
	eggID   uuid.UUID
	tagID   uuid.UUID
}

func newServiceFixture() *serviceFixture {
	fx := &serviceFixture{
		recipes: newFakeRecipeRepo(),
		ingredients: &fakeIngredientRepo{
			ingredients: make(map[uuid.UUID]*entities.Ingredient),
		},
		tags:    &fakeTagRepo{tags: make(map[uuid.UUID]*entities.Tag)},
		flourID: uuid.New(),
		eggID:   uuid.New(),
		tagID:   uuid.New(),
	}

	fx.ingredients.ingredients[fx.flourID] = &entities.Ingredient{ID: fx.flourID, Name: "Flour", MeasurementUnit: "g"}
	fx.ingredients.ingredients[fx.eggID] = &entities.Ingredient{ID: fx.eggID, Name: "Egg", MeasurementUnit: "pcs"}
	fx.tags.tags[fx.tagID] = &entities.Tag{ID: fx.tagID, Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"}

	favoriteToggle := relation.NewToggle[entities.Favorite](
		&fakePairRepo[entities.Favorite]{
			pairs: make(map[[2]uuid.UUID]bool),
			key: func(r *entities.Favorite) [2]uuid.UUID {
				return [2]uuid.UUID{r.UserID, r.RecipeID}
			},
		},
		func(userID, targetID uuid.UUID) entities.Favorite {
			return entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: targetID}
		},
		false,
	)
	cartToggle := relation.NewToggle[entities.ShoppingListEntry](
		&fakePairRepo[entities.ShoppingListEntry]{
			pairs: make(map[[2]uuid.UUID]bool),
			key: func(r *entities.ShoppingListEntry) [2]uuid.UUID {
				return [2]uuid.UUID{r.UserID, r.RecipeID}
			},
		},
		func(userID, targetID uuid.UUID) entities.ShoppingListEntry {
			return entities.ShoppingListEntry{ID: uuid.New(), UserID: userID, RecipeID: targetID}
		},
		false,
	)

	fx.service = NewRecipeService(fx.recipes, fx.ingredients, fx.tags, favoriteToggle, cartToggle, fakeS3{})
	return fx
}

func (fx *serviceFixture) validRequest() domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 15,
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: fx.flourID.String(), Amount: 200},
			{ID: fx.eggID.String(), Amount: 2},
		},
		Tags: []string{fx.tagID.String()},
	}
}

func TestCreateRecipe(t *testing.T) {
	fx := newServiceFixture()
	authorID := uuid.New().String()

	res, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), authorID)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", res.Name)
	assert.Len(t, res.Ingredients, 2)
	assert.Len(t, res.Tags, 1)
	assert.False(t, res.IsFavorited)
}

func TestCreateRecipeRejectsEmptyIngredients(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Ingredients = nil

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestCreateRecipeRejectsDuplicateIngredient(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Ingredients = append(req.Ingredients, domain.RecipeIngredientRequest{ID: fx.flourID.String(), Amount: 50})

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrDuplicateIngredient)
}

func TestCreateRecipeRejectsNonPositiveAmount(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Ingredients[0].Amount = 0

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Ingredients[0].ID = uuid.New().String()

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestCreateRecipeRejectsEmptyTags(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Tags = nil

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoTags)
}

func TestCreateRecipeRejectsUnknownTag(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Tags = []string{uuid.New().String()}

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestCreateRecipeRejectsBadImagePayload(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Image = "not-a-data-uri"

	_, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestCreateRecipeUploadsInlineImage(t *testing.T) {
	fx := newServiceFixture()
	req := fx.validRequest()
	req.Image = "data:image/png;base64,aGVsbG8="

	res, err := fx.service.CreateRecipe(context.Background(), req, uuid.New().String())
	require.NoError(t, err)
	assert.Contains(t, res.ImageURL, "recipes/images/")
	assert.Contains(t, res.ImageURL, ".png")
}

func TestUpdateRecipeOnlyByAuthor(t *testing.T) {
	fx := newServiceFixture()
	authorID := uuid.New().String()

	created, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), authorID)
	require.NoError(t, err)

	update := domain.UpdateRecipeRequest{
		Name:        "Crepes",
		Text:        "Thinner.",
		CookingTime: 10,
		Ingredients: fx.validRequest().Ingredients,
		Tags:        fx.validRequest().Tags,
	}

	_, err = fx.service.UpdateRecipe(context.Background(), created.ID, update, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)

	res, err := fx.service.UpdateRecipe(context.Background(), created.ID, update, authorID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", res.Name)
}

func TestUpdateRecipeFailureKeepsPriorState(t *testing.T) {
	fx := newServiceFixture()
	authorID := uuid.New().String()

	created, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), authorID)
	require.NoError(t, err)

	update := domain.UpdateRecipeRequest{
		Name:        "Crepes",
		Text:        "Thinner.",
		CookingTime: 10,
		Ingredients: []domain.RecipeIngredientRequest{{ID: fx.eggID.String(), Amount: 3}},
		Tags:        []string{fx.tagID.String(), fx.tagID.String()},
	}

	_, err = fx.service.UpdateRecipe(context.Background(), created.ID, update, authorID)
	assert.ErrorIs(t, err, domain.ErrDuplicateTag)

	detail, err := fx.service.GetRecipeDetail(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", detail.Name)
	assert.Len(t, detail.Ingredients, 2)
	assert.Len(t, detail.Tags, 1)
}

func TestDeleteRecipeOnlyByAuthor(t *testing.T) {
	fx := newServiceFixture()
	authorID := uuid.New().String()

	created, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), authorID)
	require.NoError(t, err)

	err = fx.service.DeleteRecipe(context.Background(), created.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)

	require.NoError(t, fx.service.DeleteRecipe(context.Background(), created.ID, authorID))

	_, err = fx.service.GetRecipeDetail(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.AddFavorite(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavoriteTwiceConflicts(t *testing.T) {
	fx := newServiceFixture()
	userID := uuid.New().String()

	created, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), uuid.New().String())
	require.NoError(t, err)

	short, err := fx.service.AddFavorite(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, short.ID)

	_, err = fx.service.AddFavorite(context.Background(), created.ID, userID)
	assert.ErrorIs(t, err, domain.ErrRelationExists)
}

func TestRemoveFromCartWithoutAdding(t *testing.T) {
	fx := newServiceFixture()

	created, err := fx.service.CreateRecipe(context.Background(), fx.validRequest(), uuid.New().String())
	require.NoError(t, err)

	err = fx.service.RemoveFromShoppingCart(context.Background(), created.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrRelationNotFound)
}
