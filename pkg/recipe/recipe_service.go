package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/relation"
	"foodgram/pkg/tag"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error)
		AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipeShort, error)
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShort, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		favoriteToggle       *relation.Toggle[entities.Favorite]
		cartToggle           *relation.Toggle[entities.ShoppingListEntry]
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	favoriteToggle *relation.Toggle[entities.Favorite],
	cartToggle *relation.Toggle[entities.ShoppingListEntry],
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		favoriteToggle:       favoriteToggle,
		cartToggle:           cartToggle,
		s3:                   s3,
	}
}

// validateIngredients enforces the list-shape rules and resolves every
// ingredient id against the reference catalog.
func (s *recipeService) validateIngredients(ctx context.Context, reqs []domain.RecipeIngredientRequest) ([]entities.RecipeIngredient, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrNoIngredients
	}

	seen := make(map[uuid.UUID]bool, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if seen[id] {
			return nil, domain.ErrDuplicateIngredient
		}
		seen[id] = true
		if req.Amount < 1 {
			return nil, domain.ErrInvalidAmount
		}
		ids = append(ids, id)
	}

	resolved, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, domain.ErrIngredientNotFound
	}

	byID := make(map[uuid.UUID]*entities.Ingredient, len(resolved))
	for _, ing := range resolved {
		byID[ing.ID] = ing
	}

	rows := make([]entities.RecipeIngredient, 0, len(reqs))
	for _, req := range reqs {
		id := uuid.MustParse(req.ID)
		rows = append(rows, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: id,
			Amount:       req.Amount,
			Ingredient:   byID[id],
		})
	}
	return rows, nil
}

func (s *recipeService) validateTags(ctx context.Context, reqs []string) ([]entities.Tag, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrNoTags
	}

	seen := make(map[uuid.UUID]bool, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		id, err := uuid.Parse(req)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if seen[id] {
			return nil, domain.ErrDuplicateTag
		}
		seen[id] = true
		ids = append(ids, id)
	}

	resolved, err := s.tagRepository.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, domain.ErrTagNotFound
	}

	tags := make([]entities.Tag, 0, len(resolved))
	for _, t := range resolved {
		tags = append(tags, *t)
	}
	return tags, nil
}

func (s *recipeService) uploadInlineImage(ctx context.Context, recipeID uuid.UUID, data string) (string, error) {
	if !strings.HasPrefix(data, "data:image") {
		return "", domain.ErrInvalidImage
	}

	parts := strings.SplitN(data, ";base64,", 2)
	if len(parts) != 2 {
		return "", domain.ErrInvalidImage
	}
	contentType := strings.TrimPrefix(parts[0], "data:")
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", domain.ErrInvalidImage
	}

	ext := "jpg"
	if idx := strings.LastIndex(contentType, "/"); idx >= 0 {
		ext = contentType[idx+1:]
	}
	key := fmt.Sprintf("recipes/images/%s.%s", recipeID, ext)
	return s.s3.UploadBytes(ctx, key, contentType, raw)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.Recipe, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	ingredients, err := s.validateIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}
	tags, err := s.validateTags(ctx, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		PubDate:     time.Now(),
	}

	if req.Image != "" {
		imageURL, err := s.uploadInlineImage(ctx, recipe.ID, req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		recipe.ImageURL = imageURL
	}

	for i := range ingredients {
		ingredients[i].RecipeID = recipe.ID
	}
	recipe.Ingredients = ingredients

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, tags); err != nil {
		return domain.Recipe{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.Recipe, error) {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}
	if existing.AuthorID.String() != userID {
		return domain.Recipe{}, domain.ErrNotRecipeAuthor
	}

	ingredients, err := s.validateIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}
	tags, err := s.validateTags(ctx, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	updated := entities.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    existing.ImageURL,
		CookingTime: req.CookingTime,
	}

	if req.Image != "" {
		imageURL, err := s.uploadInlineImage(ctx, existing.ID, req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		updated.ImageURL = imageURL
	}

	for i := range ingredients {
		ingredients[i].RecipeID = existing.ID
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, &updated, ingredients, tags); err != nil {
		return domain.Recipe{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if existing.AuthorID.String() != userID {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

// buildRecipe projects an entity for one viewer. The is_favorited and
// is_in_shopping_cart flags are recomputed on every call; they must never
// leak from one viewer to another.
func (s *recipeService) buildRecipe(ctx context.Context, recipe *entities.Recipe, viewerID string) domain.Recipe {
	isFavorited, isInCart := false, false
	if viewerID != "" {
		isFavorited, _ = s.recipeRepository.IsRecipeFavorited(ctx, viewerID, recipe.ID.String())
		isInCart, _ = s.recipeRepository.IsRecipeInShoppingCart(ctx, viewerID, recipe.ID.String())
	}

	author := domain.User{}
	if recipe.Author != nil {
		author = domain.User{
			ID:        recipe.Author.ID.String(),
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	ingredients := make([]domain.RecipeIngredient, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		ing := domain.RecipeIngredient{Amount: row.Amount}
		if row.Ingredient != nil {
			ing.ID = row.Ingredient.ID.String()
			ing.Name = row.Ingredient.Name
			ing.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, ing)
	}

	tags := make([]domain.Tag, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.Tag{
			ID:    t.ID.String(),
			Name:  t.Name,
			Color: t.Color,
			Slug:  t.Slug,
		})
	}

	return domain.Recipe{
		ID:               recipe.ID.String(),
		Author:           author,
		Name:             recipe.Name,
		Text:             recipe.Text,
		ImageURL:         recipe.ImageURL,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
		Ingredients:      ingredients,
		Tags:             tags,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	return s.buildRecipe(ctx, recipe, viewerID), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.RecipeListResponse, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.buildRecipe(ctx, recipe, viewerID))
	}

	return domain.RecipeListResponse{
		Recipes: result,
		Pagination: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      count,
			TotalPages: (count + int64(filter.Limit) - 1) / int64(filter.Limit),
		},
	}, nil
}

func (s *recipeService) recipeShort(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID string, userID string) (domain.RecipeShort, error) {
	recipe, err := s.recipeShort(ctx, recipeID)
	if err != nil {
		return domain.RecipeShort{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShort{}, domain.ErrParseUUID
	}

	if _, err := s.favoriteToggle.Add(ctx, userUUID, recipe.ID); err != nil {
		return domain.RecipeShort{}, err
	}

	return domain.RecipeShort{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeShort(ctx, recipeID)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.favoriteToggle.Remove(ctx, userUUID, recipe.ID)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShort, error) {
	recipe, err := s.recipeShort(ctx, recipeID)
	if err != nil {
		return domain.RecipeShort{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShort{}, domain.ErrParseUUID
	}

	if _, err := s.cartToggle.Add(ctx, userUUID, recipe.ID); err != nil {
		return domain.RecipeShort{}, err
	}

	return domain.RecipeShort{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeShort(ctx, recipeID)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.cartToggle.Remove(ctx, userUUID, recipe.ID)
}
