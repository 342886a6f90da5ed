package ingredient

import (
	"context"
	"errors"
	"foodgram/domain"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredientDetail(ctx context.Context, id string) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, domain.Ingredient{
			ID:              ing.ID.String(),
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
		})
	}
	return result, nil
}

func (s *ingredientService) GetIngredientDetail(ctx context.Context, id string) (domain.Ingredient, error) {
	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}

	return domain.Ingredient{
		ID:              ing.ID.String(),
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	}, nil
}
