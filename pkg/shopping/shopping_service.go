package shopping

import (
	"context"
	"fmt"
	"foodgram/domain"
	"foodgram/internal/utils/pdf"
	"foodgram/pkg/user"
)

type (
	ShoppingService interface {
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
		DownloadShoppingList(ctx context.Context, userID string) ([]byte, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		userRepository     user.UserRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, userRepository user.UserRepository) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		userRepository:     userRepository,
	}
}

func (s *shoppingService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	rows, err := s.shoppingRepository.GetCartIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyShoppingList
	}

	return Aggregate(rows), nil
}

func (s *shoppingService) DownloadShoppingList(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	fullName := fmt.Sprintf("%s %s", u.FirstName, u.LastName)

	return pdf.RenderShoppingList(fullName, items)
}
