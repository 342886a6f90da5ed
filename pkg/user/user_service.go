package user

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/relation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"log"
	"time"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetMe(ctx context.Context, userID string) (domain.User, error)
		GetUserDetail(ctx context.Context, id string, viewerID string) (domain.User, error)
		Subscribe(ctx context.Context, authorID string, userID string) (domain.Subscription, error)
		Unsubscribe(ctx context.Context, authorID string, userID string) error
		GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) (domain.SubscriptionListResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
		followToggle     *relation.Toggle[entities.Follow]
		jwtService       jwt.JWTService
	}
)

func NewUserService(
	userRepository UserRepository,
	recipeRepository recipe.RecipeRepository,
	followToggle *relation.Toggle[entities.Follow],
	jwtService jwt.JWTService,
) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		followToggle:     followToggle,
		jwtService:       jwtService,
	}
}

func (s *userService) buildUser(ctx context.Context, u *entities.User, viewerID string) domain.User {
	isSubscribed := false
	if viewerID != "" && viewerID != u.ID.String() {
		isSubscribed, _ = s.userRepository.IsSubscribed(ctx, viewerID, u.ID.String())
	}

	return domain.User{
		ID:           u.ID.String(),
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}

	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrEmailAlreadyExists
		}
		return domain.User{}, err
	}

	go func() {
		if err := mailing.SendWelcomeMail(user.Email, user.FirstName); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
		}
	}()

	return s.buildUser(ctx, &user, ""), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	return domain.LoginResponse{
		Token: token,
		User:  s.buildUser(ctx, user, ""),
	}, nil
}

func (s *userService) GetMe(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return s.buildUser(ctx, user, ""), nil
}

func (s *userService) GetUserDetail(ctx context.Context, id string, viewerID string) (domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return s.buildUser(ctx, user, viewerID), nil
}

func (s *userService) buildSubscription(ctx context.Context, author *entities.User, recipesLimit int) (domain.Subscription, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	// recipes_count is the full count, independent of recipes_limit.
	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.Subscription{}, err
	}

	shorts := make([]domain.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, domain.RecipeShort{
			ID:          r.ID.String(),
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	sub := domain.Subscription{
		User: domain.User{
			ID:           author.ID.String(),
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
		},
		Recipes:      shorts,
		RecipesCount: count,
	}
	return sub, nil
}

func (s *userService) Subscribe(ctx context.Context, authorID string, userID string) (domain.Subscription, error) {
	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Subscription{}, domain.ErrUserNotFound
		}
		return domain.Subscription{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Subscription{}, domain.ErrParseUUID
	}

	if _, err := s.followToggle.Add(ctx, userUUID, author.ID); err != nil {
		return domain.Subscription{}, err
	}

	return s.buildSubscription(ctx, author, 0)
}

func (s *userService) Unsubscribe(ctx context.Context, authorID string, userID string) error {
	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.followToggle.Remove(ctx, userUUID, author.ID)
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) (domain.SubscriptionListResponse, error) {
	authors, count, err := s.userRepository.GetFollowedAuthors(ctx, userID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	subs := make([]domain.Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.buildSubscription(ctx, author, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		subs = append(subs, sub)
	}

	return domain.SubscriptionListResponse{
		Subscriptions: subs,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      count,
			TotalPages: (count + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(
		map[string]any{"user_id": user.ID.String()},
		30*time.Minute,
	)
	if err != nil {
		return err
	}

	return mailing.SendPasswordResetMail(user.Email, token)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepository.UpdatePassword(ctx, userID, string(hash))
}
