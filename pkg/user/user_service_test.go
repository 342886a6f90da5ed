package user

import (
	"context"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/jwt"
	"foodgram/pkg/relation"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
	follows map[[2]string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
		follows: make(map[[2]string]bool),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.byID[user.ID.String()] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) GetFollowedAuthors(_ context.Context, userID string, _, _ int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	for pair := range f.follows {
		if pair[0] == userID {
			authors = append(authors, f.byID[pair[1]])
		}
	}
	return authors, int64(len(authors)), nil
}

func (f *fakeUserRepo) IsSubscribed(_ context.Context, userID, authorID string) (bool, error) {
	return f.follows[[2]string{userID, authorID}], nil
}

// followRepo mirrors the follow pairs into fakeUserRepo so IsSubscribed and
// GetFollowedAuthors observe what the toggle wrote.
type followRepo struct {
	users *fakeUserRepo
}

func (f *followRepo) Insert(_ context.Context, row *entities.Follow) error {
	key := [2]string{row.UserID.String(), row.AuthorID.String()}
	if f.users.follows[key] {
		return gorm.ErrDuplicatedKey
	}
	f.users.follows[key] = true
	return nil
}

func (f *followRepo) DeletePair(_ context.Context, userID, targetID uuid.UUID) (int64, error) {
	key := [2]string{userID.String(), targetID.String()}
	if !f.users.follows[key] {
		return 0, nil
	}
	delete(f.users.follows, key)
	return 1, nil
}

type fakeAuthorRecipes struct {
	recipes map[string][]*entities.Recipe
}

func (f *fakeAuthorRecipes) CreateRecipe(_ context.Context, _ *entities.Recipe, _ []entities.Tag) error {
	return nil
}

func (f *fakeAuthorRecipes) UpdateRecipe(_ context.Context, _ *entities.Recipe, _ []entities.RecipeIngredient, _ []entities.Tag) error {
	return nil
}

func (f *fakeAuthorRecipes) GetRecipeByID(_ context.Context, _ string) (*entities.Recipe, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthorRecipes) GetRecipes(_ context.Context, _ domain.RecipeFilter, _ string) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuthorRecipes) GetRecipesByAuthor(_ context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	recipes := f.recipes[authorID]
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (f *fakeAuthorRecipes) CountRecipesByAuthor(_ context.Context, authorID string) (int64, error) {
	return int64(len(f.recipes[authorID])), nil
}

func (f *fakeAuthorRecipes) DeleteRecipe(_ context.Context, _ string) error { return nil }

func (f *fakeAuthorRecipes) IsRecipeFavorited(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeAuthorRecipes) IsRecipeInShoppingCart(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type userFixture struct {
	service UserService
	users   *fakeUserRepo
	recipes *fakeAuthorRecipes
}

func newUserFixture() *userFixture {
	users := newFakeUserRepo()
	recipes := &fakeAuthorRecipes{recipes: make(map[string][]*entities.Recipe)}

	followToggle := relation.NewToggle[entities.Follow](
		&followRepo{users: users},
		func(userID, targetID uuid.UUID) entities.Follow {
			return entities.Follow{ID: uuid.New(), UserID: userID, AuthorID: targetID}
		},
		true,
	)

	return &userFixture{
		service: NewUserService(users, recipes, followToggle, jwt.NewJWTService()),
		users:   users,
		recipes: recipes,
	}
}

func (fx *userFixture) register(t *testing.T, email, username string) domain.User {
	t.Helper()
	user, err := fx.service.Register(context.Background(), domain.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	fx := newUserFixture()
	registered := fx.register(t, "cook@example.com", "cook")

	res, err := fx.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, registered.ID, res.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newUserFixture()
	fx.register(t, "cook@example.com", "cook")

	_, err := fx.service.Register(context.Background(), domain.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "othercook",
		FirstName: "Other",
		LastName:  "Cook",
		Password:  "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newUserFixture()
	fx.register(t, "cook@example.com", "cook")

	_, err := fx.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginUnknownEmail(t *testing.T) {
	fx := newUserFixture()

	_, err := fx.service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSubscribeLifecycle(t *testing.T) {
	fx := newUserFixture()
	follower := fx.register(t, "follower@example.com", "follower")
	author := fx.register(t, "author@example.com", "author")

	sub, err := fx.service.Subscribe(context.Background(), author.ID, follower.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, sub.User.ID)
	assert.True(t, sub.User.IsSubscribed)

	_, err = fx.service.Subscribe(context.Background(), author.ID, follower.ID)
	assert.ErrorIs(t, err, domain.ErrRelationExists)

	detail, err := fx.service.GetUserDetail(context.Background(), author.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsSubscribed)

	require.NoError(t, fx.service.Unsubscribe(context.Background(), author.ID, follower.ID))
	err = fx.service.Unsubscribe(context.Background(), author.ID, follower.ID)
	assert.ErrorIs(t, err, domain.ErrRelationNotFound)
}

func TestSubscribeToSelf(t *testing.T) {
	fx := newUserFixture()
	me := fx.register(t, "me@example.com", "me")

	_, err := fx.service.Subscribe(context.Background(), me.ID, me.ID)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	fx := newUserFixture()
	follower := fx.register(t, "follower@example.com", "follower")

	_, err := fx.service.Subscribe(context.Background(), uuid.New().String(), follower.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSubscriptionsRecipesLimit(t *testing.T) {
	fx := newUserFixture()
	follower := fx.register(t, "follower@example.com", "follower")
	author := fx.register(t, "author@example.com", "author")

	for i := 0; i < 5; i++ {
		fx.recipes.recipes[author.ID] = append(fx.recipes.recipes[author.ID], &entities.Recipe{
			ID:   uuid.New(),
			Name: "recipe",
		})
	}

	_, err := fx.service.Subscribe(context.Background(), author.ID, follower.ID)
	require.NoError(t, err)

	res, err := fx.service.GetSubscriptions(context.Background(), follower.ID, 2, 1, 20)
	require.NoError(t, err)
	require.Len(t, res.Subscriptions, 1)

	// The cap trims the preview list only, never the count.
	assert.Len(t, res.Subscriptions[0].Recipes, 2)
	assert.EqualValues(t, 5, res.Subscriptions[0].RecipesCount)
}

func TestResetPassword(t *testing.T) {
	fx := newUserFixture()
	registered := fx.register(t, "cook@example.com", "cook")

	jwtService := jwt.NewJWTService()
	token, err := jwtService.GenerateTokenResetPassword(
		map[string]any{"user_id": registered.ID},
		30*time.Minute,
	)
	require.NoError(t, err)

	err = fx.service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    token,
		Password: "newsecret456",
	})
	require.NoError(t, err)

	_, err = fx.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "newsecret456",
	})
	assert.NoError(t, err)

	_, err = fx.service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}
