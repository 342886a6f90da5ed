package config

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/relation"
	"foodgram/pkg/shopping"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	tagRepository := tag.NewTagRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Toggles
	favoriteToggle := relation.NewFavoriteToggle(db)
	cartToggle := relation.NewShoppingCartToggle(db)
	followToggle := relation.NewFollowToggle(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, recipeRepository, followToggle, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	tagService := tag.NewTagService(tagRepository)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		ingredientRepository,
		tagRepository,
		favoriteToggle,
		cartToggle,
		s3,
	)
	shoppingService := shopping.NewShoppingService(shoppingRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	tagHandler := handlers.NewTagHandler(tagService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		TagHandler:        tagHandler,
		ShoppingHandler:   shoppingHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
