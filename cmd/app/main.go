package main

import (
	"flag"
	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/cmd/database/seed"
	"foodgram/internal/utils"
	"log"
)

func main() {
	seedIngredients := flag.Bool("seed", false, "load the ingredient catalog from INGREDIENTS_CSV")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if *seedIngredients {
		if err := seed.SeedIngredients(db, utils.GetConfig("INGREDIENTS_CSV")); err != nil {
			log.Fatalf("failed to seed ingredients: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
