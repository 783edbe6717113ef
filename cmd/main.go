package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mymixes/cmd/config"
	migration "mymixes/cmd/database/migrate"
	"mymixes/cmd/database/seed"
	"mymixes/internal/utils"
	"mymixes/pkg/auth"
	"mymixes/pkg/recipe"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	runSeed := flag.Bool("seed", false, "insert sample data after migrating")
	hashPassword := flag.String("hash-password", "", "print the ADMIN_PASSWORD_HASH for a password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Printf("ADMIN_PASSWORD_HASH=%q\n", hash)
		os.Exit(0)
	}

	utils.LoadConfig()
	ctx := context.Background()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if *runSeed {
		recipeService := recipe.NewRecipeService(recipe.NewRecipeRepository(db), nil)
		if err := seed.Seed(ctx, db, recipeService); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app, err := config.NewApp(db, config.LoadOptions(ctx))
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	log.Infof("Server running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
