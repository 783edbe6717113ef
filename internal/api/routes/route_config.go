package routes

import (
	"mymixes/internal/api/handlers"
	"mymixes/internal/metrics"
	"mymixes/internal/middleware"
	"mymixes/pkg/jwt"
	"mymixes/pkg/qr"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	ReviewHandler handlers.ReviewHandler
	QrHandler     handlers.QrHandler
	AuthHandler   handlers.AuthHandler
	ImageHandler  handlers.ImageHandler
	HealthHandler handlers.HealthHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
	QrService     qr.QrService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Recipes()
	c.Reviews()
	c.Qr()
	c.Images()
}

func (c *Config) admin() []fiber.Handler {
	return []fiber.Handler{c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware()}
}

func (c *Config) GuestRoute() {
	c.App.Get("/", c.HealthHandler.Root)
	c.App.Get("/health", c.HealthHandler.Health)
	c.App.Get("/metrics", metrics.Handler())
	c.App.Get("/ingredient-types", c.RecipeHandler.ListIngredientTypes)
}

func (c *Config) Auth() {
	auth := c.App.Group("/auth")
	{
		auth.Post("/login", c.AuthHandler.Login)
		auth.Get("/verify", c.AuthHandler.Verify)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/recipes")
	{
		recipes.Get("", c.RecipeHandler.ListRecipes)
		recipes.Get("/id/:id", c.RecipeHandler.GetRecipeByID)
		recipes.Get("/:slug", c.RecipeHandler.GetRecipeBySlug)

		recipes.Post("", append(c.admin(), c.RecipeHandler.CreateRecipe)...)
		recipes.Put("/:id", append(c.admin(), c.RecipeHandler.UpdateRecipe)...)
		recipes.Delete("/:id", append(c.admin(), c.RecipeHandler.DeleteRecipe)...)
	}
}

func (c *Config) Reviews() {
	reviews := c.App.Group("/recipes/:id")
	{
		reviews.Get("/reviews", c.ReviewHandler.ListReviews)
		reviews.Post("/reviews", c.ReviewHandler.CreateReview)
		reviews.Post("/anonymous-reviews", c.Middleware.QRTokenMiddleware(c.QrService), c.ReviewHandler.CreateAnonymousReview)
	}
}

func (c *Config) Qr() {
	qrGroup := c.App.Group("/qr", c.admin()...)
	{
		qrGroup.Post("/generate", c.QrHandler.GenerateToken)
		qrGroup.Get("", c.QrHandler.ListTokens)
		qrGroup.Get("/counts", c.QrHandler.CountTokens)
		qrGroup.Get("/:id/image", c.QrHandler.RenderImage)
		qrGroup.Delete("/:id", c.QrHandler.DeleteToken)
	}
}

func (c *Config) Images() {
	c.App.Post("/images/upload", append(c.admin(), c.ImageHandler.UploadImage)...)
}
