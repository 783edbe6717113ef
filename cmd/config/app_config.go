package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"mymixes/domain"
	"mymixes/internal/api/handlers"
	"mymixes/internal/api/presenters"
	"mymixes/internal/api/routes"
	"mymixes/internal/metrics"
	"mymixes/internal/middleware"
	"mymixes/internal/utils"
	"mymixes/internal/utils/storage"
	"mymixes/pkg/auth"
	"mymixes/pkg/image"
	"mymixes/pkg/jwt"
	"mymixes/pkg/qr"
	"mymixes/pkg/recipe"
	"mymixes/pkg/review"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// multipart overhead on top of the largest accepted image
const bodyLimit = domain.MaxImageSize + 2<<20

type Options struct {
	Env               string
	FrontendURL       string
	JWTSecret         string
	AdminPasswordHash string
	LogFile           string
	RateLimitMax      int

	// S3 is nil when image storage is not configured.
	S3 storage.AwsS3
}

// LoadOptions reads Options from the loaded configuration. Missing S3 settings
// disable image upload instead of failing startup.
func LoadOptions(ctx context.Context) Options {
	opts := Options{
		Env:               utils.GetConfig("APP_ENV"),
		FrontendURL:       utils.GetConfig("FRONTEND_URL"),
		JWTSecret:         utils.GetConfig("JWT_SECRET"),
		AdminPasswordHash: utils.GetConfig("ADMIN_PASSWORD_HASH"),
		LogFile:           utils.GetConfig("LOG_FILE"),
		RateLimitMax:      utils.GetConfigInt("RATE_LIMIT_MAX", 20),
	}

	if opts.JWTSecret == "" || opts.AdminPasswordHash == "" {
		log.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH is not set, admin login will fail")
	}

	s3Config := storage.S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	}
	if !s3Config.Enabled() {
		log.Warn("AWS_S3_BUCKET or AWS_S3_REGION is not set, image upload is disabled")
		return opts
	}

	s3, err := storage.NewAwsS3(ctx, s3Config)
	if err != nil {
		log.Errorf("image upload disabled: %v", err)
		return opts
	}
	opts.S3 = s3
	return opts
}

func NewApp(db *gorm.DB, opts Options) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "mymixes",
		ErrorHandler: presenters.ErrorHandler,
		BodyLimit:    bodyLimit,
	})
	middlewares := middleware.NewMiddleware(opts.FrontendURL)
	validator := utils.Validate

	// setting up logging and limiter
	output, err := logOutput(opts)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     output,
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(metrics.Middleware())

	if opts.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	recipeRepository := recipe.NewRecipeRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	qrRepository := qr.NewQrRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret, domain.AdminTokenLifetime)
	authService := auth.NewAuthService(opts.AdminPasswordHash, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, opts.S3)
	qrService := qr.NewQrService(qrRepository, opts.FrontendURL)
	reviewService := review.NewReviewService(reviewRepository, qrService)
	imageService := image.NewImageService(opts.S3)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	qrHandler := handlers.NewQrHandler(qrService, validator)
	authHandler := handlers.NewAuthHandler(authService)
	imageHandler := handlers.NewImageHandler(imageService)
	healthHandler := handlers.NewHealthHandler(opts.Env)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		ReviewHandler: reviewHandler,
		QrHandler:     qrHandler,
		AuthHandler:   authHandler,
		ImageHandler:  imageHandler,
		HealthHandler: healthHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
		QrService:     qrService,
	}
	routesConfig.Setup()
	return app, nil
}

func logOutput(opts Options) (io.Writer, error) {
	if opts.Env == "test" {
		return io.Discard, nil
	}
	if opts.LogFile == "" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.LogFile), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(opts.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, file), nil
}
