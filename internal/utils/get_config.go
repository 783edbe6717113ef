package utils

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppEnv  string `yaml:"APP_ENV"`
	AppPort string `yaml:"APP_PORT"`
	LogFile string `yaml:"LOG_FILE"`

	// Rate limit, requests per second per client
	RateLimitMax int `yaml:"RATE_LIMIT_MAX"`

	// Database configuration. DATABASE_URL wins over the split fields.
	DatabaseURL string `yaml:"DATABASE_URL"`
	DBUser      string `yaml:"DB_USER"`
	DBName      string `yaml:"DB_NAME"`
	DBPassword  string `yaml:"DB_PASSWORD"`
	DBPort      string `yaml:"DB_PORT"`
	DBHost      string `yaml:"DB_HOST"`

	// Admin authentication
	JWTSecret         string `yaml:"JWT_SECRET"`
	AdminPasswordHash string `yaml:"ADMIN_PASSWORD_HASH"`

	// Frontend origin, used for CORS and QR deep links
	FrontendURL string `yaml:"FRONTEND_URL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppEnv:       "development",
		AppPort:      "3000",
		LogFile:      "./logs/app.log",
		RateLimitMax: 20,
		FrontendURL:  "http://localhost:5173",
	}
}

// LoadConfig reads config.yaml, then .env, then the process environment.
// Later sources override earlier ones; missing files are not an error.
func LoadConfig() {
	config = defaultConfig()

	file, err := os.ReadFile("config.yaml")
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Errorf("Error parsing YAML file: %s", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		log.Errorf("Error reading YAML file: %s", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Errorf("Error reading .env file: %s", err)
	}

	applyEnv(&config)
}

func applyEnv(c *Config) {
	overrides := map[string]*string{
		"APP_ENV":             &c.AppEnv,
		"APP_PORT":            &c.AppPort,
		"LOG_FILE":            &c.LogFile,
		"DATABASE_URL":        &c.DatabaseURL,
		"DB_USER":             &c.DBUser,
		"DB_NAME":             &c.DBName,
		"DB_PASSWORD":         &c.DBPassword,
		"DB_PORT":             &c.DBPort,
		"DB_HOST":             &c.DBHost,
		"JWT_SECRET":          &c.JWTSecret,
		"ADMIN_PASSWORD_HASH": &c.AdminPasswordHash,
		"FRONTEND_URL":        &c.FrontendURL,
		"AWS_S3_BUCKET":       &c.AWSS3Bucket,
		"AWS_S3_REGION":       &c.AWSS3Region,
		"AWS_ACCESS_KEY":      &c.AWSAccessKey,
		"AWS_SECRET_KEY":      &c.AWSSecretKey,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("RATE_LIMIT_MAX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("ignoring RATE_LIMIT_MAX=%q: %v", v, err)
		} else {
			c.RateLimitMax = n
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_ENV":
		return config.AppEnv
	case "APP_PORT":
		return config.AppPort
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return strconv.Itoa(config.RateLimitMax)
	case "DATABASE_URL":
		return config.DatabaseURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "ADMIN_PASSWORD_HASH":
		return config.AdminPasswordHash
	case "FRONTEND_URL":
		return config.FrontendURL
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfigInt returns an integer setting, or def when it is not a number.
// Zero is a real value; RATE_LIMIT_MAX=0 turns the limiter off.
func GetConfigInt(key string, def int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return n
}
