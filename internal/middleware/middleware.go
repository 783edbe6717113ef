package middleware

import (
	"strings"

	"mymixes/domain"
	"mymixes/pkg/jwt"
	"mymixes/pkg/qr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// fiber locals set by the middlewares below
const (
	LocalRole       = "role"
	LocalQrRecipeID = "qr_recipe_id"
	LocalQrToken    = "qr_token"
)

const devOrigin = "http://localhost:5173"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		AdminMiddleware() fiber.Handler
		QRTokenMiddleware(qrService qr.QrService) fiber.Handler
	}

	middleware struct {
		frontendURL string
	}
)

func NewMiddleware(frontendURL string) Middleware {
	return &middleware{frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := []string{devOrigin}
	if m.frontendURL != "" && m.frontendURL != devOrigin {
		origins = append(origins, m.frontendURL)
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return domain.ErrTokenMissing
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return err
		}

		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != domain.RoleAdmin {
			return domain.ErrAdminRequired
		}
		return c.Next()
	}
}

// QRTokenMiddleware validates ?token= and exposes the recipe it is scoped to.
func (m *middleware) QRTokenMiddleware(qrService qr.QrService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		recipeID, err := qrService.ValidateToken(c.Context(), token)
		if err != nil {
			return err
		}

		c.Locals(LocalQrRecipeID, recipeID)
		c.Locals(LocalQrToken, token)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
