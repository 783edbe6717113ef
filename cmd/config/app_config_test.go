package config

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/api/presenters"
	"mymixes/internal/metrics"
	"mymixes/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminPassword = "muddle-and-stir"

type testApp struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	db := testutil.NewTestDB(t)
	app, err := NewApp(db, Options{
		Env:               "test",
		FrontendURL:       "http://localhost:5173",
		JWTSecret:         "test-secret",
		AdminPasswordHash: string(hash),
	})
	require.NoError(t, err)

	ta := &testApp{app: app, db: db}
	var login domain.LoginResponse
	ta.do(t, "POST", "/auth/login", domain.LoginRequest{Password: adminPassword}, nil, fiber.StatusOK, &login)
	require.NotEmpty(t, login.Token)
	ta.token = login.Token
	return ta
}

func (ta *testApp) do(t *testing.T, method, path string, body any, headers map[string]string, status int, out any) []byte {
	t.Helper()
	resp, err := ta.app.Test(testutil.MakeRequest(method, path, body, headers), -1)
	require.NoError(t, err)
	raw := testutil.AssertStatus(t, resp, status)
	if out != nil && len(raw) > 0 {
		testutil.DecodeJSON(t, raw, out)
	}
	return raw
}

func (ta *testApp) admin() map[string]string {
	return testutil.Bearer(ta.token)
}

func whiskeySour() fiber.Map {
	return fiber.Map{
		"title":  "Whiskey Sour",
		"slug":   "whiskey-sour",
		"method": "Shake with ice, strain.",
		"ingredients": []fiber.Map{
			{"name": "Bourbon", "amount": "2 oz"},
			{"name": "Lemon Juice", "amount": "0.75 oz"},
			{"name": "Simple Syrup", "amount": "0.5 oz"},
		},
	}
}

func (ta *testApp) createRecipe(t *testing.T) domain.RecipeDetail {
	t.Helper()
	var created domain.RecipeDetail
	ta.do(t, "POST", "/recipes", whiskeySour(), ta.admin(), fiber.StatusCreated, &created)
	return created
}

func TestCreateWhiskeySour(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createRecipe(t)
	assert.Equal(t, "whiskey-sour", created.Slug)
	assert.Equal(t, float64(0), created.AvgRating)
	require.Len(t, created.Ingredients, 3)
	assert.Equal(t, "bourbon", created.Ingredients[0].Name)
	assert.Equal(t, "lemon juice", created.Ingredients[1].Name)

	var detail domain.RecipeDetail
	ta.do(t, "GET", "/recipes/whiskey-sour", nil, nil, fiber.StatusOK, &detail)
	assert.Equal(t, created.ID, detail.ID)

	var list domain.RecipeListResponse
	ta.do(t, "GET", "/recipes?query=whiskey", nil, nil, fiber.StatusOK, &list)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, int64(3), list.Items[0].IngredientCount)

	var types []domain.IngredientType
	ta.do(t, "GET", "/ingredient-types", nil, nil, fiber.StatusOK, &types)
	assert.Len(t, types, 3)
}

func TestCreateRecipeRequiresAdmin(t *testing.T) {
	ta := newTestApp(t)

	var body presenters.ErrorBody
	ta.do(t, "POST", "/recipes", whiskeySour(), nil, fiber.StatusUnauthorized, &body)
	assert.Equal(t, domain.MessageTokenRequired, body.Error)

	ta.do(t, "POST", "/recipes", whiskeySour(), testutil.Bearer("not-a-jwt"), fiber.StatusUnauthorized, &body)
	assert.Equal(t, domain.MessageTokenInvalid, body.Error)
}

func TestRejectedRequestsMetricStatus(t *testing.T) {
	ta := newTestApp(t)

	unauthorized := metrics.HTTPRequests.WithLabelValues("POST", "/recipes", "401")
	internal := metrics.HTTPRequests.WithLabelValues("POST", "/recipes", "500")
	before401, before500 := promtest.ToFloat64(unauthorized), promtest.ToFloat64(internal)

	ta.do(t, "POST", "/recipes", whiskeySour(), nil, fiber.StatusUnauthorized, nil)

	assert.Equal(t, before401+1, promtest.ToFloat64(unauthorized))
	assert.Equal(t, before500, promtest.ToFloat64(internal))

	missing := metrics.HTTPRequests.WithLabelValues("POST", "/recipes/:id/anonymous-reviews", "400")
	beforeMissing := promtest.ToFloat64(missing)
	ta.do(t, "POST", "/recipes/1/anonymous-reviews", fiber.Map{"rating": 5, "comment": "ok", "name": "Ana"}, nil, fiber.StatusBadRequest, nil)
	assert.Equal(t, beforeMissing+1, promtest.ToFloat64(missing))
}

func TestCreateRecipeValidation(t *testing.T) {
	ta := newTestApp(t)

	req := whiskeySour()
	req["title"] = "W"
	req["ingredients"] = []fiber.Map{}

	var body presenters.ErrorBody
	ta.do(t, "POST", "/recipes", req, ta.admin(), fiber.StatusBadRequest, &body)
	assert.Equal(t, domain.MessageValidationFailed, body.Error)
	fields := make([]string, 0, len(body.Details))
	for _, issue := range body.Details {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "ingredients")
}

func TestDuplicateSlugConflict(t *testing.T) {
	ta := newTestApp(t)
	ta.createRecipe(t)

	var body presenters.ErrorBody
	ta.do(t, "POST", "/recipes", whiskeySour(), ta.admin(), fiber.StatusConflict, &body)
	assert.Equal(t, domain.MessageUniqueConstraint, body.Error)
}

func TestUnknownIngredientType(t *testing.T) {
	ta := newTestApp(t)

	req := whiskeySour()
	req["ingredients"] = []fiber.Map{{"typeId": 999, "amount": "1 oz"}}

	var body presenters.ErrorBody
	ta.do(t, "POST", "/recipes", req, ta.admin(), fiber.StatusBadRequest, &body)
	assert.Equal(t, domain.MessageInvalidRelation, body.Error)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	ta := newTestApp(t)
	created := ta.createRecipe(t)
	path := fmt.Sprintf("/recipes/%d", created.ID)

	req := whiskeySour()
	req["title"] = "Boston Sour"
	req["ingredients"] = []fiber.Map{{"name": "rye", "amount": "2 oz"}}

	var updated domain.RecipeDetail
	ta.do(t, "PUT", path, req, ta.admin(), fiber.StatusOK, &updated)
	assert.Equal(t, "Boston Sour", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "rye", updated.Ingredients[0].Name)

	ta.do(t, "PUT", "/recipes/999", req, ta.admin(), fiber.StatusNotFound, nil)
	ta.do(t, "PUT", "/recipes/abc", req, ta.admin(), fiber.StatusBadRequest, nil)

	ta.do(t, "DELETE", path, nil, ta.admin(), fiber.StatusNoContent, nil)
	ta.do(t, "DELETE", path, nil, ta.admin(), fiber.StatusNotFound, nil)

	var body presenters.ErrorBody
	ta.do(t, "GET", "/recipes/whiskey-sour", nil, nil, fiber.StatusNotFound, &body)
	assert.Equal(t, domain.MessageRecipeNotFound, body.Error)
}

func TestReviewsUpdateAverage(t *testing.T) {
	ta := newTestApp(t)
	created := ta.createRecipe(t)
	path := fmt.Sprintf("/recipes/%d/reviews", created.ID)

	ta.do(t, "POST", path, domain.ReviewRequest{Rating: 4, Comment: "Great"}, nil, fiber.StatusCreated, nil)

	var detail domain.RecipeDetail
	ta.do(t, "GET", fmt.Sprintf("/recipes/id/%d", created.ID), nil, nil, fiber.StatusOK, &detail)
	assert.Equal(t, float64(4), detail.AvgRating)

	ta.do(t, "POST", path, domain.ReviewRequest{Rating: 2, Comment: "Too sour"}, ta.admin(), fiber.StatusCreated, nil)
	ta.do(t, "GET", fmt.Sprintf("/recipes/id/%d", created.ID), nil, nil, fiber.StatusOK, &detail)
	assert.Equal(t, float64(3), detail.AvgRating)
	assert.Len(t, detail.Reviews, 2)

	var reviews []domain.Review
	ta.do(t, "GET", path, nil, nil, fiber.StatusOK, &reviews)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Too sour", reviews[0].Comment)
	assert.Nil(t, reviews[0].UserID, "admin tokens carry no user")

	ta.do(t, "POST", path, domain.ReviewRequest{Rating: 6, Comment: "!"}, nil, fiber.StatusBadRequest, nil)
	ta.do(t, "GET", "/recipes/999/reviews", nil, nil, fiber.StatusNotFound, nil)
}

func TestAnonymousReviewWithQrToken(t *testing.T) {
	ta := newTestApp(t)
	created := ta.createRecipe(t)

	var generated domain.GenerateQrResponse
	ta.do(t, "POST", "/qr/generate", domain.GenerateQrRequest{RecipeID: created.ID}, ta.admin(), fiber.StatusCreated, &generated)
	assert.Equal(t, fmt.Sprintf("http://localhost:5173/#/review/%d?token=%s", created.ID, generated.Token), generated.QrURL)

	review := domain.AnonymousReviewRequest{Name: "Alex", Rating: 5, Comment: "Loved it"}
	// the path id is ignored in favour of the token's recipe
	path := "/recipes/999/anonymous-reviews?token=" + generated.Token
	var stored domain.Review
	ta.do(t, "POST", path, review, nil, fiber.StatusCreated, &stored)
	assert.Equal(t, created.ID, stored.RecipeID)
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Alex", *stored.Name)

	// tokens stay usable until they expire
	ta.do(t, "POST", path, review, nil, fiber.StatusCreated, nil)

	var tokens []domain.QrToken
	ta.do(t, "GET", fmt.Sprintf("/qr?recipeId=%d", created.ID), nil, ta.admin(), fiber.StatusOK, &tokens)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Used)

	var body presenters.ErrorBody
	ta.do(t, "POST", "/recipes/1/anonymous-reviews", review, nil, fiber.StatusBadRequest, &body)
	assert.Equal(t, domain.MessageQrTokenRequired, body.Error)
}

func TestExpiredQrTokenRejected(t *testing.T) {
	ta := newTestApp(t)
	created := ta.createRecipe(t)

	expired := entities.QrToken{
		ID:        uuid.New(),
		Token:     "expired-token",
		RecipeID:  created.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, ta.db.Create(&expired).Error)

	review := domain.AnonymousReviewRequest{Name: "Alex", Rating: 5, Comment: "Loved it"}
	raw := ta.do(t, "POST", fmt.Sprintf("/recipes/%d/anonymous-reviews?token=expired-token", created.ID), review, nil, fiber.StatusForbidden, nil)
	assert.JSONEq(t, `{"error":"Invalid or expired QR token"}`, string(raw))

	var count int64
	require.NoError(t, ta.db.Model(&entities.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestQrManagement(t *testing.T) {
	ta := newTestApp(t)
	created := ta.createRecipe(t)

	ta.do(t, "POST", "/qr/generate", domain.GenerateQrRequest{RecipeID: created.ID}, nil, fiber.StatusUnauthorized, nil)
	ta.do(t, "POST", "/qr/generate", domain.GenerateQrRequest{RecipeID: 999}, ta.admin(), fiber.StatusNotFound, nil)

	var generated domain.GenerateQrResponse
	ta.do(t, "POST", "/qr/generate", domain.GenerateQrRequest{RecipeID: created.ID}, ta.admin(), fiber.StatusCreated, &generated)

	var counts map[string]int64
	ta.do(t, "GET", "/qr/counts", nil, ta.admin(), fiber.StatusOK, &counts)
	assert.Equal(t, map[string]int64{fmt.Sprint(created.ID): 1}, counts)

	resp, err := ta.app.Test(testutil.MakeRequest("GET", "/qr/"+generated.ID+"/image?size=128", nil, ta.admin()), -1)
	require.NoError(t, err)
	png := testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	ta.do(t, "DELETE", "/qr/"+generated.ID, nil, ta.admin(), fiber.StatusNoContent, nil)
	ta.do(t, "DELETE", "/qr/"+generated.ID, nil, ta.admin(), fiber.StatusNotFound, nil)
}

func TestAuthEndpoints(t *testing.T) {
	ta := newTestApp(t)

	var body presenters.ErrorBody
	ta.do(t, "POST", "/auth/login", domain.LoginRequest{}, nil, fiber.StatusBadRequest, &body)
	assert.Equal(t, domain.MessagePasswordRequired, body.Error)

	ta.do(t, "POST", "/auth/login", domain.LoginRequest{Password: "nope"}, nil, fiber.StatusUnauthorized, &body)
	assert.Equal(t, domain.MessageInvalidCredentials, body.Error)

	var verify domain.VerifyResponse
	ta.do(t, "GET", "/auth/verify", nil, ta.admin(), fiber.StatusOK, &verify)
	assert.True(t, verify.Valid)
	assert.Equal(t, domain.RoleAdmin, verify.User.Role)
	require.NotNil(t, verify.User.Expires)

	ta.do(t, "GET", "/auth/verify", nil, nil, fiber.StatusUnauthorized, &body)
	assert.Equal(t, domain.MessageTokenRequired, body.Error)
}

func TestLoginWithoutServerConfig(t *testing.T) {
	app, err := NewApp(testutil.NewTestDB(t), Options{Env: "test"})
	require.NoError(t, err)

	resp, err := app.Test(testutil.MakeRequest("POST", "/auth/login", domain.LoginRequest{Password: "x"}, nil))
	require.NoError(t, err)
	raw := testutil.AssertStatus(t, resp, fiber.StatusInternalServerError)
	assert.JSONEq(t, `{"error":"Server configuration error"}`, string(raw))
}

func TestImageUploadWithoutStorage(t *testing.T) {
	ta := newTestApp(t)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "mix.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ta.token)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	raw := testutil.AssertStatus(t, resp, fiber.StatusServiceUnavailable)
	assert.JSONEq(t, `{"error":"Image storage is not configured"}`, string(raw))
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)

	var root map[string]string
	ta.do(t, "GET", "/", nil, nil, fiber.StatusOK, &root)
	assert.Equal(t, "Server is running!", root["message"])

	var health struct {
		OK          bool   `json:"ok"`
		Environment string `json:"environment"`
	}
	ta.do(t, "GET", "/health", nil, nil, fiber.StatusOK, &health)
	assert.True(t, health.OK)
	assert.Equal(t, "test", health.Environment)

	raw := ta.do(t, "GET", "/metrics", nil, nil, fiber.StatusOK, nil)
	assert.Contains(t, string(raw), "mymixes_http_requests_total")
}
