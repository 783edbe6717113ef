package qr

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/metrics"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQrSize = 64
	maxQrSize = 1024
)

type (
	QrService interface {
		GenerateToken(ctx context.Context, recipeID uint) (domain.GenerateQrResponse, error)
		ValidateToken(ctx context.Context, token string) (uint, error)
		ListActiveTokens(ctx context.Context, recipeID *uint) ([]domain.QrToken, error)
		CountsByRecipe(ctx context.Context) (map[uint]int64, error)
		DeleteToken(ctx context.Context, id string) error
		MarkUsed(ctx context.Context, token string)
		RenderPNG(ctx context.Context, id string, size int) ([]byte, error)
	}

	qrService struct {
		qrRepository QrRepository
		frontendURL  string
		now          func() time.Time
	}
)

func NewQrService(qrRepository QrRepository, frontendURL string) QrService {
	return &qrService{
		qrRepository: qrRepository,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *qrService) GenerateToken(ctx context.Context, recipeID uint) (domain.GenerateQrResponse, error) {
	recipe, err := s.qrRepository.GetRecipe(ctx, recipeID)
	if err != nil {
		return domain.GenerateQrResponse{}, err
	}

	value, err := randomToken()
	if err != nil {
		return domain.GenerateQrResponse{}, fmt.Errorf("generate qr token: %w", err)
	}

	token := &entities.QrToken{
		ID:        uuid.New(),
		Token:     value,
		RecipeID:  recipe.ID,
		ExpiresAt: s.now().AddDate(domain.QrTokenLifetimeYears, 0, 0),
	}
	if err := s.qrRepository.CreateToken(ctx, token); err != nil {
		return domain.GenerateQrResponse{}, fmt.Errorf("store qr token: %w", err)
	}

	metrics.QrTokens.WithLabelValues(metrics.ResultGenerated).Inc()
	log.Infof("qr token %s generated for recipe %d", token.ID, recipe.ID)

	return domain.GenerateQrResponse{
		ID:        token.ID.String(),
		Token:     token.Token,
		QrURL:     s.reviewURL(recipe.ID, token.Token),
		ExpiresAt: token.ExpiresAt,
		RecipeID:  recipe.ID,
		Recipe:    domain.RecipeRef{ID: recipe.ID, Title: recipe.Title, Slug: recipe.Slug},
	}, nil
}

// ValidateToken returns the recipe the token is scoped to. An empty token is
// domain.ErrQrTokenRequired and any other rejection is domain.ErrInvalidQrToken.
func (s *qrService) ValidateToken(ctx context.Context, token string) (uint, error) {
	if token == "" {
		metrics.QrTokens.WithLabelValues(metrics.ResultMissing).Inc()
		return 0, domain.ErrQrTokenRequired
	}

	row, err := s.qrRepository.GetTokenByValue(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrQrTokenNotFound) {
			metrics.QrTokens.WithLabelValues(metrics.ResultInvalid).Inc()
			return 0, domain.ErrInvalidQrToken
		}
		return 0, err
	}

	if !s.now().Before(row.ExpiresAt) || row.Recipe == nil {
		metrics.QrTokens.WithLabelValues(metrics.ResultInvalid).Inc()
		return 0, domain.ErrInvalidQrToken
	}

	metrics.QrTokens.WithLabelValues(metrics.ResultValid).Inc()
	return row.RecipeID, nil
}

func (s *qrService) ListActiveTokens(ctx context.Context, recipeID *uint) ([]domain.QrToken, error) {
	rows, err := s.qrRepository.ListActiveTokens(ctx, s.now(), recipeID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.QrToken, 0, len(rows))
	for _, row := range rows {
		res = append(res, s.toQrToken(row))
	}
	return res, nil
}

func (s *qrService) CountsByRecipe(ctx context.Context) (map[uint]int64, error) {
	rows, err := s.qrRepository.CountActiveByRecipe(ctx, s.now())
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RecipeID] = row.Count
	}
	return counts, nil
}

func (s *qrService) DeleteToken(ctx context.Context, id string) error {
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrQrTokenNotFound
	}

	if err := s.qrRepository.DeleteToken(ctx, tokenID); err != nil {
		return err
	}

	metrics.QrTokens.WithLabelValues(metrics.ResultRevoked).Inc()
	log.Infof("qr token %s revoked", tokenID)
	return nil
}

// MarkUsed is informational. Tokens stay valid until they expire.
func (s *qrService) MarkUsed(ctx context.Context, token string) {
	if err := s.qrRepository.MarkUsed(ctx, token, s.now()); err != nil {
		log.Warnf("failed to mark qr token used: %v", err)
	}
}

func (s *qrService) RenderPNG(ctx context.Context, id string, size int) ([]byte, error) {
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrQrTokenNotFound
	}

	row, err := s.qrRepository.GetTokenByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.reviewURL(row.RecipeID, row.Token), qrcode.Medium, clampSize(size))
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}

func (s *qrService) reviewURL(recipeID uint, token string) string {
	return fmt.Sprintf("%s/#/review/%d?token=%s", s.frontendURL, recipeID, url.QueryEscape(token))
}

func (s *qrService) toQrToken(row *entities.QrToken) domain.QrToken {
	res := domain.QrToken{
		ID:        row.ID.String(),
		Token:     row.Token,
		RecipeID:  row.RecipeID,
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
		UsedAt:    row.UsedAt,
		CreatedAt: row.CreatedAt,
		QrURL:     s.reviewURL(row.RecipeID, row.Token),
	}
	if row.Recipe != nil {
		res.Recipe = &domain.RecipeRef{ID: row.Recipe.ID, Title: row.Recipe.Title, Slug: row.Recipe.Slug}
	}
	return res
}

func randomToken() (string, error) {
	buf := make([]byte, domain.QrTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func clampSize(size int) int {
	switch {
	case size <= 0:
		return domain.DefaultQrSize
	case size < minQrSize:
		return minQrSize
	case size > maxQrSize:
		return maxQrSize
	default:
		return size
	}
}
