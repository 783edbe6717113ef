package review

import (
	"context"
	"strings"

	"mymixes/domain"
	"mymixes/entities"
	"mymixes/internal/metrics"

	"github.com/gofiber/fiber/v2/log"
)

type (
	ReviewService interface {
		ListReviews(ctx context.Context, recipeID uint) ([]domain.Review, error)
		CreateReview(ctx context.Context, recipeID uint, userID *uint, req domain.ReviewRequest) (domain.Review, error)
		CreateAnonymousReview(ctx context.Context, recipeID uint, token string, req domain.AnonymousReviewRequest) (domain.Review, error)
	}

	// TokenMarker records that a QR token was used to submit a review.
	TokenMarker interface {
		MarkUsed(ctx context.Context, token string)
	}

	reviewService struct {
		reviewRepository ReviewRepository
		tokens           TokenMarker
	}
)

func NewReviewService(reviewRepository ReviewRepository, tokens TokenMarker) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		tokens:           tokens,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, recipeID uint) ([]domain.Review, error) {
	reviews, err := s.reviewRepository.ListReviews(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		res = append(res, toReview(review))
	}
	return res, nil
}

func (s *reviewService) CreateReview(ctx context.Context, recipeID uint, userID *uint, req domain.ReviewRequest) (domain.Review, error) {
	review := &entities.Review{
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		RecipeID: recipeID,
		UserID:   userID,
	}

	avg, err := s.reviewRepository.CreateReview(ctx, review)
	if err != nil {
		return domain.Review{}, err
	}

	metrics.ReviewsCreated.WithLabelValues(metrics.SourceAccount).Inc()
	log.Infof("review %d stored for recipe %d, avg rating now %.2f", review.ID, recipeID, avg)
	return toReview(review), nil
}

// CreateAnonymousReview expects recipeID to come from an already validated QR token.
func (s *reviewService) CreateAnonymousReview(ctx context.Context, recipeID uint, token string, req domain.AnonymousReviewRequest) (domain.Review, error) {
	name := strings.TrimSpace(req.Name)
	comment := strings.TrimSpace(req.Comment)

	var issues []domain.Issue
	if name == "" {
		issues = append(issues, domain.Issue{Field: "name", Tag: "required", Message: "is required"})
	}
	if comment == "" {
		issues = append(issues, domain.Issue{Field: "comment", Tag: "required", Message: "is required"})
	}
	if len(issues) > 0 {
		return domain.Review{}, &domain.ValidationError{Issues: issues}
	}

	review := &entities.Review{
		Rating:   req.Rating,
		Comment:  comment,
		Name:     &name,
		RecipeID: recipeID,
	}

	avg, err := s.reviewRepository.CreateReview(ctx, review)
	if err != nil {
		return domain.Review{}, err
	}

	if s.tokens != nil {
		s.tokens.MarkUsed(ctx, token)
	}

	metrics.ReviewsCreated.WithLabelValues(metrics.SourceQR).Inc()
	log.Infof("anonymous review %d stored for recipe %d, avg rating now %.2f", review.ID, recipeID, avg)
	return toReview(review), nil
}

func toReview(review *entities.Review) domain.Review {
	return domain.Review{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Name:      review.Name,
		RecipeID:  review.RecipeID,
		UserID:    review.UserID,
		CreatedAt: review.CreatedAt,
	}
}
