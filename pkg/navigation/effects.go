package navigation

import "mymixes/domain"

type EffectKind string

const (
	KindFetchRecipes  EffectKind = "fetch-recipes"
	KindFetchRecipe   EffectKind = "fetch-recipe"
	KindLogin         EffectKind = "login"
	KindCreateRecipe  EffectKind = "create-recipe"
	KindUpdateRecipe  EffectKind = "update-recipe"
	KindDeleteRecipe  EffectKind = "delete-recipe"
	KindSubmitReview  EffectKind = "submit-review"
	KindFetchQrTokens EffectKind = "fetch-qr-tokens"
)

// Effect is an HTTP call the shell performs on behalf of Transition. Its
// outcome comes back as the matching success event or as EffectFailed.
type Effect interface {
	Kind() EffectKind
}

type (
	FetchRecipes struct{ Query string }

	FetchRecipe struct{ ID uint }

	LoginRequest struct{ Password string }

	CreateRecipe struct{ Request domain.RecipeRequest }

	UpdateRecipe struct {
		ID      uint
		Request domain.RecipeRequest
	}

	DeleteRecipe struct{ ID uint }

	SubmitReview struct {
		RecipeID uint
		Token    string
		Request  domain.AnonymousReviewRequest
	}

	FetchQrTokens struct{}
)

func (FetchRecipes) Kind() EffectKind  { return KindFetchRecipes }
func (FetchRecipe) Kind() EffectKind   { return KindFetchRecipe }
func (LoginRequest) Kind() EffectKind  { return KindLogin }
func (CreateRecipe) Kind() EffectKind  { return KindCreateRecipe }
func (UpdateRecipe) Kind() EffectKind  { return KindUpdateRecipe }
func (DeleteRecipe) Kind() EffectKind  { return KindDeleteRecipe }
func (SubmitReview) Kind() EffectKind  { return KindSubmitReview }
func (FetchQrTokens) Kind() EffectKind { return KindFetchQrTokens }
