package navigation

import "mymixes/domain"

// Event is an input to Transition: a user action or the result of an Effect.
type Event interface {
	event()
}

type (
	Navigate struct{ To Page }

	SearchChanged struct{ Query string }

	LoginSubmitted struct{ Password string }

	LoginSucceeded struct{ Token string }

	Logout struct{}

	RecipesLoaded struct{ Items []domain.RecipeSummary }

	RecipeLoaded struct{ Recipe domain.RecipeDetail }

	RecipeSubmitted struct{ Request domain.RecipeRequest }

	RecipeSaved struct{ Recipe domain.RecipeDetail }

	DeleteRequested struct{ ID uint }

	RecipeDeleted struct{ ID uint }

	ReviewSubmitted struct{ Request domain.AnonymousReviewRequest }

	ReviewSaved struct{ Review domain.Review }

	QrTokensLoaded struct{ Tokens []domain.QrToken }

	// EffectFailed reports that the effect of the given kind did not complete.
	EffectFailed struct {
		Kind EffectKind
		Err  string
	}
)

func (Navigate) event()        {}
func (SearchChanged) event()   {}
func (LoginSubmitted) event()  {}
func (LoginSucceeded) event()  {}
func (Logout) event()          {}
func (RecipesLoaded) event()   {}
func (RecipeLoaded) event()    {}
func (RecipeSubmitted) event() {}
func (RecipeSaved) event()     {}
func (DeleteRequested) event() {}
func (RecipeDeleted) event()   {}
func (ReviewSubmitted) event() {}
func (ReviewSaved) event()     {}
func (QrTokensLoaded) event()  {}
func (EffectFailed) event()    {}
