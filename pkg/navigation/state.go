// Package navigation models the browser client as a finite-state machine.
// Transition is pure: it returns the next State and the Effects the shell must
// run, and the shell reports each Effect's outcome back as an Event.
package navigation

import (
	"strings"

	"mymixes/domain"
)

const (
	MessagePasswordRequired = "Password is required"
	MessageNameRequired     = "Please enter your name"
	MessageCommentRequired  = "Please write a comment"
	MessageReviewThanks     = "Thanks for your review!"
)

type State struct {
	Page     Page
	Admin    bool
	Token    string
	Search   string
	Recipes  []domain.RecipeSummary
	QrTokens []domain.QrToken
	Cache    RecipeCache
	Err      string
	Notice   string

	inFlight map[EffectKind]bool
	refetch  bool
}

// Initial is the state for a fresh page load. A QR deep link opens its review
// page; anything else opens the landing page.
func Initial(hash string) (State, []Effect) {
	if page, ok := ParseHash(hash); ok {
		return State{}.navigate(page)
	}
	return State{Page: Landing()}, nil
}

// Loading reports whether any effect is still running.
func (s State) Loading() bool {
	return len(s.inFlight) > 0
}

// Pending reports whether an effect of kind is still running.
func (s State) Pending(kind EffectKind) bool {
	return s.inFlight[kind]
}

func Transition(s State, e Event) (State, []Effect) {
	switch ev := e.(type) {
	case Navigate:
		return s.navigate(ev.To)

	case SearchChanged:
		s.Search = ev.Query
		if s.Page.ListsRecipes() {
			return s.fetchRecipes()
		}
		return s, nil

	case LoginSubmitted:
		if strings.TrimSpace(ev.Password) == "" {
			s.Err = MessagePasswordRequired
			return s, nil
		}
		s.Err = ""
		return s.start(LoginRequest{Password: ev.Password})

	case LoginSucceeded:
		s = s.finish(KindLogin)
		s.Admin = true
		s.Token = ev.Token
		return s.navigate(Home())

	case Logout:
		s.Admin = false
		s.Token = ""
		s.QrTokens = nil
		return s.navigate(Landing())

	case RecipesLoaded:
		s = s.finish(KindFetchRecipes)
		s.Recipes = ev.Items
		s.Err = ""
		if s.refetch {
			s.refetch = false
			if s.Page.ListsRecipes() {
				return s.fetchRecipes()
			}
		}
		return s, nil

	case RecipeLoaded:
		s = s.finish(KindFetchRecipe)
		s.Cache = s.Cache.Put(ev.Recipe)
		return s.loadShownRecipe()

	case RecipeSubmitted:
		switch s.Page.Name {
		case PageCreate:
			return s.start(CreateRecipe{Request: ev.Request})
		case PageEdit:
			return s.start(UpdateRecipe{ID: s.Page.ID, Request: ev.Request})
		}
		return s, nil

	case RecipeSaved:
		s = s.finish(KindCreateRecipe).finish(KindUpdateRecipe)
		s.Cache = s.Cache.Put(ev.Recipe)
		return s.navigate(Detail(ev.Recipe.ID))

	case DeleteRequested:
		if !s.Admin {
			return s.navigate(Login())
		}
		return s.start(DeleteRecipe{ID: ev.ID})

	case RecipeDeleted:
		s = s.finish(KindDeleteRecipe)
		s.Cache = s.Cache.Remove(ev.ID)
		s.Recipes = withoutRecipe(s.Recipes, ev.ID)
		return s.navigate(Home())

	case ReviewSubmitted:
		if s.Page.Name != PageReview {
			return s, nil
		}
		switch {
		case strings.TrimSpace(ev.Request.Name) == "":
			s.Err = MessageNameRequired
			return s, nil
		case strings.TrimSpace(ev.Request.Comment) == "":
			s.Err = MessageCommentRequired
			return s, nil
		}
		s.Err = ""
		req := ev.Request
		req.Name = strings.TrimSpace(req.Name)
		req.Comment = strings.TrimSpace(req.Comment)
		return s.start(SubmitReview{RecipeID: s.Page.ID, Token: s.Page.Token, Request: req})

	case ReviewSaved:
		s = s.finish(KindSubmitReview)
		s.Notice = MessageReviewThanks
		// average changed, the cached copy is stale
		s.Cache = s.Cache.Remove(ev.Review.RecipeID)
		return s, nil

	case QrTokensLoaded:
		s = s.finish(KindFetchQrTokens)
		s.QrTokens = ev.Tokens
		return s, nil

	case EffectFailed:
		s = s.finish(ev.Kind)
		s.Err = ev.Err
		if ev.Kind == KindFetchRecipes {
			s.refetch = false
		}
		return s, nil
	}

	return s, nil
}

func (s State) navigate(to Page) (State, []Effect) {
	if to.AdminOnly() && !s.Admin {
		to = Login()
	}

	s.Page = to
	s.Err = ""
	s.Notice = ""

	switch {
	case to.ListsRecipes():
		return s.fetchRecipes()
	case to.ShowsRecipe():
		return s.loadShownRecipe()
	case to.Name == PageQrManager:
		return s.start(FetchQrTokens{})
	}
	return s, nil
}

// fetchRecipes queues one more fetch when a list fetch is already running, so
// the latest search is always applied.
func (s State) fetchRecipes() (State, []Effect) {
	if s.inFlight[KindFetchRecipes] {
		s.refetch = true
		return s, nil
	}
	return s.start(FetchRecipes{Query: s.Search})
}

func (s State) loadShownRecipe() (State, []Effect) {
	if !s.Page.ShowsRecipe() {
		return s, nil
	}
	if _, ok := s.Cache.Get(s.Page.ID); ok {
		return s, nil
	}
	return s.start(FetchRecipe{ID: s.Page.ID})
}

func (s State) start(effect Effect) (State, []Effect) {
	kind := effect.Kind()
	if s.inFlight[kind] {
		return s, nil
	}

	next := make(map[EffectKind]bool, len(s.inFlight)+1)
	for k := range s.inFlight {
		next[k] = true
	}
	next[kind] = true
	s.inFlight = next
	return s, []Effect{effect}
}

func (s State) finish(kind EffectKind) State {
	if !s.inFlight[kind] {
		return s
	}

	next := make(map[EffectKind]bool, len(s.inFlight))
	for k := range s.inFlight {
		if k != kind {
			next[k] = true
		}
	}
	s.inFlight = next
	return s
}

func withoutRecipe(items []domain.RecipeSummary, id uint) []domain.RecipeSummary {
	res := make([]domain.RecipeSummary, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			res = append(res, item)
		}
	}
	return res
}
