package navigation

import (
	"net/url"
	"strconv"
	"strings"
)

type PageName string

const (
	PageLanding   PageName = "landing"
	PageLogin     PageName = "login"
	PageHome      PageName = "home"
	PageGuest     PageName = "guest"
	PageCreate    PageName = "create"
	PageDetail    PageName = "detail"
	PageEdit      PageName = "edit"
	PageReview    PageName = "review"
	PageQrManager PageName = "qr-manager"
)

// Page is the view currently shown. ID is set for detail, edit and review;
// Token only for review pages reached through a QR link.
type Page struct {
	Name  PageName
	ID    uint
	Token string
}

func Landing() Page       { return Page{Name: PageLanding} }
func Login() Page         { return Page{Name: PageLogin} }
func Home() Page          { return Page{Name: PageHome} }
func Guest() Page         { return Page{Name: PageGuest} }
func Create() Page        { return Page{Name: PageCreate} }
func QrManager() Page     { return Page{Name: PageQrManager} }
func Detail(id uint) Page { return Page{Name: PageDetail, ID: id} }
func Edit(id uint) Page   { return Page{Name: PageEdit, ID: id} }
func Review(id uint, token string) Page {
	return Page{Name: PageReview, ID: id, Token: token}
}

// AdminOnly reports whether the page needs a logged in admin.
func (p Page) AdminOnly() bool {
	switch p.Name {
	case PageHome, PageCreate, PageEdit, PageQrManager:
		return true
	}
	return false
}

// ListsRecipes reports whether the page shows the recipe grid.
func (p Page) ListsRecipes() bool {
	return p.Name == PageHome || p.Name == PageGuest
}

// ShowsRecipe reports whether the page renders one full recipe.
func (p Page) ShowsRecipe() bool {
	return p.Name == PageDetail || p.Name == PageEdit || p.Name == PageReview
}

// ParseHash recognizes the QR deep link "#/review/<id>?token=<token>".
func ParseHash(hash string) (Page, bool) {
	raw := strings.TrimPrefix(hash, "#")
	if raw == "" {
		return Page{}, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Page{}, false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != string(PageReview) {
		return Page{}, false
	}

	id, err := strconv.ParseUint(parts[1], 10, 0)
	if err != nil || id == 0 {
		return Page{}, false
	}
	return Review(uint(id), u.Query().Get("token")), true
}
