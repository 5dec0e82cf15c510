package render

import (
	"net/http"

	"videogw/internal/api"
)

// Identity is what the cookies claim about the visitor. Nothing here is
// validated by the gateway; the backend decides what the token is worth.
type Identity struct {
	ID    string
	Email string
	Name  string
	Token string
}

// IdentityFromRequest reads the identity cookies. Missing cookies leave the
// fields empty, which is what an anonymous visitor looks like.
func IdentityFromRequest(r *http.Request) Identity {
	return Identity{
		ID:    cookieValue(r, "id"),
		Email: cookieValue(r, "email"),
		Name:  cookieValue(r, "name"),
		Token: cookieValue(r, "token"),
	}
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// UserState is the user slice of the initial state. All fields omitempty so
// an anonymous visitor serializes as {}.
type UserState struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// InitialState is the application state embedded in the rendered document
// for client-side hydration. It is always fully formed: the slices are never
// nil so they encode as [] rather than null.
type InitialState struct {
	User      UserState         `json:"user"`
	MyList    []api.CatalogItem `json:"myList"`
	Trends    []api.CatalogItem `json:"trends"`
	Originals []api.CatalogItem `json:"originals"`
}

// Logged reports whether the state belongs to a signed-in visitor.
func (s *InitialState) Logged() bool {
	return s.User.ID != ""
}

// EmptyState is the fallback when the catalog fetch fails: anonymous user,
// empty lists, still a renderable page.
func EmptyState() *InitialState {
	return &InitialState{
		MyList:    []api.CatalogItem{},
		Trends:    []api.CatalogItem{},
		Originals: []api.CatalogItem{},
	}
}

// NewInitialState builds the per-request state from the cookie identity and
// the fetched catalog. Trends carries the PG-rated items, originals the
// G-rated ones; items without an _id are dropped from both. My list starts
// empty and is populated client-side.
func NewInitialState(ident Identity, items []api.CatalogItem) *InitialState {
	return &InitialState{
		User: UserState{
			ID:    ident.ID,
			Email: ident.Email,
			Name:  ident.Name,
		},
		MyList:    []api.CatalogItem{},
		Trends:    filterByRating(items, "PG"),
		Originals: filterByRating(items, "G"),
	}
}

func filterByRating(items []api.CatalogItem, rating string) []api.CatalogItem {
	out := []api.CatalogItem{}
	for _, item := range items {
		if item.ID != "" && item.ContentRating == rating {
			out = append(out, item)
		}
	}
	return out
}
