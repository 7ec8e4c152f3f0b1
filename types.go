package recipebook

import (
	"context"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RecipeAPI is the remote recipe service the state container talks to.
type RecipeAPI interface {
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
	CreateRecipe(ctx context.Context, recipe NewRecipe) (Recipe, error)
}

// Ingredient is a single line of a recipe. A nil Quantity means the amount is unspecified.
type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// Recipe is the fully loaded recipe currently being viewed or bookmarked.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"sourceUrl"`
	Image       string       `json:"image"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cookingTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
	Bookmarked  bool         `json:"bookmarked"`
}

// Clone returns a deep copy so callers can't mutate ingredient quantities through a shared slice.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = ing
			if ing.Quantity != nil {
				q := *ing.Quantity
				out.Ingredients[i].Quantity = &q
			}
		}
	}
	return out
}

// IsZero reports whether no recipe has been loaded.
func (r Recipe) IsZero() bool {
	return r.ID == ""
}

// SearchResult is the reduced projection of a recipe returned by a search.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Image     string `json:"image"`
	Key       string `json:"key,omitempty"`
}

// NewRecipe is a normalized recipe ready to be posted to the API.
type NewRecipe struct {
	Title       string       `json:"title"`
	SourceURL   string       `json:"source_url"`
	ImageURL    string       `json:"image_url"`
	Publisher   string       `json:"publisher"`
	CookingTime int          `json:"cooking_time"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Upload is the free-form recipe a user submits. Numeric fields and ingredients
// are kept as entered; each ingredient is a "quantity,unit,description" triple.
type Upload struct {
	Title       string   `json:"title" yaml:"title"`
	SourceURL   string   `json:"sourceUrl" yaml:"sourceUrl"`
	Image       string   `json:"image" yaml:"image"`
	Publisher   string   `json:"publisher" yaml:"publisher"`
	CookingTime string   `json:"cookingTime" yaml:"cookingTime"`
	Servings    string   `json:"servings" yaml:"servings"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}
