package forkify

import "recipebook"

// envelope is the JSON document every endpoint responds with.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results int    `json:"results,omitempty"`
	Data    struct {
		Recipe  *apiRecipe  `json:"recipe,omitempty"`
		Recipes []apiRecipe `json:"recipes,omitempty"`
	} `json:"data"`
}

type apiRecipe struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Publisher   string                  `json:"publisher"`
	SourceURL   string                  `json:"source_url,omitempty"`
	ImageURL    string                  `json:"image_url"`
	Servings    int                     `json:"servings,omitempty"`
	CookingTime int                     `json:"cooking_time,omitempty"`
	Ingredients []recipebook.Ingredient `json:"ingredients,omitempty"`
	Key         string                  `json:"key,omitempty"`
}

func (r apiRecipe) toRecipe() recipebook.Recipe {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = make([]recipebook.Ingredient, 0)
	}
	return recipebook.Recipe{
		ID:          r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		SourceURL:   r.SourceURL,
		Image:       r.ImageURL,
		Servings:    r.Servings,
		CookingTime: r.CookingTime,
		Ingredients: ingredients,
		Key:         r.Key,
	}
}

func (r apiRecipe) toSearchResult() recipebook.SearchResult {
	return recipebook.SearchResult{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		Image:     r.ImageURL,
		Key:       r.Key,
	}
}
