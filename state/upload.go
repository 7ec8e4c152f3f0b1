package state

import (
	"fmt"
	"strconv"
	"strings"

	"recipebook"
)

const ingredientFormatMessage = "wrong ingredient format, use \"quantity,unit,description\""

// parseUpload normalizes a user submitted recipe into the shape the API accepts.
// Blank ingredient entries are skipped; a blank quantity becomes null.
func parseUpload(u recipebook.Upload) (recipebook.NewRecipe, error) {
	ingredients := make([]recipebook.Ingredient, 0, len(u.Ingredients))
	for i, raw := range u.Ingredients {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return recipebook.NewRecipe{}, &ValidationError{
				Field:   fmt.Sprintf("ingredient %d", i+1),
				Message: ingredientFormatMessage,
			}
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		var quantity *float64
		if parts[0] != "" {
			q, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return recipebook.NewRecipe{}, &ValidationError{
					Field:   fmt.Sprintf("ingredient %d", i+1),
					Message: fmt.Sprintf("quantity %q is not a number", parts[0]),
				}
			}
			quantity = &q
		}

		ingredients = append(ingredients, recipebook.Ingredient{
			Quantity:    quantity,
			Unit:        parts[1],
			Description: parts[2],
		})
	}

	cookingTime, err := parsePositive("cookingTime", u.CookingTime)
	if err != nil {
		return recipebook.NewRecipe{}, err
	}
	servings, err := parsePositive("servings", u.Servings)
	if err != nil {
		return recipebook.NewRecipe{}, err
	}

	return recipebook.NewRecipe{
		Title:       u.Title,
		SourceURL:   u.SourceURL,
		ImageURL:    u.Image,
		Publisher:   u.Publisher,
		CookingTime: cookingTime,
		Servings:    servings,
		Ingredients: ingredients,
	}, nil
}

func parsePositive(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a positive whole number", raw)}
	}
	return n, nil
}
