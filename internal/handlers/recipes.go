package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/pages"
)

// RecipeList renders the recipes with their shape and ingredient cost.
func RecipeList(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	query := pages.SearchQuery(r)
	recipes, err := s.ListRecipes(r.Context(), query)
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsFragment(r) {
		renderComponent(w, r, http.StatusOK, pages.RecipeTable(recipes))
		return
	}
	renderPage(w, r, http.StatusOK, "Recipes", "recipes", pages.Recipes(pages.RecipesPage{Query: query, Recipes: recipes}))
}

func ingredientOptions(r *http.Request, s *catalog.Store) ([]pages.Option, error) {
	ingredients, err := s.ListIngredients(r.Context(), catalog.IngredientFilter{})
	if err != nil {
		return nil, err
	}
	return pages.IngredientOptions(ingredients), nil
}

func recipeForm(title, action string, options []pages.Option) pages.Form {
	form := pages.NewForm(title, action, "/recipes")
	form.Options["shape"] = pages.ShapeOptions()
	form.Rows = []pages.RecipeRow{{Options: options}}
	return form
}

// RecipeNew renders an empty recipe form with one ingredient row.
func RecipeNew(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	options, err := ingredientOptions(r, s)
	if err != nil {
		fail(w, r, err)
		return
	}
	form := recipeForm("New recipe", "/recipes/new", options)
	renderPage(w, r, http.StatusOK, form.Title, "recipes", pages.RecipeForm(form))
}

// RecipeIngredientRow returns an empty ingredient row for the recipe form.
func RecipeIngredientRow(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	options, err := ingredientOptions(r, s)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderComponent(w, r, http.StatusOK, pages.RecipeIngredientRow(pages.RecipeRow{Options: options}))
}

// RecipeCreate stores a submitted recipe and its ingredient rows.
func RecipeCreate(w http.ResponseWriter, r *http.Request) {
	saveRecipe(w, r, 0, "New recipe", "/recipes/new")
}

// RecipeEdit renders the form of an existing recipe.
func RecipeEdit(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	recipe, err := s.GetRecipe(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	options, err := ingredientOptions(r, s)
	if err != nil {
		fail(w, r, err)
		return
	}
	form := recipeForm("Edit recipe", fmt.Sprintf("/recipes/%d/update", id), options)
	form.Values = pages.RecipeValues(recipe)
	if len(recipe.Ingredients) > 0 {
		form.Rows = pages.RecipeRows(recipe.Ingredients, options)
	}
	renderPage(w, r, http.StatusOK, form.Title, "recipes", pages.RecipeForm(form))
}

// RecipeUpdate stores changes to a recipe, replacing its ingredient rows.
func RecipeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	saveRecipe(w, r, id, "Edit recipe", fmt.Sprintf("/recipes/%d/update", id))
}

func saveRecipe(w http.ResponseWriter, r *http.Request, id uint, title, action string) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	d, err := newFormDecoder(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := decodeRecipe(d)
	err = d.err()
	if err == nil {
		if id == 0 {
			_, err = s.CreateRecipe(r.Context(), in)
		} else {
			_, err = s.UpdateRecipe(r.Context(), id, in)
		}
	}
	if errors.Is(err, catalog.ErrInvalid) {
		options, oerr := ingredientOptions(r, s)
		if oerr != nil {
			fail(w, r, oerr)
			return
		}
		form := recipeForm(title, action, options).WithValues(d.values)
		form.Rows = pages.SubmittedRows(d.values, options)
		form = form.WithErrors(catalog.FieldErrors(err))
		renderPage(w, r, http.StatusUnprocessableEntity, title, "recipes", pages.RecipeForm(form))
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "recipe saved", "name", in.Name, "rows", len(in.Ingredients))
	setFlash(r.Context(), "Recipe saved.")
	redirect(w, r, "/recipes")
}

// RecipeConfirmDelete asks before deleting a recipe and the products made from it.
func RecipeConfirmDelete(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	recipe, err := s.GetRecipe(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Delete recipe", "recipes", pages.Confirm(pages.ConfirmDelete{
		Title:   "Delete " + recipe.Name,
		Message: "Deleting this recipe also deletes the products made from it and their variations.",
		Action:  fmt.Sprintf("/recipes/%d/delete", id),
		Cancel:  "/recipes",
	}))
}

// RecipeDelete removes a recipe.
func RecipeDelete(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.DeleteRecipe(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	setFlash(r.Context(), "Recipe deleted.")
	redirect(w, r, "/recipes")
}
