package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/pages"
)

// IngredientList renders the ingredient catalog, filtered by name and supplier.
func IngredientList(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	filter := pages.IngredientFiltersFromRequest(r)
	ingredients, err := s.ListIngredients(r.Context(), filter)
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsFragment(r) {
		renderComponent(w, r, http.StatusOK, pages.IngredientTable(ingredients))
		return
	}
	suppliers, err := s.ListSuppliers(r.Context(), "")
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Ingredients", "ingredients", pages.Ingredients(pages.IngredientsPage{
		Filter:      filter,
		Suppliers:   pages.SupplierOptions(suppliers),
		Ingredients: ingredients,
	}))
}

func ingredientForm(r *http.Request, s *catalog.Store, title, action string) (pages.Form, error) {
	form := pages.NewForm(title, action, "/ingredients")
	suppliers, err := s.ListSuppliers(r.Context(), "")
	if err != nil {
		return form, err
	}
	form.Options["supplier"] = pages.SupplierOptions(suppliers)
	return form, nil
}

// IngredientNew renders an empty ingredient form.
func IngredientNew(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	form, err := ingredientForm(r, s, "New ingredient", "/ingredients/new")
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, form.Title, "ingredients", pages.IngredientForm(form))
}

// IngredientCreate stores a submitted ingredient.
func IngredientCreate(w http.ResponseWriter, r *http.Request) {
	saveIngredient(w, r, 0, "New ingredient", "/ingredients/new")
}

// IngredientEdit renders the form of an existing ingredient.
func IngredientEdit(w http.ResponseWriter, r *http.Request) {
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
	ingredient, err := s.GetIngredient(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	form, err := ingredientForm(r, s, "Edit ingredient", fmt.Sprintf("/ingredients/%d/update", id))
	if err != nil {
		fail(w, r, err)
		return
	}
	form.Values = pages.IngredientValues(ingredient)
	renderPage(w, r, http.StatusOK, form.Title, "ingredients", pages.IngredientForm(form))
}

// IngredientUpdate stores changes to an existing ingredient.
func IngredientUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	saveIngredient(w, r, id, "Edit ingredient", fmt.Sprintf("/ingredients/%d/update", id))
}

func saveIngredient(w http.ResponseWriter, r *http.Request, id uint, title, action string) {
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
	in := decodeIngredient(d)
	err = d.err()
	if err == nil {
		if id == 0 {
			_, err = s.CreateIngredient(r.Context(), in)
		} else {
			_, err = s.UpdateIngredient(r.Context(), id, in)
		}
	}
	if errors.Is(err, catalog.ErrInvalid) {
		form, ferr := ingredientForm(r, s, title, action)
		if ferr != nil {
			fail(w, r, ferr)
			return
		}
		form = form.WithValues(d.values).WithErrors(catalog.FieldErrors(err))
		renderPage(w, r, http.StatusUnprocessableEntity, title, "ingredients", pages.IngredientForm(form))
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "ingredient saved", "name", in.Name, "price_per_gram", in.PricePerGram.String())
	setFlash(r.Context(), "Ingredient saved.")
	redirect(w, r, "/ingredients")
}

// IngredientConfirmDelete asks before deleting an ingredient.
func IngredientConfirmDelete(w http.ResponseWriter, r *http.Request) {
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
	ingredient, err := s.GetIngredient(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Delete ingredient", "ingredients", pages.Confirm(pages.ConfirmDelete{
		Title:   "Delete " + ingredient.String(),
		Message: "Deleting this ingredient removes it from every recipe that uses it.",
		Action:  fmt.Sprintf("/ingredients/%d/delete", id),
		Cancel:  "/ingredients",
	}))
}

// IngredientDelete removes an ingredient.
func IngredientDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := s.DeleteIngredient(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	setFlash(r.Context(), "Ingredient deleted.")
	redirect(w, r, "/ingredients")
}
