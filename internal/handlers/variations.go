package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/pages"
)

func variationForm(productID uint) pages.Form {
	form := pages.NewForm("Add variation", fmt.Sprintf("/products/%d/variations", productID), fmt.Sprintf("/products/%d/variations", productID))
	form.Submit = "Add"
	return form
}

func renderVariations(w http.ResponseWriter, r *http.Request, status int, s *catalog.Store, productID uint, form pages.Form) {
	c, err := s.ProductCosting(r.Context(), productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, status, c.Product.ProductType, "products", pages.Variations(pages.VariationsPage{Costing: c, Form: form}))
}

// renderVariationTable answers HTMX actions with the refreshed table and
// everything else with a redirect to the variation page.
func renderVariationTable(w http.ResponseWriter, r *http.Request, s *catalog.Store, productID uint) {
	if !wantsFragment(r) {
		redirect(w, r, fmt.Sprintf("/products/%d/variations", productID))
		return
	}
	c, err := s.ProductCosting(r.Context(), productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderComponent(w, r, http.StatusOK, pages.VariationTable(c))
}

// VariationList renders a product's variations with their adjusted figures.
func VariationList(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	productID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsFragment(r) {
		c, err := s.ProductCosting(r.Context(), productID)
		if err != nil {
			fail(w, r, err)
			return
		}
		renderComponent(w, r, http.StatusOK, pages.VariationTable(c))
		return
	}
	renderVariations(w, r, http.StatusOK, s, productID, variationForm(productID))
}

// VariationCreate adds a size variation to a product.
func VariationCreate(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	productID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	d, err := newFormDecoder(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := decodeVariation(d)
	err = d.err()
	if err == nil {
		_, err = s.AddVariation(r.Context(), productID, in)
	}
	if errors.Is(err, catalog.ErrInvalid) {
		form := variationForm(productID).WithValues(d.values).WithErrors(catalog.FieldErrors(err))
		renderVariations(w, r, http.StatusUnprocessableEntity, s, productID, form)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "variation added", "product_id", productID, "main", in.Main)
	setFlash(r.Context(), "Variation added.")
	redirect(w, r, fmt.Sprintf("/products/%d/variations", productID))
}

// VariationEdit renders the form of an existing variation.
func VariationEdit(w http.ResponseWriter, r *http.Request) {
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
	variation, err := s.GetVariation(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	form := pages.NewForm("Edit variation", fmt.Sprintf("/variations/%d/update", id), fmt.Sprintf("/products/%d/variations", variation.ProductID))
	form.Values = pages.VariationValues(variation)
	renderVariations(w, r, http.StatusOK, s, variation.ProductID, form)
}

// VariationUpdate stores new dimensions for a variation.
func VariationUpdate(w http.ResponseWriter, r *http.Request) {
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
	variation, err := s.GetVariation(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	d, err := newFormDecoder(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := decodeVariation(d)
	err = d.err()
	if err == nil {
		_, err = s.UpdateVariation(r.Context(), id, in)
	}
	back := fmt.Sprintf("/products/%d/variations", variation.ProductID)
	if errors.Is(err, catalog.ErrInvalid) {
		form := pages.NewForm("Edit variation", fmt.Sprintf("/variations/%d/update", id), back).
			WithValues(d.values).WithErrors(catalog.FieldErrors(err))
		renderVariations(w, r, http.StatusUnprocessableEntity, s, variation.ProductID, form)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	setFlash(r.Context(), "Variation updated.")
	redirect(w, r, back)
}

// VariationSetMain makes a variation the cost reference of its product.
func VariationSetMain(w http.ResponseWriter, r *http.Request) {
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
	variation, err := s.SetMainVariation(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "main variation changed", "product_id", variation.ProductID, "variation_id", variation.ID)
	if !wantsFragment(r) {
		setFlash(r.Context(), "Main variation changed.")
	}
	renderVariationTable(w, r, s, variation.ProductID)
}

// VariationDelete removes a variation. A main variation can only go once it
// is the last one of its product.
func VariationDelete(w http.ResponseWriter, r *http.Request) {
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
	variation, err := s.GetVariation(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	err = s.DeleteVariation(r.Context(), id)
	if errors.Is(err, catalog.ErrMainVariationInUse) && !wantsFragment(r) {
		setFlash(r.Context(), "Choose another main variation before deleting this one.")
		redirect(w, r, fmt.Sprintf("/products/%d/variations", variation.ProductID))
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	if !wantsFragment(r) {
		setFlash(r.Context(), "Variation deleted.")
	}
	renderVariationTable(w, r, s, variation.ProductID)
}
