package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/pages"
)

// SupplierList renders the supplier directory, filtered by name or RUC.
func SupplierList(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	query := pages.SearchQuery(r)
	suppliers, err := s.ListSuppliers(r.Context(), query)
	if err != nil {
		fail(w, r, err)
		return
	}
	if wantsFragment(r) {
		renderComponent(w, r, http.StatusOK, pages.SupplierTable(suppliers))
		return
	}
	renderPage(w, r, http.StatusOK, "Suppliers", "suppliers", pages.Suppliers(pages.SuppliersPage{Query: query, Suppliers: suppliers}))
}

// SupplierNew renders an empty supplier form.
func SupplierNew(w http.ResponseWriter, r *http.Request) {
	form := pages.NewForm("New supplier", "/suppliers/new", "/suppliers")
	renderPage(w, r, http.StatusOK, "New supplier", "suppliers", pages.SupplierForm(form))
}

// SupplierCreate stores a submitted supplier.
func SupplierCreate(w http.ResponseWriter, r *http.Request) {
	saveSupplier(w, r, "", pages.NewForm("New supplier", "/suppliers/new", "/suppliers"))
}

// SupplierEdit renders the form of an existing supplier.
func SupplierEdit(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	supplier, err := s.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	form := pages.NewForm("Edit supplier", "/suppliers/"+supplier.ID+"/update", "/suppliers")
	form.Values = pages.SupplierValues(supplier)
	renderPage(w, r, http.StatusOK, "Edit supplier", "suppliers", pages.SupplierForm(form))
}

// SupplierUpdate stores changes to an existing supplier.
func SupplierUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	saveSupplier(w, r, id, pages.NewForm("Edit supplier", "/suppliers/"+id+"/update", "/suppliers"))
}

func saveSupplier(w http.ResponseWriter, r *http.Request, id string, form pages.Form) {
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
	in := decodeSupplier(d)
	if id == "" {
		_, err = s.CreateSupplier(r.Context(), in)
	} else {
		_, err = s.UpdateSupplier(r.Context(), id, in)
	}
	if errors.Is(err, catalog.ErrInvalid) {
		form = form.WithValues(d.values).WithErrors(catalog.FieldErrors(err))
		renderPage(w, r, http.StatusUnprocessableEntity, form.Title, "suppliers", pages.SupplierForm(form))
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "supplier saved", "name", in.Name)
	setFlash(r.Context(), "Supplier saved.")
	redirect(w, r, "/suppliers")
}

// SupplierConfirmDelete asks before deleting a supplier and its ingredients.
func SupplierConfirmDelete(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	supplier, err := s.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Delete supplier", "suppliers", pages.Confirm(pages.ConfirmDelete{
		Title:   "Delete " + supplier.Name,
		Message: "Deleting this supplier also deletes its ingredients and removes them from every recipe.",
		Action:  "/suppliers/" + supplier.ID + "/delete",
		Cancel:  "/suppliers",
	}))
}

// SupplierDelete removes a supplier.
func SupplierDelete(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	setFlash(r.Context(), "Supplier deleted.")
	redirect(w, r, "/suppliers")
}
