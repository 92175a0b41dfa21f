package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/pages"
)

// ProductList renders the product catalog with cost, profit and margin.
func ProductList(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	filters := pages.ProductFiltersFromRequest(r)
	costings, err := s.ProductCostings(r.Context(), filters.Catalog())
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Products", "products", pages.Products(pages.ProductsPage{Filters: filters, Costings: costings}))
}

// ProductTable handles HTMX requests for the filtered product table.
func ProductTable(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	filters := pages.ProductFiltersFromRequest(r)
	costings, err := s.ProductCostings(r.Context(), filters.Catalog())
	if err != nil {
		fail(w, r, err)
		return
	}
	renderComponent(w, r, http.StatusOK, pages.ProductTable(costings))
}

func productForm(r *http.Request, s *catalog.Store, title, action string) (pages.Form, error) {
	form := pages.NewForm(title, action, "/products")
	recipes, err := s.ListRecipes(r.Context(), "")
	if err != nil {
		return form, err
	}
	form.Options["recipe"] = pages.RecipeOptions(recipes)
	return form, nil
}

// ProductNew renders an empty product form.
func ProductNew(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		fail(w, r, err)
		return
	}
	form, err := productForm(r, s, "New product", "/products/new")
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, form.Title, "products", pages.ProductForm(form))
}

// ProductCreate stores a product together with its main variation.
func ProductCreate(w http.ResponseWriter, r *http.Request) {
	saveProduct(w, r, 0, "New product", "/products/new")
}

// ProductEdit renders the form of an existing product.
func ProductEdit(w http.ResponseWriter, r *http.Request) {
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
	product, err := s.GetProduct(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	form, err := productForm(r, s, "Edit product", fmt.Sprintf("/products/%d/update", id))
	if err != nil {
		fail(w, r, err)
		return
	}
	form.Values = pages.ProductValues(product)
	renderPage(w, r, http.StatusOK, form.Title, "products", pages.ProductForm(form))
}

// ProductUpdate stores changes to a product. Its variations are kept.
func ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	saveProduct(w, r, id, "Edit product", fmt.Sprintf("/products/%d/update", id))
}

func saveProduct(w http.ResponseWriter, r *http.Request, id uint, title, action string) {
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
	in := decodeProduct(d)
	err = d.err()
	productID := id
	if err == nil {
		if id == 0 {
			product, cerr := s.CreateProduct(r.Context(), in)
			productID, err = product.ID, cerr
		} else {
			_, err = s.UpdateProduct(r.Context(), id, in)
		}
	}
	if errors.Is(err, catalog.ErrInvalid) {
		form, ferr := productForm(r, s, title, action)
		if ferr != nil {
			fail(w, r, ferr)
			return
		}
		form = form.WithValues(d.values).WithErrors(catalog.FieldErrors(err))
		renderPage(w, r, http.StatusUnprocessableEntity, title, "products", pages.ProductForm(form))
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	applog.Info(r.Context(), "product saved", "product_id", productID, "product_type", in.ProductType)
	setFlash(r.Context(), "Product saved.")
	redirect(w, r, fmt.Sprintf("/products/%d/variations", productID))
}

// ProductConfirmDelete asks before deleting a product and its variations.
func ProductConfirmDelete(w http.ResponseWriter, r *http.Request) {
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
	product, err := s.GetProduct(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, "Delete product", "products", pages.Confirm(pages.ConfirmDelete{
		Title:   "Delete " + product.ProductType,
		Message: "Deleting this product also deletes its variations.",
		Action:  fmt.Sprintf("/products/%d/delete", id),
		Cancel:  "/products",
	}))
}

// ProductDelete removes a product.
func ProductDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := s.DeleteProduct(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	setFlash(r.Context(), "Product deleted.")
	redirect(w, r, "/products")
}
