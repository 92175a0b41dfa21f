package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bakery/internal/handlers"
	applog "bakery/internal/log"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.LogRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)
	r.Get("/", handlers.Home)

	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", handlers.SupplierList)
		r.Get("/new", handlers.SupplierNew)
		r.Post("/new", handlers.SupplierCreate)
		r.Get("/{id}/update", handlers.SupplierEdit)
		r.Post("/{id}/update", handlers.SupplierUpdate)
		r.Get("/{id}/delete", handlers.SupplierConfirmDelete)
		r.Post("/{id}/delete", handlers.SupplierDelete)
	})

	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", handlers.IngredientList)
		r.Get("/new", handlers.IngredientNew)
		r.Post("/new", handlers.IngredientCreate)
		r.Get("/{id}/update", handlers.IngredientEdit)
		r.Post("/{id}/update", handlers.IngredientUpdate)
		r.Get("/{id}/delete", handlers.IngredientConfirmDelete)
		r.Post("/{id}/delete", handlers.IngredientDelete)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", handlers.RecipeList)
		r.Get("/ingredient-row", handlers.RecipeIngredientRow)
		r.Get("/new", handlers.RecipeNew)
		r.Post("/new", handlers.RecipeCreate)
		r.Get("/{id}/update", handlers.RecipeEdit)
		r.Post("/{id}/update", handlers.RecipeUpdate)
		r.Get("/{id}/delete", handlers.RecipeConfirmDelete)
		r.Post("/{id}/delete", handlers.RecipeDelete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.ProductList)
		r.Get("/table", handlers.ProductTable)
		r.Get("/new", handlers.ProductNew)
		r.Post("/new", handlers.ProductCreate)
		r.Get("/{id}/update", handlers.ProductEdit)
		r.Post("/{id}/update", handlers.ProductUpdate)
		r.Get("/{id}/delete", handlers.ProductConfirmDelete)
		r.Post("/{id}/delete", handlers.ProductDelete)
		r.Get("/{id}/variations", handlers.VariationList)
		r.Post("/{id}/variations", handlers.VariationCreate)
	})

	r.Route("/variations/{id}", func(r chi.Router) {
		r.Get("/update", handlers.VariationEdit)
		r.Post("/update", handlers.VariationUpdate)
		r.Post("/main", handlers.VariationSetMain)
		r.Post("/delete", handlers.VariationDelete)
	})

	r.Get("/api/products/{id}/costing", handlers.ProductCostingAPI)

	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		applog.Debug(context.Background(), "route registered", "method", method, "path", route)
		return nil
	})
	return r
}
