package server

import (
	"context"
	"net/http"

	"primecost/internal/handlers"
	applog "primecost/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/api/units", handlers.UnitList)
	mux.HandleFunc("/api/ingredients", handlers.IngredientResource)
	mux.HandleFunc("/api/ingredients/", handlers.IngredientResource)
	mux.HandleFunc("/api/dishes", handlers.DishResource)
	mux.HandleFunc("/api/dishes/", handlers.DishResource)
	return mux
}
