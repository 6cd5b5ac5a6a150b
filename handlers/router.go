package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Router wires the food pages and form endpoints. CORS handling is only
// installed when allowedOrigins is non-empty.
func Router(fh *FoodHandler, log *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	if len(allowedOrigins) > 0 {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		})
		r.Use(corsHandler.Handler)
	}

	r.Get("/", fh.Index)
	r.Get("/recommend", fh.Recommend)
	r.Get("/foods", fh.ListFoods)
	r.Get("/add", fh.AddFoodForm)
	r.Post("/add_food", fh.AddFood)
	r.Post("/delete_selected_foods", fh.DeleteSelectedFoods)

	return r
}
