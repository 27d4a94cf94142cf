package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"synapse/synapse/controllers"
	"synapse/synapse/middlewares"
	"synapse/synapse/utils/types"

	"github.com/go-chi/chi/v5"
)

// HarvestRoutes registers the on-demand harvest trigger
func HarvestRoutes(ctrl *controllers.HarvestController, secret string) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(secret))

		// POST /harvest
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.HarvestRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			report, err := ctrl.Harvest(r.Context(), req)
			if err != nil {
				var invalid *controllers.ErrInvalidURL
				if errors.As(err, &invalid) {
					return nil, http.StatusBadRequest, err
				}
				return nil, http.StatusBadGateway, err
			}
			return report, http.StatusOK, nil
		}))
	})

	return r
}
