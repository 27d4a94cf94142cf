package routes

import (
	"net/http"
	"time"

	"synapse/synapse/config"
	"synapse/synapse/controllers"
	"synapse/synapse/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Controllers struct {
	Health  *controllers.HealthController
	Widget  *controllers.WidgetController
	Harvest *controllers.HarvestController
}

func Router(ctrls Controllers, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Mount("/health", HealthRoutes(ctrls.Health))
	r.Mount("/widget", WidgetRoutes(ctrls.Widget))
	r.Group(func(gr chi.Router) {
		// websocket sessions are long-lived; only plain requests get a deadline
		gr.Use(middleware.Timeout(60 * time.Second))
		gr.Mount("/harvest", HarvestRoutes(ctrls.Harvest, cfg.HarvestSecret))
	})
	r.Group(AssetRoutes)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.RequestLogger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}
