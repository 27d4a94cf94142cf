package routes

import (
	"net/http"

	"synapse/synapse/controllers"
	"synapse/synapse/utils/logging"
	"synapse/synapse/web"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WidgetRoutes serves the intention bar socket.
func WidgetRoutes(ctrl *controllers.WidgetController) chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		// the script is embedded in pages on other origins
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		if err := ctrl.Serve(r.Context(), conn); err != nil {
			logging.ErrorLogger.Error("widget session error", zap.Error(err))
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}

// AssetRoutes serves the injectable script and a demo host page.
func AssetRoutes(r chi.Router) {
	r.Get("/synapse.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		http.ServeFileFS(w, r, web.Assets, "synapse.js")
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFileFS(w, r, web.Assets, "demo.html")
	})
}
