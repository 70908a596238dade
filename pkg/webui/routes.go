package webui

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

//go:embed static/index.html
var staticFS embed.FS

func NewServer(pipeline *dashboard.Pipeline, chartWidth, chartHeight int, logger *zap.Logger) *Server {
	return &Server{
		pipeline:    pipeline,
		chartWidth:  chartWidth,
		chartHeight: chartHeight,
		logger:      logging.OrNop(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Dashboard is meant for the local network
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Router configures all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.indexHandler).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/ws", s.wsHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view", s.viewHandler).Methods("GET")
	api.HandleFunc("/describe", s.describeHandler).Methods("GET")

	r.HandleFunc("/charts/{measurement:[a-z]+}.{format:png|svg}", s.chartHandler).Methods("GET")
	return r
}

// healthHandler returns server health status
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "gws_dashboard",
	})
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
