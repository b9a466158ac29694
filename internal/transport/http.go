package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Exporter renders the combined snapshot document for the export routes.
type Exporter interface {
	JSON() ([]byte, error)
	CSV() string
}

// Server wires HTTP handlers.
type Server struct {
	export Exporter
}

// NewRouter creates the HTTP router. mcpHandler serves JSON-RPC on /mcp.
func NewRouter(mcpHandler http.Handler, export Exporter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	srv := &Server{export: export}

	r.Handle("/mcp", mcpHandler)
	r.Get("/health", srv.handleHealth)
	r.Get("/export/json", srv.handleExportJSON)
	r.Get("/export/csv", srv.handleExportCSV)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExportJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := s.export.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="timekeep.csv"`)
	_, _ = w.Write([]byte(s.export.CSV()))
}
