package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/arena"
	"github.com/Gzeu/cosmic-legends-server/internal/game/herogen"
	"github.com/Gzeu/cosmic-legends-server/internal/marketplace"
	"github.com/Gzeu/cosmic-legends-server/internal/roster"
)

// Handler serves the REST API.
type Handler struct {
	arena  *arena.Service
	roster *roster.Service
	market *marketplace.Service
	gen    *herogen.Generator
	log    *zap.Logger
}

// New builds the API handler.
func New(arenaSvc *arena.Service, rosterSvc *roster.Service, marketSvc *marketplace.Service, gen *herogen.Generator, log *zap.Logger) *Handler {
	return &Handler{
		arena:  arenaSvc,
		roster: rosterSvc,
		market: marketSvc,
		gen:    gen,
		log:    log,
	}
}

// Router returns the full HTTP handler with logging and panic
// recovery applied.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/battles", h.battles)
	mux.HandleFunc("/api/heroes", h.heroes)
	mux.HandleFunc("/api/ai/heroes", h.aiHeroes)
	mux.HandleFunc("/api/marketplace", h.marketplace)
	mux.HandleFunc("/healthz", h.health)
	return recoverer(h.log, requestLogger(h.log, mux))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"success":false,"error":"method not allowed"}`))
}
