// Package httpapi is the server's plain HTTP side listener: a health probe
// and read-only access to the food catalog.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/catalog"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/gorilla/mux"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type foodsResponse struct {
	Items []ledger.FoodItem `json:"items"`
	Count int               `json:"count"`
}

// NewRouter wires the HTTP routes. db may be nil, in which case health
// only reports the process as alive.
func NewRouter(db Pinger, log logging.Logger) *mux.Router {
	h := &handlers{db: db, log: log}

	root := mux.NewRouter()
	root.Use(h.recoverPanics)

	root.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/foods", h.listFoods).Methods(http.MethodGet)
	api.HandleFunc("/foods/{id}", h.getFood).Methods(http.MethodGet)

	return root
}

type handlers struct {
	db  Pinger
	log logging.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.log.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listFoods(w http.ResponseWriter, r *http.Request) {
	items := catalog.Search(strings.TrimSpace(r.URL.Query().Get("q")))
	writeJSON(w, http.StatusOK, foodsResponse{Items: items, Count: len(items)})
}

func (h *handlers) getFood(w http.ResponseWriter, r *http.Request) {
	item, err := catalog.Get(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "food not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handlers) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				h.log.Error(r.Context(), "panic in http handler", "panic", p, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
