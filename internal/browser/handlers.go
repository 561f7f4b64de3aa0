package browser

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"spine-db/internal/catalog"
	"spine-db/internal/logging"
)

type Handlers struct {
	store     *catalog.Catalog
	staticDir string
	startTime time.Time
}

func New(store *catalog.Catalog, staticDir string) *Handlers {
	return &Handlers{
		store:     store,
		staticDir: staticDir,
		startTime: time.Now(),
	}
}

// Router builds the full route table for the browse server.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/runs", h.ListRuns).Methods("GET")
	api.HandleFunc("/filters", h.GetFilters).Methods("GET")

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(h.staticDir)))

	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}
