package browser

import (
	"net/http"
	"strconv"

	"spine-db/internal/catalog"
	"spine-db/internal/logging"
)

// RunsResponse is the payload for the run listing endpoint.
type RunsResponse struct {
	Items         []catalog.FileRecord `json:"items"`
	TotalCount    int64                `json:"totalCount"`
	FilteredCount int64                `json:"filteredCount"`
	Limit         int                  `json:"limit"`
}

// FiltersResponse lists the distinct values available for each filter.
type FiltersResponse struct {
	Versions []string `json:"versions"`
	Models   []string `json:"models"`
	Datasets []string `json:"datasets"`
}

// ListRuns returns cataloged files, newest first, filtered by the
// version/model/dataset query parameters. Filters combine with AND.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	opts := catalog.QueryOptions{
		SpineVersion: r.URL.Query().Get("version"),
		ModelName:    r.URL.Query().Get("model"),
		DatasetName:  r.URL.Query().Get("dataset"),
		Limit:        catalog.DefaultQueryLimit,
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	ctx := r.Context()

	items, err := h.store.Query(ctx, opts)
	if err != nil {
		logging.Error("run listing query failed: %v", err)
		writeJSONError(w, "query failed", http.StatusInternalServerError)
		return
	}

	filtered, err := h.store.Count(ctx, opts)
	if err != nil {
		logging.Error("run listing count failed: %v", err)
		writeJSONError(w, "query failed", http.StatusInternalServerError)
		return
	}

	total, err := h.store.CountAll(ctx)
	if err != nil {
		logging.Error("run listing total count failed: %v", err)
		writeJSONError(w, "query failed", http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []catalog.FileRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, RunsResponse{
		Items:         items,
		TotalCount:    total,
		FilteredCount: filtered,
		Limit:         opts.Limit,
	})
}

// GetFilters returns the distinct filter values present in the
// catalog, for populating the front-end dropdowns.
func (h *Handlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := FiltersResponse{
		Versions: []string{},
		Models:   []string{},
		Datasets: []string{},
	}

	for _, f := range []struct {
		column string
		dest   *[]string
	}{
		{"spine_version", &response.Versions},
		{"model_name", &response.Models},
		{"dataset_name", &response.Datasets},
	} {
		values, err := h.store.DistinctValues(ctx, f.column)
		if err != nil {
			logging.Error("filter values query failed for %s: %v", f.column, err)
			writeJSONError(w, "query failed", http.StatusInternalServerError)
			return
		}
		if values != nil {
			*f.dest = values
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
