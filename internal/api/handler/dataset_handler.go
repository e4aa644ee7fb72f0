package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/dataset"
)

// DatasetHandler serves the flattened indicator dataset loaded at startup.
// Reload re-reads the export file without restarting the server.
type DatasetHandler struct {
	path string

	mu      sync.RWMutex
	records []dataset.Record
}

func NewDatasetHandler(path string, records []dataset.Record) *DatasetHandler {
	return &DatasetHandler{path: path, records: records}
}

// All handles GET /v1/dataset and returns every flattened record.
func (h *DatasetHandler) All(c echo.Context) error {
	h.mu.RLock()
	records := h.records
	h.mu.RUnlock()

	if records == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no dataset configured")
	}
	return c.JSON(http.StatusOK, records)
}

// Reload handles POST /v1/dataset/reload (admin only) and re-reads the
// configured export file.
func (h *DatasetHandler) Reload(c echo.Context) error {
	if h.path == "" {
		return echo.NewHTTPError(http.StatusNotFound, "no dataset configured")
	}

	records, err := dataset.LoadFile(h.path)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.records = records
	h.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "reloaded",
		"records": len(records),
	})
}
