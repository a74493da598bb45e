package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/wonny/helios/internal/contracts"
	"github.com/wonny/helios/pkg/logger"
)

// ReportHandler serves the in-memory analysis result
// ⭐ SSOT: 리포트 API 핸들러는 이 구조체에서만
type ReportHandler struct {
	report *contracts.Report
	charts map[string][]byte // name -> PNG
	logger *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(report *contracts.Report, charts map[string][]byte, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		report: report,
		charts: charts,
		logger: log,
	}
}

// GetReport returns the full analysis report as JSON.
// Undefined metrics serialize as null.
// GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.report)
}

// ListCharts returns the available chart names
// GET /api/charts
func (h *ReportHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.charts))
	for name := range h.charts {
		names = append(names, name)
	}
	sort.Strings(names)

	respondJSON(w, http.StatusOK, map[string]interface{}{"charts": names})
}

// GetChart returns one rendered chart as PNG
// GET /api/charts/{name}
func (h *ReportHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	img, ok := h.charts[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown chart: "+name)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.logger.WithError(err).WithField("chart", name).Error("Failed to write chart response")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
