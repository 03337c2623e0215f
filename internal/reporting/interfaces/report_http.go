package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"carpark-cloud/internal/audit"
	"carpark-cloud/internal/auth"
	facility "carpark-cloud/internal/facility/domain"
	"carpark-cloud/internal/observability/metrics"
	reportingapp "carpark-cloud/internal/reporting/application"
)

// ReportHandler handles daily report APIs.
type ReportHandler struct {
	service     *reportingapp.ReportService
	currency    string
	auditLogger audit.Logger
}

// NewReportHandler constructs a handler.
func NewReportHandler(service *reportingapp.ReportService, currency string, auditLogger audit.Logger) (*ReportHandler, error) {
	if service == nil {
		return nil, errors.New("report handler: nil service")
	}
	return &ReportHandler{service: service, currency: currency, auditLogger: auditLogger}, nil
}

// ServeHTTP routes report endpoints.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/reports/daily" && r.Method == http.MethodPost:
		h.handleGenerate(w, r)
	case r.URL.Path == "/api/v1/reports/daily/export.pdf" && r.Method == http.MethodGet:
		h.handleExportPDF(w, r)
	case r.URL.Path == "/api/v1/reports/daily/export.xlsx" && r.Method == http.MethodGet:
		h.handleExportXLSX(w, r)
	case r.URL.Path == "/api/v1/reports" && r.Method == http.MethodGet:
		h.handleHistory(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReportHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	report, text, err := h.service.Generate(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportResponse(report, text))

	h.logAudit(r, "report.generate", map[string]any{
		"vehicles": report.Vehicles,
		"revenue":  report.Revenue,
	})
}

func (h *ReportHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.service.History(r.Context())
	resp := make([]map[string]any, 0, len(history))
	for _, report := range history {
		resp = append(resp, reportResponse(report, h.service.Render(report)))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *ReportHandler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	data, err := BuildReportPDF(h.service.History(r.Context()), h.currency)
	if err != nil {
		result = metrics.ResultError
		respondExportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "report.export", map[string]any{"format": "pdf"})
}

func (h *ReportHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("xlsx", result, time.Since(start))
	}()

	data, err := BuildReportXLSX(h.service.History(r.Context()), h.currency)
	if err != nil {
		result = metrics.ResultError
		respondExportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "report.export", map[string]any{"format": "xlsx"})
}

func reportResponse(report facility.DailyReport, text string) map[string]any {
	return map[string]any{
		"date":                report.GeneratedAt.Format("2006-01-02"),
		"generated_at":        report.GeneratedAt,
		"vehicles":            report.Vehicles,
		"revenue":             report.Revenue,
		"average_per_vehicle": report.AveragePerVehicle,
		"peak_occupancy":      report.OccupiedAtGeneration,
		"capacity":            report.Capacity,
		"text":                text,
	}
}

func respondExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoReports) {
		http.Error(w, "no reports generated", http.StatusNotFound)
		return
	}
	http.Error(w, "export error", http.StatusInternalServerError)
}

func (h *ReportHandler) logAudit(r *http.Request, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "report",
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
