package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carpark-cloud/internal/audit"
	"carpark-cloud/internal/auth"
	facilityapp "carpark-cloud/internal/facility/application"
	facility "carpark-cloud/internal/facility/domain"
)

// Handler provides facility HTTP endpoints.
type Handler struct {
	service     *facilityapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *facilityapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("facility handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes facility endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/vehicles/entry" && r.Method == http.MethodPost:
		h.handleEntry(w, r)
	case r.URL.Path == "/api/v1/slots/release" && r.Method == http.MethodPost:
		h.handleRelease(w, r)
	case r.URL.Path == "/api/v1/status" && r.Method == http.MethodGet:
		h.handleStatus(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleEntry(w http.ResponseWriter, r *http.Request) {
	var req facilityapp.AdmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.VehicleNo == "" {
		http.Error(w, "vehicle_no required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Admit(r.Context(), req)
	if err != nil {
		respondFacilityError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)

	h.logAudit(r, "vehicle.entry", "vehicle", req.VehicleNo, map[string]any{
		"vehicle_type": req.VehicleType,
		"slot":         resp.SlotID,
	})
}

func (h *Handler) handleRelease(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.Release(r.Context(), req.Slot)
	if err != nil {
		respondFacilityError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(receiptResponse(receipt))

	h.logAudit(r, "vehicle.release", "vehicle", receipt.VehicleID, map[string]any{
		"slot":   receipt.SlotID,
		"amount": receipt.Amount,
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	view := h.service.Status(r.Context())

	type slotJSON struct {
		Slot      int     `json:"slot"`
		VehicleNo string  `json:"vehicle_no"`
		Type      string  `json:"vehicle_type"`
		Hours     float64 `json:"hours"`
	}
	resp := struct {
		Total    int        `json:"total"`
		Occupied int        `json:"occupied"`
		Free     int        `json:"free"`
		Slots    []slotJSON `json:"slots"`
	}{Total: view.Total, Occupied: view.Occupied, Free: view.Free, Slots: []slotJSON{}}
	for _, slot := range view.Slots {
		resp.Slots = append(resp.Slots, slotJSON{
			Slot:      slot.SlotID,
			VehicleNo: slot.VehicleID,
			Type:      string(slot.Class),
			Hours:     slot.Hours,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func receiptResponse(receipt facility.Receipt) map[string]any {
	return map[string]any{
		"slot":           receipt.SlotID,
		"vehicle_no":     receipt.VehicleID,
		"vehicle_type":   string(receipt.Class),
		"entered_at":     receipt.EnteredAt,
		"exited_at":      receipt.ExitedAt,
		"duration_hours": receipt.Hours,
		"amount":         receipt.Amount,
	}
}

func respondFacilityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, facility.ErrInvalidClass):
		http.Error(w, "invalid vehicle type", http.StatusBadRequest)
	case errors.Is(err, facility.ErrFacilityFull):
		http.Error(w, "parking full, no slots available", http.StatusConflict)
	case errors.Is(err, facility.ErrSlotEmpty):
		http.Error(w, "slot is empty or invalid", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) logAudit(r *http.Request, action, resourceType, resourceID string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
