package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lenregele/tipsplit/internal/models"
	"github.com/lenregele/tipsplit/internal/service"
)

// CalculationHandler handles tip calculation HTTP requests.
type CalculationHandler struct {
	svc *service.TipService
}

// NewCalculationHandler creates a new calculation handler.
func NewCalculationHandler(svc *service.TipService) *CalculationHandler {
	return &CalculationHandler{svc: svc}
}

type workSessionRequest struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	HoursWorked  float64 `json:"hours_worked"`
}

type createCalculationRequest struct {
	TotalTips    float64              `json:"total_tips"`
	Currency     string               `json:"currency"`
	WorkSessions []workSessionRequest `json:"work_sessions"`
}

// Create handles POST /api/tip-calculations
func (h *CalculationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCalculationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sessions := make([]service.SessionInput, len(req.WorkSessions))
	for i, ws := range req.WorkSessions {
		sessions[i] = service.SessionInput{
			EmployeeID:   ws.EmployeeID,
			EmployeeName: ws.EmployeeName,
			HoursWorked:  ws.HoursWorked,
		}
	}

	calc, err := h.svc.ComputeAndRecord(r.Context(), req.TotalTips, req.Currency, sessions)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, calc)
}

// List handles GET /api/tip-calculations?limit=N
func (h *CalculationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0 // service applies its default when the parameter is omitted
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	calcs, err := h.svc.ListHistory(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if calcs == nil {
		calcs = []models.TipCalculation{}
	}
	writeJSON(w, http.StatusOK, calcs)
}

// Get handles GET /api/tip-calculations/{id}
func (h *CalculationHandler) Get(w http.ResponseWriter, r *http.Request) {
	calc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

// Statistics handles GET /api/statistics
func (h *CalculationHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
