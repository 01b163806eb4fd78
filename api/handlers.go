/*
handlers.go - HTTP API handlers for the amortization engine

PURPOSE:
  Exposes the engine's two entry points (generate, compare) and the plan
  workspace via REST. Handles HTTP request/response and JSON serialization,
  delegating all calculation to the amort package.

ENDPOINTS:
  Engine:
    POST   /api/schedule          Generate a labeled schedule
    POST   /api/schedule/compare  Baseline vs with-extras comparison

  Plans:
    GET    /api/plans                  List open plans
    POST   /api/plans                  Create a plan
    GET    /api/plans/{id}             Get a plan
    PUT    /api/plans/{id}             Update terms/display mode, or reset
    DELETE /api/plans/{id}             Close a plan
    PUT    /api/plans/{id}/extras      Edit extra payments (cells or bulk)
    GET    /api/plans/{id}/schedule    Plan schedule + comparison
    GET    /api/plans/{id}/export      Schedule as CSV

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: InvalidInput (with the offending field), malformed JSON
  - 404: Unknown plan
  - 500: Internal errors (including engine invariant violations)

CACHING:
  Comparisons are cached by request digest; a cache miss or write failure
  only costs a recomputation and is logged, never surfaced.

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amort"
	"github.com/warp/amortization-engine/cache"
	"github.com/warp/amortization-engine/export"
	"github.com/warp/amortization-engine/plan"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Plans plan.Store
	Cache cache.Cache
}

// NewHandler creates a handler. A nil cache disables comparison caching.
func NewHandler(plans plan.Store, c cache.Cache) *Handler {
	return &Handler{Plans: plans, Cache: c}
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

// GenerateSchedule computes a labeled schedule for ad-hoc terms.
// POST /api/schedule
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode, err := req.DisplayMode.toMode()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := amort.Generate(req.toTerms(), toExtras(req.ExtraPayments), mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(result))
}

// CompareSchedules runs the baseline-vs-extras comparison, cached by the
// canonical request.
// POST /api/schedule/compare
func (h *Handler) CompareSchedules(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	key, ok := h.compareKey(req)
	if ok {
		if cached, hit := h.Cache.Get(r.Context(), key); hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	result, err := amort.Compare(req.toTerms(), toExtras(req.ExtraPayments))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toComparisonDTO(result)
	if ok {
		h.storeComparison(r.Context(), key, dto)
	}
	writeJSON(w, http.StatusOK, dto)
}

// compareKey derives the cache key from the re-marshaled request, so
// clients with different JSON formatting share entries.
func (h *Handler) compareKey(req CompareRequest) (string, bool) {
	if h.Cache == nil {
		return "", false
	}
	canonical, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return cache.Key("compare", canonical), true
}

func (h *Handler) storeComparison(ctx context.Context, key string, dto ComparisonDTO) {
	payload, err := json.Marshal(dto)
	if err != nil {
		return
	}
	// Not critical if this fails; the next request just recomputes.
	if err := h.Cache.Set(ctx, key, string(payload)); err != nil {
		log.Printf("Warning: failed to cache comparison: %v", err)
	}
}

// =============================================================================
// PLAN ENDPOINTS
// =============================================================================

// ListPlans returns all open plans, oldest first.
// GET /api/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Plans.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanDTO, len(plans))
	for i, p := range plans {
		dtos[i] = toPlanDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePlan opens a new plan, defaulted like a fresh calculator tab.
// POST /api/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	name := req.Name
	if name == "" {
		if ms, ok := h.Plans.(*plan.MemoryStore); ok {
			name = ms.NextName()
		} else {
			name = "Plan"
		}
	}

	p := plan.New(newPlanID(), name)
	if req.Principal != 0 || req.AnnualRatePercent != 0 || req.TermMonths != 0 {
		p.Terms = LoanTermsDTO{
			Principal:         req.Principal,
			AnnualRatePercent: req.AnnualRatePercent,
			TermMonths:        req.TermMonths,
		}.toTerms()
	}
	if err := p.Terms.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Plans.Save(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlanDTO(p))
}

// GetPlan returns a single plan.
// GET /api/plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(p))
}

// UpdatePlan replaces a plan's terms and/or display mode, or resets it to
// defaults. Extras beyond a shortened term are dropped.
// PUT /api/plans/{id}
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Reset {
		p.Reset()
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Terms != nil {
		terms := req.Terms.toTerms()
		if err := terms.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}
		p.Terms = terms
		for period := range p.Extras {
			if period >= terms.TermMonths {
				delete(p.Extras, period)
			}
		}
	}
	if req.DisplayMode != nil {
		mode, err := req.DisplayMode.toMode()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := mode.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}
		p.DisplayMode = mode
	}
	p.UpdatedAt = time.Now().UTC()

	if err := h.Plans.Save(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(p))
}

// DeletePlan closes a plan.
// DELETE /api/plans/{id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.Plans.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateExtras edits a plan's extra payments: bulk apply-to-all first, then
// individual cells.
// PUT /api/plans/{id}/extras
func (h *Handler) UpdateExtras(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var req UpdateExtrasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.ApplyToAll != nil {
		if err := p.ApplyExtraToAll(decimal.NewFromFloat(*req.ApplyToAll)); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	for period, amount := range req.Extras {
		if err := p.SetExtra(period, decimal.NewFromFloat(amount)); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	if err := h.Plans.Save(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanDTO(p))
}

// GetPlanSchedule computes the plan's labeled schedule and its baseline
// comparison.
// GET /api/plans/{id}/schedule
func (h *Handler) GetPlanSchedule(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	schedule, err := p.Schedule()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	comparison, err := p.Comparison()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PlanScheduleDTO{
		Plan:       toPlanDTO(p),
		Schedule:   toScheduleDTO(schedule),
		Comparison: toComparisonDTO(comparison),
	})
}

// ExportPlanCSV streams the plan's schedule as a CSV download.
// GET /api/plans/{id}/export
func (h *Handler) ExportPlanCSV(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	schedule, err := p.Schedule()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	comparison, err := p.Comparison()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.ID+".csv"))
	if err := export.WriteCSV(w, p.Terms, schedule, comparison.Baseline); err != nil {
		log.Printf("Warning: csv export for %s aborted: %v", p.ID, err)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// loadPlan fetches the plan from the URL, writing the error response itself
// when the plan cannot be served.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request) (*plan.Plan, bool) {
	id := chi.URLParam(r, "id")
	p, err := h.Plans.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return nil, false
	}
	return p, true
}

// writeDomainError maps engine errors to HTTP statuses: InvalidInput is the
// caller's problem, anything else is ours.
func writeDomainError(w http.ResponseWriter, err error) {
	if amort.IsInvalidInput(err) {
		resp := ErrorResponse{Error: err.Error()}
		var invalid *amort.InvalidInputError
		if errors.As(err, &invalid) {
			resp.Field = invalid.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeError(w, http.StatusInternalServerError, "Calculation failed", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func newPlanID() string {
	return fmt.Sprintf("plan-%d", time.Now().UnixNano())
}
