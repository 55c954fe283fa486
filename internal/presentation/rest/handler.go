// Package rest exposes the contract analysis use cases over HTTP/JSON.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
)

// maxBodyBytes bounds request bodies; the contract text limit applies on top.
const maxBodyBytes = 2 * dto.MaxContractTextBytes

// UseCases groups the application services served by the API.
type UseCases struct {
	Analyze   *usecase.AnalyzeContract
	Assess    *usecase.AssessContract
	Get       *usecase.GetAnalysis
	List      *usecase.ListAnalyses
	Export    *usecase.ExportAnalysis
	Dashboard *usecase.Dashboard
	Alerts    *usecase.ListAlerts
}

// ContractHandler serves the /api/v1 routes.
type ContractHandler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(uc UseCases, logger *slog.Logger) *ContractHandler {
	return &ContractHandler{uc: uc, logger: logger}
}

// RegisterRoutes registers the API on mux. write guards submissions and
// read guards everything else.
func (h *ContractHandler) RegisterRoutes(mux *http.ServeMux, write, read Middleware) {
	mux.Handle("POST /api/v1/contracts/analyze", write(http.HandlerFunc(h.AnalyzeContract)))
	mux.Handle("POST /api/v1/contracts/assess", write(http.HandlerFunc(h.AssessContract)))
	mux.Handle("GET /api/v1/contracts", read(http.HandlerFunc(h.ListAnalyses)))
	mux.Handle("GET /api/v1/contracts/{id}", read(http.HandlerFunc(h.GetAnalysis)))
	mux.Handle("GET /api/v1/contracts/{id}/export/{format}", read(http.HandlerFunc(h.ExportAnalysis)))
	mux.Handle("GET /api/v1/dashboard", read(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /api/v1/alerts", read(http.HandlerFunc(h.ListAlerts)))
}

// AnalyzeContract handles POST /api/v1/contracts/analyze.
func (h *ContractHandler) AnalyzeContract(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(r)
	var req dto.AnalyzeContractRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.TenantID, req.UserID = claims.TenantID, claims.UserID

	resp, err := h.uc.Analyze.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// AssessContract handles POST /api/v1/contracts/assess.
func (h *ContractHandler) AssessContract(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(r)
	var req dto.AssessContractRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.TenantID, req.UserID = claims.TenantID, claims.UserID

	resp, err := h.uc.Assess.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListAnalyses handles GET /api/v1/contracts.
func (h *ContractHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := pagination(q.Get("limit"), q.Get("offset"))
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	resp, err := h.uc.List.Execute(r.Context(), dto.ListAnalysesRequest{
		TenantID:     mustClaims(r).TenantID,
		ContractType: q.Get("contract_type"),
		RiskLevel:    q.Get("risk_level"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAnalysis handles GET /api/v1/contracts/{id}.
func (h *ContractHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	resp, err := h.uc.Get.Execute(r.Context(), dto.GetAnalysisRequest{TenantID: mustClaims(r).TenantID, AnalysisID: id})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportAnalysis handles GET /api/v1/contracts/{id}/export/{format}.
func (h *ContractHandler) ExportAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	doc, err := h.uc.Export.Execute(r.Context(), dto.ExportAnalysisRequest{
		TenantID:   mustClaims(r).TenantID,
		AnalysisID: id,
		Format:     r.PathValue("format"),
	})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// Dashboard handles GET /api/v1/dashboard.
func (h *ContractHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Dashboard.Execute(r.Context(), mustClaims(r).TenantID)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAlerts handles GET /api/v1/alerts.
func (h *ContractHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := pagination(q.Get("limit"), q.Get("offset"))
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	alerts, err := h.uc.Alerts.Execute(r.Context(), dto.ListAlertsRequest{
		TenantID: mustClaims(r).TenantID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": alerts})
}

// decode reads a JSON body into v and writes a 400 on failure.
func (h *ContractHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// mustClaims returns the claims set by Authenticate, which guards every API route.
func mustClaims(r *http.Request) *auth.Claims {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		panic("rest: API route served without Authenticate middleware")
	}
	return claims
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", dto.ErrValidation, r.PathValue("id"))
	}
	return id, nil
}

func pagination(limitStr, offsetStr string) (limit, offset int, err error) {
	if limitStr != "" {
		if limit, err = strconv.Atoi(limitStr); err != nil {
			return 0, 0, fmt.Errorf("%w: limit must be a number", dto.ErrValidation)
		}
	}
	if offsetStr != "" {
		if offset, err = strconv.Atoi(offsetStr); err != nil {
			return 0, 0, fmt.Errorf("%w: offset must be a number", dto.ErrValidation)
		}
	}
	return limit, offset, nil
}
