package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: ErrContractTextTooShort wraps ErrValidation.
var errorMappings = []errorMapping{
	{dto.ErrContractTextTooShort, http.StatusBadRequest, "contract_text_too_short"},
	{dto.ErrValidation, http.StatusBadRequest, "invalid_request"},
	{service.ErrContractTypeNotInPlan, http.StatusForbidden, "contract_type_not_in_plan"},
	{service.ErrQuotaExceeded, http.StatusPaymentRequired, "quota_exceeded"},
	{model.ErrAnalysisNotFound, http.StatusNotFound, "not_found"},
	{model.ErrAnalysisNotCompleted, http.StatusConflict, "analysis_not_completed"},
	{port.ErrExtractionFailed, http.StatusBadGateway, "extraction_failed"},
}

// statusFor maps a use case error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// writeUseCaseError renders err. Internal errors are logged and hidden from the client.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusBadGateway:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		msg = "internal error"
	case status == http.StatusBadGateway:
		logger.WarnContext(r.Context(), "contract extraction failed", slog.String("error", err.Error()))
		msg = port.ErrExtractionFailed.Error()
	}
	writeError(w, status, code, msg)
}
