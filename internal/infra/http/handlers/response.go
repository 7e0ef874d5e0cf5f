package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return false
	}
	return true
}

var domainStatus = map[string]int{
	usecase.CodeValidation:         http.StatusBadRequest,
	usecase.CodeUnsupportedFormat:  http.StatusBadRequest,
	usecase.CodeLeadNotFound:       http.StatusNotFound,
	usecase.CodeTemplateNotFound:   http.StatusNotFound,
	usecase.CodeCampaignNotFound:   http.StatusNotFound,
	usecase.CodeInvalidTransition:  http.StatusConflict,
	usecase.CodeFeatureUnavailable: http.StatusServiceUnavailable,
}

var technicalStatus = map[string]int{
	usecase.CodeSearchFailed:     http.StatusBadGateway,
	usecase.CodeIntegrationError: http.StatusBadGateway,
	usecase.CodeInsightFailed:    http.StatusBadGateway,
}

var technicalMessage = map[string]string{
	usecase.CodeSearchFailed: "No data provider responded. Please try again.",
	usecase.CodeExportFailed: "Export failed. Please try again.",
}

// writeUseCaseError maps use case errors onto the JSON envelope. Technical
// error details are logged, never returned.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status, ok := domainStatus[de.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		writeError(w, status, de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error("request failed", zap.String("code", te.Code), zap.Error(err))
		status, ok := technicalStatus[te.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		msg, ok := technicalMessage[te.Code]
		if !ok {
			msg = "Something went wrong. Please try again."
		}
		writeError(w, status, te.Code, msg)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
}
