package httpapi

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/filter"
)

const (
	CodeInvalidBody      = "invalid_body"
	CodeInvalidIndex     = "invalid_index"
	CodeIndexOutOfRange  = "index_out_of_range"
	CodeMissingAPIKey    = "missing_api_key"
	CodeNoPreferences    = "no_preferences"
	CodeAnalysisFailed   = "analysis_failed"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
	CodeCredentialFailed = "credential_failed"
)

// User-facing messages for the analyze flow.
const (
	MsgMissingAPIKey  = "Please set your OpenAI API key first."
	MsgNoPreferences  = "Please add at least one interest or exclusion before analyzing."
	MsgAnalysisFailed = "Failed to analyze job listings. Please try again."
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeFilterError maps the filter's error taxonomy onto the envelope and
// returns the code it wrote.
func writeFilterError(w http.ResponseWriter, r *http.Request, err error) string {
	reqID := RequestIDFrom(r.Context())
	switch {
	case filter.IsConfigurationError(err):
		WriteError(w, r, http.StatusBadRequest, CodeMissingAPIKey, MsgMissingAPIKey)
		return CodeMissingAPIKey
	case filter.IsUpstreamError(err):
		log.WithField("request_id", reqID).Warnf("[analyze] upstream failed: %v", err)
		WriteError(w, r, http.StatusBadGateway, CodeAnalysisFailed, MsgAnalysisFailed)
		return CodeAnalysisFailed
	default:
		log.WithField("request_id", reqID).Errorf("[analyze] %v", err)
		WriteError(w, r, http.StatusInternalServerError, CodeInternal, MsgAnalysisFailed)
		return CodeInternal
	}
}
