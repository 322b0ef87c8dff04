package httpapi

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/secrets"
)

type SecretsHandler struct {
	Creds secrets.CredentialHolder
	Hub   events.Publisher
}

// Status never echoes the key.
func (h SecretsHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"configured": h.Creds.Has(r.Context())})
}

func (h SecretsHandler) SetOpenAIKey(w http.ResponseWriter, r *http.Request) {
	var req setKeyRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, "api_key is required")
		return
	}

	if err := h.Creds.Set(r.Context(), req.APIKey); err != nil {
		log.WithField("request_id", RequestIDFrom(r.Context())).Errorf("[secrets] store failed: %v", err)
		WriteError(w, r, http.StatusInternalServerError, CodeCredentialFailed, "failed to store API key: "+err.Error())
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeCredentialUpdated, events.CredentialUpdated{Configured: true})
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteOpenAIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.Creds.Delete(r.Context()); err != nil {
		log.WithField("request_id", RequestIDFrom(r.Context())).Errorf("[secrets] delete failed: %v", err)
		WriteError(w, r, http.StatusInternalServerError, CodeCredentialFailed, "failed to delete API key: "+err.Error())
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeCredentialUpdated, events.CredentialUpdated{Configured: false})
	w.WriteHeader(http.StatusNoContent)
}
