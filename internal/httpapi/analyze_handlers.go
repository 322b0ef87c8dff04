package httpapi

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/prefs"
	"jobfilter-engine/internal/secrets"
	"jobfilter-engine/internal/session"
)

type AnalyzeHandler struct {
	Prefs    *prefs.Store
	Creds    secrets.CredentialHolder
	Sessions *session.Store
	Hub      events.Publisher
	Analyzer func() Analyzer
	Now      func() time.Time
}

func (h AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFrom(r.Context())

	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	if !h.Prefs.HasAnyPreferences() {
		WriteError(w, r, http.StatusConflict, CodeNoPreferences, MsgNoPreferences)
		return
	}

	cred, _ := h.Creds.Get(r.Context())
	an := h.Analyzer()

	// Once issued, the model call runs to completion even if the client
	// goes away.
	ctx := context.WithoutCancel(r.Context())
	start := time.Now()
	res, err := an.Filter(ctx, req.Text, h.Prefs.Get(), cred)
	if err != nil {
		code := writeFilterError(w, r, err)
		h.Hub.Emit(reqID, events.TypeAnalysisFailed, events.AnalysisFailed{Code: code, Message: err.Error()})
		return
	}

	id := req.SessionID
	if id == "" {
		id = session.NewID()
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	a := domain.NewAnalysisSession(req.Text, res.Text, now())
	h.Sessions.Put(id, a)

	path := an.Path(cred)
	log.WithFields(log.Fields{
		"request_id": reqID,
		"session_id": id,
		"path":       path,
		"dur_ms":     time.Since(start).Milliseconds(),
	}).Info("[analyze] done")
	h.Hub.Emit(reqID, events.TypeAnalysisCompleted, events.AnalysisCompleted{
		SessionID: id,
		Path:      path,
		Chars:     len(res.Text),
	})

	writeJSON(w, analyzeResponse{
		SessionID:       id,
		FilteredResults: a.FilteredResults,
		Timestamp:       a.Timestamp,
	})
}

// ResultByPath expects /results/{session_id}.
func (h AnalyzeHandler) ResultByPath(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r, "/results/")
	a, ok := h.Sessions.Get(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, CodeNotFound, "no analysis for this session")
		return
	}
	writeJSON(w, a)
}
