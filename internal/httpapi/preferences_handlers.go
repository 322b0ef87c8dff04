package httpapi

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/prefs"
)

type PreferencesHandler struct {
	Prefs *prefs.Store
	Hub   events.Publisher
}

// prefsResponse is the current set plus a warning when the change is in
// effect but could not be written to disk.
type prefsResponse struct {
	domain.PreferenceSet
	Warning string `json:"warning,omitempty"`
}

func (h PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Prefs.Get())
}

func (h PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	err := h.Prefs.Replace(r.Context(), domain.PreferenceSet{
		Interested:    req.Interested,
		NotInterested: req.NotInterested,
	})
	h.respond(w, r, err)
}

func (h PreferencesHandler) AddInterest(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.Prefs.AddInterest)
}

func (h PreferencesHandler) AddExclusion(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.Prefs.AddExclusion)
}

// RemoveInterestByPath expects /preferences/interests/{index}.
func (h PreferencesHandler) RemoveInterestByPath(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "/preferences/interests/", h.Prefs.RemoveInterest)
}

// RemoveExclusionByPath expects /preferences/exclusions/{index}.
func (h PreferencesHandler) RemoveExclusionByPath(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "/preferences/exclusions/", h.Prefs.RemoveExclusion)
}

func (h PreferencesHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	added, err := h.Prefs.ImportTagged(r.Context(), req.Text, req.Replace)
	log.WithField("request_id", RequestIDFrom(r.Context())).Infof("[prefs] bulk import added=%d replace=%t", added, req.Replace)
	h.respond(w, r, err)
}

func (h PreferencesHandler) add(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) error) {
	var req termRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	h.respond(w, r, fn(r.Context(), req.Term))
}

func (h PreferencesHandler) remove(w http.ResponseWriter, r *http.Request, prefix string, fn func(context.Context, int) error) {
	i, ok := pathIndex(r, prefix)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidIndex, "index must be an integer")
		return
	}
	err := fn(r.Context(), i)
	if errors.Is(err, prefs.ErrIndexOutOfRange) {
		WriteError(w, r, http.StatusNotFound, CodeIndexOutOfRange, err.Error())
		return
	}
	h.respond(w, r, err)
}

// respond treats any remaining error as a failed write: the new state is
// already live in memory, so it is returned with a warning.
func (h PreferencesHandler) respond(w http.ResponseWriter, r *http.Request, err error) {
	cur := h.Prefs.Get()
	out := prefsResponse{PreferenceSet: cur}
	if err != nil {
		out.Warning = "Preferences were updated but could not be saved: " + err.Error()
	}

	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypePreferencesUpdated, events.PreferencesUpdated{
		Interested:    len(cur.Interested),
		NotInterested: len(cur.NotInterested),
	})
	writeJSON(w, out)
}
