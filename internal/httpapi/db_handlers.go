package httpapi

import (
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type DBHandler struct {
	DB Checkpointer
}

func isLoopback(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host == "127.0.0.1" || host == "::1" || host == "localhost"
}

func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}

	if err := h.DB.Checkpoint(r.Context()); err != nil {
		log.WithField("request_id", RequestIDFrom(r.Context())).Errorf("[db] checkpoint failed: %v", err)
		WriteError(w, r, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
