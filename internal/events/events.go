package events

import (
	"encoding/json"
	"time"
)

const (
	TypePreferencesUpdated = "preferences_updated"
	TypeCredentialUpdated  = "credential_updated"
	TypeAnalysisCompleted  = "analysis_completed"
	TypeAnalysisFailed     = "analysis_failed"
)

// Version is bumped when any payload shape below changes.
const Version = 1

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type PreferencesUpdated struct {
	Interested    int `json:"interested"`
	NotInterested int `json:"notInterested"`
}

type CredentialUpdated struct {
	Configured bool `json:"configured"`
}

type AnalysisCompleted struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Chars     int    `json:"chars"`
}

type AnalysisFailed struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MakeEvent renders one SSE data line.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   Version,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
