package httpapi

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// termRequest adds one term. Terms are free text; blank ones are stored
// as given.
type termRequest struct {
	Term string `json:"term"`
}

type replaceRequest struct {
	Interested    []string `json:"interested" validate:"required"`
	NotInterested []string `json:"notInterested" validate:"required"`
}

func (r *replaceRequest) Validate() error {
	return validate.Struct(r)
}

// bulkRequest carries tagged lines such as "interested: golang".
type bulkRequest struct {
	Text    string `json:"text" validate:"required"`
	Replace bool   `json:"replace"`
}

func (r *bulkRequest) Validate() error {
	return validate.Struct(r)
}

type setKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

func (r *setKeyRequest) Validate() error {
	return validate.Struct(r)
}

type analyzeRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

func (r *analyzeRequest) Validate() error {
	return validate.Struct(r)
}

type analyzeResponse struct {
	SessionID       string `json:"session_id"`
	FilteredResults string `json:"filteredResults"`
	Timestamp       int64  `json:"timestamp"`
}
