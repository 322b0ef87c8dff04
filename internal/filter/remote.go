package filter

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/domain"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.3

	NoResponseMessage     = "No response from AI service."
	GenericUpstreamFailed = "AI service request failed"
)

// Remote delegates filtering to a hosted chat-completion endpoint. Each
// call makes exactly one request: no retry, no cache, no streaming.
type Remote struct {
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	// HTTPClient defaults to http.DefaultClient, whose lack of a timeout is
	// the intended default.
	HTTPClient *http.Client
}

func NewRemote() *Remote {
	return &Remote{
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

func (r *Remote) Filter(ctx context.Context, rawText string, prefs domain.PreferenceSet, credential string) (Result, error) {
	if strings.TrimSpace(credential) == "" {
		return Result{}, &ConfigurationError{Err: ErrMissingCredential}
	}

	req := openai.ChatCompletionRequest{
		Model: r.model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(rawText, prefs)},
		},
		MaxTokens:   r.maxTokens(),
		Temperature: r.temperature(),
	}

	resp, err := r.client(credential).CreateChatCompletion(ctx, req)
	if err != nil {
		ue := toUpstreamError(err)
		log.WithFields(log.Fields{"status": ue.StatusCode, "model": req.Model}).
			Warnf("[filter] chat completion failed: %s", ue.Message)
		return Result{}, ue
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Result{Text: NoResponseMessage}, nil
	}
	return Result{Text: resp.Choices[0].Message.Content}, nil
}

func (r *Remote) client(credential string) *openai.Client {
	cfg := openai.DefaultConfig(credential)
	if r.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(r.BaseURL, "/")
	}
	if r.HTTPClient != nil {
		cfg.HTTPClient = r.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

func (r *Remote) model() string {
	if r.Model == "" {
		return DefaultModel
	}
	return r.Model
}

func (r *Remote) maxTokens() int {
	if r.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return r.MaxTokens
}

// temperature keeps a configured 0 on the wire. The request field is
// omitempty, so a plain 0 would leave the provider default in effect.
func (r *Remote) temperature() float32 {
	if r.Temperature <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return r.Temperature
}

func toUpstreamError(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = GenericUpstreamFailed
		}
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: msg, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: GenericUpstreamFailed, Err: err}
	}

	return &UpstreamError{Message: GenericUpstreamFailed, Err: err}
}
