package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus any problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	lower := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.App.LogLevel = lower(out.App.LogLevel)
	out.AI.BaseURL = strings.TrimRight(strings.TrimSpace(out.AI.BaseURL), "/")
	out.AI.Model = strings.TrimSpace(out.AI.Model)
	out.Filter.Mode = lower(out.Filter.Mode)
	out.Secrets.Backend = lower(out.Secrets.Backend)
	out.Ingest.BaseURL = strings.TrimRight(strings.TrimSpace(out.Ingest.BaseURL), "/")

	// ---- app ----
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.Host == "" {
		res.addErr("app.host is required")
	} else if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host %q is not loopback; the engine is meant for a single local user.", out.App.Host)
	}
	switch out.App.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		res.addErr("app.log_level must be one of debug, info, warn, error")
	}

	// ---- ai ----
	if u, err := url.Parse(out.AI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("ai.base_url must be an absolute URL")
	} else if u.Scheme != "https" {
		res.addWarn("ai.base_url uses %s; the API key will be sent unencrypted.", u.Scheme)
	}
	if out.AI.Model == "" {
		res.addErr("ai.model is required")
	}
	if out.AI.MaxTokens <= 0 {
		res.addErr("ai.max_tokens must be > 0")
	}
	if out.AI.Temperature < 0 || out.AI.Temperature > 2 {
		res.addErr("ai.temperature must be between 0 and 2")
	} else if out.AI.Temperature > 1 {
		res.addWarn("ai.temperature is high (%.2f); filtering results will vary between runs.", out.AI.Temperature)
	}
	if out.AI.TimeoutSeconds < 0 {
		res.addErr("ai.timeout_seconds must be >= 0")
	}

	// ---- filter ----
	switch out.Filter.Mode {
	case "auto", "heuristic":
	case "":
		out.Filter.Mode = "auto"
	default:
		res.addErr("filter.mode must be auto or heuristic")
	}
	if out.Filter.TitleThreshold <= 0 {
		res.addErr("filter.title_threshold must be > 0")
	}
	if out.Filter.FallbackHeuristic {
		res.addWarn("filter.fallback_heuristic is on; without an API key listings are filtered by simple keyword match.")
	}

	// ---- secrets ----
	switch out.Secrets.Backend {
	case "plain", "keyring":
	case "":
		out.Secrets.Backend = "plain"
	default:
		res.addErr("secrets.backend must be plain or keyring")
	}
	if out.Secrets.Backend == "plain" {
		res.addWarn("secrets.backend is plain; the API key is stored unencrypted in the local database.")
	}

	// ---- ingest ----
	if u, err := url.Parse(out.Ingest.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("ingest.base_url must be an absolute URL")
	}
	if out.Ingest.Limit <= 0 {
		res.addErr("ingest.limit must be > 0")
	} else if out.Ingest.Limit > 100 {
		res.addWarn("ingest.limit is %d; the search API may cap page size.", out.Ingest.Limit)
	}
	if out.Ingest.Offset < 0 {
		res.addErr("ingest.offset must be >= 0")
	}
	if out.Ingest.Pages <= 0 {
		res.addErr("ingest.pages must be > 0")
	}
	if out.Ingest.RequestsPerSecond <= 0 {
		res.addErr("ingest.requests_per_second must be > 0")
	}
	if out.Ingest.Burst <= 0 {
		res.addErr("ingest.burst must be > 0")
	}
	if strings.TrimSpace(out.Ingest.ResultsDir) == "" {
		res.addErr("ingest.results_dir is required")
	}

	return out, res
}
