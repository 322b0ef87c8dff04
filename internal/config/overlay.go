// config/overlay.go
package config

import (
	"strconv"
	"strings"
)

// OverlayEnv applies JOBFILTER_* environment overrides on top of the file
// config. Unparseable numbers are ignored.
func OverlayEnv(cfg *Config, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("JOBFILTER_HOST", &cfg.App.Host)
	str("JOBFILTER_LOG_LEVEL", &cfg.App.LogLevel)
	str("JOBFILTER_AI_BASE_URL", &cfg.AI.BaseURL)
	str("JOBFILTER_AI_MODEL", &cfg.AI.Model)
	str("JOBFILTER_FILTER_MODE", &cfg.Filter.Mode)
	str("JOBFILTER_SECRETS_BACKEND", &cfg.Secrets.Backend)
	str("JOBFILTER_RESULTS_DIR", &cfg.Ingest.ResultsDir)

	if v := strings.TrimSpace(getenv("JOBFILTER_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
}
