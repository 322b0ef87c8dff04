package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Preferences
	ph := PreferencesHandler{Prefs: d.Prefs, Hub: d.Hub}
	mux.HandleFunc("/preferences", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put,
	}))
	mux.HandleFunc("/preferences/interests", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.AddInterest,
	}))
	mux.HandleFunc("/preferences/interests/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ph.RemoveInterestByPath,
	}))
	mux.HandleFunc("/preferences/exclusions", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.AddExclusion,
	}))
	mux.HandleFunc("/preferences/exclusions/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ph.RemoveExclusionByPath,
	}))
	mux.HandleFunc("/preferences/bulk", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Bulk,
	}))

	// Secrets
	sh := SecretsHandler{Creds: d.Creds, Hub: d.Hub}
	mux.HandleFunc("/secrets/openai", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    sh.Status,
		http.MethodPost:   sh.SetOpenAIKey,
		http.MethodDelete: sh.DeleteOpenAIKey,
	}))

	// Analysis
	ah := AnalyzeHandler{
		Prefs:    d.Prefs,
		Creds:    d.Creds,
		Sessions: d.Sessions,
		Hub:      d.Hub,
		Analyzer: d.Analyzer,
	}
	mux.HandleFunc("/analyze", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Analyze,
	}))
	mux.HandleFunc("/results/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.ResultByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		OnConfig:    d.OnConfig,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	if d.DB != nil {
		dh := DBHandler{DB: d.DB}
		mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: dh.Checkpoint,
		}))
	}

	return mux
}

// Wrap applies the standard middleware chain.
func Wrap(h http.Handler) http.Handler {
	return Chain(h, RequestID, Recover, AccessLog, Cors)
}
