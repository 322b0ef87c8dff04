package httpapi

import (
	"context"
	"sync/atomic"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/prefs"
	"jobfilter-engine/internal/secrets"
	"jobfilter-engine/internal/session"
)

// Analyzer is the filter entry point; *filter.Service implements it.
type Analyzer interface {
	Filter(ctx context.Context, rawText string, p domain.PreferenceSet, credential string) (filter.Result, error)
	Path(credential string) string
}

// Checkpointer is the part of the store the DB handler needs.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

type Deps struct {
	Prefs    *prefs.Store
	Creds    secrets.CredentialHolder
	Sessions *session.Store
	DB       Checkpointer

	Hub *events.Hub

	// Analyzer is built per request from the live config so a PUT /config
	// takes effect without a restart.
	Analyzer func() Analyzer

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	OnConfig    func(config.Config)
}
