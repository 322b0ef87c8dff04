package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/prefs"
	"jobfilter-engine/internal/secrets"
	"jobfilter-engine/internal/store"
)

// app is everything a command needs from the data dir.
type app struct {
	dataDir     string
	userCfgPath string
	cfgVal      *atomic.Value // stores config.Config

	lock  *flock.Flock
	db    *store.DB
	prefs *prefs.Store
	creds *secrets.Live
}

// loadConfig bootstraps, loads and validates config.yml and applies env
// overrides. Warnings are logged; errors fail the command.
func loadConfig(dataDir string) (string, config.Config, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", config.Config{}, err
	}
	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := readConfig(userCfgPath)
	if err != nil {
		return "", config.Config{}, err
	}
	return userCfgPath, cfg, nil
}

func readConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	config.OverlayEnv(&cfg, os.Getenv)

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warnf("[config] %s", w)
	}
	if !vr.OK() {
		return cfg, errors.New("config validation failed:\n- " + strings.Join(vr.Errors, "\n- "))
	}
	return cfg, nil
}

// openApp opens the store. Commands that change preferences or the key
// pass writer=true and take the data-dir lock first.
func openApp(ctx context.Context, dataDir string, writer bool) (*app, error) {
	userCfgPath, cfg, err := loadConfig(dataDir)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.App.LogLevel)

	a := &app{dataDir: dataDir, userCfgPath: userCfgPath, cfgVal: &atomic.Value{}}
	a.cfgVal.Store(cfg)

	if writer {
		a.lock, err = store.LockDataDir(dataDir)
		if err != nil {
			return nil, err
		}
	}

	dbPath := filepath.Join(dataDir, "jobfilter.db")
	a.db, err = store.Open(dbPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	a.prefs = prefs.Open(ctx, a.db)
	holder, err := secrets.New(cfg.Secrets.Backend, a.db)
	if err != nil {
		a.close()
		return nil, err
	}
	a.creds = secrets.NewLive(holder)
	return a, nil
}

// reloadCreds rebinds the credential holder to the backend named in c. An
// unknown backend keeps the current one.
func (a *app) reloadCreds(c config.Config) {
	holder, err := secrets.New(c.Secrets.Backend, a.db)
	if err != nil {
		log.Warnf("[secrets] keeping current backend: %v", err)
		return
	}
	a.creds.Swap(holder)
	log.Debugf("[secrets] backend %s", c.Secrets.Backend)
}

func (a *app) cfg() config.Config {
	return a.cfgVal.Load().(config.Config)
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.lock != nil {
		_ = a.lock.Unlock()
	}
}

// buildFilter wires the filter service from the live config.
func buildFilter(cfg config.Config) *filter.Service {
	remote := &filter.Remote{
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second},
	}
	return &filter.Service{
		Remote:            remote,
		Heuristic:         filter.Heuristic{TitleThreshold: cfg.Filter.TitleThreshold},
		FallbackHeuristic: cfg.Filter.FallbackHeuristic,
		Mode:              cfg.Filter.Mode,
	}
}

func setupLogging(level string) {
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		DisableTimestamp: false,
	})
	log.SetOutput(os.Stderr)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
