package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/events"
	"jobfilter-engine/internal/httpapi"
	"jobfilter-engine/internal/scheduler"
	"jobfilter-engine/internal/session"
)

const (
	sessionTTL        = 24 * time.Hour
	sessionSweepEvery = 15 * time.Minute
)

type serveOptions struct {
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP engine",
		Long:  "Serve preferences, the API key status and listing analysis to the local UI over HTTP on the loopback interface.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root.dataDir, opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (overrides app.port)")
	return cmd
}

func runServe(ctx context.Context, dataDir string, opts *serveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, dataDir, true)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg()
	hub := events.NewHub()
	sessions := session.NewStore()

	mux := httpapi.NewMux(httpapi.Deps{
		Prefs:    a.prefs,
		Creds:    a.creds,
		Sessions: sessions,
		DB:       a.db,
		Hub:      hub,
		Analyzer: func() httpapi.Analyzer {
			return buildFilter(a.cfg())
		},
		CfgVal:      a.cfgVal,
		UserCfgPath: a.userCfgPath,
		LoadCfg: func() (config.Config, error) {
			return readConfig(a.userCfgPath)
		},
		OnConfig: func(c config.Config) {
			setupLogging(c.App.LogLevel)
			a.reloadCreds(c)
		},
	})

	port := cfg.App.Port
	if opts.port > 0 {
		port = opts.port
	}
	addr := net.JoinHostPort(cfg.App.Host, fmt.Sprint(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := shutdownToken(dataDir)
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", shutdownHandler(token, srv))
	srv.Handler = httpapi.Wrap(mux)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.Every(sigCtx, sessionSweepEvery, "sessions", func(context.Context) error {
		if n := sessions.Prune(time.Now().Add(-sessionTTL)); n > 0 {
			log.Infof("[sessions] pruned %d", n)
		}
		return nil
	})
	go func() {
		<-sigCtx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	log.Infof("[serve] engine listening on http://%s (data=%s)", ln.Addr(), dataDir)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("[serve] stopped")
	return nil
}

// shutdownToken uses JOBFILTER_SHUTDOWN_TOKEN when set, otherwise writes a
// fresh token to <dataDir>/shutdown.token for the desktop shell to read.
func shutdownToken(dataDir string) (string, error) {
	if t := strings.TrimSpace(os.Getenv("JOBFILTER_SHUTDOWN_TOKEN")); t != "" {
		return t, nil
	}
	t, err := randomToken(32)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dataDir, "shutdown.token"), []byte(t), 0o600); err != nil {
		return "", err
	}
	return t, nil
}
