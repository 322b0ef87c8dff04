package ingest

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/config"
)

var ErrMissingAPIKey = errors.New("X_RAPIDAPI_KEY is not set")

type RunResult struct {
	Saved   Saved
	Total   int
	Summary []string
}

func ParamsFromConfig(c config.IngestConfig) SearchParams {
	return SearchParams{
		Offset:          c.Offset,
		Limit:           c.Limit,
		TitleFilter:     c.TitleFilter,
		LocationFilter:  c.LocationFilter,
		DescriptionType: c.DescriptionType,
		Order:           c.Order,
	}
}

// Run searches, logs a summary and saves both snapshots. A failed search is
// recorded as job_search_error_<ts>.json in the results dir.
func Run(ctx context.Context, c config.IngestConfig, apiKey string, now func() time.Time) (RunResult, error) {
	if now == nil {
		now = time.Now
	}
	if apiKey == "" {
		WriteRunError(c.ResultsDir, ErrMissingAPIKey, now())
		return RunResult{}, ErrMissingAPIKey
	}

	cl := NewClient(c.BaseURL, c.Endpoint, c.Host, apiKey, NewHostLimiter(c.RequestsPerSecond, c.Burst))
	p := ParamsFromConfig(c)

	log.Infof("[ingest] searching title=%q location=%q pages=%d", p.TitleFilter, p.LocationFilter, c.Pages)
	jobs, err := cl.SearchPages(ctx, p, c.Pages)
	if err != nil {
		if rep := WriteRunError(c.ResultsDir, err, now()); rep != "" {
			log.Errorf("[ingest] search failed, details in %s: %v", rep, err)
		}
		return RunResult{}, err
	}

	lines := Summary(jobs)
	for _, l := range lines {
		log.Info(l)
	}

	at := now()
	saved, err := SaveSnapshots(c.ResultsDir, jobs, NewSearchMetadata(p, len(jobs), at), at)
	if err != nil {
		return RunResult{}, err
	}
	log.Infof("[ingest] saved full=%s filtered=%s", saved.FullPath, saved.FilteredPath)

	return RunResult{Saved: saved, Total: len(jobs), Summary: lines}, nil
}
