package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentPages = 4

type SearchParams struct {
	Offset          int
	Limit           int
	TitleFilter     string
	LocationFilter  string
	DescriptionType string
	Order           string
}

func (p SearchParams) query() url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(p.Offset))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("title_filter", p.TitleFilter)
	q.Set("location_filter", p.LocationFilter)
	q.Set("description_type", p.DescriptionType)
	q.Set("order", p.Order)
	return q
}

type Client struct {
	BaseURL  string
	Endpoint string
	Host     string // x-rapidapi-host
	APIKey   string // x-rapidapi-key

	Limiter *HostLimiter
	hc      *http.Client
}

func NewClient(baseURL, endpoint, host, apiKey string, lim *HostLimiter) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Endpoint: endpoint,
		Host:     host,
		APIKey:   apiKey,
		Limiter:  lim,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) searchURL(p SearchParams) string {
	ep := c.Endpoint
	if ep == "" {
		ep = "/active-jb-24h"
	}
	return c.BaseURL + "/" + strings.TrimLeft(ep, "/") + "?" + p.query().Encode()
}

// Search fetches one page of listings.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	u := c.searchURL(p)
	if c.Limiter != nil {
		if err := c.Limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.Host)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
		return nil, fmt.Errorf("HTTP error! status: %d - %s", res.StatusCode, text)
	}

	var jobs []Job
	if err := json.NewDecoder(res.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}
	log.Infof("[ingest] offset=%d found=%d", p.Offset, len(jobs))
	return jobs, nil
}

// SearchPages fetches pages consecutive offsets and returns them in page
// order. Any failed page fails the whole call.
func (c *Client) SearchPages(ctx context.Context, p SearchParams, pages int) ([]Job, error) {
	if pages < 1 {
		pages = 1
	}

	results := make([][]Job, pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)

	for i := 0; i < pages; i++ {
		i := i
		page := p
		page.Offset = p.Offset + i*p.Limit

		g.Go(func() error {
			jobs, err := c.Search(gctx, page)
			if err != nil {
				return err
			}
			results[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Job
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
