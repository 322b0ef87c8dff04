package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Timestamp renders t as an ISO-8601 UTC string that is safe in file names.
func Timestamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(isoString(t))
}

func isoString(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

type SearchFilters struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

type SearchMetadata struct {
	Query        string        `json:"query"`
	SearchDate   string        `json:"search_date"`
	TotalResults int           `json:"total_results"`
	Filters      SearchFilters `json:"filters"`

	// Set on reduced snapshots only.
	FilteredDate      string   `json:"filtered_date,omitempty"`
	FilteredFields    []string `json:"filtered_fields,omitempty"`
	TotalFilteredJobs *int     `json:"total_filtered_jobs,omitempty"`
}

func NewSearchMetadata(p SearchParams, total int, now time.Time) SearchMetadata {
	return SearchMetadata{
		Query:        fmt.Sprintf("%s jobs in %s", p.TitleFilter, p.LocationFilter),
		SearchDate:   isoString(now),
		TotalResults: total,
		Filters: SearchFilters{
			Title:    p.TitleFilter,
			Location: p.LocationFilter,
			Limit:    p.Limit,
		},
	}
}

type fullSnapshot struct {
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Jobs           []Job          `json:"jobs"`
}

type filteredSnapshot struct {
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Jobs           []FilteredJob  `json:"jobs"`
}

type Saved struct {
	FullPath     string
	FilteredPath string
	Filtered     []FilteredJob
}

// ErrorReport is written next to the snapshots when a stage fails.
type ErrorReport struct {
	Error     bool   `json:"error"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Stage     string `json:"stage,omitempty"`
	InputFile string `json:"input_file,omitempty"`
}

// SaveSnapshots writes the full and reduced snapshots. On failure an error
// report is written into dir and the original error is returned.
func SaveSnapshots(dir string, jobs []Job, meta SearchMetadata, now time.Time) (Saved, error) {
	saved, err := saveSnapshots(dir, jobs, meta, now)
	if err != nil {
		name := "job_save_error_" + Timestamp(now) + ".json"
		writeReport(dir, name, ErrorReport{
			Error:     true,
			Timestamp: isoString(now),
			Message:   err.Error(),
			Details:   details(err),
		})
		return Saved{}, err
	}
	return saved, nil
}

func saveSnapshots(dir string, jobs []Job, meta SearchMetadata, now time.Time) (Saved, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Saved{}, err
	}
	if jobs == nil {
		jobs = []Job{}
	}
	ts := Timestamp(now)

	full := fullSnapshot{SearchMetadata: meta, Jobs: jobs}
	fullPath := filepath.Join(dir, "jobs_full_data_"+ts+".json")
	if err := writeJSONFile(fullPath, full); err != nil {
		return Saved{}, fmt.Errorf("write full snapshot: %w", err)
	}

	reduced := FilterJobs(jobs)
	fmeta := markFiltered(meta, len(reduced), now)
	filteredPath := filepath.Join(dir, "jobs_filtered_data_"+ts+".json")
	if err := writeJSONFile(filteredPath, filteredSnapshot{SearchMetadata: fmeta, Jobs: reduced}); err != nil {
		return Saved{}, fmt.Errorf("write filtered snapshot: %w", err)
	}

	return Saved{FullPath: fullPath, FilteredPath: filteredPath, Filtered: reduced}, nil
}

func markFiltered(meta SearchMetadata, n int, now time.Time) SearchMetadata {
	meta.FilteredDate = isoString(now)
	meta.FilteredFields = FieldsToKeep
	meta.TotalFilteredJobs = &n
	return meta
}

// WriteRunError records a failed fetch run in dir and returns the report path.
func WriteRunError(dir string, runErr error, now time.Time) string {
	name := "job_search_error_" + Timestamp(now) + ".json"
	return writeReport(dir, name, ErrorReport{
		Error:     true,
		Timestamp: isoString(now),
		Message:   runErr.Error(),
		Details:   details(runErr),
		Stage:     "main_execution",
	})
}

func writeReport(dir, name string, rep ErrorReport) string {
	_ = os.MkdirAll(dir, 0o755)
	p := filepath.Join(dir, name)
	if err := writeJSONFile(p, rep); err != nil {
		return ""
	}
	return p
}

func details(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return "No additional details"
}

func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
