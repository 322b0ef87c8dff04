package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

var ErrNoSnapshot = errors.New("no job data file found; run fetch-jobs first or pass a file name")

const snapshotSchema = `{
  "type": "object",
  "required": ["jobs"],
  "properties": {
    "search_metadata": {"type": "object"},
    "jobs": {"type": "array", "items": {"type": "object"}}
  }
}`

// ShapeError lists what made an input file unusable.
type ShapeError struct {
	Problems []string
}

func (e *ShapeError) Error() string {
	return "Invalid file format: expected jobs array not found (" + strings.Join(e.Problems, "; ") + ")"
}

type rawSnapshot struct {
	SearchMetadata map[string]json.RawMessage `json:"search_metadata"`
	Jobs           []Job                      `json:"jobs"`
}

type Stripped struct {
	Path     string
	Original int
	Jobs     []FilteredJob
}

// StripFile reduces an existing snapshot to the allow-listed fields and
// writes filtered_jobs_<ts>.json into outDir. Input metadata is carried over.
// On failure a filter_error_<ts>.json report is written instead.
func StripFile(in, outDir string, now time.Time) (Stripped, error) {
	out, err := stripFile(in, outDir, now)
	if err != nil {
		writeReport(outDir, "filter_error_"+Timestamp(now)+".json", ErrorReport{
			Error:     true,
			Timestamp: isoString(now),
			Message:   err.Error(),
			InputFile: in,
		})
		return Stripped{}, err
	}
	return out, nil
}

func stripFile(in, outDir string, now time.Time) (Stripped, error) {
	b, err := os.ReadFile(in)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stripped{}, fmt.Errorf("File not found: %s", in)
		}
		return Stripped{}, err
	}

	if err := validateShape(b); err != nil {
		return Stripped{}, err
	}

	var snap rawSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Stripped{}, fmt.Errorf("parse %s: %w", in, err)
	}

	reduced := FilterJobs(snap.Jobs)
	meta := snap.SearchMetadata
	if meta == nil {
		meta = map[string]json.RawMessage{}
	}
	meta["filtered_date"], _ = json.Marshal(isoString(now))
	meta["filtered_fields"], _ = json.Marshal(FieldsToKeep)
	meta["total_filtered_jobs"], _ = json.Marshal(len(reduced))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Stripped{}, err
	}
	p := filepath.Join(outDir, "filtered_jobs_"+Timestamp(now)+".json")
	err = writeJSONFile(p, struct {
		SearchMetadata map[string]json.RawMessage `json:"search_metadata"`
		Jobs           []FilteredJob              `json:"jobs"`
	}{meta, reduced})
	if err != nil {
		return Stripped{}, err
	}

	return Stripped{Path: p, Original: len(snap.Jobs), Jobs: reduced}, nil
}

func validateShape(doc []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if res.Valid() {
		return nil
	}
	se := &ShapeError{}
	for _, d := range res.Errors() {
		se.Problems = append(se.Problems, d.String())
	}
	return se
}

// LatestSnapshot returns the newest jobs_*.json in dir by name, since names
// embed the timestamp.
func LatestSnapshot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if !e.IsDir() && strings.HasPrefix(n, "jobs_") && strings.HasSuffix(n, ".json") {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "", ErrNoSnapshot
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), nil
}
