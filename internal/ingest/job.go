// Package ingest pulls fresh listings from the job search API into JSON
// snapshots on disk. It runs from the CLI only; the engine never calls it.
package ingest

import (
	"encoding/json"

	"jobfilter-engine/internal/listing"
)

// Job is one listing exactly as the search API returned it.
type Job map[string]json.RawMessage

// FieldsToKeep is the allow-list for reduced snapshots, in output order.
var FieldsToKeep = []string{
	"title",
	"organization",
	"employment_type",
	"url",
	"external_apply_url",
	"countries_derived",
	"locations_derived",
	"linkedin_org_slogan",
	"linkedin_org_description",
	"seniority",
	"description_text",
}

// FilteredJob mirrors FieldsToKeep. A nil field encodes as null.
type FilteredJob struct {
	Title                  json.RawMessage `json:"title"`
	Organization           json.RawMessage `json:"organization"`
	EmploymentType         json.RawMessage `json:"employment_type"`
	URL                    json.RawMessage `json:"url"`
	ExternalApplyURL       json.RawMessage `json:"external_apply_url"`
	CountriesDerived       json.RawMessage `json:"countries_derived"`
	LocationsDerived       json.RawMessage `json:"locations_derived"`
	LinkedInOrgSlogan      json.RawMessage `json:"linkedin_org_slogan"`
	LinkedInOrgDescription json.RawMessage `json:"linkedin_org_description"`
	Seniority              json.RawMessage `json:"seniority"`
	DescriptionText        json.RawMessage `json:"description_text"`
}

// Reduce keeps only the allow-listed fields. When the API was asked for
// HTML descriptions, description_html is flattened into description_text.
func Reduce(j Job) FilteredJob {
	desc := j["description_text"]
	if desc == nil {
		desc = htmlDescription(j["description_html"])
	}
	return FilteredJob{
		Title:                  j["title"],
		Organization:           j["organization"],
		EmploymentType:         j["employment_type"],
		URL:                    j["url"],
		ExternalApplyURL:       j["external_apply_url"],
		CountriesDerived:       j["countries_derived"],
		LocationsDerived:       j["locations_derived"],
		LinkedInOrgSlogan:      j["linkedin_org_slogan"],
		LinkedInOrgDescription: j["linkedin_org_description"],
		Seniority:              j["seniority"],
		DescriptionText:        desc,
	}
}

func FilterJobs(jobs []Job) []FilteredJob {
	out := make([]FilteredJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, Reduce(j))
	}
	return out
}

func htmlDescription(raw json.RawMessage) json.RawMessage {
	var html string
	if raw == nil || json.Unmarshal(raw, &html) != nil || html == "" {
		return nil
	}
	text, err := listing.HTMLToText(html)
	if err != nil {
		return nil
	}
	b, _ := json.Marshal(text)
	return b
}

// str decodes a string field, returning "" for missing or non-string values.
func (j Job) str(key string) string {
	var s string
	if raw, ok := j[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (j Job) firstOf(key string) string {
	var xs []string
	if raw, ok := j[key]; ok && json.Unmarshal(raw, &xs) == nil && len(xs) > 0 {
		return xs[0]
	}
	return ""
}
