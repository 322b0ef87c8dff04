package ingest

import "fmt"

// Summary renders one "N. title at company (location)" line per job.
func Summary(jobs []Job) []string {
	out := make([]string, 0, len(jobs))
	for i, j := range jobs {
		company := firstNonEmpty(j.str("organization"), j.str("company"), "Unknown Company")
		location := firstNonEmpty(j.firstOf("locations_derived"), j.str("location"), "Unknown Location")
		out = append(out, fmt.Sprintf("%d. %s at %s (%s)", i+1, j.str("title"), company, location))
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
