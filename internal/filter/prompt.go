package filter

import (
	"fmt"
	"strings"

	"jobfilter-engine/internal/domain"
)

const EmptyListPlaceholder = "No specific interests/dislikes defined"

// joinTerms renders a term list for the prompt.
func joinTerms(terms []string) string {
	var kept []string
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return EmptyListPlaceholder
	}
	return strings.Join(kept, ", ")
}

const promptTemplate = `You are a job-listing filter. Filter the job listings below for a candidate with these preferences.

INTERESTED IN: %s
NOT INTERESTED IN: %s

RULES:
1. The NOT INTERESTED list is authoritative. Exclude any listing that mentions a disliked term, even if it also matches an interest. Exclusion always wins over inclusion.
2. If the interested list is empty, keep every listing that is not excluded by rule 1.

OUTPUT FORMAT:
Start with three counts, one per line:
- Listings received: <number>
- Listings kept: <number>
- Listings filtered out: <number>

Then decide whether the input is a list of short job titles or a list of longer job descriptions. Use line length and content to decide: short single-line entries are titles, multi-sentence entries are descriptions.

If the input is job titles:
- Write the label "Matching Job Titles:" followed by a bullet list of the titles that survived filtering.

If the input is job descriptions, for each surviving listing write:
- The job title.
- A 2-3 sentence summary of the role.
- 1-2 bullet points explaining why it matches the candidate's interests.
- Up to 3 application links, only if they appear in the listing text.

Finish with a short section "Why some listings were excluded" that explains, for 1-2 excluded examples, why they were dropped. Only cite reasons you actually applied.

JOB LISTINGS:
%s`

// BuildPrompt renders the single instruction block sent to the model.
func BuildPrompt(rawText string, prefs domain.PreferenceSet) string {
	return fmt.Sprintf(promptTemplate,
		joinTerms(prefs.Interested),
		joinTerms(prefs.NotInterested),
		rawText,
	)
}
