package filter

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfilter-engine/internal/domain"
)

const threeTitles = "Senior React Engineer\nJunior PHP Dev\nRemote Backend Lead"

func prefsOf(interested, notInterested []string) domain.PreferenceSet {
	return domain.PreferenceSet{Interested: interested, NotInterested: notInterested}
}

func TestHeuristic_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		prefs    domain.PreferenceSet
		expected string
	}{
		{
			name:     "Interest and exclusion",
			in:       threeTitles,
			prefs:    prefsOf([]string{"react"}, []string{"php"}),
			expected: "Filtered Job Titles:\n\nSenior React Engineer",
		},
		{
			name:     "Empty interests means no positive filter",
			in:       threeTitles,
			prefs:    prefsOf(nil, []string{"php"}),
			expected: "Filtered Job Titles:\n\nSenior React Engineer\n\nRemote Backend Lead",
		},
		{
			name:     "Conflicting term is excluded",
			in:       "Senior React Engineer",
			prefs:    prefsOf([]string{"react"}, []string{"react"}),
			expected: NoMatchesMessage,
		},
		{
			name:     "No preferences keeps everything",
			in:       threeTitles,
			prefs:    domain.EmptyPreferences(),
			expected: "Filtered Job Titles:\n\n" + strings.ReplaceAll(threeTitles, "\n", "\n\n"),
		},
		{
			name:     "Case-insensitive both ways",
			in:       "GOLANG developer\nPython dev",
			prefs:    prefsOf([]string{"GoLang"}, nil),
			expected: "Filtered Job Titles:\n\nGOLANG developer",
		},
		{
			name:     "Empty input",
			in:       "",
			prefs:    prefsOf([]string{"react"}, nil),
			expected: NoMatchesMessage,
		},
		{
			name:     "Blank lines dropped",
			in:       "\n\nGo Engineer\n   \n",
			prefs:    domain.EmptyPreferences(),
			expected: "Filtered Job Titles:\n\nGo Engineer",
		},
		{
			name:     "Blank terms ignored",
			in:       threeTitles,
			prefs:    prefsOf([]string{"  "}, []string{""}),
			expected: "Filtered Job Titles:\n\n" + strings.ReplaceAll(threeTitles, "\n", "\n\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Heuristic{}.Apply(tt.in, tt.prefs))
		})
	}
}

func TestHeuristic_DescriptionsLabel(t *testing.T) {
	long := "We are looking for a senior Go engineer to build distributed systems in a remote-first team with great benefits."
	require.GreaterOrEqual(t, len(long), DefaultTitleThreshold)

	out := Heuristic{}.Apply(long, prefsOf([]string{"go engineer"}, nil))
	assert.Equal(t, DescriptionsLabel+"\n\n"+long, out)
}

func TestHeuristic_ThresholdIsTunable(t *testing.T) {
	in := "Senior React Engineer"
	assert.True(t, strings.HasPrefix(Heuristic{TitleThreshold: 10}.Apply(in, domain.EmptyPreferences()), DescriptionsLabel))
	assert.True(t, strings.HasPrefix(Heuristic{TitleThreshold: 100}.Apply(in, domain.EmptyPreferences()), TitlesLabel))
}

func TestHeuristic_ClassifiesOnAllLinesNotSurvivors(t *testing.T) {
	long := strings.Repeat("x", 400)
	in := "Go Dev\n" + long
	out := Heuristic{}.Apply(in, prefsOf([]string{"go dev"}, nil))
	assert.Equal(t, DescriptionsLabel+"\n\nGo Dev", out)
}

// Exclusion precedence over a grid of lines and term sets.
func TestHeuristic_ExclusionAlwaysWins(t *testing.T) {
	lines := []string{
		"Senior React Engineer", "Junior PHP Dev", "Remote Backend Lead",
		"React Native + PHP Hybrid", "Staff Go Engineer (Remote)",
	}
	termSets := [][]string{
		nil, {"react"}, {"php"}, {"remote", "go"}, {"engineer"}, {"REACT", "lead"},
	}

	for _, interested := range termSets {
		for _, excluded := range termSets {
			if len(excluded) == 0 {
				continue
			}
			p := prefsOf(interested, excluded)
			out := Heuristic{}.Apply(strings.Join(lines, "\n"), p)
			for _, line := range lines {
				if containsAny(strings.ToLower(line), excluded) {
					assert.NotContains(t, strings.Split(out, "\n\n"), line,
						fmt.Sprintf("interested=%v excluded=%v", interested, excluded))
				}
			}
		}
	}
}

func TestHeuristic_NeverEmpty(t *testing.T) {
	inputs := []string{"", "\n\n", "Junior PHP Dev", threeTitles}
	for _, in := range inputs {
		out := Heuristic{}.Apply(in, prefsOf([]string{"cobol"}, []string{"php"}))
		assert.NotEmpty(t, out)
	}
}

func TestHeuristic_Idempotent(t *testing.T) {
	p := prefsOf([]string{"react", "remote"}, []string{"php"})
	first := Heuristic{}.Apply(threeTitles, p)
	second := Heuristic{}.Apply(threeTitles, p)
	assert.Equal(t, first, second)
}

func TestHeuristic_FilterIgnoresCredentialAndDoesNotMutatePrefs(t *testing.T) {
	p := prefsOf([]string{"react"}, []string{"php"})
	before := p.Clone()

	res, err := Heuristic{}.Filter(context.Background(), threeTitles, p, "")
	require.NoError(t, err)
	assert.Equal(t, "Filtered Job Titles:\n\nSenior React Engineer", res.Text)
	assert.Equal(t, before, p.Clone())
}

func TestKeepLine(t *testing.T) {
	assert.True(t, KeepLine("Anything", domain.EmptyPreferences()))
	assert.False(t, KeepLine("Junior PHP Dev", prefsOf(nil, []string{"php"})))
	assert.False(t, KeepLine("Senior Java Dev", prefsOf([]string{"react"}, nil)))
	assert.True(t, KeepLine("Senior React Dev", prefsOf([]string{"react"}, []string{"java"})))
}
