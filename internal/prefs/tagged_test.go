package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagged(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []Entry
	}{
		{"Empty", "", nil},
		{"Blank lines skipped", "\n  \n\t\n", nil},
		{"Untagged defaults to interest", "React", []Entry{{KindInterest, "React"}}},
		{"Interested prefix", "Interested: Remote work", []Entry{{KindInterest, "Remote work"}}},
		{"Not interested prefix", "Not Interested: PHP", []Entry{{KindExclusion, "PHP"}}},
		{"Case-insensitive", "NOT INTERESTED:junior", []Entry{{KindExclusion, "junior"}}},
		{"Long form", "Not interested in: on-site only", []Entry{{KindExclusion, "on-site only"}}},
		{"Tag without term skipped", "Interested:   ", nil},
		{
			"Mixed",
			"Interested: React\r\nNot Interested: PHP\nSenior\n",
			[]Entry{{KindInterest, "React"}, {KindExclusion, "PHP"}, {KindInterest, "Senior"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTagged(tt.in))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "interest", KindInterest.String())
	assert.Equal(t, "exclusion", KindExclusion.String())
}
