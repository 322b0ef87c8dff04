package prefs

import "strings"

type Kind int

const (
	KindInterest Kind = iota
	KindExclusion
)

func (k Kind) String() string {
	if k == KindExclusion {
		return "exclusion"
	}
	return "interest"
}

type Entry struct {
	Kind Kind
	Term string
}

// Prefixes are matched case-insensitively; the negative ones come first
// because "interested" is a suffix of "not interested".
var tagPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"not interested in:", KindExclusion},
	{"not interested:", KindExclusion},
	{"interested in:", KindInterest},
	{"interested:", KindInterest},
}

// ParseTagged turns a bulk paste into entries, one per non-blank line.
// Untagged lines are interests.
func ParseTagged(text string) []Entry {
	var out []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		e := Entry{Kind: KindInterest, Term: line}
		low := strings.ToLower(line)
		for _, tp := range tagPrefixes {
			if strings.HasPrefix(low, tp.prefix) {
				e = Entry{Kind: tp.kind, Term: strings.TrimSpace(line[len(tp.prefix):])}
				break
			}
		}
		if e.Term == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
