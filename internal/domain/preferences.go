package domain

// PreferenceSet is the pair of term lists a user filters listings with.
// Terms are free text, matched case-insensitively; order is display order.
type PreferenceSet struct {
	Interested    []string `json:"interested" yaml:"interested"`
	NotInterested []string `json:"notInterested" yaml:"not_interested"`
}

// EmptyPreferences returns a set with two non-nil empty lists so it
// serializes as [] rather than null.
func EmptyPreferences() PreferenceSet {
	return PreferenceSet{Interested: []string{}, NotInterested: []string{}}
}

// Clone returns a deep copy. Nil lists come back as empty lists.
func (p PreferenceSet) Clone() PreferenceSet {
	out := EmptyPreferences()
	out.Interested = append(out.Interested, p.Interested...)
	out.NotInterested = append(out.NotInterested, p.NotInterested...)
	return out
}

func (p PreferenceSet) HasAny() bool {
	return len(p.Interested) > 0 || len(p.NotInterested) > 0
}
