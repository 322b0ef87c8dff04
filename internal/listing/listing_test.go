package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected bool
	}{
		{"Plain titles", "Senior React Engineer\nJunior PHP Dev", false},
		{"Angle brackets in prose", "Salary <100k> negotiable", false},
		{"List markup", "<ul><li>Go Developer</li></ul>", true},
		{"Paragraph with attrs", `<p class="x">Backend Lead</p>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeHTML(tt.in))
		})
	}
}

func TestNormalize_PlainTextUnchanged(t *testing.T) {
	in := "Senior React Engineer\n\n  Junior PHP Dev  \nRemote Backend Lead"
	assert.Equal(t, in, Normalize(in))
}

func TestNormalize_HTMLList(t *testing.T) {
	in := `<ul>
  <li>Senior React Engineer</li>
  <li>Junior   PHP&nbsp;Dev</li>
</ul><script>var x = 1;</script>`

	assert.Equal(t, "Senior React Engineer\nJunior PHP Dev", Normalize(in))
}

func TestHTMLToText_NestedBlocksNotDuplicated(t *testing.T) {
	out, err := HTMLToText(`<ul><li><p>Go Developer</p></li><li>Platform Engineer<br>Remote</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer\nPlatform Engineer\nRemote", out)
}

func TestHTMLToText_NoBlocks(t *testing.T) {
	out, err := HTMLToText(`<div>We are hiring <b>engineers</b></div>`)
	require.NoError(t, err)
	assert.Equal(t, "We are hiring engineers", out)
}

func TestNormalize_PlainLinesAroundHTMLKept(t *testing.T) {
	in := "Senior React Engineer\nJunior PHP Dev\n<p>Remote Backend Lead</p>\nStaff Go Engineer"
	assert.Equal(t,
		"Senior React Engineer\nJunior PHP Dev\nRemote Backend Lead\nStaff Go Engineer",
		Normalize(in),
	)
}

func TestHTMLToText_LinksKeepTargets(t *testing.T) {
	out, err := HTMLToText(`<p>Go Developer <a href="https://jobs.example.com/apply/42">Apply</a></p>` +
		`<p><a href="https://jobs.example.com/apply/43">https://jobs.example.com/apply/43</a></p>` +
		`<p><a href="#top">Back to top</a></p>`)
	require.NoError(t, err)
	assert.Equal(t,
		"Go Developer Apply (https://jobs.example.com/apply/42)\nhttps://jobs.example.com/apply/43\nBack to top",
		out,
	)
}

func TestHTMLToText_TableCellsSeparated(t *testing.T) {
	out, err := HTMLToText(`<table><tr><td>Go Dev</td><td>Remote</td></tr><tr><td>PHP Dev</td><td>Onsite</td></tr></table>`)
	require.NoError(t, err)
	assert.Equal(t, "Go Dev Remote\nPHP Dev Onsite", out)
}

func TestLines(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "  b  ", "c"},
		Lines("a\r\n\n  b  \n   \nc\n"),
	)
	assert.Nil(t, Lines(""))
}
