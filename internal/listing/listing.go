// Package listing cleans pasted job-listing text before it is filtered.
package listing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagRe = regexp.MustCompile(`(?i)<\s*(html|body|div|p|li|ul|ol|br|table|tr|td|h[1-6]|span|a|section|article)\b[^>]*>`)

// LooksLikeHTML reports whether a paste carries markup rather than text.
func LooksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// Normalize returns plain text unchanged. Pasted HTML is flattened to one
// line per block element so line-based filtering still works. Text outside
// any block keeps its own line breaks.
func Normalize(raw string) string {
	if !LooksLikeHTML(raw) {
		return raw
	}
	text, err := HTMLToText(raw)
	if err != nil {
		return raw
	}
	return text
}

var (
	blockTags = map[string]bool{
		"p": true, "div": true, "li": true, "ul": true, "ol": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"table": true, "tr": true, "dt": true, "dd": true, "dl": true,
		"blockquote": true, "pre": true, "section": true, "article": true,
		"header": true, "footer": true,
	}
	skipTags = map[string]bool{"script": true, "style": true, "noscript": true, "head": true}
)

// HTMLToText extracts the visible text of an HTML fragment, one line per
// block element. Link targets follow their anchor text in parentheses.
func HTMLToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	writeText(doc.Selection, &b)
	return strings.Join(splitClean(b.String()), "\n"), nil
}

func writeText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			b.WriteString(c.Text())
		case skipTags[name]:
		case name == "br":
			b.WriteByte('\n')
		case name == "a":
			writeText(c, b)
			if href := linkTarget(c); href != "" {
				b.WriteString(" (" + href + ")")
			}
		case name == "td" || name == "th":
			b.WriteByte(' ')
			writeText(c, b)
		case blockTags[name]:
			b.WriteByte('\n')
			writeText(c, b)
			b.WriteByte('\n')
		default:
			writeText(c, b)
		}
	})
}

// linkTarget returns an anchor's href when it points somewhere worth keeping
// and the anchor text does not already spell it out.
func linkTarget(a *goquery.Selection) string {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	lower := strings.ToLower(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(lower, "javascript:") {
		return ""
	}
	if strings.Contains(CleanText(a.Text()), href) {
		return ""
	}
	return href
}

func splitClean(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = CleanText(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Lines splits text into its non-blank lines. Lines keep their content
// as pasted apart from a trailing carriage return.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
