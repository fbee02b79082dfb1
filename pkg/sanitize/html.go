package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML extracts the visible text of an HTML fragment. It operates on a
// parsed fragment only, so it is usable without any rendering environment.
// Plain text passes through unchanged.
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text()), nil
}
