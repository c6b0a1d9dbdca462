package external

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup. Brave and SearXNG highlight query terms with <strong>/<b>.
var textPolicy = bluemonday.StrictPolicy()

// plainText removes HTML tags, decodes entities and collapses whitespace.
// Only for raw HTML fragments from JSON APIs; goquery text is already decoded.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
