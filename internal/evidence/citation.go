package evidence

import (
	"fmt"
	"regexp"

	"reactome2bel/internal/reactome"
)

var createdPattern = regexp.MustCompile(`(.*?),\s+(\d{4}-\d{2}-\d{2})`)

// parseCreated splits a "author, YYYY-MM-DD" creation descriptor.
func parseCreated(created *reactome.Ref) (author, date string, ok bool) {
	if created == nil {
		return "", "", false
	}
	m := createdPattern.FindStringSubmatch(created.DisplayName)
	if m == nil || m[1] == "" {
		return "", "", false
	}
	return m[1], m[2], true
}

// Citation renders the BEL citation for a reaction. The date and author are
// only included when both could be parsed.
func Citation(name, url string, created *reactome.Ref) string {
	if author, date, ok := parseCreated(created); ok {
		return fmt.Sprintf(`{"Online Resource", "%s", "%s", "%s", "%s"}`, name, url, date, author)
	}
	return fmt.Sprintf(`{"Online Resource", "%s", "%s"}`, name, url)
}
