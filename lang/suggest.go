package lang

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the alternatives offered for an unresolved name.
const maxSuggestions = 3

// suggest fuzzy-matches name against candidates and renders the best
// matches as a quoted, comma-separated hint. It returns "" when nothing
// resembles name.
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	quoted := make([]string, len(matches))
	for i, m := range matches {
		quoted[i] = strconv.Quote(m.Str)
	}
	return strings.Join(quoted, ", ")
}
