package generation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// familyReplacements maps words filtered under family ratings to milder
// alternatives.
var familyReplacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"cock":         "[censored]",
	"dick":         "jerk",
	"pussy":        "[censored]",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"retard":       "[censored]",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douchebag":    "jerk",
	"douche":       "jerk",
}

// contentFilter rewrites profanity in generated text.
type contentFilter struct {
	pattern *regexp.Regexp
}

func newContentFilter() *contentFilter {
	words := make([]string, 0, len(familyReplacements))
	for w := range familyReplacements {
		words = append(words, regexp.QuoteMeta(w))
	}
	// Longer words first so "bullshit" wins over "shit".
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	return &contentFilter{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`),
	}
}

// FilterText replaces profanity, keeping the case shape of each match.
func (f *contentFilter) FilterText(text string) string {
	return f.pattern.ReplaceAllStringFunc(text, func(match string) string {
		replacement, ok := familyReplacements[strings.ToLower(match)]
		if !ok {
			return match
		}
		return matchCase(match, replacement)
	})
}

func matchCase(original, replacement string) string {
	// Casers are stateful and cannot be shared between goroutines.
	title := cases.Title(language.English)
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return replacement
	case title.String(strings.ToLower(original)) == original:
		return title.String(replacement)
	}

	orig := []rune(original)
	out := []rune(replacement)
	for i, r := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = unicode.ToLower(r)
		}
	}
	return string(out)
}

// shouldFilterContent reports whether rating is a family rating.
func shouldFilterContent(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}
