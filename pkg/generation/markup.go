package generation

import (
	"regexp"
	"strings"
)

// Mentions are the names marked up in generated text: *item*, **npc** and
// ***place***.
type Mentions struct {
	Items  []string
	NPCs   []string
	Places []string
	// Unbalanced is set when stray markers remain after matching.
	Unbalanced bool
}

// Longest markers first so ***x*** is not read as *x* inside **.
var (
	placeMarkup = regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`)
	npcMarkup   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	itemMarkup  = regexp.MustCompile(`\*([^*]+)\*`)
)

// MarkupMentions extracts marked-up names from text. Markup is advisory:
// malformed markers are reported, never rejected.
func MarkupMentions(text string) Mentions {
	var m Mentions
	rest := text
	rest = collect(placeMarkup, rest, &m.Places)
	rest = collect(npcMarkup, rest, &m.NPCs)
	rest = collect(itemMarkup, rest, &m.Items)
	m.Unbalanced = strings.Contains(rest, "*")
	return m
}

func collect(re *regexp.Regexp, text string, into *[]string) string {
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(match[1]); name != "" {
			*into = append(*into, name)
		}
	}
	return re.ReplaceAllString(text, "")
}

func (g *Generator) checkMarkup(op string, text string) {
	m := MarkupMentions(text)
	if m.Unbalanced {
		g.logger.Debug("Generated text has unbalanced markup", "operation", op)
	}
}

// MarkupKind identifies which marker wrapped a name.
type MarkupKind int

const (
	MarkupItem MarkupKind = iota + 1
	MarkupNPC
	MarkupPlace
)

// RenderMarkup replaces every marked-up name in text with render(kind, name).
// Text outside markers is left untouched.
func RenderMarkup(text string, render func(kind MarkupKind, name string) string) string {
	for _, m := range []struct {
		re   *regexp.Regexp
		kind MarkupKind
	}{
		{placeMarkup, MarkupPlace},
		{npcMarkup, MarkupNPC},
		{itemMarkup, MarkupItem},
	} {
		text = m.re.ReplaceAllStringFunc(text, func(s string) string {
			return render(m.kind, m.re.FindStringSubmatch(s)[1])
		})
	}
	return text
}
