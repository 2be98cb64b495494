package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var prompts = template.Must(
	template.New("prompts").Funcs(template.FuncMap{
		"list": listOrNone,
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// listOrNone renders names comma-separated, or "none" when empty.
func listOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
