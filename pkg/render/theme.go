package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme asks a go-theme selector for the named theme/variant and
// flattens the selection into the RendererConfig the banner consumes.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: selector returned no selection for %q/%q", name, variant)
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		tokens := make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			tokens[key] = value
		}
		cfg.Tokens = tokens
	}
	return cfg, nil
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"Name":         cfg.Theme,
		"Variant":      cfg.Variant,
		"Tokens":       cfg.Tokens,
		"CSSVars":      cfg.CSSVars,
		"CSSVarsStyle": cssVarsStyle(cfg.CSSVars),
	}
}

// cssVarsStyle flattens CSS custom properties into a sorted inline-style
// string so rendered output is stable across runs.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(vars[name])
		b.WriteString(";")
	}
	return b.String()
}
