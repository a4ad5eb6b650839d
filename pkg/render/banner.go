package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

// Option adjusts banner rendering.
type Option func(*options)

type options struct {
	classes map[string]string
	theme   *theme.RendererConfig
}

// WithClasses overrides the semantic chrome classes by slot name ("banner",
// "progress", "message", "success", "failure", "busy"). Empty names and
// values are ignored.
func WithClasses(overrides map[string]string) Option {
	return func(o *options) {
		for slot, class := range overrides {
			slot = strings.TrimSpace(slot)
			class = strings.TrimSpace(class)
			if slot == "" || class == "" {
				continue
			}
			if o.classes == nil {
				o.classes = make(map[string]string)
			}
			o.classes[slot] = class
		}
	}
}

// WithTheme attaches a resolved go-theme configuration; its CSS variables are
// emitted as an inline style on the banner element.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *options) {
		o.theme = cfg
	}
}

var (
	bannerOnce sync.Once
	bannerTmpl *pongo2.Template
	bannerErr  error
)

func bannerTemplate() (*pongo2.Template, error) {
	bannerOnce.Do(func() {
		set := pongo2.NewSet("formstate", pongo2.NewFSLoader(templatesFS))
		bannerTmpl, bannerErr = set.FromFile("templates/banner.tpl")
		if bannerErr != nil {
			bannerErr = fmt.Errorf("render: load banner template: %w", bannerErr)
		}
	})
	return bannerTmpl, bannerErr
}

// Banner renders the status fragment for a state. Output is deterministic:
// equal states with equal options render identically.
func Banner[S, F any](state lifecycle.State[S, F], opts ...Option) (string, error) {
	var cfg options
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	tmpl, err := bannerTemplate()
	if err != nil {
		return "", err
	}

	classes := defaultClasses()
	for slot, class := range cfg.classes {
		classes[slot] = class
	}

	summary := NewSummary(state)
	out, err := tmpl.Execute(pongo2.Context{
		"summary":   summary,
		"classes":   classes,
		"theme":     themeContext(cfg.theme),
		"toneClass": classes[summary.Tone],
	})
	if err != nil {
		return "", fmt.Errorf("render: execute banner template: %w", err)
	}
	return out, nil
}
