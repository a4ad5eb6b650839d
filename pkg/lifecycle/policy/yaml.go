package policy

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

// fileConfig is the on-disk shape of a policy document:
//
//	permissive: false
//	transitions:
//	  - from: Loading
//	    to: [Loaded, LoadFailed]
//	  - from: Loaded
//	    to: [Submitting, Deleting]
//
// Variant names are the canonical names produced by Variant.String.
type fileConfig struct {
	Permissive  bool             `yaml:"permissive"`
	Transitions []transitionRule `yaml:"transitions"`
}

type transitionRule struct {
	From string   `yaml:"from"`
	To   []string `yaml:"to"`
}

// FromYAML parses a declarative policy document. A document marked permissive
// ignores any accompanying edge list.
func FromYAML(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("policy: read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("policy: parse config: %w", err)
	}

	if cfg.Permissive {
		return Permissive(), nil
	}
	if len(cfg.Transitions) == 0 {
		return nil, fmt.Errorf("policy: config declares no transitions")
	}

	table := New()
	for _, rule := range cfg.Transitions {
		from, err := lifecycle.ParseVariant(rule.From)
		if err != nil {
			return nil, fmt.Errorf("policy: invalid from variant: %w", err)
		}
		if len(rule.To) == 0 {
			return nil, fmt.Errorf("policy: %s declares no target variants", rule.From)
		}
		for _, name := range rule.To {
			to, err := lifecycle.ParseVariant(name)
			if err != nil {
				return nil, fmt.Errorf("policy: invalid target for %s: %w", rule.From, err)
			}
			table.Allow(Rule{From: from, To: to})
		}
	}
	return table, nil
}
