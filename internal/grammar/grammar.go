// Package grammar implements the weighted stochastic rewrite engine that
// turns an axiom into a terminal symbol string.
package grammar

import (
	"errors"
	"fmt"
)

// Production is one weighted replacement for a symbol. An empty Text is
// legal and erases the symbol, which is how content grammars produce
// "nothing" most of the time.
type Production struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// Grammar holds an axiom plus weighted rewrite rules per symbol. Symbols
// without a rule entry are terminal. Weights within one rule group need not
// sum to 1; selection is weight-proportional.
type Grammar struct {
	Axiom string
	Rules map[string][]Production
}

// ErrBadWeight reports a production weight that is not strictly positive.
var ErrBadWeight = errors.New("production weight must be positive")

// Validate checks the grammar invariants: a non-empty axiom, at least one
// production per ruled symbol, and strictly positive weights.
func (g *Grammar) Validate() error {
	if g.Axiom == "" {
		return errors.New("grammar axiom is empty")
	}
	for symbol, productions := range g.Rules {
		if len(productions) == 0 {
			return fmt.Errorf("rule for symbol %q has no productions", symbol)
		}
		for i, p := range productions {
			if p.Weight <= 0 {
				return fmt.Errorf("rule %q production %d (%q): %w (got %g)",
					symbol, i, p.Text, ErrBadWeight, p.Weight)
			}
		}
	}
	return nil
}

// HasRule reports whether the symbol is non-terminal.
func (g *Grammar) HasRule(symbol string) bool {
	_, ok := g.Rules[symbol]
	return ok
}
