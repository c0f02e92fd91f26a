package config

import (
	"fmt"

	"github.com/stonelantern/delvegen/internal/grammar"
)

// controlSymbols are the turtle instructions the builder consumes directly.
var controlSymbols = map[string]struct{}{
	"+": {}, "-": {}, "[": {}, "]": {},
}

// Validate checks every invariant the core depends on: positive weights
// everywhere, sane caps, a closed symbol universe for the dungeon grammar,
// and content alphabets that cover their grammars.
func (c *Config) Validate() error {
	if err := c.Dungeon.validate(); err != nil {
		return err
	}
	if err := c.Content.Items.validate("items"); err != nil {
		return err
	}
	if err := c.Content.Monsters.validate("monsters"); err != nil {
		return err
	}

	if c.Evaluation.Candidates < 1 {
		return fmt.Errorf("evaluation: candidates must be at least 1, got %d", c.Evaluation.Candidates)
	}
	if c.Evaluation.Workers < 0 {
		return fmt.Errorf("evaluation: workers must not be negative, got %d", c.Evaluation.Workers)
	}
	if c.Evaluation.Weights.TargetRoomCount < 1 {
		return fmt.Errorf("evaluation: target_room_count must be at least 1, got %d",
			c.Evaluation.Weights.TargetRoomCount)
	}

	switch c.Database.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("database: unknown driver %q (want sqlite or postgres)", c.Database.Driver)
	}

	return nil
}

func (d DungeonConfig) validate() error {
	if d.Iterations < 1 {
		return fmt.Errorf("dungeon: iterations must be at least 1, got %d", d.Iterations)
	}
	if d.MaxLength < 1 {
		return fmt.Errorf("dungeon: max_length must be at least 1, got %d", d.MaxLength)
	}
	if len(d.Symbols) == 0 {
		return fmt.Errorf("dungeon: no movement symbols defined")
	}

	g := grammar.Grammar{Axiom: d.Axiom, Rules: toRules(d.Rules)}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("dungeon grammar: %w", err)
	}

	// Closed symbol universe: everything the grammar can emit must be a
	// movement symbol, a control symbol, or a ruled (rewritable) symbol.
	check := func(where, text string) error {
		for _, r := range text {
			symbol := string(r)
			if _, ok := controlSymbols[symbol]; ok {
				continue
			}
			if _, ok := d.Symbols[symbol]; ok {
				continue
			}
			if g.HasRule(symbol) {
				continue
			}
			return fmt.Errorf("dungeon grammar: unknown symbol %q in %s (not a movement symbol, control symbol, or ruled symbol)",
				symbol, where)
		}
		return nil
	}

	if err := check("axiom", d.Axiom); err != nil {
		return err
	}
	for symbol, productions := range d.Rules {
		for i, p := range productions {
			where := fmt.Sprintf("rule %q production %d", symbol, i)
			if err := check(where, p.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g GroupConfig) validate(kind string) error {
	if g.Iterations < 1 {
		return fmt.Errorf("content %s: iterations must be at least 1, got %d", kind, g.Iterations)
	}
	if g.MaxLength < 1 {
		return fmt.Errorf("content %s: max_length must be at least 1, got %d", kind, g.MaxLength)
	}

	validateOne := func(name string, gc GrammarConfig) error {
		converted := grammar.Grammar{Axiom: gc.Axiom, Rules: toRules(gc.Rules)}
		if err := converted.Validate(); err != nil {
			return fmt.Errorf("content %s grammar %q: %w", kind, name, err)
		}
		for symbol, productions := range gc.Rules {
			for i, p := range productions {
				for _, r := range p.Text {
					emitted := string(r)
					if _, ok := g.Symbols[emitted]; ok {
						continue
					}
					if converted.HasRule(emitted) {
						continue
					}
					return fmt.Errorf("content %s grammar %q: rule %q production %d emits unknown symbol %q",
						kind, name, symbol, i, emitted)
				}
			}
		}
		return nil
	}

	for name, gc := range g.Grammars {
		if err := validateOne(name, gc); err != nil {
			return err
		}
	}
	if g.Default != nil {
		if err := validateOne("default", *g.Default); err != nil {
			return err
		}
	}
	return nil
}
