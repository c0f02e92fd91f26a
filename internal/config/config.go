// Package config loads and validates the generator configuration: the
// dungeon grammar, the symbol tables, the content grammars, the evaluation
// weights, and the glue-layer settings (narration, server, database,
// logging). The generative core itself performs no file I/O.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stonelantern/delvegen/internal/content"
	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/evaluate"
	"github.com/stonelantern/delvegen/internal/grammar"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/narrative"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Dungeon    DungeonConfig    `yaml:"dungeon"`
	Content    ContentConfig    `yaml:"content"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Narration  narrative.Config `yaml:"narration"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    logger.Config    `yaml:"logging"`
}

// ProductionConfig is one weighted replacement in a YAML rule list.
type ProductionConfig struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// GrammarConfig is an axiom plus weighted rules.
type GrammarConfig struct {
	Axiom string                        `yaml:"axiom"`
	Rules map[string][]ProductionConfig `yaml:"rules"`
}

// DungeonConfig describes the spatial grammar and its symbol universe.
type DungeonConfig struct {
	Axiom      string                        `yaml:"axiom"`
	Iterations int                           `yaml:"iterations"`
	MaxLength  int                           `yaml:"max_length"`
	Rules      map[string][]ProductionConfig `yaml:"rules"`
	Symbols    map[string]dungeon.SymbolDef  `yaml:"symbols"`
}

// GroupConfig describes one content kind: its alphabet and the per-room-
// symbol grammars that decide what spawns.
type GroupConfig struct {
	Iterations int                          `yaml:"iterations"`
	MaxLength  int                          `yaml:"max_length"`
	Symbols    map[string]content.EntityDef `yaml:"symbols"`
	Grammars   map[string]GrammarConfig     `yaml:"grammars"`
	Default    *GrammarConfig               `yaml:"default"`
}

// ContentConfig groups the item and monster configuration.
type ContentConfig struct {
	Items    GroupConfig `yaml:"items"`
	Monsters GroupConfig `yaml:"monsters"`
}

// EvaluationConfig controls the candidate selector.
type EvaluationConfig struct {
	Candidates int              `yaml:"candidates"`
	MasterSeed int64            `yaml:"master_seed"`
	Workers    int              `yaml:"workers"`
	Weights    evaluate.Weights `yaml:"weights"`
}

// DatabaseConfig selects the archive backend.
type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"` // "sqlite" or "postgres"
	Path    string `yaml:"path"`   // sqlite file path
	DSN     string `yaml:"dsn"`    // postgres connection string
}

// LoadConfig reads the YAML file at path on top of the defaults and
// validates the result. A missing file yields the validated defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	cfg.Logging.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Blueprint converts the validated configuration into the read-only recipe
// the selector consumes.
func (c *Config) Blueprint() evaluate.Blueprint {
	return evaluate.Blueprint{
		Grammar: grammar.Grammar{
			Axiom: c.Dungeon.Axiom,
			Rules: toRules(c.Dungeon.Rules),
		},
		Symbols:    c.Dungeon.Symbols,
		Items:      c.Content.Items.toGroup(),
		Monsters:   c.Content.Monsters.toGroup(),
		Iterations: c.Dungeon.Iterations,
		MaxLength:  c.Dungeon.MaxLength,
	}
}

func (g GroupConfig) toGroup() content.Group {
	group := content.Group{
		Grammars:   make(map[string]grammar.Grammar, len(g.Grammars)),
		Symbols:    g.Symbols,
		Iterations: g.Iterations,
		MaxLength:  g.MaxLength,
	}
	for symbol, gc := range g.Grammars {
		group.Grammars[symbol] = grammar.Grammar{Axiom: gc.Axiom, Rules: toRules(gc.Rules)}
	}
	if g.Default != nil {
		group.Default = &grammar.Grammar{Axiom: g.Default.Axiom, Rules: toRules(g.Default.Rules)}
	}
	return group
}

func toRules(rules map[string][]ProductionConfig) map[string][]grammar.Production {
	converted := make(map[string][]grammar.Production, len(rules))
	for symbol, productions := range rules {
		list := make([]grammar.Production, len(productions))
		for i, p := range productions {
			list[i] = grammar.Production{Text: p.Text, Weight: p.Weight}
		}
		converted[symbol] = list
	}
	return converted
}
