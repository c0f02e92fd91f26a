package config

import (
	"github.com/stonelantern/delvegen/internal/content"
	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/evaluate"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/narrative"
)

// DefaultConfig returns a complete, runnable configuration: a small weighted
// dungeon grammar with three room concepts, sparse loot and monster
// grammars, and selector defaults tuned for quick runs.
func DefaultConfig() *Config {
	return &Config{
		Dungeon: DungeonConfig{
			Axiom:      "F",
			Iterations: 3,
			MaxLength:  2048,
			Rules: map[string][]ProductionConfig{
				"F": {
					{Text: "F[+F]F", Weight: 3},
					{Text: "F[-F]F", Weight: 3},
					{Text: "FF", Weight: 2},
					{Text: "F[+C]F", Weight: 1.5},
					{Text: "F[-L]F", Weight: 1},
				},
				"C": {
					{Text: "C", Weight: 3},
					{Text: "CF", Weight: 1},
				},
			},
			Symbols: map[string]dungeon.SymbolDef{
				"F": {Label: "Corridor", Tags: []string{"stone", "narrow"}},
				"C": {Label: "Shrine", Tags: []string{"sacred", "quiet"}},
				"L": {Label: "Lair", Tags: []string{"fetid", "dark"}},
			},
		},
		Content: ContentConfig{
			Items: GroupConfig{
				Iterations: 2,
				MaxLength:  64,
				Symbols: map[string]content.EntityDef{
					"g": {Label: "gold coin", Tags: []string{"treasure", "gleaming"}},
					"p": {Label: "healing potion", Tags: []string{"consumable", "herbal"}},
					"w": {Label: "rusty sword", Tags: []string{"weapon", "worn"}},
				},
				Grammars: map[string]GrammarConfig{
					"C": {
						Axiom: "I",
						Rules: map[string][]ProductionConfig{
							"I": {
								{Text: "gg", Weight: 2},
								{Text: "p", Weight: 2},
								{Text: "", Weight: 3},
							},
						},
					},
					"L": {
						Axiom: "I",
						Rules: map[string][]ProductionConfig{
							"I": {
								{Text: "ggg", Weight: 1},
								{Text: "w", Weight: 1},
								{Text: "", Weight: 2},
							},
						},
					},
				},
				Default: &GrammarConfig{
					Axiom: "I",
					Rules: map[string][]ProductionConfig{
						"I": {
							{Text: "g", Weight: 1},
							{Text: "", Weight: 5},
						},
					},
				},
			},
			Monsters: GroupConfig{
				Iterations: 2,
				MaxLength:  64,
				Symbols: map[string]content.EntityDef{
					"r": {Label: "cave rat", Tags: []string{"vermin", "skittish"}},
					"s": {Label: "bone sentinel", Tags: []string{"undead", "silent", "armored"}},
				},
				Grammars: map[string]GrammarConfig{
					"L": {
						Axiom: "M",
						Rules: map[string][]ProductionConfig{
							"M": {
								{Text: "rr", Weight: 2},
								{Text: "s", Weight: 1},
								{Text: "", Weight: 1},
							},
						},
					},
				},
				Default: &GrammarConfig{
					Axiom: "M",
					Rules: map[string][]ProductionConfig{
						"M": {
							{Text: "r", Weight: 1},
							{Text: "", Weight: 4},
						},
					},
				},
			},
		},
		Evaluation: EvaluationConfig{
			Candidates: 10,
			MasterSeed: 0,
			Workers:    1,
			Weights:    evaluate.DefaultWeights(),
		},
		Narration: narrative.DefaultConfig(),
		Server:    DefaultServerConfig(),
		Database: DatabaseConfig{
			Enabled: false,
			Driver:  "sqlite",
			Path:    "data/delvegen.db",
		},
		Logging: logger.DefaultConfig(),
	}
}
