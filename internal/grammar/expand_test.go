package grammar

import (
	"errors"
	"math/rand"
	"testing"
)

func TestExpandSingleRule(t *testing.T) {
	g := Grammar{
		Axiom: "F",
		Rules: map[string][]Production{
			"F": {{Text: "F[+F]F[-F]F", Weight: 1}},
		},
	}

	rng := rand.New(rand.NewSource(1))
	got, err := g.Expand(rng, 1, 0)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "F[+F]F[-F]F" {
		t.Errorf("Expand() = %q, want %q", got, "F[+F]F[-F]F")
	}
}

func TestExpandDeterministic(t *testing.T) {
	g := Grammar{
		Axiom: "F",
		Rules: map[string][]Production{
			"F": {
				{Text: "F[+F]F", Weight: 2},
				{Text: "FF", Weight: 1},
				{Text: "F[-F]", Weight: 1},
			},
		},
	}

	for seed := int64(0); seed < 20; seed++ {
		a, errA := g.Expand(rand.New(rand.NewSource(seed)), 4, 4096)
		b, errB := g.Expand(rand.New(rand.NewSource(seed)), 4, 4096)
		if a != b || (errA == nil) != (errB == nil) {
			t.Fatalf("seed %d: expansions differ: %q vs %q", seed, a, b)
		}
	}
}

func TestExpandTerminalsPassThrough(t *testing.T) {
	g := Grammar{
		Axiom: "F+G",
		Rules: map[string][]Production{
			"F": {{Text: "FG", Weight: 1}},
		},
	}

	got, err := g.Expand(rand.New(rand.NewSource(1)), 1, 0)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "FG+G" {
		t.Errorf("Expand() = %q, want %q", got, "FG+G")
	}
}

func TestExpandStabilizesEarly(t *testing.T) {
	// F rewrites to a terminal string after one pass; further iterations
	// must not change anything.
	g := Grammar{
		Axiom: "F",
		Rules: map[string][]Production{
			"F": {{Text: "GG", Weight: 1}},
		},
	}

	got, err := g.Expand(rand.New(rand.NewSource(1)), 100, 0)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "GG" {
		t.Errorf("Expand() = %q, want %q", got, "GG")
	}
}

func TestExpandEmptyProductionErasesSymbol(t *testing.T) {
	g := Grammar{
		Axiom: "AFA",
		Rules: map[string][]Production{
			"A": {{Text: "", Weight: 1}},
		},
	}

	got, err := g.Expand(rand.New(rand.NewSource(1)), 1, 0)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "F" {
		t.Errorf("Expand() = %q, want %q", got, "F")
	}
}

func TestExpandRunaway(t *testing.T) {
	g := Grammar{
		Axiom: "F",
		Rules: map[string][]Production{
			"F": {{Text: "FFFF", Weight: 1}},
		},
	}

	got, err := g.Expand(rand.New(rand.NewSource(1)), 50, 64)
	if !errors.Is(err, ErrRunaway) {
		t.Fatalf("Expand() error = %v, want ErrRunaway", err)
	}
	if len(got) != 64 {
		t.Errorf("truncated string has %d symbols, want 64", len(got))
	}
}

func TestExpandZeroIterations(t *testing.T) {
	g := Grammar{
		Axiom: "F",
		Rules: map[string][]Production{"F": {{Text: "FF", Weight: 1}}},
	}

	got, err := g.Expand(rand.New(rand.NewSource(1)), 0, 0)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "F" {
		t.Errorf("Expand() = %q, want the axiom back", got)
	}
}

func TestPickZeroWeightNeverSelected(t *testing.T) {
	productions := []Production{
		{Text: "live", Weight: 1},
		{Text: "dead", Weight: 0},
		{Text: "also", Weight: 3},
	}

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 10000; i++ {
		if p := pick(rng, productions); p.Text == "dead" {
			t.Fatalf("draw %d selected the zero-weight production", i)
		}
	}
}

func TestPickProportions(t *testing.T) {
	productions := []Production{
		{Text: "a", Weight: 3},
		{Text: "b", Weight: 1},
	}

	rng := rand.New(rand.NewSource(7))
	counts := map[string]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[pick(rng, productions).Text]++
	}

	ratio := float64(counts["a"]) / float64(draws)
	if ratio < 0.70 || ratio > 0.80 {
		t.Errorf("production a drawn %.3f of the time, want ~0.75", ratio)
	}
}
