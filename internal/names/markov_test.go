package names

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"
)

func TestGenerateDeterministic(t *testing.T) {
	a := New(nil, 3, rand.New(rand.NewSource(42)))
	b := New(nil, 3, rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		nameA := a.Generate(4, 10)
		nameB := b.Generate(4, 10)
		if nameA != nameB {
			t.Fatalf("draw %d: %q vs %q, want identical for the same seed", i, nameA, nameB)
		}
	}
}

func TestGenerateLengthBounds(t *testing.T) {
	g := New(nil, 3, rand.New(rand.NewSource(7)))
	for i := 0; i < 100; i++ {
		name := g.Generate(4, 10)
		if len(name) > 10 {
			t.Errorf("name %q longer than 10 runes", name)
		}
		if name == "" {
			t.Error("generated an empty name")
		}
	}
}

func TestGenerateCapitalized(t *testing.T) {
	g := New(nil, 3, rand.New(rand.NewSource(3)))
	for i := 0; i < 50; i++ {
		name := g.Generate(4, 10)
		first := []rune(name)[0]
		if !unicode.IsUpper(first) {
			t.Errorf("name %q does not start uppercase", name)
		}
	}
}

func TestGenerateUsesCorpusAlphabet(t *testing.T) {
	corpus := []string{"Abba", "Baab", "Abab"}
	g := New(corpus, 3, rand.New(rand.NewSource(11)))

	for i := 0; i < 50; i++ {
		name := strings.ToLower(g.Generate(2, 8))
		for _, r := range name {
			if r != 'a' && r != 'b' {
				t.Fatalf("name %q contains %q, not in the training alphabet", name, r)
			}
		}
	}
}

func TestNewClampsOrder(t *testing.T) {
	g := New([]string{"Test"}, 0, rand.New(rand.NewSource(1)))
	if g.order != 2 {
		t.Errorf("order = %d, want clamped to 2", g.order)
	}
}
