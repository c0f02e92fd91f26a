// Package names generates monster names with a character-level markov chain
// trained on a small corpus.
package names

import (
	"math/rand"
	"strings"
)

// DefaultCorpus seeds the chain when the configuration supplies no corpus.
var DefaultCorpus = []string{
	"Zombie", "Skeleton", "Creeper", "Spider", "Enderman", "Witch", "Slime",
	"Ghast", "Blaze", "Wither", "Piglin", "Vindicator", "Evoker", "Illusioner",
	"Pillager", "Husk", "Drowned", "Phantom", "Stray", "Guardian", "Shulker",
	"Silverfish", "Endermite", "Ravager", "Warden", "Vex", "Zoglin", "Hoglin",
	"Strider", "Necromancer", "Warlock", "Specter", "Shade", "Lurker",
	"Wraith", "Stalker", "Ghoul", "Banshee", "Fiend", "Revenant",
}

const (
	padRune = '~'
	endRune = '$'
)

// Generator is a seeded n-gram markov chain. It is not safe for concurrent
// use; give each goroutine its own instance.
type Generator struct {
	order int
	model map[string][]rune
	rng   *rand.Rand
}

// New trains a generator of the given order (prefix length + 1) on the
// corpus. Order below 2 is clamped to 2; an empty corpus falls back to
// DefaultCorpus.
func New(corpus []string, order int, rng *rand.Rand) *Generator {
	if order < 2 {
		order = 2
	}
	if len(corpus) == 0 {
		corpus = DefaultCorpus
	}

	g := &Generator{order: order, model: make(map[string][]rune), rng: rng}
	for _, name := range corpus {
		g.train(strings.ToLower(name))
	}
	return g
}

func (g *Generator) train(name string) {
	padded := strings.Repeat(string(padRune), g.order-1) + name + string(endRune)
	runes := []rune(padded)
	for i := 0; i+g.order <= len(runes); i++ {
		prefix := string(runes[i : i+g.order-1])
		g.model[prefix] = append(g.model[prefix], runes[i+g.order-1])
	}
}

// Generate produces one capitalized name between minLen and maxLen runes.
func (g *Generator) Generate(minLen, maxLen int) string {
	for attempt := 0; attempt < 32; attempt++ {
		name := g.walk(maxLen)
		if len(name) >= minLen {
			return capitalize(name)
		}
	}
	// Chain too sparse for the requested length; take what it gives.
	return capitalize(g.walk(maxLen))
}

func (g *Generator) walk(maxLen int) string {
	prefix := strings.Repeat(string(padRune), g.order-1)
	var result []rune
	for len(result) < maxLen {
		choices := g.model[prefix]
		if len(choices) == 0 {
			break
		}
		next := choices[g.rng.Intn(len(choices))]
		if next == endRune {
			break
		}
		result = append(result, next)
		prefix = lastN(prefix+string(next), g.order-1)
	}
	return string(result)
}

func lastN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
