package grammar

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrRunaway signals that expansion hit the length cap before the string
// stabilized. The truncated string is still returned alongside the error so
// the caller can decide whether to keep or discard it.
var ErrRunaway = errors.New("grammar expansion exceeded maximum length")

// Expand rewrites the axiom for up to maxIterations passes. Every ruled
// symbol is replaced by a production chosen with a weight-proportional draw
// from rng; terminal symbols pass through unchanged. Expansion stops early
// once a pass rewrites nothing. Identical (grammar, rng seed) inputs always
// produce identical output.
func (g *Grammar) Expand(rng *rand.Rand, maxIterations, maxLength int) (string, error) {
	current := g.Axiom
	for iter := 0; iter < maxIterations; iter++ {
		var next strings.Builder
		next.Grow(len(current) * 2)
		rewrote := false
		for _, r := range current {
			symbol := string(r)
			productions, ok := g.Rules[symbol]
			if !ok {
				next.WriteRune(r)
				continue
			}
			rewrote = true
			next.WriteString(pick(rng, productions).Text)
		}
		current = next.String()
		if maxLength > 0 && len(current) > maxLength {
			return current[:maxLength], fmt.Errorf("%w: %d symbols after %d iterations (cap %d)",
				ErrRunaway, len(current), iter+1, maxLength)
		}
		if !rewrote {
			break
		}
	}
	return current, nil
}

// pick performs the weighted draw. A zero-weight production is never
// selected; Validate rejects such grammars up front, but the draw itself is
// also safe against them.
func pick(rng *rand.Rand, productions []Production) Production {
	total := 0.0
	for _, p := range productions {
		if p.Weight > 0 {
			total += p.Weight
		}
	}
	if total <= 0 {
		return productions[0]
	}
	r := rng.Float64() * total
	for _, p := range productions {
		if p.Weight <= 0 {
			continue
		}
		r -= p.Weight
		if r < 0 {
			return p
		}
	}
	return productions[len(productions)-1]
}
