// Package content stochastically assigns items and monsters to dungeon
// rooms. Every room draws from its own deterministically seeded generator,
// so repopulating the same dungeon with the same base seed is idempotent.
package content

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/grammar"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/seed"
)

// EntityDef describes one symbol of a content alphabet.
type EntityDef struct {
	Label string   `yaml:"label"`
	Tags  []string `yaml:"tags"`
}

// Group bundles the grammars and alphabet for one entity kind (items or
// monsters). Grammars are keyed by room symbol; rooms whose symbol has no
// grammar fall back to Default, and if that is nil too they stay empty.
type Group struct {
	Grammars   map[string]grammar.Grammar
	Default    *grammar.Grammar
	Symbols    map[string]EntityDef
	Iterations int
	MaxLength  int
}

const (
	kindItem    = "item"
	kindMonster = "monster"
)

// Populate fills the item and monster lists of every non-start room. The
// room seed is derived from (baseSeed, room id, room symbol), so the same
// dungeon and base seed always produce the same assignment.
func Populate(d *dungeon.Dungeon, items, monsters Group, baseSeed int64) error {
	for _, id := range d.RoomIDs() {
		room := d.Rooms[id]
		if room.ID == dungeon.StartRoomID {
			continue
		}

		roomItems, err := sample(room, items, baseSeed, kindItem)
		if err != nil {
			return fmt.Errorf("room %d (%s): %w", room.ID, room.Symbol, err)
		}
		roomMonsters, err := sample(room, monsters, baseSeed, kindMonster)
		if err != nil {
			return fmt.Errorf("room %d (%s): %w", room.ID, room.Symbol, err)
		}

		room.Items = roomItems
		room.Monsters = roomMonsters
	}
	return nil
}

// sample expands the grammar for one room and parses the result into
// entities. A runaway content expansion is tolerated: the truncated string
// is still parsed, since content grammars are tiny and the output stays
// usable.
func sample(room *dungeon.Room, group Group, baseSeed int64, kind string) ([]dungeon.Entity, error) {
	g, ok := group.grammarFor(room.Symbol)
	if !ok {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(seed.ForRoom(baseSeed, room.ID, room.Symbol, kind)))
	expanded, err := g.Expand(rng, group.Iterations, group.MaxLength)
	if err != nil {
		if !errors.Is(err, grammar.ErrRunaway) {
			return nil, err
		}
		logger.Warning("content grammar runaway", "room", room.ID, "kind", kind, "error", err)
	}

	return parseEntities(expanded, group.Symbols), nil
}

func (g Group) grammarFor(roomSymbol string) (grammar.Grammar, bool) {
	if found, ok := g.Grammars[roomSymbol]; ok {
		return found, true
	}
	if g.Default != nil {
		return *g.Default, true
	}
	return grammar.Grammar{}, false
}

// parseEntities collapses an expansion into entity records. Repetition in
// the expansion encodes quantity; entities keep first-appearance order.
// Symbols outside the group alphabet are skipped.
func parseEntities(expanded string, alphabet map[string]EntityDef) []dungeon.Entity {
	counts := make(map[string]int)
	var order []string
	for _, r := range expanded {
		symbol := string(r)
		if _, ok := alphabet[symbol]; !ok {
			continue
		}
		if counts[symbol] == 0 {
			order = append(order, symbol)
		}
		counts[symbol]++
	}

	entities := make([]dungeon.Entity, 0, len(order))
	for _, symbol := range order {
		def := alphabet[symbol]
		entities = append(entities, dungeon.Entity{
			Symbol:   symbol,
			Label:    def.Label,
			Quantity: counts[symbol],
			Tags:     def.Tags,
		})
	}
	return entities
}
