package narrative

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/names"
)

var thinkPattern = regexp.MustCompile(`(?is)<think>.*?</think>`)

const (
	itemWordCap    = 3
	monsterWordCap = 4
)

// Narrator annotates a dungeon's rooms and entities with descriptions.
// Rooms are described individually (their trails differ), while entity
// descriptions are cached per (kind, symbol) so repeated loot and monsters
// share text and the collaborator is called once per distinct kind.
type Narrator struct {
	cfg    Config
	client *Client
	namer  *names.Generator

	entityCache map[string]string
}

// NewNarrator builds a narrator. When cfg.Enabled is false no HTTP calls are
// made and every description comes from the fallback templates.
func NewNarrator(cfg Config) *Narrator {
	return &Narrator{
		cfg:         cfg,
		client:      NewClient(cfg),
		namer:       names.New(cfg.NameCorpus, 3, rand.New(rand.NewSource(cfg.NameSeed))),
		entityCache: make(map[string]string),
	}
}

// Annotate fills in descriptions for every non-start room and its entities.
// It never returns an error: narration is decoration, not pipeline.
func (n *Narrator) Annotate(d *dungeon.Dungeon) {
	for _, id := range d.RoomIDs() {
		room := d.Rooms[id]
		if room.ID == dungeon.StartRoomID {
			continue
		}
		room.Description = n.describeRoom(room)
		for i := range room.Items {
			room.Items[i].Description = n.describeEntity("item", &room.Items[i], room)
		}
		for i := range room.Monsters {
			room.Monsters[i].Description = n.describeEntity("monster", &room.Monsters[i], room)
		}
	}
}

func (n *Narrator) describeRoom(room *dungeon.Room) string {
	vars := n.roomVars(room)
	text := ""
	if n.cfg.Enabled {
		prompt := substitute(n.cfg.RoomPrompt.Template, vars)
		out, err := n.client.Generate(prompt, n.cfg.RoomPrompt.System)
		if err != nil {
			logger.Warning("room narration failed, using fallback", "symbol", room.Symbol, "error", err)
		} else {
			text = clean(out, 0)
		}
	}
	if text == "" {
		text = substitute(n.cfg.RoomFallback, vars)
	}
	return text
}

func (n *Narrator) describeEntity(kind string, entity *dungeon.Entity, room *dungeon.Room) string {
	cacheKey := kind + ":" + entity.Symbol
	if cached, ok := n.entityCache[cacheKey]; ok {
		return cached
	}

	prompt := n.cfg.ItemPrompt
	fallback := n.cfg.ItemFallback
	wordCap := itemWordCap
	tagCount := 2
	if kind == "monster" {
		prompt = n.cfg.MonsterPrompt
		fallback = n.cfg.MonsterFallback
		wordCap = monsterWordCap
		tagCount = 3
	}

	vars := n.roomVars(room)
	vars["{entity_label}"] = entity.Label
	vars["{entity_symbol}"] = entity.Symbol
	vars["{entity_tags}"] = strings.Join(firstN(entity.Tags, tagCount), " ")
	vars["{entity_name}"] = n.namer.Generate(4, 10)

	text := ""
	if n.cfg.Enabled {
		out, err := n.client.Generate(substitute(prompt.Template, vars), prompt.System)
		if err != nil {
			logger.Warning("entity narration failed, using fallback",
				"kind", kind, "symbol", entity.Symbol, "error", err)
		} else {
			text = clean(out, wordCap)
		}
	}
	if text == "" {
		text = substitute(fallback, vars)
	}

	n.entityCache[cacheKey] = text
	return text
}

func (n *Narrator) roomVars(room *dungeon.Room) map[string]string {
	pathSummary := "start"
	if len(room.Trail) > 0 {
		steps := make([]string, len(room.Trail))
		for i, dir := range room.Trail {
			steps[i] = dir.String()
		}
		pathSummary = "start -> " + strings.Join(steps, " -> ")
	}
	return map[string]string{
		"{label}":        room.Label,
		"{symbol}":       room.Symbol,
		"{tags}":         strings.Join(room.Tags, ", "),
		"{room_label}":   room.Label,
		"{room_symbol}":  room.Symbol,
		"{global_cues}":  n.cfg.GlobalCues,
		"{path_summary}": pathSummary,
	}
}

// substitute replaces {placeholder} tokens; unknown tokens pass through.
func substitute(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}

// clean strips <think> blocks, collapses whitespace, and caps the word
// count when wordCap is positive.
func clean(text string, wordCap int) string {
	stripped := thinkPattern.ReplaceAllString(text, "")
	words := strings.Fields(stripped)
	if wordCap > 0 && len(words) > wordCap {
		words = words[:wordCap]
	}
	return strings.Join(words, " ")
}

func firstN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
