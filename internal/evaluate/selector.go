package evaluate

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/stonelantern/delvegen/internal/content"
	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/grammar"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/seed"
)

// Blueprint is the read-only recipe shared by every candidate: the dungeon
// grammar, the movement symbol table, and the content groups. Each candidate
// gets its own rand.Rand, so a Blueprint is safe to share across workers.
type Blueprint struct {
	Grammar    grammar.Grammar
	Symbols    map[string]dungeon.SymbolDef
	Items      content.Group
	Monsters   content.Group
	Iterations int
	MaxLength  int
}

// Candidate is one fully constructed dungeon paired with its score.
type Candidate struct {
	Index   int              `json:"index"`
	Seed    int64            `json:"seed"`
	Score   float64          `json:"score"`
	Metrics Metrics          `json:"metrics"`
	Dungeon *dungeon.Dungeon `json:"dungeon"`
}

// ErrNoCandidates means every candidate in a run failed to construct.
var ErrNoCandidates = errors.New("no candidate could be constructed")

// SelectBest builds count candidates, each from its own seed derived from
// masterSeed and the candidate index, scores them, and returns the highest
// scoring one. Ties keep the lowest index. Candidates whose construction
// fails (runaway grammar, unmatched pop) are discarded with a warning.
// With workers > 1 candidates are built concurrently; the winner scan stays
// sequential over the index order, so both modes pick the same candidate.
func SelectBest(bp Blueprint, count int, weights Weights, masterSeed int64, workers int) (*Candidate, error) {
	if count < 1 {
		return nil, fmt.Errorf("candidate count must be at least 1, got %d", count)
	}

	results := make([]*Candidate, count)

	buildOne := func(i int) {
		candidateSeed := seed.ForCandidate(masterSeed, i)
		c, err := buildCandidate(bp, i, candidateSeed)
		if err != nil {
			logger.Warning("candidate discarded", "index", i, "seed", candidateSeed, "error", err)
			return
		}
		c.Metrics = ComputeMetrics(c.Dungeon)
		c.Score = Score(c.Metrics, weights)
		results[i] = c
	}

	if workers > 1 {
		indexes := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					buildOne(i)
				}
			}()
		}
		for i := 0; i < count; i++ {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	} else {
		for i := 0; i < count; i++ {
			buildOne(i)
		}
	}

	var best *Candidate
	for _, c := range results {
		if c == nil {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = c
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w after %d attempts", ErrNoCandidates, count)
	}

	logger.Info("candidate selected",
		"index", best.Index,
		"score", best.Score,
		"rooms", best.Metrics.RoomCount)
	return best, nil
}

// buildCandidate runs the full generative pipeline for one candidate with an
// isolated random source.
func buildCandidate(bp Blueprint, index int, candidateSeed int64) (*Candidate, error) {
	rng := rand.New(rand.NewSource(candidateSeed))

	expanded, err := bp.Grammar.Expand(rng, bp.Iterations, bp.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	d, err := dungeon.Build(expanded, bp.Symbols)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	if err := content.Populate(d, bp.Items, bp.Monsters, candidateSeed); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}

	return &Candidate{Index: index, Seed: candidateSeed, Dungeon: d}, nil
}
