package server

import (
	"sync"
	"time"

	"github.com/stonelantern/delvegen/internal/config"
	"github.com/stonelantern/delvegen/internal/database"
	"github.com/stonelantern/delvegen/internal/evaluate"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/narrative"
)

// Result is one finished generation: the winning candidate plus the run
// metadata the API exposes.
type Result struct {
	MasterSeed  int64               `json:"master_seed"`
	RunID       int64               `json:"run_id,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
	Candidate   *evaluate.Candidate `json:"candidate"`
}

// Manager owns the current dungeon. Regeneration replaces it atomically, so
// readers always see a complete result.
type Manager struct {
	blueprint  evaluate.Blueprint
	weights    evaluate.Weights
	candidates int
	workers    int
	masterSeed int64
	narrator   *narrative.Narrator
	archive    *database.Database

	mu      sync.RWMutex
	current *Result
}

// NewManager wires a manager from the loaded configuration. The archive may
// be nil when persistence is disabled.
func NewManager(cfg *config.Config, archive *database.Database) *Manager {
	return &Manager{
		blueprint:  cfg.Blueprint(),
		weights:    cfg.Evaluation.Weights,
		candidates: cfg.Evaluation.Candidates,
		workers:    cfg.Evaluation.Workers,
		masterSeed: cfg.Evaluation.MasterSeed,
		narrator:   narrative.NewNarrator(cfg.Narration),
		archive:    archive,
	}
}

// Current returns the latest result, or nil before the first generation.
func (m *Manager) Current() *Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Regenerate builds a fresh batch of candidates and installs the winner.
// A zero masterSeed falls back to the configured seed, then to the clock.
func (m *Manager) Regenerate(masterSeed int64) (*Result, error) {
	if masterSeed == 0 {
		masterSeed = m.masterSeed
	}
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}

	winner, err := evaluate.SelectBest(m.blueprint, m.candidates, m.weights, masterSeed, m.workers)
	if err != nil {
		return nil, err
	}
	m.narrator.Annotate(winner.Dungeon)

	result := &Result{
		MasterSeed:  masterSeed,
		GeneratedAt: time.Now().UTC(),
		Candidate:   winner,
	}

	if m.archive != nil {
		id, err := m.archive.SaveRun(masterSeed, winner)
		if err != nil {
			// Archiving is best effort; the generated dungeon still stands.
			logger.Warning("failed to archive run", "master_seed", masterSeed, "error", err)
		} else {
			result.RunID = id
		}
	}

	m.mu.Lock()
	m.current = result
	m.mu.Unlock()

	return result, nil
}

// Archive returns the run archive, or nil when persistence is disabled.
func (m *Manager) Archive() *database.Database {
	return m.archive
}
