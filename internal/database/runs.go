package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/evaluate"
)

// ErrRunNotFound is returned when a run lookup fails.
var ErrRunNotFound = errors.New("run not found")

// Run is one archived generation: the winning candidate of a selector pass.
type Run struct {
	ID             int64
	CreatedAt      time.Time
	MasterSeed     int64
	CandidateSeed  int64
	CandidateIndex int
	Score          float64
	RoomCount      int

	// Dungeon is nil in listings; GetRun loads it.
	Dungeon *dungeon.Dungeon
}

// SaveRun archives the winning candidate and returns the new run's ID.
func (d *Database) SaveRun(masterSeed int64, cand *evaluate.Candidate) (int64, error) {
	if cand == nil || cand.Dungeon == nil {
		return 0, errors.New("cannot save an empty candidate")
	}

	blob, err := json.Marshal(cand.Dungeon)
	if err != nil {
		return 0, fmt.Errorf("failed to encode dungeon: %w", err)
	}

	query := d.qb.BuildWithReturning(
		`INSERT INTO runs (master_seed, candidate_seed, candidate_index, score, room_count, dungeon)
		 VALUES (?, ?, ?, ?, ?, ?)`, "id")
	args := []any{masterSeed, cand.Seed, cand.Index, cand.Score, cand.Dungeon.RoomCount(), string(blob)}

	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to save run: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get run ID: %w", err)
		}
		return id, nil
	}

	var id int64
	if err := d.db.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, without their dungeon
// payloads. A limit of 0 or less lists everything.
func (d *Database) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, created_at, master_seed, candidate_seed, candidate_index, score, room_count
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(d.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.MasterSeed, &run.CandidateSeed,
			&run.CandidateIndex, &run.Score, &run.RoomCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads one archived run, including its dungeon.
func (d *Database) GetRun(id int64) (*Run, error) {
	var run Run
	var blob string

	err := d.db.QueryRow(d.qb.Build(
		`SELECT id, created_at, master_seed, candidate_seed, candidate_index, score, room_count, dungeon
		 FROM runs WHERE id = ?`), id,
	).Scan(&run.ID, &run.CreatedAt, &run.MasterSeed, &run.CandidateSeed,
		&run.CandidateIndex, &run.Score, &run.RoomCount, &blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	run.Dungeon = dungeon.NewDungeon()
	if err := json.Unmarshal([]byte(blob), run.Dungeon); err != nil {
		return nil, fmt.Errorf("failed to decode archived dungeon: %w", err)
	}
	return &run, nil
}

// DeleteRun removes one archived run.
func (d *Database) DeleteRun(id int64) error {
	result, err := d.db.Exec(d.qb.Build(`DELETE FROM runs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}
