// Package evaluate scores populated dungeons with weighted heuristics and
// picks the best of several independently generated candidates.
package evaluate

import (
	"math"

	"github.com/stonelantern/delvegen/internal/dungeon"
)

// Metrics are the raw per-dungeon measurements that feed the score.
type Metrics struct {
	RoomDiversity   float64 `json:"room_diversity"`   // distinct room symbols / room count
	BranchingFactor float64 `json:"branching_factor"` // mean neighbor count
	DeadEndRatio    float64 `json:"dead_end_ratio"`   // non-start rooms with exactly one neighbor / room count
	LootPresence    float64 `json:"loot_presence"`    // rooms carrying at least one item / room count
	MonsterPresence float64 `json:"monster_presence"` // rooms carrying at least one monster / room count
	RoomCount       int     `json:"room_count"`
}

// Weights are the enjoyability coefficients applied linearly to the metrics.
// DeadEndPenalty and RoomCountPenalty subtract from the score.
type Weights struct {
	RoomDiversity    float64 `yaml:"room_diversity"`
	BranchingFactor  float64 `yaml:"branching_factor"`
	DeadEndPenalty   float64 `yaml:"dead_end_penalty"`
	LootPresence     float64 `yaml:"loot_presence"`
	MonsterPresence  float64 `yaml:"monster_presence"`
	RoomCountPenalty float64 `yaml:"room_count_penalty"`
	TargetRoomCount  int     `yaml:"target_room_count"`
}

// DefaultWeights returns coefficients that favor diverse, loot-bearing,
// moderately branching layouts near 30 rooms.
func DefaultWeights() Weights {
	return Weights{
		RoomDiversity:    1.0,
		BranchingFactor:  0.5,
		DeadEndPenalty:   0.75,
		LootPresence:     0.8,
		MonsterPresence:  0.6,
		RoomCountPenalty: 1.0,
		TargetRoomCount:  30,
	}
}

// ComputeMetrics measures one populated dungeon.
func ComputeMetrics(d *dungeon.Dungeon) Metrics {
	total := d.RoomCount()
	if total == 0 {
		return Metrics{}
	}

	symbols := make(map[string]struct{})
	neighborSum := 0
	deadEnds := 0
	lootRooms := 0
	monsterRooms := 0

	for id, room := range d.Rooms {
		symbols[room.Symbol] = struct{}{}
		degree := len(d.Adjacency[id])
		neighborSum += degree
		if id != dungeon.StartRoomID && degree == 1 {
			deadEnds++
		}
		if len(room.Items) > 0 {
			lootRooms++
		}
		if len(room.Monsters) > 0 {
			monsterRooms++
		}
	}

	n := float64(total)
	return Metrics{
		RoomDiversity:   float64(len(symbols)) / n,
		BranchingFactor: float64(neighborSum) / n,
		DeadEndRatio:    float64(deadEnds) / n,
		LootPresence:    float64(lootRooms) / n,
		MonsterPresence: float64(monsterRooms) / n,
		RoomCount:       total,
	}
}

// Score folds the metrics into the enjoyability scalar. The room-count term
// penalizes deviation from the target proportionally to the target size.
func Score(m Metrics, w Weights) float64 {
	score := w.RoomDiversity*m.RoomDiversity +
		w.BranchingFactor*m.BranchingFactor +
		w.LootPresence*m.LootPresence +
		w.MonsterPresence*m.MonsterPresence -
		w.DeadEndPenalty*m.DeadEndRatio

	if w.TargetRoomCount > 0 {
		deviation := math.Abs(float64(m.RoomCount-w.TargetRoomCount)) / float64(w.TargetRoomCount)
		score -= w.RoomCountPenalty * deviation
	}
	return score
}
