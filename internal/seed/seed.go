// Package seed derives deterministic, non-colliding sub-seeds from a master
// seed so that every candidate and every room gets its own rand.Rand source.
package seed

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// ForCandidate derives an independent seed for the candidate at the given
// index. Distinct (master, index) pairs map to distinct seeds.
func ForCandidate(master int64, index int) int64 {
	buf := make([]byte, 0, 32)
	buf = append(buf, "candidate"...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(master))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(index))
	return digest(buf)
}

// ForRoom derives a content seed for one room. The same (base, roomID,
// symbol, kind) combination always yields the same seed, which makes
// repopulating a dungeon idempotent.
func ForRoom(base int64, roomID int, symbol, kind string) int64 {
	buf := make([]byte, 0, 64)
	buf = append(buf, "room"...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(base))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(roomID))
	buf = append(buf, symbol...)
	buf = append(buf, 0)
	buf = append(buf, kind...)
	return digest(buf)
}

func digest(buf []byte) int64 {
	sum := blake2b.Sum256(buf)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}
