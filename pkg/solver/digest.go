package solver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/kagamiz/mapsolver/pkg/room"
)

// digest returns a stable, content-addressed key for a partial DFS state:
// the full room array (label plus all six door-targets, determined or not)
// together with the walk position and current room. Two states with
// identical digests are interchangeable for the rest of the search, which
// is what makes memoization sound.
func digest(rooms []room.Room, idx, currentRoom int) string {
	h := sha256.New()
	var buf [8]byte

	for _, r := range rooms {
		binary.BigEndian.PutUint64(buf[:], uint64(int64(r.Label)))
		h.Write(buf[:])
		for _, d := range r.Doors {
			binary.BigEndian.PutUint64(buf[:], uint64(int64(d)))
			h.Write(buf[:])
		}
	}

	binary.BigEndian.PutUint64(buf[:], uint64(int64(idx)))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(int64(currentRoom)))
	h.Write(buf[:])

	return hex.EncodeToString(h.Sum(nil))
}
