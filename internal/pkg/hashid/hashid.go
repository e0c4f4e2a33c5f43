package hashid

import (
	"crypto/sha256"
	"encoding/binary"
)

// Assign maps an arbitrary string key to a stable numeric identifier by
// hashing the UTF-8 bytes of the key with SHA-256 and reading the first
// eight bytes as a big-endian integer. The same key always yields the same
// id, which is what makes re-ingestion of a video idempotent: unit ids are
// keyed on (video id, chunk ordinal) and never drawn from a counter or RNG.
// The top bit is cleared so the value survives a signed 64-bit column.
func Assign(key string) uint64 {
	sum := sha256.Sum256([]byte(key))
	return binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63)
}
