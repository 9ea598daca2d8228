package simulation

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// DeriveSeed maps (global seed, post id, per-post offset) to a reproducible
// 64-bit seed: the first 8 bytes of SHA-256("<seed>|<id>|<offset>") read
// big-endian. The digest is used for collision-resistant stream separation
// between posts, not for security.
func DeriveSeed(globalSeed int64, postID string, seedOffset int) uint64 {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%s|%d", globalSeed, postID, seedOffset))
	return binary.BigEndian.Uint64(sum[:8])
}
