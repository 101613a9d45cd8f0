// Package inter defines the core value types shared across the Nerix game
// engine: timestamps, NFT tiers, minted tokens, and the append-only message
// and iteration records. It also provides their canonical wire serialization
// (see utils/cser), which is the encoding used at the caller-side persistence
// boundary.
package inter

import (
	"time"
)

// Timestamp is a UNIX timestamp in nanoseconds.
type Timestamp uint64

// FromUnix converts a standard library time into a Timestamp.
func FromUnix(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

// Time converts the Timestamp back into a standard library time.
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t))
}
