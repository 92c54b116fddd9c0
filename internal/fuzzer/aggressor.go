// Package fuzzer generates frequency-based hammering patterns, binds their
// abstract aggressors to concrete DRAM rows, and records the bit flips a
// pattern produced.
package fuzzer

import (
	"crypto/rand"
	"encoding/hex"
)

// AggressorID identifies one abstract aggressor within a pattern. IDs are
// dense handles; the DRAM row an ID hammers lives in the AddressMapping,
// never in the pattern itself.
type AggressorID int32

// Placeholder marks a pattern slot not yet claimed by any aggressor.
const Placeholder AggressorID = -1

// newInstanceID returns a fresh unique identifier for patterns and
// mappings. Identifiers are opaque; equality is all that matters.
func newInstanceID() string {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		panic("fuzzer: id entropy unavailable: " + err.Error())
	}

	return hex.EncodeToString(raw[:])
}
