package timing

import "time"

// Parameters of the pairwise conflict measurement. Each iteration times
// ConflictRounds back-to-back accesses of the pair; the minimum over
// ConflictIters iterations rejects interrupts and REF noise.
const (
	ConflictRounds = 1000
	ConflictIters  = 4
)

// MeasureConflict measures the average round-trip time of alternately
// accessing a and b with both lines flushed between rounds. Same-bank
// address pairs pay a row-buffer conflict on every round and land well
// above the cache-miss floor.
//
// The returned value is the minimum over ConflictIters iterations of the
// per-round average, in cycles.
func MeasureConflict(a, b uintptr) uint64 {
	// Let the scheduler preempt us here rather than mid-measurement.
	time.Sleep(200 * time.Microsecond)

	minDelta := ^uint64(0)

	for it := 0; it < ConflictIters; it++ {
		before := Timestamp()

		for r := 0; r < ConflictRounds; r++ {
			Access(a)
			Access(b)
			Flush(a)
			Flush(b)
			FenceFull()
		}

		after := TimestampSerializing()

		if delta := (after - before) / ConflictRounds; delta < minDelta {
			minDelta = delta
		}
	}

	return minDelta
}
