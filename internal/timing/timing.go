// Package timing holds the cycle-accurate measurement and cache-control
// primitives everything above it is built on: timestamp counters, cache-line
// flushes and memory fences.
//
// The primitives never allocate and never do I/O. On amd64 they are
// implemented in assembly; other architectures get portable stand-ins so the
// rest of the module still compiles and its hardware-independent tests run.
package timing

// CachelineSize is the size in bytes of a cache line on every supported
// microarchitecture.
const CachelineSize = 64

// Timestamp returns the CPU cycle counter. Loads issued before the call are
// serialized against the counter read: the read is bracketed by load fences
// so it can neither float above earlier loads nor let later loads start
// early.
func Timestamp() uint64 { return timestamp() }

// TimestampSerializing is Timestamp with a full instruction-stream
// serialization in front of the counter read. Slower; used when the
// measured section may still have stores in flight.
func TimestampSerializing() uint64 { return timestampSerializing() }

// Flush evicts the cache line containing addr. The flush is unordered with
// respect to surrounding loads and stores until a store fence intervenes.
func Flush(addr uintptr) { flush(addr) }

// Access performs a single one-byte load from addr.
func Access(addr uintptr) { access(addr) }

// FenceFull orders all prior loads and stores before all later ones.
func FenceFull() { fenceFull() }

// FenceLoad orders loads.
func FenceLoad() { fenceLoad() }

// FenceStore orders stores.
func FenceStore() { fenceStore() }
