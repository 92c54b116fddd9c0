package timing

import (
	"runtime"
	"testing"
	"unsafe"
)

func addrOf(b []byte) unsafe.Pointer { return unsafe.Pointer(&b[0]) }

func TestTimestampMonotonic(tt *testing.T) {
	tt.Parallel()

	prev := Timestamp()
	for i := 0; i < 10000; i++ {
		now := Timestamp()
		if now < prev {
			tt.Fatalf("timestamp went backwards: %d after %d", now, prev)
		}
		prev = now
	}
}

func TestPrimitivesOnLiveMemory(tt *testing.T) {
	tt.Parallel()

	buf := make([]byte, 2*CachelineSize)
	addr := uintptr(addrOf(buf))

	// None of these may fault or hang on ordinary memory.
	Access(addr)
	Flush(addr)
	FenceFull()
	FenceLoad()
	FenceStore()
	Access(addr + CachelineSize)
	Flush(addr + CachelineSize)

	if TimestampSerializing() == 0 {
		tt.Error("serializing timestamp returned zero")
	}

	runtime.KeepAlive(buf)
}

func TestMeasureConflictReturnsPlausibleCycles(tt *testing.T) {
	tt.Parallel()

	buf := make([]byte, 2*4096)
	a := uintptr(addrOf(buf))
	b := a + 4096

	delta := MeasureConflict(a, b)
	if delta == 0 {
		tt.Error("zero round-trip time")
	}

	runtime.KeepAlive(buf)
}
