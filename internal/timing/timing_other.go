//go:build !amd64

package timing

import (
	"sync/atomic"
	"time"
	"unsafe"
)

// Portable stand-ins. They keep the module compiling on non-amd64 hosts so
// the hardware-independent packages and their tests still work; they are
// useless for actual DRAM measurements.

var sink uint32

func timestamp() uint64            { return uint64(time.Now().UnixNano()) }
func timestampSerializing() uint64 { return uint64(time.Now().UnixNano()) }

func flush(uintptr) {}

func access(addr uintptr) {
	atomic.AddUint32(&sink, uint32(*(*byte)(unsafe.Pointer(addr))))
}

func fenceFull()  {}
func fenceLoad()  {}
func fenceStore() {}
