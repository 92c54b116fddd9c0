//go:build amd64

package timing

// Implemented in timing_amd64.s.

//go:noescape
func timestamp() uint64

//go:noescape
func timestampSerializing() uint64

//go:noescape
func flush(addr uintptr)

//go:noescape
func access(addr uintptr)

//go:noescape
func fenceFull()

//go:noescape
func fenceLoad()

//go:noescape
func fenceStore()
