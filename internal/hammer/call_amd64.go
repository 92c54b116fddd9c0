//go:build amd64

package hammer

import "unsafe"

const jitAvailable = true

// callJIT jumps into the emitted function and returns its eax result
// (the sync-access counter). Implemented in call_amd64.s.
//
//go:noescape
func callJIT(entry uintptr) uint64

func jitEntry(code []byte) uintptr {
	return uintptr(unsafe.Pointer(&code[0]))
}
