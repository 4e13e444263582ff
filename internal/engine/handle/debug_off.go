//go:build !debug

package handle

// These hooks compile away entirely in non-debug builds; see debug.go for
// the `-tags debug` implementation that actually tracks ownership.

func debugWriteLocked(h *Handle)   {}
func debugWriteUnlocked(h *Handle) {}
func debugReadLocked(h *Handle)    {}
func debugReadUnlocked(h *Handle)  {}
