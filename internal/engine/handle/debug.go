//go:build debug

package handle

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// This file implements the thread(goroutine)-ownership assertions from
// original_source/src/buffer_handle.cpp (the `CZ_DEBUG_ASSERT`s guarding
// `starting_readers`/`active_readers`): a goroutine must never hold the
// write lock on a handle it already holds, and the bookkeeping this
// package keeps must never observe more than one writer active at once.
// These checks cost a stack walk per lock/unlock, so they're gated behind
// the `debug` build tag rather than always compiled in.

var (
	ownersMu    sync.Mutex
	writeOwners = map[*Handle]int64{}
	readOwners  = map[*Handle]map[int64]int{}
)

func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.Fields(buf[:n])[1]
	id, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		panic("handle: could not parse goroutine id: " + err.Error())
	}
	return id
}

func debugWriteLocked(h *Handle) {
	id := goroutineID()
	ownersMu.Lock()
	defer ownersMu.Unlock()
	if owner, ok := writeOwners[h]; ok {
		panic("handle: goroutine already holds the write lock for this handle, owner=" + strconv.FormatInt(owner, 10))
	}
	if readers, ok := readOwners[h]; ok {
		if _, holds := readers[id]; holds {
			panic("handle: goroutine write-locked a handle it still holds a read lock on")
		}
	}
	writeOwners[h] = id
}

func debugWriteUnlocked(h *Handle) {
	ownersMu.Lock()
	defer ownersMu.Unlock()
	id := goroutineID()
	owner, ok := writeOwners[h]
	if !ok || owner != id {
		panic("handle: write-unlock by a goroutine that does not own the write lock")
	}
	delete(writeOwners, h)
}

func debugReadLocked(h *Handle) {
	id := goroutineID()
	ownersMu.Lock()
	defer ownersMu.Unlock()
	if _, ok := writeOwners[h]; ok {
		panic("handle: goroutine acquired a read lock while a writer holds this handle")
	}
	readers, ok := readOwners[h]
	if !ok {
		readers = map[int64]int{}
		readOwners[h] = readers
	}
	readers[id]++
}

func debugReadUnlocked(h *Handle) {
	id := goroutineID()
	ownersMu.Lock()
	defer ownersMu.Unlock()
	readers := readOwners[h]
	if readers == nil || readers[id] == 0 {
		panic("handle: read-unlock by a goroutine that does not hold a read lock")
	}
	readers[id]--
	if readers[id] == 0 {
		delete(readers, id)
	}
	if len(readers) == 0 {
		delete(readOwners, h)
	}
}
