package common

import "sync"

// roomLocks serializes check-then-write sequences on a single room so that
// two concurrent requests cannot both observe it free and both commit.
// Callers holding more than one lock must have acquired them in candidate
// order (ascending room number); every request walks candidates in that same
// order, which rules out lock cycles.
var roomLocks sync.Map

// LockRoom blocks until the caller holds the room's mutex and returns it.
// The caller is responsible for Unlock.
func LockRoom(roomID uint) *sync.Mutex {
	v, _ := roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}
