package service

import (
	"fmt"
	"sync"
)

// LockTable serializes operations on one entity. Agreements and equipment get
// separate key spaces; lock ordering is always agreement before equipment to
// keep the two-lock acquisition in SetDecision cycle-free.
type LockTable struct {
	locks sync.Map // key -> *sync.Mutex
}

func NewLockTable() *LockTable {
	return &LockTable{}
}

// Lock acquires the mutex for key and returns its release func.
func (t *LockTable) Lock(key string) func() {
	v, _ := t.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func equipmentKey(id int32) string { return fmt.Sprintf("equipment/%d", id) }
func agreementKey(id int32) string { return fmt.Sprintf("agreement/%d", id) }
