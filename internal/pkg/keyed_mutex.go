package pkg

import (
	"sort"
	"sync"
)

// KeyedMutex serializes operations that share a key. Balance read-modify-write
// cycles on one account must not interleave; operations on different accounts
// proceed in parallel.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedLock),
	}
}

func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &keyedLock{}
		km.locks[key] = l
	}
	l.refs++
	km.mu.Unlock()

	l.mu.Lock()
}

func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	l, ok := km.locks[key]
	if ok {
		l.refs--
		if l.refs == 0 {
			delete(km.locks, key)
		}
	}
	km.mu.Unlock()

	if ok {
		l.mu.Unlock()
	}
}

// LockAll acquires every key in lexicographic order so that two concurrent
// multi-key holders cannot deadlock. Duplicate keys are locked once.
func (km *KeyedMutex) LockAll(keys ...string) []string {
	ordered := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			ordered = append(ordered, k)
		}
	}
	sort.Strings(ordered)
	for _, k := range ordered {
		km.Lock(k)
	}
	return ordered
}

func (km *KeyedMutex) UnlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		km.Unlock(keys[i])
	}
}
