package lelang

import "sync"

// keyedMutex serialises work per auction id.  Entries are reference
// counted and dropped once no goroutine holds or waits on them, so the map
// only grows with the number of auctions being touched concurrently.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint64]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uint64]*refMutex)}
}

// Lock blocks until the lock for id is held and returns its release func.
func (k *keyedMutex) Lock(id uint64) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
