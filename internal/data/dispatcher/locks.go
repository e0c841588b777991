package dispatcher

import "sync"

// resourceLocks serialises requests that write the same cache entry while
// letting unrelated requests run in parallel. Entries are dropped when the
// last holder releases them.
type resourceLocks struct {
	mu      sync.Mutex
	entries map[string]*resourceLock
}

type resourceLock struct {
	mu   sync.Mutex
	refs int
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{entries: make(map[string]*resourceLock)}
}

func (r *resourceLocks) lock(key string) func() {
	r.mu.Lock()
	entry, ok := r.entries[key]
	if !ok {
		entry = &resourceLock{}
		r.entries[key] = entry
	}
	entry.refs++
	r.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		r.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(r.entries, key)
		}
		r.mu.Unlock()
	}
}

func (r *resourceLocks) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
