package lock

import (
	"context"
	"sync"
)

// KeyedMutex is an in-process mutex per key. Waiting honours ctx. Slots are
// reference counted and dropped once nobody holds or waits on them, so the
// table stays as small as the set of contended keys.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{} // capacity 1; a value in the channel means held
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	if ctx.Err() != nil {
		return nil, waitErr(ctx)
	}

	m.mu.Lock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	m.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.unref(key, s)
		return nil, waitErr(ctx)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			m.unref(key, s)
		})
	}, nil
}

func (m *KeyedMutex) unref(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}

func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}
