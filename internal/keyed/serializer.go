// Package keyed provides per-key mutual exclusion: at most one critical
// section runs per key, queued callers for the same key run in FIFO order,
// and distinct keys never block each other.
package keyed

import (
	"context"
	"sync"
)

type keyQueue struct {
	// active is true from the moment a caller owns the key until release
	// hands the key to the next waiter or deletes the entry.
	active  bool
	waiters []chan struct{}
}

type Serializer struct {
	mu   sync.Mutex
	keys map[int64]*keyQueue
}

func NewSerializer() *Serializer {
	return &Serializer{keys: make(map[int64]*keyQueue)}
}

// RunExclusive runs fn while holding the exclusion for key. Callers queued on
// the same key are served strictly in arrival order; the key is released when
// fn returns, whether it succeeded or failed. A caller still waiting in the
// queue is abandoned when ctx is done; once fn has been granted the key it
// always runs to completion.
func (s *Serializer) RunExclusive(ctx context.Context, key int64, fn func() error) error {
	if err := s.acquire(ctx, key); err != nil {
		return err
	}
	defer s.release(key)
	return fn()
}

func (s *Serializer) acquire(ctx context.Context, key int64) error {
	s.mu.Lock()
	q, ok := s.keys[key]
	if !ok {
		q = &keyQueue{}
		s.keys[key] = q
	}
	if !q.active {
		q.active = true
		s.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	q.waiters = append(q.waiters, ch)
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for i, w := range q.waiters {
			if w == ch {
				q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
				s.mu.Unlock()
				return ctx.Err()
			}
		}
		s.mu.Unlock()
		// The grant raced the cancellation: we were already dequeued, so
		// the critical section proceeds.
		return nil
	}
}

func (s *Serializer) release(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.keys[key]
	if len(q.waiters) > 0 {
		next := q.waiters[0]
		q.waiters = q.waiters[1:]
		close(next)
		return
	}
	// No one waiting: drop the entry so idle keys hold no resources.
	delete(s.keys, key)
}

// Pending reports how many operations are queued or running across all keys.
func (s *Serializer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.keys {
		if q.active {
			n++
		}
		n += len(q.waiters)
	}
	return n
}
