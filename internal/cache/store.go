package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State is the lifecycle of a single query entry. An entry never returns to
// StateUninitialized once it has loaded; invalidation sends it back through
// StateLoading on the next access instead.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateSuccess
	StateError
)

// FetchFunc performs the underlying network call for a query key and returns
// the value together with the tags the result should be filed under.
type FetchFunc func(ctx context.Context) (any, []Tag, error)

type entry struct {
	state   State
	value   any
	err     error
	tags    []Tag
	stale   bool
	subs    int
	dispose *time.Timer
}

// Store is the in-memory normalized response cache: at most one in-flight
// fetch per key, results shared across subscribers, invalidation by tag
// intersection with refetch deferred to the next access. Session-scoped; no
// persistence.
type Store struct {
	grace time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

// NewStore creates a cache whose unsubscribed entries are disposed after the
// given grace period.
func NewStore(grace time.Duration) *Store {
	return &Store{
		grace:   grace,
		entries: make(map[string]*entry),
	}
}

// Key derives the deterministic cache key for an endpoint and its arguments.
func Key(endpoint string, args any) string {
	if args == nil {
		return endpoint + "()"
	}
	data, err := json.Marshal(args)
	if err != nil {
		// Unserializable args cannot share cache entries; make the key unique.
		return fmt.Sprintf("%s(!%p)", endpoint, &args)
	}
	return endpoint + "(" + string(data) + ")"
}

// Query returns the cached value for key, fetching it at most once no matter
// how many callers arrive concurrently. A stale or errored entry is refetched;
// a fresh one is served from memory.
func (s *Store) Query(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if e.state == StateSuccess && !e.stale {
		value := e.value
		s.scheduleDisposeLocked(key, e)
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		// Another flight may have landed between the check and this call.
		if e.state == StateSuccess && !e.stale {
			value := e.value
			s.mu.Unlock()
			return value, nil
		}
		e.state = StateLoading
		e.stale = false
		s.mu.Unlock()

		value, tags, err := fetch(ctx)

		s.mu.Lock()
		if err != nil {
			e.state = StateError
			e.err = err
			// Errors are not cached as results; the next access retries.
			e.stale = true
		} else {
			e.state = StateSuccess
			e.value = value
			e.err = nil
			e.tags = tags
		}
		s.scheduleDisposeLocked(key, e)
		s.mu.Unlock()
		return value, err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate marks every cached result sharing at least one tag as stale.
// Stale entries are refetched on their next access, never eagerly.
func (s *Store) Invalidate(tags []Tag) {
	if len(tags) == 0 {
		return
	}
	set := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		for _, t := range e.tags {
			if _, hit := set[t]; hit {
				e.stale = true
				break
			}
		}
	}
}

// Subscription pins a cache entry in memory until closed.
type Subscription struct {
	store *Store
	key   string
	once  sync.Once
}

// Close releases the subscription; when the last one for a key closes, the
// entry becomes eligible for disposal after the grace period.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		s := sub.store
		s.mu.Lock()
		defer s.mu.Unlock()
		e, ok := s.entries[sub.key]
		if !ok {
			return
		}
		if e.subs > 0 {
			e.subs--
		}
		s.scheduleDisposeLocked(sub.key, e)
	})
}

// Subscribe registers interest in a key, cancelling any pending disposal.
func (s *Store) Subscribe(key string) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.subs++
	if e.dispose != nil {
		e.dispose.Stop()
		e.dispose = nil
	}
	return &Subscription{store: s, key: key}
}

func (s *Store) scheduleDisposeLocked(key string, e *entry) {
	if e.subs > 0 || e.state == StateLoading {
		return
	}
	if e.dispose != nil {
		e.dispose.Stop()
	}
	e.dispose = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cur, ok := s.entries[key]
		if ok && cur.subs == 0 && cur.state != StateLoading {
			delete(s.entries, key)
		}
	})
}

// EntryState reports the lifecycle state and staleness of a key. A missing
// key is StateUninitialized.
func (s *Store) EntryState(key string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return StateUninitialized, false
	}
	return e.state, e.stale
}

// Len reports how many entries the store currently holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
