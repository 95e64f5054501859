package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a key/value cache that reports how old a value is, leaving the
// decision of whether that age is acceptable to the caller.
type Store interface {
	Get(key string) (value any, age time.Duration, ok bool)
	Set(key string, value any)
	Delete(key string)
}

type entry struct {
	value    any
	storedAt time.Time
}

// TimedStore is a Store on top of go-cache. Entries are dropped after the
// retention period regardless of freshness.
type TimedStore struct {
	items *gocache.Cache
	now   func() time.Time
}

// NewTimedStore creates a store. A zero retention keeps entries until deleted.
// A nil clock uses time.Now.
func NewTimedStore(retention, cleanupInterval time.Duration, clock func() time.Time) *TimedStore {
	if retention <= 0 {
		retention = gocache.NoExpiration
	}
	if clock == nil {
		clock = time.Now
	}
	return &TimedStore{
		items: gocache.New(retention, cleanupInterval),
		now:   clock,
	}
}

func (s *TimedStore) Get(key string) (any, time.Duration, bool) {
	raw, found := s.items.Get(key)
	if !found {
		return nil, 0, false
	}
	e := raw.(entry)
	age := s.now().Sub(e.storedAt)
	if age < 0 {
		age = 0
	}
	return e.value, age, true
}

func (s *TimedStore) Set(key string, value any) {
	s.items.Set(key, entry{value: value, storedAt: s.now()}, gocache.DefaultExpiration)
}

func (s *TimedStore) Delete(key string) {
	s.items.Delete(key)
}
