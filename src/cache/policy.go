package cache

import "time"

// FreshnessPolicy decides whether a cached value may be used without reloading.
type FreshnessPolicy struct {
	MaxAge time.Duration
}

// IsFresh reports whether a value of the given age is still fresh.
// A zero MaxAge means nothing is ever fresh.
func (p FreshnessPolicy) IsFresh(age time.Duration) bool {
	return age < p.MaxAge
}
