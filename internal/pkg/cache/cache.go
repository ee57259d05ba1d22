// Package cache is a small TTL cache used for role lookups and dashboard
// snapshots. Entries are invalidated by age, or explicitly via Evict and Purge.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultSize = 1024

type TTL[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

func NewTTL[K comparable, V any](size int, ttl time.Duration) *TTL[K, V] {
	if size <= 0 {
		size = defaultSize
	}
	return &TTL[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

func (c *TTL[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *TTL[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

func (c *TTL[K, V]) Evict(key K) {
	c.lru.Remove(key)
}

func (c *TTL[K, V]) Purge() {
	c.lru.Purge()
}
