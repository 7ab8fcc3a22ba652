// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package labelcache caches measured text extents of marker labels so the
// overlays do not shape the same label on every frame.
package labelcache

import (
	"container/list"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum number of entries per shard.
	// 16 shards of 256 hold every label of the default 2,000 point run
	// at two font sizes.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Key identifies a label measured at one font size.
type Key struct {
	Label string
	Size  float64
}

// Extent is the measured size of a label in pixels.
type Extent struct {
	W, H float64
}

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Cache is a sharded LRU cache of label extents. It is safe for concurrent
// use.
type Cache struct {
	shards   [ShardCount]*shard
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard struct {
	mu      sync.Mutex
	entries map[Key]*list.Element
	lru     *list.List // front is most recently used
}

type entry struct {
	key    Key
	extent Extent
}

// New creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard{
			entries: make(map[Key]*list.Element),
			lru:     list.New(),
		}
	}
	return c
}

// hashKey computes the FNV-1a hash of the label and the size bits.
func hashKey(k Key) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.Label)) // fnv.Write never returns an error
	bits := math.Float64bits(k.Size)
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(bits >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func (c *Cache) shardFor(k Key) *shard {
	return c.shards[hashKey(k)&shardMask]
}

// Get returns the cached extent for k.
func (c *Cache) Get(k Key) (Extent, bool) {
	s := c.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[k]
	if !ok {
		c.misses.Add(1)
		return Extent{}, false
	}
	s.lru.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*entry).extent, true
}

// Measure returns the cached extent for k, calling measure on a miss and
// storing the result. measure runs with the shard lock held.
func (c *Cache) Measure(k Key, measure func() Extent) Extent {
	s := c.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[k]; ok {
		s.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry).extent
	}
	c.misses.Add(1)

	ext := measure()
	c.insert(s, k, ext)
	return ext
}

// Set stores the extent for k, evicting the least recently used entry of
// the shard when it is full.
func (c *Cache) Set(k Key, ext Extent) {
	s := c.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[k]; ok {
		el.Value.(*entry).extent = ext
		s.lru.MoveToFront(el)
		return
	}
	c.insert(s, k, ext)
}

// insert adds a new entry. The shard lock must be held.
func (c *Cache) insert(s *shard, k Key, ext Extent) {
	for s.lru.Len() >= c.capacity {
		oldest := s.lru.Back()
		if oldest == nil {
			break
		}
		s.lru.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry).key)
		c.evictions.Add(1)
	}
	s.entries[k] = s.lru.PushFront(&entry{key: k, extent: ext})
}

// Len returns the number of entries across all shards.
func (c *Cache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Clear removes all entries. Statistics are kept.
func (c *Cache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[Key]*list.Element)
		s.lru.Init()
		s.mu.Unlock()
	}
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   rate,
	}
}
