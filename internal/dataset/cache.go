package dataset

import (
	"context"
	"sync"
)

// CachedLoader wraps a Loader with an in-memory LRU of parsed year tables,
// so repeated summary and map requests do not re-read the archives.
type CachedLoader struct {
	inner *Loader
	cache *lruCache
}

// NewCachedLoader creates a cache decorator around a loader. maxYears
// bounds how many parsed tables stay resident.
func NewCachedLoader(inner *Loader, maxYears int) *CachedLoader {
	return &CachedLoader{
		inner: inner,
		cache: newLRUCache(maxYears),
	}
}

// LoadYear returns the cached table for a year, reading it through the
// wrapped loader on a miss. Only successful loads are cached, so a year
// whose file shows up later can be retried.
func (c *CachedLoader) LoadYear(year int) (*Table, error) {
	if table, ok := c.cache.get(year); ok {
		return table, nil
	}
	table, err := c.inner.LoadYear(year)
	if err != nil {
		return nil, err
	}
	c.cache.put(year, table)
	return table, nil
}

// LoadYears behaves like Loader.LoadYears but reads each year through the
// cache.
func (c *CachedLoader) LoadYears(years []int) []*YearMonths {
	return collectYearMonths(c.LoadYear, c.inner.logger, c.inner.metrics, years)
}

// AvailableYears delegates to the wrapped loader; the directory scan is
// cheap and must see newly provisioned files.
func (c *CachedLoader) AvailableYears() ([]int, error) {
	return c.inner.AvailableYears()
}

// CheckReadiness delegates to the wrapped loader.
func (c *CachedLoader) CheckReadiness(ctx context.Context) error {
	return c.inner.CheckReadiness(ctx)
}

// lruCache is a simple thread-safe LRU of parsed year tables.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[int]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	year  int
	table *Table
	prev  *cacheEntry
	next  *cacheEntry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[int]*cacheEntry),
	}
}

func (c *lruCache) get(year int) (*Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[year]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.table, true
}

func (c *lruCache) put(year int, table *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[year]; ok {
		e.table = table
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{year: year, table: table}
	c.entries[year] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.year)
	c.remove(c.tail)
}
