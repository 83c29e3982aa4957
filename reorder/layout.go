package reorder

// LayoutEntry is the last measured position and extent of an item along the
// scroll axis, in content coordinates.
type LayoutEntry struct {
	Pos    int
	Extent int
}

// End returns the position just past the item.
func (e LayoutEntry) End() int {
	return e.Pos + e.Extent
}

// Center returns the item's midpoint.
func (e LayoutEntry) Center() int {
	return e.Pos + e.Extent/2
}

// LayoutLookup is read access to measured layouts.
type LayoutLookup interface {
	Get(key string) (LayoutEntry, bool)
}

// LayoutReporter is the write-only handle an item renderer uses to report its
// own layout.
type LayoutReporter func(pos, extent int)

// LayoutCache maps item keys to their last reported layout. Entries are never
// evicted between drags; an entry whose key left the data sequence is simply
// never consulted again.
type LayoutCache struct {
	entries map[string]LayoutEntry
}

// NewLayoutCache returns an empty layout cache.
func NewLayoutCache() *LayoutCache {
	return &LayoutCache{entries: make(map[string]LayoutEntry)}
}

// Set records the layout of key.
func (c *LayoutCache) Set(key string, pos, extent int) {
	if extent < 0 {
		extent = 0
	}
	c.entries[key] = LayoutEntry{Pos: pos, Extent: extent}
}

// Get returns the layout of key, if it has been measured.
func (c *LayoutCache) Get(key string) (LayoutEntry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Forget drops the entry of key.
func (c *LayoutCache) Forget(key string) {
	delete(c.entries, key)
}

// Len returns the number of measured keys.
func (c *LayoutCache) Len() int {
	return len(c.entries)
}

// Reporter returns a write-only handle bound to key.
func (c *LayoutCache) Reporter(key string) LayoutReporter {
	return func(pos, extent int) {
		c.Set(key, pos, extent)
	}
}
