package palette

import "github.com/Fepozopo/thermview/pkg/canvas"

// cacheDepth is the small recency buffer size spec.md §3 fixes at four.
const cacheDepth = 4

// Cache is a bounded recency buffer of up to four recently matched entries
// for one specific Palette, plus a write cursor. Replacement is strict
// round-robin once full: every palette hit (not cache hit) overwrites the
// cursor slot and advances it, regardless of which slot was actually
// queried. spec.md §9 flags this as probably suboptimal versus true LRU but
// specifies it as the behavior to preserve.
//
// A Cache is tied to the Palette it was built against; looking entries up
// against a different Palette is the caller's bug, same as the original's
// documented warning — nothing here detects misuse.
type Cache struct {
	palette *Palette
	entries []Entry
	cursor  int
}

// NewCache creates an empty cache bound to p.
func NewCache(p *Palette) *Cache {
	return &Cache{palette: p}
}

// FindColor looks up c, scanning the cache first, then the full palette.
// A palette hit is inserted into the cache (appended while not yet full,
// otherwise overwriting the cursor slot) and returns (entry, true). A miss
// anywhere returns (Entry{}, false).
func (c *Cache) FindColor(col canvas.Color) (Entry, bool) {
	for _, e := range c.entries {
		if e.Color == col {
			return e, true
		}
	}
	for _, e := range c.palette.Entries {
		if e.Color == col {
			c.insert(e)
			return e, true
		}
	}
	return Entry{}, false
}

// FindValue looks up the entry covering intensity v, cache first then
// palette, with the same insertion behavior as FindColor.
func (c *Cache) FindValue(v int) (Entry, bool) {
	for _, e := range c.entries {
		if e.Contains(v) {
			return e, true
		}
	}
	for _, e := range c.palette.Entries {
		if e.Contains(v) {
			c.insert(e)
			return e, true
		}
	}
	return Entry{}, false
}

func (c *Cache) insert(e Entry) {
	if len(c.entries) < cacheDepth {
		c.entries = append(c.entries, e)
		c.cursor = len(c.entries) % cacheDepth
		return
	}
	c.entries[c.cursor] = e
	c.cursor = (c.cursor + 1) % cacheDepth
}
