package heuristic

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/elektrokombinacija/stfocal/internal/core"
)

// Cache memoizes per-goal heuristic tables. The outer solver parallelizes
// planning at the per-agent-plan granularity, so several agents sharing a
// goal at the same moment would otherwise each pay for an independent
// backward-Dijkstra sweep. Cache collapses concurrent builds for the same
// goal into one via singleflight, and keeps completed tables around for
// the lifetime of the process. Tables are immutable and, like the Grid
// they're built from, safe to share across any number of callers.
type Cache struct {
	grid  *core.Grid
	group singleflight.Group

	mu     sync.RWMutex
	tables map[core.Loc2D]*Table
}

// NewCache creates a heuristic cache over a fixed, read-only grid.
func NewCache(g *core.Grid) *Cache {
	return &Cache{
		grid:   g,
		tables: make(map[core.Loc2D]*Table),
	}
}

// Get returns the heuristic table for goal, building it on first use.
func (c *Cache) Get(goal core.Loc2D) *Table {
	c.mu.RLock()
	if t, ok := c.tables[goal]; ok {
		c.mu.RUnlock()
		return t
	}
	c.mu.RUnlock()

	key := strconv.Itoa(int(goal))
	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		t, ok := c.tables[goal]
		c.mu.RUnlock()
		if ok {
			return t, nil // built by a call that finished after our first lookup
		}
		t = Build(c.grid, goal)
		c.mu.Lock()
		c.tables[goal] = t
		c.mu.Unlock()
		return t, nil
	})
	return v.(*Table)
}
