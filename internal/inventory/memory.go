package inventory

import (
	"fmt"
	"sync"

	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// holding tracks one item line for one actor. Extras holds the metadata
// records attached to units of this stack, oldest first.
type holding struct {
	count  int
	extras []*ExtraData
}

// Memory is an in-memory Host implementation backing the standalone service
// and the test suites. Real game hosts implement Host over their own
// containers instead.
type Memory struct {
	mu       sync.RWMutex
	player   *models.Actor
	holdings map[string]map[ItemID]*holding
}

// NewMemory creates an empty in-memory host. player may be nil when no
// player actor exists (diversion is then skipped).
func NewMemory(player *models.Actor) *Memory {
	return &Memory{
		player:   player,
		holdings: make(map[string]map[ItemID]*holding),
	}
}

// Grant seeds an actor with count units of an item, optionally attaching a
// metadata record. Used by service setup and tests.
func (m *Memory) Grant(actor *models.Actor, item ItemID, count int, extra *ExtraData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.holdingFor(actor.ID, item)
	h.count += count
	if extra != nil {
		h.extras = append(h.extras, extra)
	}
}

// Count returns how many units of an item the actor owns.
func (m *Memory) Count(actor *models.Actor, item ItemID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.holdings[actor.ID]
	if !ok {
		return 0
	}
	h, ok := items[item]
	if !ok {
		return 0
	}
	return h.count
}

// TotalCount returns the total number of units the actor owns across all
// items matching pred.
func (m *Memory) TotalCount(actor *models.Actor, pred Predicate) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for item, h := range m.holdings[actor.ID] {
		if pred == nil || pred(item) {
			total += h.count
		}
	}
	return total
}

// ScanInventory returns the actor's holdings filtered by pred.
func (m *Memory) ScanInventory(actor *models.Actor, pred Predicate) (map[ItemID]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[ItemID]Entry)
	for item, h := range m.holdings[actor.ID] {
		if h.count <= 0 {
			continue
		}
		if pred != nil && !pred(item) {
			continue
		}
		entry := Entry{Count: h.count}
		if len(h.extras) > 0 {
			entry.Extra = h.extras[0]
		}
		out[item] = entry
	}
	return out, nil
}

// AddItem grants count units of an item to the actor.
func (m *Memory) AddItem(actor *models.Actor, item ItemID, extra *ExtraData, count int) error {
	if count <= 0 {
		return fmt.Errorf("inventory: add count must be positive, got %d", count)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.holdingFor(actor.ID, item)
	h.count += count
	if extra != nil {
		h.extras = append(h.extras, extra)
	}
	return nil
}

// RemoveItem takes count units of an item from the actor. A non-nil extra
// consumes the matching metadata record as well.
func (m *Memory) RemoveItem(actor *models.Actor, item ItemID, count int, extra *ExtraData) error {
	if count <= 0 {
		return fmt.Errorf("inventory: remove count must be positive, got %d", count)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.holdings[actor.ID]
	if !ok {
		return fmt.Errorf("inventory: %s owns no items", actor.ID)
	}
	h, ok := items[item]
	if !ok || h.count < count {
		return fmt.Errorf("inventory: %s owns too few of %s", actor.ID, item)
	}
	h.count -= count
	if extra != nil {
		for i, e := range h.extras {
			if e == extra {
				h.extras = append(h.extras[:i], h.extras[i+1:]...)
				break
			}
		}
	}
	if h.count == 0 {
		delete(items, item)
	}
	return nil
}

// RemainingSoulLevel reports the victim's remaining soul. Trapped victims
// and soulless actors report LevelNone. Black souls report as grand; the
// black category lives on the actor itself.
func (m *Memory) RemainingSoulLevel(actor *models.Actor) (soul.Level, error) {
	if actor.SoulTrapped {
		return soul.LevelNone, nil
	}
	if actor.Soul == soul.Black {
		return soul.LevelGrand, nil
	}
	if !actor.Soul.IsWhite() {
		return soul.LevelNone, nil
	}
	return soul.Level(actor.Soul), nil
}

// MarkSoulTrapped flags the victim as already processed.
func (m *Memory) MarkSoulTrapped(actor *models.Actor) error {
	actor.SoulTrapped = true
	return nil
}

// Player returns the player actor.
func (m *Memory) Player() *models.Actor {
	return m.player
}

// holdingFor returns the holding line for (actorID, item), creating it if
// needed. Callers must hold the write lock.
func (m *Memory) holdingFor(actorID string, item ItemID) *holding {
	items, ok := m.holdings[actorID]
	if !ok {
		items = make(map[ItemID]*holding)
		m.holdings[actorID] = items
	}
	h, ok := items[item]
	if !ok {
		h = &holding{}
		items[item] = h
	}
	return h
}
