package server

import (
	"fmt"
	"sync"

	"github.com/duskveil-games/soultrap/internal/inventory"
	"github.com/duskveil-games/soultrap/internal/network"
	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// World holds the actors known to the capture service and their inventories.
// It is the in-memory stand-in for the game process that would normally host
// the engine.
type World struct {
	mu     sync.RWMutex
	actors map[string]*models.Actor
	host   *inventory.Memory
}

// NewWorld creates an empty world backed by an in-memory inventory host.
func NewWorld() *World {
	w := &World{actors: make(map[string]*models.Actor)}
	w.host = inventory.NewMemory(nil)
	return w
}

// Host returns the inventory host backing this world.
func (w *World) Host() inventory.Host {
	return &worldHost{w}
}

// RegisterActor creates or updates an actor from a registration payload.
func (w *World) RegisterActor(p *network.RegisterActorPayload) (*models.Actor, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("actor id must not be empty")
	}
	size := soul.None
	if p.Soul != "" {
		parsed, err := soul.ParseSize(p.Soul)
		if err != nil {
			return nil, err
		}
		size = parsed
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	actor, ok := w.actors[p.ID]
	if !ok {
		actor = &models.Actor{ID: p.ID}
		w.actors[p.ID] = actor
	}
	actor.Name = p.Name
	actor.Dead = p.Dead
	actor.Soul = size
	actor.PlayerRef = p.PlayerRef
	actor.Teammate = p.Teammate
	return actor, nil
}

// Actor returns a registered actor by ID.
func (w *World) Actor(id string) (*models.Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	actor, ok := w.actors[id]
	return actor, ok
}

// Grant gives an actor items, optionally attaching metadata.
func (w *World) Grant(p *network.GrantItemPayload) error {
	actor, ok := w.Actor(p.ActorID)
	if !ok {
		return fmt.Errorf("unknown actor %s", p.ActorID)
	}
	if p.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}

	var extra *inventory.ExtraData
	if p.Owner != "" || p.SoulTag != "" {
		extra = &inventory.ExtraData{Owner: p.Owner}
		if p.SoulTag != "" {
			tagged, err := soul.ParseSize(p.SoulTag)
			if err != nil {
				return err
			}
			if !tagged.IsWhite() && tagged != soul.Black {
				return fmt.Errorf("soul_tag must name a soul, got %q", p.SoulTag)
			}
			// Tagged black souls read back as grand; the gem's capacity
			// disambiguates on relocation.
			if tagged == soul.Black {
				tagged = soul.Grand
			}
			extra.SoulLevel = soul.Level(tagged)
		}
	}

	w.host.Grant(actor, inventory.ItemID(p.Item), p.Count, extra)
	return nil
}

// worldHost adapts World to inventory.Host, resolving the player actor
// dynamically since clients can register it at any time.
type worldHost struct {
	w *World
}

func (h *worldHost) ScanInventory(actor *models.Actor, pred inventory.Predicate) (map[inventory.ItemID]inventory.Entry, error) {
	return h.w.host.ScanInventory(actor, pred)
}

func (h *worldHost) AddItem(actor *models.Actor, item inventory.ItemID, extra *inventory.ExtraData, count int) error {
	return h.w.host.AddItem(actor, item, extra, count)
}

func (h *worldHost) RemoveItem(actor *models.Actor, item inventory.ItemID, count int, extra *inventory.ExtraData) error {
	return h.w.host.RemoveItem(actor, item, count, extra)
}

func (h *worldHost) RemainingSoulLevel(actor *models.Actor) (soul.Level, error) {
	return h.w.host.RemainingSoulLevel(actor)
}

func (h *worldHost) MarkSoulTrapped(actor *models.Actor) error {
	return h.w.host.MarkSoulTrapped(actor)
}

func (h *worldHost) Player() *models.Actor {
	h.w.mu.RLock()
	defer h.w.mu.RUnlock()
	for _, actor := range h.w.actors {
		if actor.PlayerRef {
			return actor
		}
	}
	return nil
}
