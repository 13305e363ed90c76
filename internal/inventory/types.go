// Package inventory defines the surface through which the capture engine
// reads and mutates actor inventories. The engine never walks host data
// structures directly; everything goes through a Host implementation.
package inventory

import (
	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// ItemID identifies a concrete item form. The inventory layer does not
// interpret this value; the gem index maps it to capacity and fill state.
type ItemID string

// ExtraData mirrors the engine-attached metadata a stack can carry:
// ownership, and a soul level tagged onto gems filled outside this engine.
// Gems filled by this engine encode their fill state in the ItemID instead.
type ExtraData struct {
	Owner     string
	SoulLevel soul.Level
}

// Entry is one scanned inventory line: the owned count for an item and the
// first extra data record attached to it, if any.
type Entry struct {
	Count int
	Extra *ExtraData
}

// Predicate filters items during an inventory scan.
type Predicate func(ItemID) bool

// Host is the game-process surface the capture engine drives. Mutations are
// item-count granular; the engine composes them into higher-level swaps.
type Host interface {
	// ScanInventory returns the actor's holdings filtered by pred.
	ScanInventory(actor *models.Actor, pred Predicate) (map[ItemID]Entry, error)

	// AddItem grants count units of an item, attaching extra when non-nil.
	AddItem(actor *models.Actor, item ItemID, extra *ExtraData, count int) error

	// RemoveItem takes count units of an item. When extra is non-nil the
	// matching metadata record is consumed along with the units.
	RemoveItem(actor *models.Actor, item ItemID, count int, extra *ExtraData) error

	// RemainingSoulLevel reports how much soul a victim has left to take.
	// LevelNone means the victim has already been trapped (or never had one).
	RemainingSoulLevel(actor *models.Actor) (soul.Level, error)

	// MarkSoulTrapped flags a victim so later captures skip it.
	MarkSoulTrapped(actor *models.Actor) error

	// Player returns the player actor, or nil if unavailable. Used for soul
	// diversion.
	Player() *models.Actor
}
