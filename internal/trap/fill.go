package trap

import (
	"fmt"
	"log"

	"github.com/duskveil-games/soultrap/internal/inventory"
	"github.com/duskveil-games/soultrap/internal/soulgem"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// searchResult is one owned gem found for a (capacity, contained) shape:
// the family it belongs to, the concrete owned item, and the metadata record
// attached to it.
type searchResult struct {
	group *soulgem.Group
	item  inventory.ItemID
	count int
	extra *inventory.ExtraData
}

// findFirstOwned scans gem families in catalogue order and returns the first
// whose variant at the given fill state the collector owns. The catalogue
// order is the tie-break among gems of equal capacity and fill.
func (d *trapData) findFirstOwned(groups []*soulgem.Group, contains soul.Size) (*searchResult, error) {
	for _, group := range groups {
		item, err := group.VariantFor(contains)
		if err != nil {
			return nil, err
		}
		if entry, ok := d.inv[item]; ok && entry.Count > 0 {
			return &searchResult{
				group: group,
				item:  item,
				count: entry.Count,
				extra: entry.Extra,
			}, nil
		}
	}
	return nil, nil
}

// replaceGem swaps one gem identity for another in the collector's
// inventory: add the filled variant, remove the one it replaces. Policy side
// effects: a soul tagged on the removed gem's metadata re-enters the queue,
// and ownership can be carried over to the added gem.
//
// The add happens before the remove so a failure in between leaves a
// duplicate rather than a vanished gem; there is no rollback (best-effort,
// matching the host's own item operations).
func (d *trapData) replaceGem(toAdd, toRemove inventory.ItemID, extra *inventory.ExtraData) error {
	var oldExtra, newExtra *inventory.ExtraData

	if d.policy.AllowExtraSoulRelocation || d.policy.PreserveOwnership {
		oldExtra = extra
	}

	if d.policy.AllowExtraSoulRelocation && oldExtra != nil && oldExtra.SoulLevel != soul.LevelNone {
		size := oldExtra.SoulLevel.Size()

		// A grand-level soul tagged on a gem that can hold black souls is
		// assumed black; the original category is long gone.
		if oldExtra.SoulLevel == soul.LevelGrand && d.canHoldBlack(toRemove) {
			size = soul.Black
		}

		log.Printf("Relocating extra soul of size %s", size)
		d.victims.Push(newDisplaced(size))
	}

	if d.policy.PreserveOwnership && oldExtra != nil && oldExtra.Owner != "" {
		// Inherit ownership only; enchantment-level data stays behind.
		newExtra = &inventory.ExtraData{Owner: oldExtra.Owner}
	}

	host := d.trapper.host
	if err := host.AddItem(d.caster, toAdd, newExtra, 1); err != nil {
		return fmt.Errorf("trap: adding %s to %s: %w", toAdd, d.caster.ID, err)
	}
	if err := host.RemoveItem(d.caster, toRemove, 1, oldExtra); err != nil {
		return fmt.Errorf("trap: removing %s from %s: %w", toRemove, d.caster.ID, err)
	}

	d.dirty = true
	return nil
}

// canHoldBlack reports whether an item belongs to a gem family able to hold
// black souls.
func (d *trapData) canHoldBlack(item inventory.ItemID) bool {
	group, _, ok := d.trapper.index.Resolve(item)
	return ok && group.Capacity().HoldsBlack()
}

// fillGem finds the first owned gem among groups at the given fill state and
// swaps it for the same family's variant holding target. Returns false with
// no mutation when the collector owns none of them.
func (d *trapData) fillGem(groups []*soulgem.Group, contains, target soul.Size) (bool, error) {
	found, err := d.findFirstOwned(groups, contains)
	if err != nil || found == nil {
		return false, err
	}

	toAdd, err := found.group.VariantFor(target)
	if err != nil {
		return false, err
	}

	if err := d.replaceGem(toAdd, found.item, found.extra); err != nil {
		return false, err
	}
	return true, nil
}
