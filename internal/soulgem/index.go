// Package soulgem builds the read-only index of soul gem families used by
// the capture engine: (capacity, contained soul) -> ordered gem groups, and
// the reverse item -> fill-state lookup. The index is built once from the
// gem catalogue and is safe for concurrent reads.
package soulgem

import (
	"errors"
	"fmt"

	"github.com/duskveil-games/soultrap/internal/config"
	"github.com/duskveil-games/soultrap/internal/inventory"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// ErrUnknownVariant is returned when a gem group has no item identity for a
// requested fill level. A well-formed catalogue never triggers it; seeing it
// means the index and the search loops disagree, and continuing would
// corrupt inventory state.
var ErrUnknownVariant = errors.New("soulgem: no variant registered for fill level")

// Group is one soul gem family: a capacity plus one concrete item identity
// per fill state. Several families can share a capacity (visually distinct
// gems); the catalogue order decides which is searched first.
type Group struct {
	id       string
	name     string
	capacity soul.Capacity
	variants map[soul.Size]inventory.ItemID
}

// ID returns the catalogue identifier of the family.
func (g *Group) ID() string { return g.id }

// Name returns the display name of the family.
func (g *Group) Name() string { return g.name }

// Capacity returns what gems of this family can hold.
func (g *Group) Capacity() soul.Capacity { return g.capacity }

// VariantFor resolves the concrete item identity for a fill state.
func (g *Group) VariantFor(contains soul.Size) (inventory.ItemID, error) {
	item, ok := g.variants[contains]
	if !ok {
		return "", fmt.Errorf("%w: group %s, contains %s", ErrUnknownVariant, g.id, contains)
	}
	return item, nil
}

type shapeKey struct {
	capacity soul.Capacity
	contains soul.Size
}

type itemRef struct {
	group    *Group
	contains soul.Size
}

// Index is the process-wide gem lookup table. Immutable once built.
type Index struct {
	byShape map[shapeKey][]*Group
	byItem  map[inventory.ItemID]itemRef
}

// NewIndex builds the index from the gem catalogue, validating that every
// family carries exactly one identity per legal fill level of its capacity.
func NewIndex(cfg *config.SoulGemsConfig) (*Index, error) {
	idx := &Index{
		byShape: make(map[shapeKey][]*Group),
		byItem:  make(map[inventory.ItemID]itemRef),
	}

	seen := make(map[string]bool)
	for _, def := range cfg.Groups {
		if def.ID == "" {
			return nil, fmt.Errorf("soulgem: group with empty id")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("soulgem: duplicate group id %s", def.ID)
		}
		seen[def.ID] = true

		group := &Group{
			id:       def.ID,
			name:     def.Name,
			capacity: def.Capacity,
			variants: make(map[soul.Size]inventory.ItemID, len(def.Variants)),
		}

		for _, v := range def.Variants {
			if v.Item == "" {
				return nil, fmt.Errorf("soulgem: group %s has an empty item for contains=%s", def.ID, v.Contains)
			}
			if _, dup := group.variants[v.Contains]; dup {
				return nil, fmt.Errorf("soulgem: group %s defines contains=%s twice", def.ID, v.Contains)
			}
			item := inventory.ItemID(v.Item)
			if prev, dup := idx.byItem[item]; dup {
				return nil, fmt.Errorf("soulgem: item %s registered by both %s and %s", item, prev.group.id, def.ID)
			}
			group.variants[v.Contains] = item
			idx.byItem[item] = itemRef{group: group, contains: v.Contains}
		}

		levels, err := fillLevels(def.Capacity)
		if err != nil {
			return nil, fmt.Errorf("soulgem: group %s: %w", def.ID, err)
		}
		if len(group.variants) != len(levels) {
			return nil, fmt.Errorf("soulgem: group %s defines %d variants, capacity %s requires %d",
				def.ID, len(group.variants), def.Capacity, len(levels))
		}
		for _, lvl := range levels {
			if _, ok := group.variants[lvl]; !ok {
				return nil, fmt.Errorf("soulgem: group %s is missing the contains=%s variant", def.ID, lvl)
			}
			idx.byShape[shapeKey{def.Capacity, lvl}] = append(idx.byShape[shapeKey{def.Capacity, lvl}], group)
		}
	}

	return idx, nil
}

// fillLevels enumerates the legal fill states for a capacity: None..C for a
// white capacity C, the full white range plus Black for dual gems, and just
// empty-or-black for pure black gems.
func fillLevels(c soul.Capacity) ([]soul.Size, error) {
	switch {
	case c >= soul.CapPetty && c <= soul.CapGrand:
		levels := make([]soul.Size, 0, int(c)+1)
		for s := soul.None; s <= soul.Size(c); s++ {
			levels = append(levels, s)
		}
		return levels, nil
	case c == soul.CapDual:
		return []soul.Size{soul.None, soul.Petty, soul.Lesser, soul.Common, soul.Greater, soul.Grand, soul.Black}, nil
	case c == soul.CapBlack:
		return []soul.Size{soul.None, soul.Black}, nil
	default:
		return nil, fmt.Errorf("invalid capacity %s", c)
	}
}

// Lookup returns the gem families of the given capacity currently holding
// the given soul, in catalogue order. The result is empty when none are
// registered and must not be modified.
func (idx *Index) Lookup(capacity soul.Capacity, contains soul.Size) []*Group {
	return idx.byShape[shapeKey{capacity, contains}]
}

// Resolve maps a concrete item identity back to its family and fill state.
func (idx *Index) Resolve(item inventory.ItemID) (group *Group, contains soul.Size, ok bool) {
	ref, ok := idx.byItem[item]
	if !ok {
		return nil, soul.None, false
	}
	return ref.group, ref.contains, true
}

// IsSoulGem reports whether the item identity belongs to any gem family.
// Used as the scan predicate when building inventory snapshots.
func (idx *Index) IsSoulGem(item inventory.ItemID) bool {
	_, ok := idx.byItem[item]
	return ok
}
