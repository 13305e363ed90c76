package trap

import (
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// trapBlack places a black soul: first into an empty pure black gem, then
// into a dual gem, displacing whatever white soul sits there when
// displacement is allowed.
func (d *trapData) trapBlack() (bool, error) {
	ok, err := d.fillGem(d.trapper.index.Lookup(soul.CapBlack, soul.None), soul.None, soul.Black)
	if err != nil {
		return false, err
	}
	if ok {
		d.notifySuccess(SoulCaptured, d.victim)
		return true, nil
	}

	// With displacement the dual gem search covers contained souls up to
	// grand; without it only empty dual gems qualify. The bound is
	// exclusive.
	maxContained := soul.Petty
	if d.policy.AllowSoulDisplacement {
		maxContained = soul.Black
	}

	for contained := soul.None; contained < maxContained; contained++ {
		ok, err := d.fillGem(d.trapper.index.Lookup(soul.CapDual, contained), contained, soul.Black)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		if d.policy.AllowSoulRelocation && contained > soul.None {
			d.notifySuccess(SoulDisplaced, d.victim)
			d.victims.Push(newDisplaced(contained))
		} else {
			d.notifySuccess(SoulCaptured, d.victim)
		}
		return true, nil
	}

	return false, nil
}

// trapFull places an undiminished white soul.
//
// With relocation the search is best-fit: fit = capacity - contained, lower
// is better. Trying the most-filled gems of the smallest viable capacity
// first realizes that without enumerating every gem, because a more-filled
// gem at a larger capacity never beats one at the minimal viable capacity.
//
// Without relocation a displaced soul is gone for good, so the search
// instead minimizes the loss: evict the smallest contained soul available
// across all capacities before considering a bigger one.
func (d *trapData) trapFull() (bool, error) {
	// Dual gems join the search when partial filling opens them to every
	// white soul, or when the victim is grand and fills one completely.
	maxCapacity := soul.CapacityOf(d.victim.Size())
	if d.policy.AllowPartiallyFillingSoulGems || d.victim.Size() == soul.Grand {
		maxCapacity = soul.LastWhite
	}

	// Displacement may evict souls strictly smaller than the incoming one;
	// otherwise only empty gems are considered. Exclusive bound.
	maxContained := soul.Petty
	if d.policy.AllowSoulDisplacement {
		maxContained = d.victim.Size()
	}

	if d.policy.AllowSoulRelocation {
		for capacity := soul.CapacityOf(d.victim.Size()); capacity <= maxCapacity; capacity++ {
			for contained := soul.None; contained < maxContained; contained++ {
				ok, err := d.fillGem(d.trapper.index.Lookup(capacity, contained), contained, d.victim.Size())
				if err != nil {
					return false, err
				}
				if !ok {
					continue
				}

				if contained > soul.None {
					d.notifySuccess(SoulDisplaced, d.victim)
					d.victims.Push(newDisplaced(contained))
				} else {
					d.notifySuccess(SoulCaptured, d.victim)
				}
				return true, nil
			}
		}

		// Cross-category rescue: a dual gem holding a black soul can free
		// up if the black soul moves to an empty pure black gem. Handled
		// here instead of through the queue so black and white souls
		// cannot displace each other forever.
		if d.policy.AllowSoulDisplacement &&
			(d.policy.AllowPartiallyFillingSoulGems || d.victim.Size() == soul.Grand) {
			ok, err := d.displaceBlackFromDualGem()
			if err != nil {
				return false, err
			}
			if ok {
				d.notifySuccess(SoulDisplaced, d.victim)
				return true, nil
			}
		}

		return false, nil
	}

	for contained := soul.None; contained < maxContained; contained++ {
		for capacity := soul.CapacityOf(d.victim.Size()); capacity <= maxCapacity; capacity++ {
			ok, err := d.fillGem(d.trapper.index.Lookup(capacity, contained), contained, d.victim.Size())
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}

			// The displaced soul is not re-queued in this mode; evicting
			// the smallest soul first is what keeps the loss minimal.
			if contained > soul.None {
				d.notifySuccess(SoulDisplaced, d.victim)
			} else {
				d.notifySuccess(SoulCaptured, d.victim)
			}
			return true, nil
		}
	}

	return false, nil
}

// displaceBlackFromDualGem finds a dual gem holding a black soul, moves the
// black soul into an empty pure black gem, and fills the dual gem with the
// current white victim.
func (d *trapData) displaceBlackFromDualGem() (bool, error) {
	found, err := d.findFirstOwned(d.trapper.index.Lookup(soul.CapDual, soul.Black), soul.Black)
	if err != nil || found == nil {
		return false, err
	}

	ok, err := d.fillGem(d.trapper.index.Lookup(soul.CapBlack, soul.None), soul.None, soul.Black)
	if err != nil || !ok {
		return false, err
	}

	toAdd, err := found.group.VariantFor(d.victim.Size())
	if err != nil {
		return false, err
	}
	if err := d.replaceGem(toAdd, found.item, found.extra); err != nil {
		return false, err
	}
	return true, nil
}

// trapShrunk shrinks a white soul to exactly fill a smaller gem, permanently
// losing the difference. Capacities are walked downward so the soul shrinks
// no further than it must; a displaced soul is always smaller than the gem's
// capacity while a shrunk soul fills it completely, so displacement is
// generally the cheaper trade and needs no special ordering here.
func (d *trapData) trapShrunk(allowDisplacement bool) (bool, error) {
	start := soul.CapacityOf(d.victim.Size()) - 1
	for capacity := start; capacity >= soul.FirstCapacity; capacity-- {
		// The shrunk soul's size varies per capacity, so the displacement
		// bound moves with the loop. Exclusive bound.
		maxContained := soul.Petty
		if allowDisplacement {
			maxContained = capacity.ToSize()
		}

		for contained := soul.None; contained < maxContained; contained++ {
			ok, err := d.fillGem(d.trapper.index.Lookup(capacity, contained), contained, capacity.ToSize())
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}

			d.notifySuccess(SoulShrunk, d.victim)
			if d.policy.AllowSoulRelocation && contained > soul.None {
				d.victims.Push(newDisplaced(contained))
			}
			return true, nil
		}
	}

	return false, nil
}

// trapSplit places a soul produced by splitting. Split souls must occupy a
// gem of exactly their own size; there is no capacity escalation.
func (d *trapData) trapSplit() (bool, error) {
	maxContained := soul.Petty
	if d.policy.AllowSoulDisplacement {
		maxContained = d.victim.Size()
	}

	capacity := soul.CapacityOf(d.victim.Size())
	for contained := soul.None; contained < maxContained; contained++ {
		ok, err := d.fillGem(d.trapper.index.Lookup(capacity, contained), contained, d.victim.Size())
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		d.notifySuccess(SoulSplit, d.victim)
		if d.policy.AllowSoulRelocation && contained > soul.None {
			d.victims.Push(newDisplaced(contained))
		}
		return true, nil
	}

	return false, nil
}

// splitSoul halves the current victim and queues both parts as non-primary
// victims of the same actor. Petty and black souls never reach this point.
func (d *trapData) splitSoul() {
	a, b, ok := d.victim.Size().Split()
	if !ok {
		return
	}
	d.victims.Push(newSplit(d.victim.Actor(), a))
	d.victims.Push(newSplit(d.victim.Actor(), b))
}
