package trap

import (
	"fmt"
	"log"

	"github.com/duskveil-games/soultrap/internal/config"
	"github.com/duskveil-games/soultrap/internal/inventory"
	"github.com/duskveil-games/soultrap/pkg/models"
)

// inventoryStatus classifies the collector's gem holdings for the queue
// loop.
type inventoryStatus int

const (
	// hasGemsToFill means at least one owned gem can still take a soul.
	hasGemsToFill inventoryStatus = iota
	// noGemsOwned means the collector owns no soul gems at all.
	noGemsOwned
	// allGemsFilled means every owned gem is already at maximum fill.
	allGemsFilled
)

// maxNotifications bounds user notifications to one per capture call.
const maxNotifications = 1

// trapData carries the per-call state so the strategy functions don't need
// half a dozen arguments: the frozen policy, the (possibly diverted)
// collector, the victim queue, and the lazily rebuilt inventory snapshot.
// One trapData lives exactly as long as one Capture call.
type trapData struct {
	trapper *Trapper
	policy  config.TrapConfig

	caster *models.Actor
	victim Victim

	victims victimQueue

	inv    map[inventory.ItemID]inventory.Entry
	status inventoryStatus
	dirty  bool

	notifyCount     int
	statIncremented bool
}

// newTrapData freezes the policy, applies soul diversion, and prepares an
// empty queue. The inventory snapshot is built lazily on the first loop
// iteration.
func (t *Trapper) newTrapData(caster *models.Actor) *trapData {
	d := &trapData{
		trapper: t,
		policy:  *t.policy,
		caster:  caster,
		dirty:   true,
	}

	if d.policy.AllowSoulDiversion && d.policy.PerformSoulDiversionInEngine &&
		!caster.IsPlayerRef() && caster.IsPlayerTeammate() {
		if player := t.host.Player(); player != nil {
			d.caster = player
			log.Printf("Soul trap diverted from %s to player", caster.Name)
		} else {
			log.Printf("Warning: no player actor available for soul diversion")
		}
	}

	return d
}

// nextVictim pops the highest-priority victim and rebuilds the inventory
// snapshot if a replace dirtied it. Snapshots are only rebuilt here, never
// mid-strategy.
func (d *trapData) nextVictim() error {
	d.victim = d.victims.Pop()

	if d.dirty {
		if err := d.rebuildInventory(); err != nil {
			return err
		}
	}
	return nil
}

// rebuildInventory scans the collector's gems and classifies the holdings.
func (d *trapData) rebuildInventory() error {
	inv, err := d.trapper.host.ScanInventory(d.caster, d.trapper.index.IsSoulGem)
	if err != nil {
		return fmt.Errorf("trap: inventory scan for %s failed: %w", d.caster.ID, err)
	}
	d.inv = inv

	// Counts gem identities already at maximum fill. A dual gem holding a
	// white grand soul still counts as fillable since a black soul could
	// displace it; a gem it displaces into has to exist for that to pay
	// off, so stopping on all-filled loses nothing.
	filled := 0
	for item := range inv {
		group, contains, ok := d.trapper.index.Resolve(item)
		if !ok {
			continue
		}
		if contains == group.Capacity().MaxContained() {
			filled++
		}
	}

	switch {
	case len(inv) == 0:
		d.status = noGemsOwned
	case filled == len(inv):
		d.status = allGemsFilled
	default:
		d.status = hasGemsToFill
	}

	d.dirty = false
	return nil
}

// notify delivers one user message, bounded per call and gated by policy.
func (d *trapData) notify(message string) {
	if d.notifyCount < maxNotifications && d.policy.AllowNotifications {
		d.trapper.sink.Notify(message)
		d.notifyCount++
	}
}

// notifySuccess reports a successful capture. Only the primary soul of a
// player collector produces a notification and a stat increment, and each
// at most once per call.
func (d *trapData) notifySuccess(message SuccessMessage, victim Victim) {
	if !d.caster.IsPlayerRef() || !victim.IsPrimary() {
		return
	}
	d.notify(message.Text())
	if !d.statIncremented {
		d.trapper.sink.IncrementStat(d.caster, victim.Actor())
		d.statIncremented = true
	}
}

// notifyFailure reports a failed capture to a player collector.
func (d *trapData) notifyFailure(message FailureMessage) {
	if d.caster.IsPlayerRef() {
		d.notify(message.Text())
	}
}
