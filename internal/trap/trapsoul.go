// Package trap implements soul capture: when a soul-trapped victim dies, its
// soul is placed into the best gem the collector carries, honoring the
// configured policy. A capture can cascade, since placing one soul can
// displace another and a soul that fits nowhere can be shrunk or split, so
// each call runs a queue of pending souls until it drains or the gems run
// out.
package trap

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/duskveil-games/soultrap/internal/config"
	"github.com/duskveil-games/soultrap/internal/inventory"
	"github.com/duskveil-games/soultrap/internal/notify"
	"github.com/duskveil-games/soultrap/internal/soulgem"
	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// Trapper owns the process-wide capture machinery: the immutable gem index,
// the host inventory surface, the policy, and the notification sink.
type Trapper struct {
	// mu serializes captures process-wide. Snapshot and replace would race
	// across concurrent calls otherwise; captures are rare enough that the
	// coarse lock costs nothing.
	mu sync.Mutex

	index  *soulgem.Index
	host   inventory.Host
	policy *config.TrapConfig
	sink   notify.Sink
}

// New creates a Trapper. The policy struct is read at the start of each
// call; the sink may be nil to discard notifications.
func New(index *soulgem.Index, host inventory.Host, policy *config.TrapConfig, sink notify.Sink) *Trapper {
	if sink == nil {
		sink = notify.Null{}
	}
	return &Trapper{
		index:  index,
		host:   host,
		policy: policy,
		sink:   sink,
	}
}

// Capture attempts to trap the victim's soul into the caster's gems.
//
// It returns (false, nil) when validation fails: nil actors, a dead caster,
// a living victim, or a victim already trapped. It returns a non-nil error
// when the gem index or a host call misbehaves mid-capture; inventory
// mutations already made are kept (each swap is individually consistent,
// there is no rollback). Otherwise it reports whether any soul of the
// victim's lineage was stored.
func (t *Trapper) Capture(caster, victim *models.Actor) (bool, error) {
	start := time.Now()

	if caster == nil {
		log.Printf("Capture rejected: caster is nil")
		return false, nil
	}
	if victim == nil {
		log.Printf("Capture rejected: victim is nil")
		return false, nil
	}
	if caster.IsDead() {
		log.Printf("Capture rejected: caster %s is dead", caster.Name)
		return false, nil
	}
	if !victim.IsDead() {
		log.Printf("Capture rejected: victim %s is not dead", victim.Name)
		return false, nil
	}

	// The trapped check happens under the lock: a concurrent call may be
	// trapping this very victim.
	t.mu.Lock()
	defer t.mu.Unlock()

	level, err := t.host.RemainingSoulLevel(victim)
	if err != nil {
		return false, fmt.Errorf("trap: soul level query for %s failed: %w", victim.ID, err)
	}
	if level == soul.LevelNone {
		log.Printf("Capture rejected: victim %s has no soul left", victim.Name)
		return false, nil
	}

	d := t.newTrapData(caster)
	d.victims.Push(NewPrimary(victim))

	success := false
	for d.victims.Len() > 0 {
		if err := d.nextVictim(); err != nil {
			return false, err
		}

		if d.status != hasGemsToFill {
			log.Printf("No fillable soul gems on %s, stopping", d.caster.Name)
			break
		}

		switch d.victim.Kind() {
		case BlackSoul:
			ok, err := d.trapBlack()
			if err != nil {
				return false, err
			}
			if ok {
				success = true
			}

		case SplitDerived:
			ok, err := d.trapSplit()
			if err != nil {
				return false, err
			}
			if ok {
				success = true
			} else {
				// A split soul that fits nowhere splits again rather than
				// being lost; petty halves fall off the end of the table.
				d.splitSoul()
			}

		case FullSoul:
			ok, err := d.trapFull()
			if err != nil {
				return false, err
			}
			if ok {
				success = true
				break
			}

			// Shrinking takes precedence; configuring both implicitly
			// turns splitting off.
			switch d.policy.SoulShrinkingTechnique {
			case config.ShrinkSoul:
				ok, err := d.trapShrunk(d.policy.AllowSoulDisplacement)
				if err != nil {
					return false, err
				}
				if ok {
					success = true
				}
			case config.SplitSoul:
				d.splitSoul()
			}
		}
	}

	if success {
		// Flag the victim so another caster's spell cannot take the same
		// soul twice.
		if err := t.host.MarkSoulTrapped(victim); err != nil {
			return false, fmt.Errorf("trap: flagging victim %s failed: %w", victim.ID, err)
		}
	} else {
		switch d.status {
		case allGemsFilled:
			d.notifyFailure(AllSoulGemsFilled)
		case noGemsOwned:
			d.notifyFailure(NoSoulGemsOwned)
		default:
			if d.policy.SoulShrinkingTechnique != config.ShrinkNone {
				d.notifyFailure(NoSuitableSoulGem)
			} else {
				d.notifyFailure(NoSoulGemLargeEnough)
			}
		}
	}

	log.Printf("Capture of %s by %s finished in %s (success=%t)",
		victim.Name, d.caster.Name, time.Since(start), success)

	return success, nil
}
