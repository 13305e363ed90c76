package trap

import (
	"testing"

	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

func TestVictimQueueOrdering(t *testing.T) {
	first := &models.Actor{ID: "a", Name: "First", Soul: soul.Petty}
	second := &models.Actor{ID: "b", Name: "Second", Soul: soul.Petty}

	var q victimQueue
	q.Push(NewPrimary(first))
	q.Push(newDisplaced(soul.Grand))
	q.Push(newDisplaced(soul.Black))
	q.Push(NewPrimary(second))

	got := []Victim{q.Pop(), q.Pop(), q.Pop(), q.Pop()}

	if got[0].Size() != soul.Black {
		t.Errorf("first pop = %s, want black", got[0].Size())
	}
	if got[1].Size() != soul.Grand {
		t.Errorf("second pop = %s, want grand", got[1].Size())
	}
	// FIFO among equals: the petty souls come out in insertion order.
	if got[2].Actor() != first || got[3].Actor() != second {
		t.Errorf("petty souls popped out of insertion order: %v, %v", got[2], got[3])
	}
	if q.Len() != 0 {
		t.Errorf("queue length after draining = %d", q.Len())
	}
}

func TestVictimKinds(t *testing.T) {
	actor := &models.Actor{ID: "a", Name: "Mage", Soul: soul.Black}

	if k := NewPrimary(actor).Kind(); k != BlackSoul {
		t.Errorf("black-souled primary kind = %v", k)
	}
	if k := newDisplaced(soul.Common).Kind(); k != FullSoul {
		t.Errorf("displaced white soul kind = %v", k)
	}
	if k := newSplit(actor, soul.Lesser).Kind(); k != SplitDerived {
		t.Errorf("split soul kind = %v", k)
	}
}

func TestVictimPrimaryFlag(t *testing.T) {
	actor := &models.Actor{ID: "a", Name: "Wolf", Soul: soul.Common}

	if !NewPrimary(actor).IsPrimary() {
		t.Error("primary victim not primary")
	}
	// Split parts still belong to the slain actor.
	if !newSplit(actor, soul.Lesser).IsPrimary() {
		t.Error("split part of the primary soul not primary")
	}
	if newDisplaced(soul.Common).IsPrimary() {
		t.Error("displaced soul reported as primary")
	}
}
