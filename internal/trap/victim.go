package trap

import (
	"container/heap"
	"fmt"

	"github.com/duskveil-games/soultrap/pkg/models"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

// Kind classifies a queued victim for strategy dispatch. The set is closed:
// every victim is exactly one of these.
type Kind uint8

const (
	// FullSoul is an undiminished white soul (primary or displaced).
	FullSoul Kind = iota
	// SplitDerived is a white soul produced by splitting; it may only
	// occupy a gem of exactly its own size.
	SplitDerived
	// BlackSoul goes through the dedicated black gem path.
	BlackSoul
)

// Victim is one pending capture request: the source actor (nil for souls
// displaced out of gems), the soul size to place, and whether this is the
// soul of the originally slain actor.
type Victim struct {
	actor *models.Actor
	size  soul.Size
	kind  Kind
}

// NewPrimary creates the victim for the originally slain actor.
func NewPrimary(actor *models.Actor) Victim {
	return Victim{
		actor: actor,
		size:  actor.Soul,
		kind:  kindForSize(actor.Soul),
	}
}

// newDisplaced creates a victim for a soul evicted from a gem. Displaced
// souls have no actor; their origin is long gone.
func newDisplaced(size soul.Size) Victim {
	return Victim{size: size, kind: kindForSize(size)}
}

// newSplit creates a victim for one half of a split soul. The actor carries
// over so the part still counts as the slain actor's soul.
func newSplit(actor *models.Actor, size soul.Size) Victim {
	return Victim{actor: actor, size: size, kind: SplitDerived}
}

func kindForSize(size soul.Size) Kind {
	if size == soul.Black {
		return BlackSoul
	}
	return FullSoul
}

// Actor returns the source actor, or nil for displaced souls.
func (v Victim) Actor() *models.Actor { return v.actor }

// Size returns the soul size to place.
func (v Victim) Size() soul.Size { return v.size }

// Kind returns the strategy category.
func (v Victim) Kind() Kind { return v.kind }

// IsPrimary reports whether this soul came from the slain actor itself.
// Split parts keep their actor and stay primary; displaced souls do not.
func (v Victim) IsPrimary() bool { return v.actor != nil }

// String formats the victim for logs.
func (v Victim) String() string {
	name := "(displaced)"
	if v.actor != nil {
		name = v.actor.Name
	}
	return fmt.Sprintf("%s soul from %s", v.size, name)
}

// queuedVictim pairs a victim with its insertion sequence number so that
// equal-sized victims come out in insertion order.
type queuedVictim struct {
	Victim
	seq uint64
}

// victimHeap implements a max-heap of victims ordered by soul size.
// Larger souls are placed first so they get first pick of the gems.
type victimHeap []queuedVictim

func (h victimHeap) Len() int {
	return len(h)
}

func (h victimHeap) Less(i, j int) bool {
	// Larger soul = higher priority; FIFO among equals.
	if h[i].size != h[j].size {
		return h[i].size > h[j].size
	}
	return h[i].seq < h[j].seq
}

func (h victimHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *victimHeap) Push(x any) {
	*h = append(*h, x.(queuedVictim))
}

func (h *victimHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	old[n-1] = queuedVictim{} // Avoid holding the actor pointer
	*h = old[0 : n-1]
	return v
}

// victimQueue is the per-call queue of pending capture requests.
type victimQueue struct {
	h   victimHeap
	seq uint64
}

// Push enqueues a victim.
func (q *victimQueue) Push(v Victim) {
	q.seq++
	heap.Push(&q.h, queuedVictim{Victim: v, seq: q.seq})
}

// Pop removes and returns the highest-priority victim. The queue must be
// non-empty.
func (q *victimQueue) Pop() Victim {
	return heap.Pop(&q.h).(queuedVictim).Victim
}

// Len returns the number of pending victims.
func (q *victimQueue) Len() int {
	return len(q.h)
}
