package models

import "github.com/duskveil-games/soultrap/pkg/soul"

// Actor represents an entity in the game world that can cast soul trap or be
// its victim. The capture engine only reads the fields below; everything
// else about an actor lives in the host process.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Life state. Captures require a living caster and a dead victim.
	Dead bool `json:"dead"`

	// Soul carried by the actor when it dies. None for soulless actors.
	Soul soul.Size `json:"soul"`

	// SoulTrapped is set once a capture succeeds so the same victim is not
	// processed twice.
	SoulTrapped bool `json:"soul_trapped"`

	// PlayerRef marks the player character; Teammate marks followers.
	// Both drive soul diversion and notification gating.
	PlayerRef bool `json:"player_ref"`
	Teammate  bool `json:"teammate"`
}

// IsDead reports whether the actor is dead.
func (a *Actor) IsDead() bool {
	return a.Dead
}

// IsPlayerRef reports whether this actor is the player character.
func (a *Actor) IsPlayerRef() bool {
	return a.PlayerRef
}

// IsPlayerTeammate reports whether this actor is a follower of the player.
func (a *Actor) IsPlayerTeammate() bool {
	return a.Teammate
}
