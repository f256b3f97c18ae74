// Package combat resolves turn based fights between the player and a
// single enemy. It holds no I/O; callers acquire actions and report
// results.
package combat

import (
	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/txr-engine/pkg/actor"
)

type Action string

const (
	Attack Action = "attack"
	Block  Action = "block"
)

type State string

const (
	Active     State = "active"
	Won        State = "won"
	Lost       State = "lost"
	Disengaged State = "disengaged"
)

// Dice picks the enemy's action each round.
type Dice interface {
	EnemyAction() Action
}

// RollerDice rolls a d2 for the enemy: 1 attacks, 2 blocks.
type RollerDice struct {
	roller *d20.Roller
}

func NewRollerDice(roller *d20.Roller) *RollerDice {
	return &RollerDice{roller: roller}
}

// NewRandomDice returns dice seeded from the clock.
func NewRandomDice() *RollerDice {
	return NewRollerDice(d20.NewRandomRoller())
}

func (d *RollerDice) EnemyAction() Action {
	out, err := d.roller.Dice(1, 2).Roll()
	if err != nil || out.Value == 1 {
		return Attack
	}
	return Block
}

// Round is the outcome of one exchange.
type Round struct {
	Number      int
	Player      Action
	Enemy       Action
	DamageDealt int // to the enemy
	DamageTaken int // by the player
	State       State
}

// Fight is the state machine for a single combat.
type Fight struct {
	Player *actor.Player
	Enemy  *actor.Enemy
	Round  int
	State  State
}

// NewFight starts a fight. A player already at 0 HP loses at once, and
// an enemy already at 0 HP is beaten at once.
func NewFight(p *actor.Player, e *actor.Enemy) *Fight {
	f := &Fight{Player: p, Enemy: e, State: Active}
	switch {
	case p.IsDefeated():
		f.State = Lost
	case e.IsDefeated():
		f.State = Won
	}
	return f
}

// Over reports whether the fight reached a terminal state.
func (f *Fight) Over() bool {
	return f.State != Active
}

// Resolve applies both actions simultaneously and advances the state.
// Resolving a finished fight is a no-op.
func (f *Fight) Resolve(player, enemy Action) Round {
	if f.Over() {
		return Round{Number: f.Round, Player: player, Enemy: enemy, State: f.State}
	}
	f.Round++
	r := Round{Number: f.Round, Player: player, Enemy: enemy}

	switch {
	case player == Attack && enemy == Attack:
		r.DamageDealt = max(0, f.Player.Damage)
		r.DamageTaken = max(0, f.Enemy.Damage)
	case player == Attack:
		r.DamageDealt = max(0, floorHalf(f.Player.Damage))
	case enemy == Attack:
		r.DamageTaken = max(0, floorHalf(f.Enemy.Damage))
	}
	f.Enemy.TakeDamage(r.DamageDealt)
	f.Player.TakeDamage(r.DamageTaken)

	switch {
	case f.Enemy.IsDefeated():
		f.State = Won
	case f.Player.IsDefeated():
		f.State = Lost
	}
	r.State = f.State
	return r
}

// Disengage ends an active fight without a winner.
func (f *Fight) Disengage() {
	if f.State == Active {
		f.State = Disengaged
	}
}

// floorHalf divides by two rounding toward negative infinity.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// ParseAction maps the player's input to an action. Only "1" attacks.
func ParseAction(input string) Action {
	if input == "1" {
		return Attack
	}
	return Block
}
