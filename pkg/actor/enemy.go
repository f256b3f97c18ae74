package actor

import (
	"fmt"
	"strconv"
	"strings"
)

// Enemy is the opponent of a single fight. It only lives as long as
// the fight that spawned it.
type Enemy struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	Damage int    `json:"damage"`
}

// NewEnemy builds an enemy from the raw fight arguments.
// hp and damage must be integer literals.
func NewEnemy(hp, damage, name string) (*Enemy, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hp))
	if err != nil {
		return nil, fmt.Errorf("enemy hp %q: %w", hp, err)
	}
	d, err := strconv.Atoi(strings.TrimSpace(damage))
	if err != nil {
		return nil, fmt.Errorf("enemy damage %q: %w", damage, err)
	}
	return &Enemy{Name: name, HP: h, Damage: d}, nil
}

// TakeDamage reduces the enemy's HP by the specified amount.
// HP cannot go below 0.
func (e *Enemy) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	e.HP -= n
	if e.HP < 0 {
		e.HP = 0
	}
}

// IsDefeated returns true if the enemy's HP is 0 or less.
func (e *Enemy) IsDefeated() bool {
	return e.HP <= 0
}
