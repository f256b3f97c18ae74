package actor

import (
	"fmt"
	"strconv"
	"strings"
)

const addPrefix = "add "

// Player holds the stats a script manipulates. A fresh run starts at zero.
type Player struct {
	HP     int `json:"hp"`
	Damage int `json:"damage"`
}

// StatSpec is either an absolute value or an increment ("add N").
type StatSpec struct {
	Value int
	Add   bool
}

// ParseStatSpec parses "N" or "add N". Surrounding whitespace is ignored.
func ParseStatSpec(raw string) (StatSpec, error) {
	s := strings.TrimSpace(raw)
	add := false
	if strings.HasPrefix(s, addPrefix) {
		add = true
		s = strings.TrimSpace(s[len(addPrefix):])
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return StatSpec{}, fmt.Errorf("invalid stat %q: %w", raw, err)
	}
	return StatSpec{Value: n, Add: add}, nil
}

// Apply returns current+Value for an increment, Value otherwise.
func (s StatSpec) Apply(current int) int {
	if s.Add {
		return current + s.Value
	}
	return s.Value
}

// Set applies hp and damage specs independently.
func (p *Player) Set(hp, damage StatSpec) {
	p.HP = hp.Apply(p.HP)
	p.Damage = damage.Apply(p.Damage)
}

// SetRaw parses both specs before touching the player, so an invalid
// value leaves the stats unchanged.
func (p *Player) SetRaw(hp, damage string) error {
	hs, err := ParseStatSpec(hp)
	if err != nil {
		return fmt.Errorf("player hp: %w", err)
	}
	ds, err := ParseStatSpec(damage)
	if err != nil {
		return fmt.Errorf("player damage: %w", err)
	}
	p.Set(hs, ds)
	return nil
}

// TakeDamage reduces HP by n. Non-positive damage is ignored and
// HP cannot go below 0 from a hit.
func (p *Player) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	p.HP -= n
	if p.HP < 0 {
		p.HP = 0
	}
}

// IsDefeated returns true if the player's HP is 0 or less.
func (p *Player) IsDefeated() bool {
	return p.HP <= 0
}

// Reset zeroes both stats.
func (p *Player) Reset() {
	*p = Player{}
}
