package actor

import "testing"

func TestNewEnemy(t *testing.T) {
	t.Run("parses integer stats", func(t *testing.T) {
		e, err := NewEnemy(" 50", "10 ", "Goblin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.HP != 50 || e.Damage != 10 {
			t.Errorf("expected 50/10, got %d/%d", e.HP, e.Damage)
		}
		if e.Name != "Goblin" {
			t.Errorf("expected name 'Goblin', got '%s'", e.Name)
		}
	})

	t.Run("rejects non integer hp", func(t *testing.T) {
		if _, err := NewEnemy("many", "10", "Goblin"); err == nil {
			t.Error("expected error for non integer hp")
		}
	})

	t.Run("rejects non integer damage", func(t *testing.T) {
		if _, err := NewEnemy("5", "2.5", "Goblin"); err == nil {
			t.Error("expected error for non integer damage")
		}
	})
}

func TestEnemyTakeDamage(t *testing.T) {
	t.Run("reduces HP", func(t *testing.T) {
		e := &Enemy{HP: 10}
		e.TakeDamage(4)
		if e.HP != 6 {
			t.Errorf("expected HP 6, got %d", e.HP)
		}
	})

	t.Run("clamps to 0", func(t *testing.T) {
		e := &Enemy{HP: 3}
		e.TakeDamage(10)
		if e.HP != 0 {
			t.Errorf("expected HP 0, got %d", e.HP)
		}
		if !e.IsDefeated() {
			t.Error("expected enemy to be defeated")
		}
	})

	t.Run("ignores negative damage", func(t *testing.T) {
		e := &Enemy{HP: 3}
		e.TakeDamage(-5)
		if e.HP != 3 {
			t.Errorf("expected HP 3, got %d", e.HP)
		}
	})
}
