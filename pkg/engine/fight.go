package engine

import (
	"context"

	"github.com/jwebster45206/txr-engine/pkg/actor"
	"github.com/jwebster45206/txr-engine/pkg/combat"
	"github.com/jwebster45206/txr-engine/pkg/script"
)

// fight runs a combat to completion. Invalid stats skip the statement;
// a lost fight returns false.
func (r *run) fight(ctx context.Context, stmt script.Statement, cmd script.Fight) (bool, error) {
	enemy, err := actor.NewEnemy(cmd.HP, cmd.Damage, cmd.Name)
	if err != nil {
		r.out.Error(r.tr.T("invalid_fight", stmt.Text))
		r.logger.Warn("Skipping fight statement", "line", stmt.Line, "error", err)
		return true, nil
	}

	f := combat.NewFight(r.Player, enemy)
	r.out.Title(r.tr.T("fight_title", r.tr.Upper(enemy.Name)))
	r.out.Line(r.tr.T("enemy_stats", enemy.Damage, enemy.HP))
	r.out.Line(r.tr.T("player_stats", r.Player.Damage, r.Player.HP))

	for !f.Over() {
		r.out.Title(r.tr.T("player_turn"))
		r.out.Line(r.tr.T("attack_option"))
		r.out.Line(r.tr.T("block_option"))

		input, err := r.read(ctx, r.tr.T("choose_action"))
		if err != nil {
			f.Disengage()
			r.logger.Info("Fight abandoned", "enemy", enemy.Name, "round", f.Round)
			return false, err
		}

		round := f.Resolve(combat.ParseAction(input), r.dice.EnemyAction())
		r.report(enemy, round)
	}

	r.logger.Debug("Fight over", "enemy", enemy.Name, "state", f.State, "rounds", f.Round)
	if f.State == combat.Won {
		r.out.Title(r.tr.T("victory", enemy.Name))
		return true, nil
	}
	r.out.Title(r.tr.T("defeat", enemy.Name))
	return false, nil
}

func (r *run) report(enemy *actor.Enemy, round combat.Round) {
	switch {
	case round.Player == combat.Attack && round.Enemy == combat.Attack:
		r.out.Line(r.tr.T("player_attacked", enemy.Name, round.DamageDealt))
		r.out.Line(r.tr.T("enemy_attacked", enemy.Name, round.DamageTaken))
	case round.Player == combat.Attack:
		r.out.Line(r.tr.T("blocked_attack", enemy.Name))
		r.out.Line(r.tr.T("damage_dealt", round.DamageDealt))
	case round.Enemy == combat.Attack:
		r.out.Line(r.tr.T("enemy_blocked", enemy.Name))
		r.out.Line(r.tr.T("damage_taken", round.DamageTaken))
	default:
		r.out.Line(r.tr.T("both_blocked"))
	}
	r.out.Line(r.tr.T("enemy_hp", enemy.Name, enemy.HP))
	r.out.Line(r.tr.T("player_hp", r.Player.HP))
}
