package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleDamage применяет накопленные события урона.
// Смерть ставит маркер Dead и порождает DeathEvent.
func HandleDamage(ctx *Context) error {
	log := logger.Component("combat_system")
	eachEvent(ctx.Damage.Drain(), log, func(ev domain.DamageEvent) error {
		target := ctx.Store.Get(ev.Target)
		if target == nil || target.Health == nil || target.IsDead() {
			log.WithField("target_id", ev.Target).Debug("Damage ignored: no living target")
			return nil
		}

		dealt := min(ev.Amount, target.Health.Current)
		hpBefore := target.Health.Current
		died := target.Health.Damage(ev.Amount)
		target.Touch(domain.CompHealth)
		if target.Damage != nil {
			target.Damage.Record(ev.Source, dealt)
		}

		combatLog := log.WithFields(logrus.Fields{
			"attacker_id": ev.Source,
			"target_id":   target.ID,
			"target_name": target.Name,
			"hp_before":   hpBefore,
			"hp_after":    target.Health.Current,
		})
		if !died {
			combatLog.Debug("Damage resolved")
			return nil
		}

		var attackers []domain.DamageShare
		if target.Damage != nil {
			attackers = target.Damage.Shares()
		}
		target.Kill(deathMarker(ctx, target))
		ctx.Deaths.Push(domain.DeathEvent{Entity: target.ID, Killer: ev.Source, Attackers: attackers})
		combatLog.Info("Target died")
		return nil
	})
	return nil
}

// deathMarker: игрок лежит до воскрешения, монстр исчезает по таймеру
func deathMarker(ctx *Context, e *domain.Entity) *domain.Dead {
	if e.Kind == domain.KindPlayer {
		return domain.NewPlayerDead()
	}
	delay := ctx.Game.MonsterDespawn
	if delay <= 0 {
		delay = domain.DefaultMonsterDespawnDelay
	}
	return domain.NewMonsterDead(delay)
}

// DistributeExperience делит опыт за убитого монстра пропорционально нанесенному урону
func DistributeExperience(ctx *Context) error {
	log := logger.Component("experience_system")
	eachEvent(ctx.Deaths.Items(), log, func(death domain.DeathEvent) error {
		dead := ctx.Store.Get(death.Entity)
		if dead == nil || dead.Monster == nil {
			return nil
		}
		tpl, ok := ctx.Data.Characters().Find(dead.Monster.RefID)
		if !ok {
			log.WithField("ref_id", dead.Monster.RefID).Warn("Dead monster has no template, no experience given")
			return nil
		}

		var total uint64
		for _, share := range death.Attackers {
			total += share.Amount
		}
		if total == 0 {
			return nil
		}

		for _, share := range death.Attackers {
			attacker := ctx.Store.Get(share.Attacker)
			if attacker == nil || attacker.Exp == nil {
				continue
			}
			ev := domain.ExperienceEvent{
				Target: attacker.ID,
				Exp:    tpl.Exp * share.Amount / total,
				SPExp:  tpl.SPExp * share.Amount / total,
				From:   dead.ID,
			}
			if ev.Exp == 0 && ev.SPExp == 0 {
				continue
			}
			ctx.Experience.Push(ev)
		}
		return nil
	})
	return nil
}

// DropGold начисляет убийце золото по кривой уровня монстра
func DropGold(ctx *Context) error {
	log := logger.Component("loot_system")
	gold := ctx.Data.Gold()
	eachEvent(ctx.Deaths.Items(), log, func(death domain.DeathEvent) error {
		dead := ctx.Store.Get(death.Entity)
		if dead == nil || dead.Monster == nil || dead.Level == nil {
			return nil
		}
		killer := ctx.Store.Get(death.Killer)
		if killer == nil || killer.Gold == nil {
			return nil
		}
		lo, hi, ok := gold.GoldForLevel(dead.Level.Current)
		if !ok {
			return nil
		}
		amount := uint64(lo)
		if hi > lo {
			amount += uint64(ctx.Rng.Int63n(int64(hi-lo) + 1))
		}
		if amount == 0 {
			return nil
		}
		killer.Gold.Gain(amount)
		killer.Touch(domain.CompGold)
		log.WithFields(logrus.Fields{
			"killer_id": killer.ID,
			"monster":   dead.ID,
			"gold":      amount,
		}).Debug("Gold dropped")
		return nil
	})
	return nil
}
