package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MaxHealth - детерминированная функция от характеристик и уровня
func MaxHealth(stats domain.Stats, level uint8) uint32 {
	return stats.MaxHealth(level)
}

// MaxMana - детерминированная функция от характеристик и уровня
func MaxMana(stats domain.Stats, level uint8) uint32 {
	return stats.MaxMana(level)
}

// recomputeMax пересчитывает максимумы. Текущие значения только прижимаются вниз.
func recomputeMax(e *domain.Entity) {
	if e.Stats == nil || e.Level == nil {
		return
	}
	if e.Health != nil {
		if limit := MaxHealth(e.Stats.Stats, e.Level.Current); limit != e.Health.Max {
			e.Health.SetMax(limit)
			e.Touch(domain.CompHealth)
		}
	}
	if e.Mana != nil {
		if limit := MaxMana(e.Stats.Stats, e.Level.Current); limit != e.Mana.Max {
			e.Mana.SetMax(limit)
			e.Touch(domain.CompMana)
		}
	}
}

// UpdateMaxOnStatChange - после распределения очков пересчитывает HP/MP
func UpdateMaxOnStatChange(ctx *Context) error {
	log := logger.Component("resource_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Stats == nil || !e.Stats.HasSpent() {
			return nil
		}
		recomputeMax(e)
		return nil
	})
	return nil
}

// ResetHealthManaOnLevel - новый уровень дает новый максимум и полное восстановление
func ResetHealthManaOnLevel(ctx *Context) error {
	log := logger.Component("resource_system")
	eachEvent(ctx.LevelUps.Items(), log, func(ev domain.LevelUpEvent) error {
		e := ctx.Store.Get(ev.Entity)
		if e == nil || e.IsDead() {
			return nil
		}
		recomputeMax(e)
		if e.Health != nil {
			e.Health.Refill()
			e.Touch(domain.CompHealth)
		}
		if e.Mana != nil {
			e.Mana.Refill()
			e.Touch(domain.CompMana)
		}
		log.WithFields(logrus.Fields{
			"entity_id": e.ID,
			"level":     ev.To,
		}).Debug("Pools refilled after level up")
		return nil
	})
	return nil
}
