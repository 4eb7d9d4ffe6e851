package systems

import (
	"math"

	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ReceiveExperience начисляет опыт, поднимает уровни и переводит опыт навыков в SP.
// Переход на новый уровень списывает опыт прошлого уровня.
func ReceiveExperience(ctx *Context) error {
	log := logger.Component("experience_system")
	levels := ctx.Data.Levels()
	eachEvent(ctx.Experience.Items(), log, func(ev domain.ExperienceEvent) error {
		e := ctx.Store.Get(ev.Target)
		if e == nil || e.Exp == nil || e.Level == nil {
			return nil
		}

		from := e.Level.Current
		e.Exp.Exp = saturatingAdd64(e.Exp.Exp, ev.Exp)
		for e.Level.Current < math.MaxUint8 {
			need, ok := levels.ExpForLevel(e.Level.Current)
			if !ok || e.Exp.Exp < need {
				break
			}
			e.Exp.Exp -= need
			e.Level.Up()
			GainPoints(e, ctx.Game.StatPointsPerLevel)
		}
		if e.Level.Current != from {
			e.Touch(domain.CompLevel)
			ctx.LevelUps.Push(domain.LevelUpEvent{Entity: e.ID, From: from, To: e.Level.Current})
			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"from":      from,
				"to":        e.Level.Current,
			}).Info("Level up")
		}

		e.Exp.SPExp = saturatingAdd64(e.Exp.SPExp, ev.SPExp)
		if per := ctx.Game.SPExpPerSP; per > 0 && e.SP != nil && e.Exp.SPExp >= per {
			gained := e.Exp.SPExp / per
			e.Exp.SPExp %= per
			e.SP.Gain(uint32(min(gained, math.MaxUint32)))
			e.Touch(domain.CompSP)
		}
		e.Touch(domain.CompExperience)
		return nil
	})
	return nil
}

func saturatingAdd64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
