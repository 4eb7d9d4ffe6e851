package systems

import (
	"math"

	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Все операции прогрессии атомарны: проверки идут до любой мутации,
// отказ оставляет состояние нетронутым.

// SpendPoints вкладывает n очков в характеристику
func SpendPoints(e *domain.Entity, axis domain.StatAxis, n uint16) bool {
	if e.Stats == nil || !e.Stats.Spend(axis, n) {
		return false
	}
	e.Touch(domain.CompStatPoints)
	return true
}

// GainPoints начисляет свободные очки характеристик
func GainPoints(e *domain.Entity, n uint16) {
	if e.Stats == nil || n == 0 {
		return
	}
	e.Stats.Gain(n)
	e.Touch(domain.CompStatPoints)
}

// LevelMastery поднимает мастерство id на amount уровней.
// Порядок проверок: неизвестное мастерство, лимит, SP.
func LevelMastery(e *domain.Entity, data *worlddata.Registry, game config.GameConfig, id uint32, amount uint8) domain.FailureReason {
	if e.Masteries == nil || e.SP == nil || e.Level == nil {
		return domain.ReasonUnknownTarget
	}
	if _, ok := data.Masteries().Find(id); !ok {
		return domain.ReasonUnknownTarget
	}
	if amount == 0 {
		amount = 1
	}

	current, _ := e.Masteries.LevelOf(id)
	limit := uint32(e.Level.Current) * uint32(game.PerLevelCap(e.Race))
	total := uint32(e.Masteries.Total())
	if total >= limit || total+uint32(amount) > limit {
		return domain.ReasonLimitReached
	}
	// Уровень мастерства хранится в uint8
	if uint16(current)+uint16(amount) > math.MaxUint8 {
		return domain.ReasonLimitReached
	}

	required, _ := data.Levels().MasterySPForLevel(current)
	if e.SP.Current < required {
		return domain.ReasonInsufficientSP
	}

	if required > 0 {
		e.SP.Spend(required)
		e.Touch(domain.CompSP)
	}
	e.Masteries.LevelBy(id, amount)
	e.Touch(domain.CompMasteries)
	return domain.ReasonNone
}

// LearnSkill изучает навык id.
// Порядок проверок: неизвестный навык, уже изучен, раса, SP, мастерство, предыдущие навыки.
func LearnSkill(e *domain.Entity, data *worlddata.Registry, id uint32) domain.FailureReason {
	if e.Skills == nil || e.SP == nil {
		return domain.ReasonUnknownTarget
	}
	skill, ok := data.Skills().Find(id)
	if !ok {
		return domain.ReasonUnknownTarget
	}
	if e.Skills.Has(id) {
		return domain.ReasonAlreadyLearned
	}
	if skill.Race != domain.SkillOriginUniversal && skill.Race != e.Race.SkillOrigin() {
		return domain.ReasonRaceMismatch
	}
	if skill.SP > e.SP.Current {
		return domain.ReasonInsufficientSP
	}
	if skill.HasMastery() {
		if e.Masteries == nil {
			return domain.ReasonMissingPrerequisite
		}
		level, known := e.Masteries.LevelOf(skill.Mastery)
		if !known || skill.MasteryLevel > level {
			return domain.ReasonMissingPrerequisite
		}
	}
	if !e.Skills.HasAll(skill.Prerequisites) {
		return domain.ReasonMissingPrerequisite
	}

	e.SP.Spend(skill.SP)
	e.Skills.Learn(id)
	e.Touch(domain.CompSP | domain.CompSkills)
	return domain.ReasonNone
}

// IncreaseStats забирает из слота запрос на распределение очков
func IncreaseStats(ctx *Context) error {
	log := logger.Component("stat_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Input == nil || e.Stats == nil {
			return nil
		}
		req, ok := e.Input.Stats.Take()
		if !ok {
			return nil
		}
		if req.Amount == 0 {
			req.Amount = 1
		}

		reason := domain.ReasonNone
		if !SpendPoints(e, req.Axis, req.Amount) {
			reason = domain.ReasonInsufficientPoints
			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"requested": req.Amount,
				"remaining": e.Stats.Remaining,
			}).Debug("Stat increase rejected")
		}
		ctx.respond(e, domain.ActionStatIncrease, uint32(req.Axis), reason)
		return nil
	})
	return nil
}

// HandleMasteryLevelUp обрабатывает запросы на повышение мастерства
func HandleMasteryLevelUp(ctx *Context) error {
	log := logger.Component("mastery_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Input == nil {
			return nil
		}
		req, ok := e.Input.Mastery.Take()
		if !ok {
			return nil
		}

		reason := LevelMastery(e, ctx.Data, ctx.Game, req.Mastery, req.Amount)
		if reason != domain.ReasonNone {
			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"mastery":   req.Mastery,
				"reason":    reason.String(),
			}).Debug("Mastery level up rejected")
		}
		ctx.respond(e, domain.ActionMasteryLevelUp, req.Mastery, reason)
		return nil
	})
	return nil
}

// HandleLearnSkill обрабатывает запросы на изучение навыков
func HandleLearnSkill(ctx *Context) error {
	log := logger.Component("skill_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Input == nil {
			return nil
		}
		req, ok := e.Input.Skill.Take()
		if !ok {
			return nil
		}

		reason := LearnSkill(e, ctx.Data, req.Skill)
		if reason != domain.ReasonNone {
			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"skill":     req.Skill,
				"reason":    reason.String(),
			}).Debug("Skill learn rejected")
		}
		ctx.respond(e, domain.ActionLearnSkill, req.Skill, reason)
		return nil
	})
	return nil
}
