package actions

import (
	"errors"
	"strings"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/engine/handlers"
	"skrillax-agent/pkg/api"
)

// ErrNoInput - у сущности нет входных слотов (монстр)
var ErrNoInput = errors.New("entity does not accept player actions")

func HandleStatIncrease(ctx handlers.Context, p api.StatIncreasePayload) error {
	if ctx.Actor.Input == nil {
		return ErrNoInput
	}
	axis := domain.StatStrength
	if strings.EqualFold(p.Stat, "INT") {
		axis = domain.StatIntelligence
	}
	return ctx.Actor.Input.Stats.Put(domain.StatIncrease{Axis: axis, Amount: max(p.Amount, 1)})
}

func HandleMasteryLevelUp(ctx handlers.Context, p api.MasteryLevelUpPayload) error {
	if ctx.Actor.Input == nil {
		return ErrNoInput
	}
	return ctx.Actor.Input.Mastery.Put(domain.MasteryLevelUp{Mastery: p.Mastery, Amount: max(p.Amount, 1)})
}

func HandleLearnSkill(ctx handlers.Context, p api.LearnSkillPayload) error {
	if ctx.Actor.Input == nil {
		return ErrNoInput
	}
	return ctx.Actor.Input.Skill.Put(domain.SkillLearn{Skill: p.Skill})
}
