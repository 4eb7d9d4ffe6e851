package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p StatIncreasePayload) Validate() error {
	switch strings.ToUpper(p.Stat) {
	case "STR", "INT":
	default:
		return errors.New("stat must be STR or INT")
	}
	return nil
}

func (p MasteryLevelUpPayload) Validate() error {
	if p.Mastery == 0 {
		return errors.New("mastery is required")
	}
	return nil
}

func (p LearnSkillPayload) Validate() error {
	if p.Skill == 0 {
		return errors.New("skill is required")
	}
	return nil
}

func (p GMPayload) Validate() error {
	switch strings.ToUpper(p.Command) {
	case "SPAWN_MONSTER", "MAKE_ITEM":
		if p.RefID == 0 {
			return errors.New("refId is required")
		}
	case "KILL_MONSTER":
		if p.Target == "" {
			return errors.New("target is required")
		}
	case "TELEPORT":
		if p.Location == 0 {
			return errors.New("location is required")
		}
	default:
		return errors.New("unknown gm command")
	}
	return nil
}
