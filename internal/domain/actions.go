package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionStatIncrease
	ActionMasteryLevelUp
	ActionLearnSkill
	ActionGM
	// В будущем: ActionHotbar, ActionUseItem...
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"STAT_INCREASE":   ActionStatIncrease,
	"MASTERY_LEVELUP": ActionMasteryLevelUp,
	"LEARN_SKILL":     ActionLearnSkill,
	"GM":              ActionGM,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionStatIncrease:   "STAT_INCREASE",
	ActionMasteryLevelUp: "MASTERY_LEVELUP",
	ActionLearnSkill:     "LEARN_SKILL",
	ActionGM:             "GM",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// GMKind - подвид административной команды
type GMKind uint8

const (
	GMUnknown GMKind = iota
	GMSpawnMonster
	GMKillMonster
	GMMakeItem
	GMTeleport
)

var gmStringToKind = map[string]GMKind{
	"SPAWN_MONSTER": GMSpawnMonster,
	"KILL_MONSTER":  GMKillMonster,
	"MAKE_ITEM":     GMMakeItem,
	"TELEPORT":      GMTeleport,
}

var gmKindToString = map[GMKind]string{
	GMSpawnMonster: "SPAWN_MONSTER",
	GMKillMonster:  "KILL_MONSTER",
	GMMakeItem:     "MAKE_ITEM",
	GMTeleport:     "TELEPORT",
}

func ParseGMKind(s string) GMKind {
	if val, ok := gmStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return GMUnknown
}

func (k GMKind) String() string {
	if val, ok := gmKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}
