package domain

import "encoding/json"

// InternalCommand - оптимизированная команда для движка.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Token   EntityID        // ID сущности (Actor)
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// StatIncrease - игрок вкладывает очки в характеристику
type StatIncrease struct {
	Axis   StatAxis
	Amount uint16
}

// MasteryLevelUp - запрос на повышение уровня мастерства
type MasteryLevelUp struct {
	Mastery uint32
	Amount  uint8
}

// SkillLearn - запрос на изучение навыка
type SkillLearn struct {
	Skill uint32
}

// GMCommand - административная команда от игрока с правами GM
type GMCommand struct {
	Kind     GMKind
	RefID    uint32
	Amount   uint8
	Upgrade  uint8
	Target   EntityID
	Location uint16
}
