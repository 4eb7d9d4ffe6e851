package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MsgResponse = "RESPONSE"
	MsgChanges  = "CHANGES"
	MsgError    = "ERROR"
)

// ServerMessage это корневой объект, который сервер отправляет наблюдателю.
type ServerMessage struct {
	// Type тип сообщения: RESPONSE, CHANGES или ERROR.
	Type string `json:"type"`

	// Tick номер тика, на котором сообщение сформировано.
	Tick uint64 `json:"tick"`

	// Response ответ на действие клиента (только для RESPONSE).
	Response *Response `json:"response,omitempty"`

	// Changes изменения отслеживаемых компонентов за тик (только для CHANGES).
	Changes []ChangeSet `json:"changes,omitempty"`

	// Error текст ошибки разбора команды (только для ERROR).
	Error string `json:"error,omitempty"`
}

// Response - ровно один ответ на каждое обработанное действие.
type Response struct {
	// Entity ID сущности, которой адресован ответ.
	Entity string `json:"entity"`

	// Action действие, на которое отвечаем (STAT_INCREASE, MASTERY_LEVELUP, LEARN_SKILL, GM).
	Action string `json:"action"`

	// Success true, если действие применено.
	Success bool `json:"success"`

	// Reason причина отказа. Пусто при успехе.
	Reason string `json:"reason,omitempty"`

	// Target ID цели действия (мастерство, навык, шаблон).
	Target uint32 `json:"target,omitempty"`
}

// ChangeSet содержит только изменившиеся за тик компоненты одной сущности.
// Отсутствующее поле означает "не менялось".
type ChangeSet struct {
	Entity string `json:"entity"`
	Kind   string `json:"kind"`

	// Removed true, если сущность удалена из мира на этом тике.
	Removed bool `json:"removed,omitempty"`

	Position   *PositionView   `json:"position,omitempty"`
	Health     *PoolView       `json:"health,omitempty"`
	Mana       *PoolView       `json:"mana,omitempty"`
	Level      *LevelView      `json:"level,omitempty"`
	Experience *ExperienceView `json:"experience,omitempty"`
	SP         *uint32         `json:"sp,omitempty"`
	StatPoints *StatPointsView `json:"statPoints,omitempty"`
	Gold       *uint64         `json:"gold,omitempty"`
	Masteries  []MasteryView   `json:"masteries,omitempty"`
	Skills     []uint32        `json:"skills,omitempty"`
	Inventory  []ItemView      `json:"inventory,omitempty"`
	Dead       *bool           `json:"dead,omitempty"`
}

// PositionView - глобальные координаты и регион.
type PositionView struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Z       float32 `json:"z"`
	Region  uint16  `json:"region"`
	Heading uint16  `json:"heading"`
}

// PoolView - текущее и максимальное значение ресурса (HP, MP).
type PoolView struct {
	Current uint32 `json:"current"`
	Max     uint32 `json:"max"`
}

type LevelView struct {
	Current uint8 `json:"current"`
	Max     uint8 `json:"max"`
}

type ExperienceView struct {
	Exp   uint64 `json:"exp"`
	SPExp uint64 `json:"spExp"`
}

// StatPointsView - распределенные характеристики и остаток очков.
// Gained/Spent показывают, что именно произошло на этом тике.
type StatPointsView struct {
	Strength     uint16 `json:"str"`
	Intelligence uint16 `json:"int"`
	Remaining    uint16 `json:"remaining"`
	Gained       bool   `json:"gained,omitempty"`
	Spent        bool   `json:"spent,omitempty"`
}

type MasteryView struct {
	ID    uint32 `json:"id"`
	Level uint8  `json:"level"`
}

// ItemView представляет предмет в слоте инвентаря.
type ItemView struct {
	Slot    uint8  `json:"slot"`
	RefID   uint32 `json:"refId"`
	Upgrade uint8  `json:"upgrade,omitempty"`
	Amount  uint16 `json:"amount"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сущности, от имени которой выполняется действие.
	Token string `json:"token"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// StatIncreasePayload используется для STAT_INCREASE.
type StatIncreasePayload struct {
	Stat   string `json:"stat"`             // STR или INT
	Amount uint16 `json:"amount,omitempty"` // По умолчанию 1
}

// MasteryLevelUpPayload используется для MASTERY_LEVELUP.
type MasteryLevelUpPayload struct {
	Mastery uint32 `json:"mastery"`
	Amount  uint8  `json:"amount,omitempty"` // По умолчанию 1
}

// LearnSkillPayload используется для LEARN_SKILL.
type LearnSkillPayload struct {
	Skill uint32 `json:"skill"`
}

// GMPayload используется для административных команд (GM).
type GMPayload struct {
	// Command - SPAWN_MONSTER, KILL_MONSTER, MAKE_ITEM, TELEPORT.
	Command string `json:"command"`

	// RefID - шаблон монстра или предмета.
	RefID uint32 `json:"refId,omitempty"`

	// Amount - количество монстров или предметов.
	Amount uint8 `json:"amount,omitempty"`

	// Upgrade - улучшение создаваемого предмета.
	Upgrade uint8 `json:"upgrade,omitempty"`

	// Target - ID убиваемого монстра.
	Target string `json:"target,omitempty"`

	// Location - ID точки телепортации.
	Location uint16 `json:"location,omitempty"`
}
