package domain

import (
	"strings"
	"sync/atomic"
)

// Component - бит вида компонента. Используется в маске изменений
// и в декларациях доступа систем.
type Component uint32

const (
	CompPosition Component = 1 << iota
	CompHealth
	CompMana
	CompLevel
	CompExperience
	CompSP
	CompStatPoints
	CompGold
	CompMasteries
	CompSkills
	CompInventory
	CompGoal
	CompStroll
	CompDead
	CompInput
	CompDamage
	CompState
	CompRace
)

// TrackedComponents - изменения этих компонентов видят наблюдатели
const TrackedComponents = CompPosition | CompHealth | CompMana | CompLevel |
	CompExperience | CompSP | CompStatPoints | CompGold | CompMasteries |
	CompSkills | CompInventory | CompDead

var componentNames = []string{
	"position", "health", "mana", "level", "experience", "sp", "stat_points",
	"gold", "masteries", "skills", "inventory", "goal", "stroll", "dead",
	"input", "damage", "state", "race",
}

func (c Component) Has(other Component) bool {
	return c&other == other
}

// String перечисляет имена всех взведенных битов
func (c Component) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for i, name := range componentNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Entity - агрегат: компонент присутствует, если указатель не nil
type Entity struct {
	ID    EntityID   `json:"id"`
	Kind  EntityKind `json:"kind"`
	Name  string     `json:"name"`
	State AgentState `json:"state"`
	Race  Race       `json:"race"`

	Pos       *Position         `json:"pos,omitempty"`
	Health    *Pool             `json:"health,omitempty"`
	Mana      *Pool             `json:"mana,omitempty"`
	Level     *Leveled          `json:"level,omitempty"`
	Exp       *Experienced      `json:"exp,omitempty"`
	SP        *SkillPoints      `json:"sp,omitempty"`
	Stats     *StatPoints       `json:"stats,omitempty"`
	Masteries *MasteryKnowledge `json:"-"`
	Skills    *SkillBook        `json:"-"`
	Gold      *GoldPouch        `json:"gold,omitempty"`
	Inventory *Inventory        `json:"inventory,omitempty"`
	Goal      *AgentGoal        `json:"goal,omitempty"`
	Stroll    *RandomStroll     `json:"stroll,omitempty"`
	Dead      *Dead             `json:"dead,omitempty"`
	Damage    *DamageLedger     `json:"damage,omitempty"`
	Input     *PlayerInput      `json:"-"`

	Monster *MonsterInfo `json:"monster,omitempty"`
	Player  *PlayerInfo  `json:"player,omitempty"`

	changed atomic.Uint32
}

// Touch помечает компоненты измененными на этом тике
func (e *Entity) Touch(c Component) {
	e.changed.Or(uint32(c))
}

// Changes - маска без сброса
func (e *Entity) Changes() Component {
	return Component(e.changed.Load())
}

// TakeChanges возвращает маску и обнуляет ее
func (e *Entity) TakeChanges() Component {
	return Component(e.changed.Swap(0))
}

func (e *Entity) IsDead() bool {
	return e.Dead != nil
}

// Kill ставит маркер смерти и останавливает агента
func (e *Entity) Kill(marker *Dead) {
	e.Dead = marker
	e.State = StateDead
	if e.Goal != nil {
		e.Goal.Clear()
	}
	e.Touch(CompDead | CompState | CompGoal)
}

// Revive снимает маркер и восстанавливает ресурсы
func (e *Entity) Revive() {
	if e.Dead == nil {
		return
	}
	e.Dead = nil
	e.State = StateIdle
	c := CompDead | CompState
	if e.Health != nil {
		e.Health.Refill()
		c |= CompHealth
	}
	if e.Mana != nil {
		e.Mana.Refill()
		c |= CompMana
	}
	if e.Damage != nil {
		e.Damage.Clear()
	}
	e.Touch(c)
}
