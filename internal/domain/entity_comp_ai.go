package domain

import "time"

// GoalKind - что агент пытается сделать
type GoalKind uint8

const (
	GoalNone GoalKind = iota
	GoalMoveTo
	GoalAttack
)

func (k GoalKind) String() string {
	switch k {
	case GoalMoveTo:
		return "MOVE_TO"
	case GoalAttack:
		return "ATTACK"
	default:
		return "NONE"
	}
}

// AgentGoal - текущая цель агента
type AgentGoal struct {
	Kind   GoalKind `json:"kind"`
	Target Vec3     `json:"target"`
	Entity EntityID `json:"entity,omitempty"`
}

func (g *AgentGoal) IsNone() bool {
	return g.Kind == GoalNone
}

func (g *AgentGoal) MoveTo(loc Vec3) {
	g.Kind = GoalMoveTo
	g.Target = loc
	g.Entity = NilEntityID
}

func (g *AgentGoal) Clear() {
	*g = AgentGoal{}
}

// RandomStroll - монстр бродит вокруг точки появления
type RandomStroll struct {
	Origin Vec3    `json:"origin"`
	Radius float32 `json:"radius"`
	Check  *Timer  `json:"check"`
}

func NewRandomStroll(origin Vec3, radius float32, recheck time.Duration) *RandomStroll {
	return &RandomStroll{Origin: origin, Radius: radius, Check: NewTimer(recheck)}
}

// Dead - маркер смерти. Таймер есть только у тех, кто должен исчезнуть.
type Dead struct {
	Despawn *Timer `json:"despawn,omitempty"`
}

// NewPlayerDead - игрок лежит, пока его не воскресят
func NewPlayerDead() *Dead {
	return &Dead{}
}

// NewMonsterDead - монстр исчезает через delay
func NewMonsterDead(delay time.Duration) *Dead {
	return &Dead{Despawn: NewTimer(delay)}
}

// Tick продвигает таймер исчезновения; true когда пора удалить сущность
func (d *Dead) Tick(dt time.Duration) bool {
	if d.Despawn == nil {
		return false
	}
	return d.Despawn.Tick(dt)
}

// MonsterInfo - данные шаблона монстра
type MonsterInfo struct {
	RefID     uint32 `json:"refId"`
	SpawnArea string `json:"spawnArea,omitempty"`
}

// PlayerInfo - данные учетной записи игрока
type PlayerInfo struct {
	CharacterID uint32 `json:"characterId"`
	User        string `json:"user"`
	GM          bool   `json:"gm"`
}
