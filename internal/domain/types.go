package domain

// EntityKind - вид сущности, зашит в старшие биты EntityID
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindMonster
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "PLAYER"
	case KindMonster:
		return "MONSTER"
	default:
		return "UNKNOWN"
	}
}

// Race - раса персонажа. От неё зависят лимит мастерств и доступные навыки.
type Race uint8

const (
	RaceChinese Race = iota
	RaceEuropean
)

// SkillOriginUniversal - навык доступен любой расе
const SkillOriginUniversal uint8 = 3

// SkillOrigin возвращает код происхождения навыка, соответствующий расе
func (r Race) SkillOrigin() uint8 {
	if r == RaceEuropean {
		return 1
	}
	return 0
}

func (r Race) String() string {
	if r == RaceEuropean {
		return "european"
	}
	return "chinese"
}

// ParseRace понимает значения из снапшотов и конфигов
func ParseRace(s string) Race {
	if s == "european" || s == "EUROPEAN" {
		return RaceEuropean
	}
	return RaceChinese
}

// AgentState - текущее поведенческое состояние агента
type AgentState uint8

const (
	StateIdle AgentState = iota
	StateMoving
	StateDead
)

// StatAxis - характеристика, в которую вкладываются очки
type StatAxis uint8

const (
	StatStrength StatAxis = iota
	StatIntelligence
)

// FailureReason - причина отказа, которая уходит клиенту в ответе
type FailureReason uint8

const (
	ReasonNone FailureReason = iota
	ReasonUnknownTarget
	ReasonLimitReached
	ReasonInsufficientSP
	ReasonMissingPrerequisite
	ReasonAlreadyLearned
	ReasonRaceMismatch
	ReasonInsufficientPoints
	ReasonNotPermitted
	ReasonInventoryFull
)

var reasonToString = map[FailureReason]string{
	ReasonNone:                "NONE",
	ReasonUnknownTarget:       "UNKNOWN_TARGET",
	ReasonLimitReached:        "LIMIT_REACHED",
	ReasonInsufficientSP:      "INSUFFICIENT_SP",
	ReasonMissingPrerequisite: "MISSING_PREREQUISITE",
	ReasonAlreadyLearned:      "ALREADY_LEARNED",
	ReasonRaceMismatch:        "RACE_MISMATCH",
	ReasonInsufficientPoints:  "INSUFFICIENT_POINTS",
	ReasonNotPermitted:        "NOT_PERMITTED",
	ReasonInventoryFull:       "INVENTORY_FULL",
}

func (r FailureReason) String() string {
	if s, ok := reasonToString[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// Error позволяет возвращать причину как error там, где это удобно
func (r FailureReason) Error() string {
	return r.String()
}
