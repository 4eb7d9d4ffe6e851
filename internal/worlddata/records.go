package worlddata

import "skrillax-agent/internal/domain"

// Item - шаблон предмета
type Item struct {
	ID         uint32 `json:"id"`
	CodeName   string `json:"codeName"`
	Name       string `json:"name"`
	MaxStack   uint16 `json:"maxStack"`
	Upgradable bool   `json:"upgradable"`
}

// Character - шаблон монстра или NPC
type Character struct {
	ID       uint32 `json:"id"`
	CodeName string `json:"codeName"`
	Name     string `json:"name"`
	Level    uint8  `json:"level"`
	MaxHP    uint32 `json:"maxHp"`
	Exp      uint64 `json:"exp"`
	SPExp    uint64 `json:"spExp"`
	Rarity   uint8  `json:"rarity"`
}

// Skill - шаблон навыка
type Skill struct {
	ID       uint32 `json:"id"`
	CodeName string `json:"codeName"`
	// Race - код происхождения; domain.SkillOriginUniversal доступен всем
	Race uint8  `json:"race"`
	SP   uint32 `json:"sp"`
	// Mastery == 0 если навык не привязан к мастерству
	Mastery       uint32   `json:"mastery,omitempty"`
	MasteryLevel  uint8    `json:"masteryLevel,omitempty"`
	Prerequisites []uint32 `json:"prerequisites,omitempty"`
}

func (s Skill) HasMastery() bool {
	return s.Mastery != 0
}

// Mastery - шаблон мастерства
type Mastery struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	Race uint8  `json:"race"`
}

// Teleport - точка телепортации
type Teleport struct {
	ID       uint32      `json:"id"`
	Name     string      `json:"name"`
	Location domain.Vec3 `json:"location"`
}

// LevelEntry - строка кривой опыта
type LevelEntry struct {
	Level     uint8  `json:"level"`
	Exp       uint64 `json:"exp"`
	SPExp     uint64 `json:"spExp"`
	MasterySP uint32 `json:"masterySp"`
}

// LevelMap - кривые опыта и стоимости мастерств по уровню
type LevelMap struct {
	byLevel map[uint8]LevelEntry
}

func NewLevelMap(entries []LevelEntry) LevelMap {
	m := LevelMap{byLevel: make(map[uint8]LevelEntry, len(entries))}
	for _, e := range entries {
		m.byLevel[e.Level] = e
	}
	return m
}

// ExpForLevel - сколько опыта нужно, чтобы покинуть уровень
func (m LevelMap) ExpForLevel(level uint8) (uint64, bool) {
	e, ok := m.byLevel[level]
	if !ok || e.Exp == 0 {
		return 0, false
	}
	return e.Exp, true
}

func (m LevelMap) SPExpForLevel(level uint8) (uint64, bool) {
	e, ok := m.byLevel[level]
	return e.SPExp, ok
}

// MasterySPForLevel - цена поднятия мастерства с уровня level
func (m LevelMap) MasterySPForLevel(level uint8) (uint32, bool) {
	e, ok := m.byLevel[level]
	if !ok {
		return 0, false
	}
	return e.MasterySP, true
}

func (m LevelMap) Len() int {
	return len(m.byLevel)
}

// GoldEntry - диапазон выпадающего золота для уровня монстра
type GoldEntry struct {
	Level uint8  `json:"level"`
	Min   uint32 `json:"min"`
	Max   uint32 `json:"max"`
}

type GoldMap struct {
	byLevel map[uint8]GoldEntry
}

func NewGoldMap(entries []GoldEntry) GoldMap {
	m := GoldMap{byLevel: make(map[uint8]GoldEntry, len(entries))}
	for _, e := range entries {
		if e.Max < e.Min {
			e.Min, e.Max = e.Max, e.Min
		}
		m.byLevel[e.Level] = e
	}
	return m
}

// GoldForLevel возвращает включительный диапазон [min, max]
func (m GoldMap) GoldForLevel(level uint8) (uint32, uint32, bool) {
	e, ok := m.byLevel[level]
	return e.Min, e.Max, ok
}

func (m GoldMap) Len() int {
	return len(m.byLevel)
}
