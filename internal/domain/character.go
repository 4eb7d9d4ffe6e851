package domain

import "time"

// CharacterState - сохраняемое состояние персонажа игрока
type CharacterState struct {
	ID         uint32          `json:"id"`
	User       string          `json:"user"`
	Name       string          `json:"name"`
	Race       string          `json:"race"`
	GM         bool            `json:"gm,omitempty"`
	Level      uint8           `json:"level"`
	MaxLevel   uint8           `json:"maxLevel"`
	Exp        uint64          `json:"exp"`
	SPExp      uint64          `json:"spExp"`
	SP         uint32          `json:"sp"`
	Strength   uint16          `json:"str"`
	Intellect  uint16          `json:"int"`
	StatPoints uint16          `json:"statPoints"`
	HP         uint32          `json:"hp"`
	MP         uint32          `json:"mp"`
	Gold       uint64          `json:"gold"`
	Location   Vec3            `json:"location"`
	Heading    uint16          `json:"heading"`
	Masteries  []MasteryEntry  `json:"masteries,omitempty"`
	Skills     []uint32        `json:"skills,omitempty"`
	Items      []InventoryItem `json:"items,omitempty"`
	Dead       bool            `json:"dead,omitempty"`
}

// NewPlayer собирает сущность игрока из сохраненного состояния.
// Нулевое HP у живого персонажа означает свежего героя: пул заполняется целиком.
func NewPlayer(st CharacterState) *Entity {
	level := NewLeveled(st.Level)
	if st.MaxLevel > level.Max {
		level.Max = st.MaxLevel
	}
	stats := Stats{Strength: st.Strength, Intelligence: st.Intellect}
	if stats.Strength == 0 && stats.Intelligence == 0 {
		stats = Stats{Strength: BaseStrength, Intelligence: BaseIntelligence}
	}

	health := NewPool(stats.MaxHealth(level.Current))
	mana := NewPool(stats.MaxMana(level.Current))
	if st.HP > 0 || st.Dead {
		health.Current = min(st.HP, health.Max)
	}
	if st.MP > 0 || st.Dead {
		mana.Current = min(st.MP, mana.Max)
	}

	inv := NewInventory(DefaultInventorySlots)
	inv.Items = append(inv.Items, st.Items...)

	e := &Entity{
		Kind:      KindPlayer,
		Name:      st.Name,
		Race:      ParseRace(st.Race),
		Pos:       NewPosition(st.Location, st.Heading),
		Health:    health,
		Mana:      mana,
		Level:     level,
		Exp:       &Experienced{Exp: st.Exp, SPExp: st.SPExp},
		SP:        &SkillPoints{Current: st.SP},
		Stats:     NewStatPoints(stats, st.StatPoints),
		Masteries: NewMasteryKnowledge(st.Masteries),
		Skills:    NewSkillBook(st.Skills),
		Gold:      &GoldPouch{Amount: st.Gold},
		Inventory: inv,
		Goal:      &AgentGoal{},
		Damage:    &DamageLedger{},
		Input:     &PlayerInput{},
		Player:    &PlayerInfo{CharacterID: st.ID, User: st.User, GM: st.GM},
	}
	if st.Dead || health.Empty() {
		health.Current = 0
		e.Kill(NewPlayerDead())
	}
	return e
}

// CharacterStateOf снимает сохраняемое состояние с сущности игрока
func CharacterStateOf(e *Entity) CharacterState {
	st := CharacterState{
		Name: e.Name,
		Race: e.Race.String(),
		Dead: e.IsDead(),
	}
	if e.Player != nil {
		st.ID = e.Player.CharacterID
		st.User = e.Player.User
		st.GM = e.Player.GM
	}
	if e.Level != nil {
		st.Level, st.MaxLevel = e.Level.Current, e.Level.Max
	}
	if e.Exp != nil {
		st.Exp, st.SPExp = e.Exp.Exp, e.Exp.SPExp
	}
	if e.SP != nil {
		st.SP = e.SP.Current
	}
	if e.Stats != nil {
		st.Strength = e.Stats.Stats.Strength
		st.Intellect = e.Stats.Stats.Intelligence
		st.StatPoints = e.Stats.Remaining
	}
	if e.Health != nil {
		st.HP = e.Health.Current
	}
	if e.Mana != nil {
		st.MP = e.Mana.Current
	}
	if e.Gold != nil {
		st.Gold = e.Gold.Amount
	}
	if e.Pos != nil {
		st.Location, st.Heading = e.Pos.Location, e.Pos.Heading
	}
	if e.Masteries != nil {
		st.Masteries = e.Masteries.Entries()
	}
	if e.Skills != nil {
		st.Skills = e.Skills.IDs()
	}
	if e.Inventory != nil {
		st.Items = append([]InventoryItem(nil), e.Inventory.Items...)
	}
	return st
}

// MonsterSpec - параметры появления монстра
type MonsterSpec struct {
	RefID   uint32
	Name    string
	Level   uint8
	MaxHP   uint32
	Origin  Vec3
	Radius  float32
	Recheck time.Duration
	Area    string
}

// NewMonster собирает сущность монстра, который бродит вокруг точки появления
func NewMonster(spec MonsterSpec) *Entity {
	recheck := spec.Recheck
	if recheck <= 0 {
		recheck = DefaultStrollRecheck
	}
	e := &Entity{
		Kind:    KindMonster,
		Name:    spec.Name,
		Pos:     NewPosition(spec.Origin, 0),
		Health:  NewPool(spec.MaxHP),
		Level:   NewLeveled(spec.Level),
		Goal:    &AgentGoal{},
		Damage:  &DamageLedger{},
		Monster: &MonsterInfo{RefID: spec.RefID, SpawnArea: spec.Area},
	}
	if spec.Radius > 0 {
		e.Stroll = NewRandomStroll(spec.Origin, spec.Radius, recheck)
	}
	return e
}
