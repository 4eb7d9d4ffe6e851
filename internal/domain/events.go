package domain

// События, которыми системы обмениваются внутри тика.
// Производитель и потребитель связаны явным порядком в расписании.

// DamageEvent - запрос на нанесение урона
type DamageEvent struct {
	Source EntityID `json:"source"`
	Target EntityID `json:"target"`
	Amount uint32   `json:"amount"`
}

// DeathEvent - сущность погибла на этом тике
type DeathEvent struct {
	Entity EntityID `json:"entity"`
	Killer EntityID `json:"killer"`
	// Снимок журнала урона на момент смерти
	Attackers []DamageShare `json:"attackers"`
}

// ExperienceEvent - начисление опыта игроку
type ExperienceEvent struct {
	Target EntityID `json:"target"`
	Exp    uint64   `json:"exp"`
	SPExp  uint64   `json:"spExp"`
	From   EntityID `json:"from"`
}

// LevelUpEvent - игрок получил новый уровень
type LevelUpEvent struct {
	Entity EntityID `json:"entity"`
	From   uint8    `json:"from"`
	To     uint8    `json:"to"`
}
