package domain

import "math"

// Pool - ресурс с текущим и максимальным значением (здоровье, мана)
type Pool struct {
	Current uint32 `json:"current"`
	Max     uint32 `json:"max"`
}

func NewPool(max uint32) *Pool {
	return &Pool{Current: max, Max: max}
}

// Damage отнимает ресурс. Возвращает true, если он закончился именно сейчас.
func (p *Pool) Damage(amount uint32) bool {
	if p.Current == 0 {
		return false
	}
	if amount >= p.Current {
		p.Current = 0
		return true
	}
	p.Current -= amount
	return false
}

// SetMax меняет максимум; текущее значение только прижимается вниз
func (p *Pool) SetMax(max uint32) {
	p.Max = max
	if p.Current > max {
		p.Current = max
	}
}

// Refill - полное восстановление
func (p *Pool) Refill() {
	p.Current = p.Max
}

func (p *Pool) Empty() bool {
	return p.Current == 0
}

// Stats - базовые характеристики
type Stats struct {
	Strength     uint16 `json:"str"`
	Intelligence uint16 `json:"int"`
}

// MaxHealth зависит от силы и уровня
func (s Stats) MaxHealth(level uint8) uint32 {
	return maxFromBase(s.Strength, level)
}

// MaxMana зависит от интеллекта и уровня
func (s Stats) MaxMana(level uint8) uint32 {
	return maxFromBase(s.Intelligence, level)
}

// floor(base * 10 * 1.02^(level-1))
func maxFromBase(base uint16, level uint8) uint32 {
	if level == 0 {
		level = 1
	}
	factor := math.Pow(1.02, float64(level-1))
	return uint32(math.Floor(float64(base) * 10 * factor))
}

// StatPoints - распределяемые очки характеристик.
// Флаги gained/spent живут до ближайшей синхронизации.
type StatPoints struct {
	Stats     Stats  `json:"stats"`
	Remaining uint16 `json:"remaining"`
	gained    bool
	spent     bool
}

func NewStatPoints(stats Stats, remaining uint16) *StatPoints {
	return &StatPoints{Stats: stats, Remaining: remaining}
}

// Spend вкладывает n очков в характеристику. Без остатка или при переполнении ничего не меняется.
func (s *StatPoints) Spend(axis StatAxis, n uint16) bool {
	if n == 0 || s.Remaining < n {
		return false
	}
	var stat *uint16
	switch axis {
	case StatStrength:
		stat = &s.Stats.Strength
	case StatIntelligence:
		stat = &s.Stats.Intelligence
	default:
		return false
	}
	if *stat > math.MaxUint16-n {
		return false
	}
	*stat += n
	s.Remaining -= n
	s.spent = true
	return true
}

// Gain начисляет очки с насыщением
func (s *StatPoints) Gain(n uint16) {
	if n == 0 {
		return
	}
	s.Remaining = saturatingAdd16(s.Remaining, n)
	s.gained = true
}

func (s *StatPoints) HasGained() bool { return s.gained }
func (s *StatPoints) HasSpent() bool  { return s.spent }

// ResetFlags вызывается после отправки изменений наблюдателям
func (s *StatPoints) ResetFlags() {
	s.gained = false
	s.spent = false
}

func saturatingAdd16(a, b uint16) uint16 {
	if a > math.MaxUint16-b {
		return math.MaxUint16
	}
	return a + b
}
