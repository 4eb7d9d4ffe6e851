package domain

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"
)

// Leveled - уровень персонажа и достигнутый максимум
type Leveled struct {
	Current uint8 `json:"current"`
	Max     uint8 `json:"max"`
}

func NewLeveled(current uint8) *Leveled {
	if current == 0 {
		current = 1
	}
	return &Leveled{Current: current, Max: current}
}

// Up поднимает уровень на один и обновляет максимум
func (l *Leveled) Up() {
	if l.Current == math.MaxUint8 {
		return
	}
	l.Current++
	if l.Current > l.Max {
		l.Max = l.Current
	}
}

// Experienced - накопленный опыт в текущем уровне и опыт навыков
type Experienced struct {
	Exp   uint64 `json:"exp"`
	SPExp uint64 `json:"spExp"`
}

// SkillPoints - очки навыков (SP)
type SkillPoints struct {
	Current uint32 `json:"current"`
}

// Spend списывает SP, если их хватает
func (s *SkillPoints) Spend(n uint32) bool {
	if s.Current < n {
		return false
	}
	s.Current -= n
	return true
}

// Gain начисляет SP с насыщением
func (s *SkillPoints) Gain(n uint32) {
	if s.Current > math.MaxUint32-n {
		s.Current = math.MaxUint32
		return
	}
	s.Current += n
}

// MasteryEntry - уровень одного мастерства
type MasteryEntry struct {
	ID    uint32 `json:"id"`
	Level uint8  `json:"level"`
}

// MasteryKnowledge - все известные мастерства. Total всегда равна сумме уровней.
type MasteryKnowledge struct {
	levels map[uint32]uint8
	total  uint16
}

func NewMasteryKnowledge(entries []MasteryEntry) *MasteryKnowledge {
	m := &MasteryKnowledge{levels: make(map[uint32]uint8, len(entries))}
	for _, e := range entries {
		m.levels[e.ID] = e.Level
		m.total += uint16(e.Level)
	}
	return m
}

// LevelOf возвращает уровень мастерства; false если оно ни разу не поднималось
func (m *MasteryKnowledge) LevelOf(id uint32) (uint8, bool) {
	lvl, ok := m.levels[id]
	return lvl, ok
}

func (m *MasteryKnowledge) Total() uint16 {
	return m.total
}

// LevelBy поднимает мастерство на amount уровней (создает запись при первом вызове)
func (m *MasteryKnowledge) LevelBy(id uint32, amount uint8) uint8 {
	if m.levels == nil {
		m.levels = make(map[uint32]uint8)
	}
	cur := m.levels[id]
	next := uint16(cur) + uint16(amount)
	if next > math.MaxUint8 {
		next = math.MaxUint8
	}
	m.levels[id] = uint8(next)
	m.total += next - uint16(cur)
	return uint8(next)
}

// Entries - записи в порядке возрастания ID
func (m *MasteryKnowledge) Entries() []MasteryEntry {
	out := make([]MasteryEntry, 0, len(m.levels))
	for id, lvl := range m.levels {
		out = append(out, MasteryEntry{ID: id, Level: lvl})
	}
	slices.SortFunc(out, func(a, b MasteryEntry) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// SkillBook - изученные навыки
type SkillBook struct {
	skills map[uint32]struct{}
}

func NewSkillBook(ids []uint32) *SkillBook {
	b := &SkillBook{skills: make(map[uint32]struct{}, len(ids))}
	for _, id := range ids {
		b.skills[id] = struct{}{}
	}
	return b
}

func (b *SkillBook) Has(id uint32) bool {
	_, ok := b.skills[id]
	return ok
}

// HasAll проверяет, что изучены все перечисленные навыки
func (b *SkillBook) HasAll(ids []uint32) bool {
	for _, id := range ids {
		if !b.Has(id) {
			return false
		}
	}
	return true
}

// Learn добавляет навык. Возвращает false, если он уже был изучен.
func (b *SkillBook) Learn(id uint32) bool {
	if b.skills == nil {
		b.skills = make(map[uint32]struct{})
	}
	if _, ok := b.skills[id]; ok {
		return false
	}
	b.skills[id] = struct{}{}
	return true
}

func (b *SkillBook) Len() int {
	return len(b.skills)
}

// IDs - навыки в порядке возрастания
func (b *SkillBook) IDs() []uint32 {
	out := make([]uint32, 0, len(b.skills))
	for id := range b.skills {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// GoldPouch - золото персонажа
type GoldPouch struct {
	Amount uint64 `json:"amount"`
}

func (g *GoldPouch) Gain(n uint64) {
	if g.Amount > math.MaxUint64-n {
		g.Amount = math.MaxUint64
		return
	}
	g.Amount += n
}

// InventoryItem - предмет в слоте инвентаря
type InventoryItem struct {
	Slot    uint8  `json:"slot"`
	RefID   uint32 `json:"refId"`
	Upgrade uint8  `json:"upgrade"`
	Amount  uint16 `json:"amount"`
}

// Inventory - упорядоченный по слотам набор предметов
type Inventory struct {
	Capacity uint8           `json:"capacity"`
	Items    []InventoryItem `json:"items"`
}

func NewInventory(capacity uint8) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Add кладет предмет в первый свободный слот. false если места нет.
func (inv *Inventory) Add(item InventoryItem) (uint8, bool) {
	used := make(map[uint8]bool, len(inv.Items))
	for _, it := range inv.Items {
		used[it.Slot] = true
	}
	for slot := uint8(0); slot < inv.Capacity; slot++ {
		if used[slot] {
			continue
		}
		item.Slot = slot
		inv.Items = append(inv.Items, item)
		slices.SortFunc(inv.Items, func(a, b InventoryItem) int { return cmp.Compare(a.Slot, b.Slot) })
		return slot, true
	}
	return 0, false
}

// DamageShare - суммарный урон одного атакующего
type DamageShare struct {
	Attacker EntityID `json:"attacker"`
	Amount   uint64   `json:"amount"`
}

// DamageLedger - кто и сколько урона нанес сущности
type DamageLedger struct {
	byAttacker map[EntityID]uint64
	Total      uint64 `json:"total"`
}

func (d *DamageLedger) Record(attacker EntityID, amount uint32) {
	if attacker == NilEntityID || amount == 0 {
		return
	}
	if d.byAttacker == nil {
		d.byAttacker = make(map[EntityID]uint64)
	}
	d.byAttacker[attacker] += uint64(amount)
	d.Total += uint64(amount)
}

// Shares - вклады в порядке возрастания ID атакующего
func (d *DamageLedger) Shares() []DamageShare {
	out := make([]DamageShare, 0, len(d.byAttacker))
	for id, amount := range d.byAttacker {
		out = append(out, DamageShare{Attacker: id, Amount: amount})
	}
	slices.SortFunc(out, func(a, b DamageShare) int { return cmp.Compare(a.Attacker, b.Attacker) })
	return out
}

func (d *DamageLedger) Clear() {
	d.byAttacker = nil
	d.Total = 0
}

// MarshalJSON отдает мастерства списком, отсортированным по ID
func (m *MasteryKnowledge) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}

func (b *SkillBook) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.IDs())
}
