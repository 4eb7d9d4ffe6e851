package domain

import (
	"errors"
	"sync"
)

// ErrSlotOccupied - прошлое действие того же вида еще не обработано
var ErrSlotOccupied = errors.New("action slot occupied")

// Slot - одноразовый почтовый ящик для действия игрока.
// Транспорт кладет значение, система забирает его на ближайшем тике.
type Slot[T any] struct {
	mu      sync.Mutex
	value   T
	pending bool
}

// Put кладет действие; занятый слот не перезаписывается
func (s *Slot[T]) Put(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return ErrSlotOccupied
	}
	s.value = v
	s.pending = true
	return nil
}

// Take забирает действие и освобождает слот
func (s *Slot[T]) Take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if !s.pending {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.pending = false
	return v, true
}

func (s *Slot[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// PlayerInput - по одному слоту на каждый вид действия
type PlayerInput struct {
	Stats   Slot[StatIncrease]
	Mastery Slot[MasteryLevelUp]
	Skill   Slot[SkillLearn]
	GM      Slot[GMCommand]
}
