package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestSlot_SingleShot(t *testing.T) {
	var s Slot[SkillLearn]

	if err := s.Put(SkillLearn{Skill: 1}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(SkillLearn{Skill: 2}); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("second Put = %v, want ErrSlotOccupied", err)
	}

	v, ok := s.Take()
	if !ok || v.Skill != 1 {
		t.Errorf("Take = %+v, %v", v, ok)
	}
	if _, ok := s.Take(); ok {
		t.Error("slot must be empty after Take")
	}
	if s.Pending() {
		t.Error("Pending after Take")
	}
}

func TestSlot_ConcurrentPut(t *testing.T) {
	var s Slot[StatIncrease]
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Put(StatIncrease{Amount: 1}) == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted = %d, want exactly 1", accepted)
	}
}
