package domain

import "time"

// Timer копит прошедшее время до заданной длительности
type Timer struct {
	Duration time.Duration `json:"duration"`
	Elapsed  time.Duration `json:"elapsed"`
	fired    bool
}

func NewTimer(d time.Duration) *Timer {
	return &Timer{Duration: d}
}

// Tick продвигает таймер. Возвращает true ровно на том тике, когда он истек.
func (t *Timer) Tick(dt time.Duration) bool {
	if t.Elapsed < t.Duration {
		t.Elapsed += dt
		if t.Elapsed > t.Duration {
			t.Elapsed = t.Duration
		}
	}
	if t.Finished() && !t.fired {
		t.fired = true
		return true
	}
	return false
}

// Finished - длительность достигнута
func (t *Timer) Finished() bool {
	return t.Elapsed >= t.Duration
}

// Reset запускает отсчет заново
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.fired = false
}
