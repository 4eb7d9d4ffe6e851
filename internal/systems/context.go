package systems

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/navmesh"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/api"

	"github.com/sirupsen/logrus"
)

// Context - всё, что видит система во время тика.
// Живет столько же, сколько движок; Tick и Delta выставляются перед каждым тиком.
type Context struct {
	Store   *domain.Store
	Data    *worlddata.Registry
	Terrain navmesh.HeightProvider
	Game    config.GameConfig
	Rng     *rand.Rand

	Tick  uint64
	Delta time.Duration

	Damage     Queue[domain.DamageEvent]
	Deaths     Queue[domain.DeathEvent]
	Experience Queue[domain.ExperienceEvent]
	LevelUps   Queue[domain.LevelUpEvent]

	// Outbox: разбирается движком после тика
	Responses Queue[api.Response]
	Changes   Queue[api.ChangeSet]
}

func (c *Context) respond(e *domain.Entity, action domain.ActionType, target uint32, reason domain.FailureReason) {
	resp := api.Response{
		Entity:  e.ID.Decimal(),
		Action:  action.String(),
		Success: reason == domain.ReasonNone,
		Target:  target,
	}
	if !resp.Success {
		resp.Reason = reason.String()
	}
	c.Responses.Push(resp)
}

// Queue - потокобезопасная очередь событий одного вида
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// Drain забирает все события
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Items - копия событий без извлечения. Одно событие могут читать несколько систем.
func (q *Queue[T]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]T(nil), q.items...)
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue[T]) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}

// forEach обходит сущности; ошибка или паника на одной сущности эту сущность пропускает
func forEach(store *domain.Store, log *logrus.Entry, fn func(e *domain.Entity) error) {
	store.Each(func(e *domain.Entity) {
		if err := guard(e, fn); err != nil {
			log.WithField("entity_id", e.ID).WithError(err).Warn("Entity skipped")
		}
	})
}

// eachEvent обрабатывает события по одному; ошибка или паника пропускает только это событие
func eachEvent[T any](events []T, log *logrus.Entry, fn func(ev T) error) {
	for i, ev := range events {
		if err := protect(func() error { return fn(ev) }); err != nil {
			log.WithFields(logrus.Fields{"event": i, "payload": fmt.Sprintf("%+v", ev)}).WithError(err).Warn("Event skipped")
		}
	}
}

func guard(e *domain.Entity, fn func(e *domain.Entity) error) error {
	return protect(func() error { return fn(e) })
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
