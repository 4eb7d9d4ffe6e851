package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/engine/handlers"
	"skrillax-agent/internal/engine/handlers/actions"
	"skrillax-agent/internal/engine/handlers/admin"
	"skrillax-agent/internal/navmesh"
	"skrillax-agent/internal/schedule"
	"skrillax-agent/internal/systems"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrUnknownAction   = errors.New("unknown action")
	ErrCharacterLoaded = errors.New("character already loaded")
	ErrNotPlayer       = errors.New("entity is not a player")
)

// Sink получает сообщения, собранные за тик
type Sink interface {
	Publish(msg api.ServerMessage)
}

// Engine - один экземпляр симуляции.
// mu держится на всё время тика и при каждой внешней мутации мира,
// так что системы видят мир только своими руками.
type Engine struct {
	mu    sync.Mutex
	ctx   *systems.Context
	sched *schedule.Scheduler[*systems.Context]
	sink  Sink
	cfg   Config

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

// New собирает движок. Цикл в графе систем - ошибка запуска.
func New(cfg Config, data *worlddata.Registry, terrain navmesh.HeightProvider, sink Sink) (*Engine, error) {
	if !data.Loaded() {
		return nil, worlddata.ErrNotLoaded
	}
	sched, err := schedule.New(systems.Plan(), schedule.Parallel(cfg.Parallel))
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	e := &Engine{
		ctx: &systems.Context{
			Store:   domain.NewStore(),
			Data:    data,
			Terrain: terrain,
			Game:    cfg.Game,
			Rng:     rand.New(rand.NewSource(cfg.Seed)),
		},
		sched:    sched,
		sink:     sink,
		cfg:      cfg,
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log:      logger.Component("engine"),
	}
	e.registerHandlers()

	e.log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"parallel": cfg.Parallel,
		"tick":     cfg.Game.TickDuration(),
	}).Info("Engine created")
	return e, nil
}

func (e *Engine) registerHandlers() {
	e.handlers[domain.ActionStatIncrease] = handlers.WithPayload(actions.HandleStatIncrease)
	e.handlers[domain.ActionMasteryLevelUp] = handlers.WithPayload(actions.HandleMasteryLevelUp)
	e.handlers[domain.ActionLearnSkill] = handlers.WithPayload(actions.HandleLearnSkill)
	e.handlers[domain.ActionGM] = handlers.WithPayload(admin.HandleGM)
}

// Tick выполняет один тик и отдает ответы и изменения в Sink
func (e *Engine) Tick(dt time.Duration) uint64 {
	e.mu.Lock()
	e.ctx.Tick++
	e.ctx.Delta = dt
	tick := e.ctx.Tick
	if errs := e.sched.Run(e.ctx); len(errs) > 0 {
		e.log.WithField("tick", tick).WithField("failed", len(errs)).Debug("Tick finished with system errors")
	}
	responses := e.ctx.Responses.Drain()
	changes := e.ctx.Changes.Drain()
	e.mu.Unlock()

	if e.sink == nil {
		return tick
	}
	for i := range responses {
		e.sink.Publish(api.ServerMessage{Type: api.MsgResponse, Tick: tick, Response: &responses[i]})
	}
	if len(changes) > 0 {
		e.sink.Publish(api.ServerMessage{Type: api.MsgChanges, Tick: tick, Changes: changes})
	}
	return tick
}

// Run крутит тики с фиксированным шагом, пока не отменен контекст
func (e *Engine) Run(ctx context.Context) {
	interval := e.cfg.Game.TickDuration()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.WithField("interval", interval).Info("Game loop started")
	for {
		select {
		case <-ctx.Done():
			e.log.WithField("tick", e.TickCount()).Info("Game loop stopped")
			return
		case <-ticker.C:
			e.Tick(interval)
		}
	}
}

// Submit принимает команду от клиента и кладет ее в слот сущности.
// Результат действия придет ответом на ближайшем тике.
func (e *Engine) Submit(cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	handler, ok := e.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	id, err := domain.ParseEntityID(cmd.Token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, err)
	}
	actor := e.GetEntity(id)
	if actor == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}

	if err := handler(handlers.Context{Finder: e, Actor: actor}, cmd.Payload); err != nil {
		e.log.WithFields(logrus.Fields{
			"entity_id": id,
			"action":    action.String(),
		}).WithError(err).Debug("Command rejected")
		return err
	}
	return nil
}

// GetEntity реализует handlers.EntityFinder
func (e *Engine) GetEntity(id domain.EntityID) *domain.Entity {
	return e.ctx.Store.Get(id)
}

func (e *Engine) TickCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.Tick
}

func (e *Engine) EntityCount() int {
	return e.ctx.Store.Len()
}

// Schedule - разрешенный порядок систем по стадиям, батчами
func (e *Engine) Schedule() map[string][][]string {
	out := make(map[string][][]string)
	for _, stage := range schedule.Stages() {
		out[stage.String()] = e.sched.Batches(stage)
	}
	return out
}

// DumpEntities сериализует все сущности вместе с внутренним состоянием
func (e *Engine) DumpEntities() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return json.Marshal(e.ctx.Store.Snapshot())
}
