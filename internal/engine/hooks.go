package engine

import (
	"fmt"

	"skrillax-agent/internal/domain"
)

// Точки интеграции для внешних систем (движение, бой, воскрешение).
// Все мутации идут под замком тика.

func (e *Engine) withEntity(id domain.EntityID, fn func(ent *domain.Entity) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ent := e.ctx.Store.Get(id)
	if ent == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	return fn(ent)
}

// Goal возвращает текущую цель движения сущности
func (e *Engine) Goal(id domain.EntityID) (domain.AgentGoal, error) {
	var goal domain.AgentGoal
	err := e.withEntity(id, func(ent *domain.Entity) error {
		if ent.Goal != nil {
			goal = *ent.Goal
		}
		return nil
	})
	return goal, err
}

// ClearGoal снимает цель: контроллер движения отказался от нее
func (e *Engine) ClearGoal(id domain.EntityID) error {
	return e.withEntity(id, func(ent *domain.Entity) error {
		if ent.Goal == nil || ent.Goal.IsNone() {
			return nil
		}
		ent.Goal.Clear()
		ent.Touch(domain.CompGoal)
		return nil
	})
}

// ReportArrival - контроллер движения довел сущность до точки
func (e *Engine) ReportArrival(id domain.EntityID, loc domain.Vec3) error {
	return e.withEntity(id, func(ent *domain.Entity) error {
		if ent.Pos == nil || ent.IsDead() {
			return nil
		}
		ent.Pos.MoveTo(e.cfg.Game.Bounds.Clamp(loc))
		ent.State = domain.StateIdle
		if ent.Goal != nil {
			ent.Goal.Clear()
		}
		ent.Touch(domain.CompPosition | domain.CompGoal | domain.CompState)
		return nil
	})
}

// SetMoving - контроллер движения взял цель в работу
func (e *Engine) SetMoving(id domain.EntityID) error {
	return e.withEntity(id, func(ent *domain.Entity) error {
		if ent.IsDead() {
			return nil
		}
		ent.State = domain.StateMoving
		ent.Touch(domain.CompState)
		return nil
	})
}

// Revive снимает маркер смерти с игрока и восполняет HP/MP
func (e *Engine) Revive(id domain.EntityID) error {
	return e.withEntity(id, func(ent *domain.Entity) error {
		if ent.Player == nil {
			return fmt.Errorf("%w: %s", ErrNotPlayer, id)
		}
		ent.Revive()
		return nil
	})
}

// ApplyDamage ставит в очередь урон от внешней боевой системы.
// Применится в ближайшем тике.
func (e *Engine) ApplyDamage(source, target domain.EntityID, amount uint32) error {
	if e.GetEntity(target) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, target)
	}
	e.ctx.Damage.Push(domain.DamageEvent{Source: source, Target: target, Amount: amount})
	return nil
}
