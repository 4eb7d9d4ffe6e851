package systems

import (
	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Радиус, в котором бродят монстры, вызванные GM
const gmSpawnStrollRadius float32 = 10

// HandleGMCommands исполняет административные команды из слота GM
func HandleGMCommands(ctx *Context) error {
	log := logger.Component("gm_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Input == nil {
			return nil
		}
		cmd, ok := e.Input.GM.Take()
		if !ok {
			return nil
		}

		var reason domain.FailureReason
		switch {
		case e.Player == nil || !e.Player.GM:
			reason = domain.ReasonNotPermitted
		case cmd.Kind == domain.GMSpawnMonster:
			reason = gmSpawnMonster(ctx, e, cmd)
		case cmd.Kind == domain.GMKillMonster:
			reason = gmKillMonster(ctx, e, cmd)
		case cmd.Kind == domain.GMMakeItem:
			reason = gmMakeItem(ctx, e, cmd)
		case cmd.Kind == domain.GMTeleport:
			reason = gmTeleport(ctx, e, cmd)
		default:
			reason = domain.ReasonUnknownTarget
		}

		log.WithFields(logrus.Fields{
			"entity_id": e.ID,
			"command":   cmd.Kind.String(),
			"ref_id":    cmd.RefID,
			"reason":    reason.String(),
		}).Info("GM command handled")
		ctx.respond(e, domain.ActionGM, cmd.RefID, reason)
		return nil
	})
	return nil
}

// Спавним рядом с GM
func gmSpawnMonster(ctx *Context, actor *domain.Entity, cmd domain.GMCommand) domain.FailureReason {
	tpl, ok := ctx.Data.Characters().Find(cmd.RefID)
	if !ok || actor.Pos == nil {
		return domain.ReasonUnknownTarget
	}
	count := max(int(cmd.Amount), 1)
	area := config.SpawnArea{Center: actor.Pos.Location, Radius: 2, StrollRadius: gmSpawnStrollRadius}
	for i := 0; i < count; i++ {
		spec := monsterSpec(ctx, tpl.ID, tpl.Name, tpl.Level, tpl.MaxHP, area)
		ctx.Store.QueueSpawn(domain.NewMonster(spec))
	}
	return domain.ReasonNone
}

// Убийство идет через обычный урон, чтобы сработали опыт и золото
func gmKillMonster(ctx *Context, actor *domain.Entity, cmd domain.GMCommand) domain.FailureReason {
	target := ctx.Store.Get(cmd.Target)
	if target == nil || target.Monster == nil || target.Health == nil || target.IsDead() {
		return domain.ReasonUnknownTarget
	}
	ctx.Damage.Push(domain.DamageEvent{Source: actor.ID, Target: target.ID, Amount: target.Health.Current})
	return domain.ReasonNone
}

func gmMakeItem(ctx *Context, actor *domain.Entity, cmd domain.GMCommand) domain.FailureReason {
	item, ok := ctx.Data.Items().Find(cmd.RefID)
	if !ok || actor.Inventory == nil {
		return domain.ReasonUnknownTarget
	}
	amount := max(uint16(cmd.Amount), 1)
	if item.MaxStack > 0 && amount > item.MaxStack {
		amount = item.MaxStack
	}
	var upgrade uint8
	if item.Upgradable {
		upgrade = cmd.Upgrade
	}
	if _, ok := actor.Inventory.Add(domain.InventoryItem{RefID: item.ID, Upgrade: upgrade, Amount: amount}); !ok {
		return domain.ReasonInventoryFull
	}
	actor.Touch(domain.CompInventory)
	return domain.ReasonNone
}

func gmTeleport(ctx *Context, actor *domain.Entity, cmd domain.GMCommand) domain.FailureReason {
	tp, ok := ctx.Data.Teleports().Find(uint32(cmd.Location))
	if !ok || actor.Pos == nil {
		return domain.ReasonUnknownTarget
	}
	actor.Pos.MoveTo(ctx.Game.Bounds.Clamp(tp.Location))
	actor.Touch(domain.CompPosition)
	if actor.Goal != nil {
		actor.Goal.Clear()
	}
	return domain.ReasonNone
}
