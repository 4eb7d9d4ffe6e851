package admin

import (
	"fmt"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/engine/handlers"
	"skrillax-agent/internal/engine/handlers/actions"
	"skrillax-agent/pkg/api"
)

// HandleGM кладет административную команду в слот GM.
// Права проверяет система: отказ тоже должен прийти ответом на тике.
//
// { "command": "SPAWN_MONSTER", "refId": 1954, "amount": 3 }
// { "command": "KILL_MONSTER", "target": "1099511627777" }
// { "command": "MAKE_ITEM", "refId": 10, "upgrade": 3 }
// { "command": "TELEPORT", "location": 1 }
func HandleGM(ctx handlers.Context, p api.GMPayload) error {
	if ctx.Actor.Input == nil {
		return actions.ErrNoInput
	}

	cmd := domain.GMCommand{
		Kind:     domain.ParseGMKind(p.Command),
		RefID:    p.RefID,
		Amount:   p.Amount,
		Upgrade:  p.Upgrade,
		Location: p.Location,
	}
	if cmd.Kind == domain.GMKillMonster {
		target, err := domain.ParseEntityID(p.Target)
		if err != nil {
			return fmt.Errorf("%w: target: %v", handlers.ErrInvalidPayload, err)
		}
		cmd.Target = target
	}
	return ctx.Actor.Input.GM.Put(cmd)
}
