package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/network"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подписывается на хаб так же, как обычный клиент по WebSocket, получает
// изменения своего персонажа и на их основе решает, какую команду отправить.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. Изменение очков характеристик -> распределить их по политике.
//  4. Изменение SP -> попробовать поднять выбранное мастерство.
//     Отказ LIMIT_REACHED ждет нового уровня, INSUFFICIENT_SP - новых SP.
type Bot struct {
	EntityID string
	Policy   Policy
	Mastery  uint32
	Engine   Submitter
	Inbox    <-chan api.ServerMessage

	hub     *network.Broadcaster
	subID   string
	nextInt bool
	blocked string
	log     *logrus.Entry
}

// Submitter - куда бот отправляет команды (engine.Engine)
type Submitter interface {
	Submit(cmd api.ClientCommand) error
}

// Policy - как бот тратит очки характеристик
type Policy string

const (
	PolicyStrength     Policy = "str"
	PolicyIntelligence Policy = "int"
	PolicyBalanced     Policy = "balanced"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(s)); p {
	case PolicyStrength, PolicyIntelligence, PolicyBalanced:
		return p, nil
	case "":
		return PolicyBalanced, nil
	default:
		return "", fmt.Errorf("unknown stat policy %q", s)
	}
}

func NewBot(entityID string, policy Policy, mastery uint32, eng Submitter, hub *network.Broadcaster) *Bot {
	subID := "bot-" + entityID
	return &Bot{
		EntityID: entityID,
		Policy:   policy,
		Mastery:  mastery,
		Engine:   eng,
		// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
		Inbox: hub.Register(subID, entityID),
		hub:   hub,
		subID: subID,
		log:   logger.Component("agent").WithField("entity_id", entityID),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.hub.Unregister(b.subID)
	b.log.WithField("policy", b.Policy).Info("Agent started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Agent shut down")
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			b.handle(msg)
		}
	}
}

func (b *Bot) handle(msg api.ServerMessage) {
	switch msg.Type {
	case api.MsgResponse:
		if msg.Response != nil {
			b.onResponse(*msg.Response)
		}
	case api.MsgChanges:
		for _, cs := range msg.Changes {
			if cs.Entity == b.EntityID && !cs.Removed {
				b.onChange(cs)
			}
		}
	}
}

func (b *Bot) onResponse(resp api.Response) {
	if resp.Success || resp.Action != domain.ActionMasteryLevelUp.String() {
		return
	}
	// Не долбим сервер одинаковым отказом
	b.blocked = resp.Reason
	b.log.WithField("reason", resp.Reason).Debug("Mastery level up blocked")
}

func (b *Bot) onChange(cs api.ChangeSet) {
	if cs.Dead != nil && *cs.Dead {
		return
	}
	if cs.StatPoints != nil && cs.StatPoints.Remaining > 0 {
		b.spendStats(cs.StatPoints.Remaining)
	}

	switch {
	case cs.Level != nil && b.blocked == domain.ReasonLimitReached.String():
		b.blocked = ""
	case cs.SP != nil && b.blocked == domain.ReasonInsufficientSP.String():
		b.blocked = ""
	}
	if b.Mastery != 0 && b.blocked == "" && (cs.SP != nil || cs.Level != nil) {
		b.send(domain.ActionMasteryLevelUp, api.MasteryLevelUpPayload{Mastery: b.Mastery, Amount: 1})
	}
}

func (b *Bot) spendStats(remaining uint16) {
	p := api.StatIncreasePayload{Stat: "STR", Amount: remaining}
	switch b.Policy {
	case PolicyIntelligence:
		p.Stat = "INT"
	case PolicyBalanced:
		// По одному очку, чередуя оси
		p.Amount = 1
		if b.nextInt {
			p.Stat = "INT"
		}
		b.nextInt = !b.nextInt
	}
	b.send(domain.ActionStatIncrease, p)
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) send(action domain.ActionType, payload interface{}) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		b.log.WithError(err).Error("Error marshalling payload")
		return
	}

	err = b.Engine.Submit(api.ClientCommand{
		Action:  action.String(),
		Payload: payloadBytes,
		Token:   b.EntityID,
	})
	// Занятый слот - прошлое действие еще в пути, повторим на следующем изменении
	if err != nil && !errors.Is(err, domain.ErrSlotOccupied) {
		b.log.WithError(err).WithField("action", action.String()).Warn("Command rejected")
	}
}
