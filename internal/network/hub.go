package network

import (
	"sync"

	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"
)

// Размер личного буфера подписчика
const subscriberBuffer = 256

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Реализует engine.Sink: ответы уходят адресату, изменения - всем.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подписки -> личный канал
	subscribers map[string]*subscriber
}

type subscriber struct {
	ch chan api.ServerMessage
	// entity - сущность, от имени которой подписчик шлет команды. Пусто у зрителей.
	entity string
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создает личный канал подписчика. entity может быть пустым (зритель).
func (b *Broadcaster) Register(id, entity string) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old.ch)
	}

	sub := &subscriber{ch: make(chan api.ServerMessage, subscriberBuffer), entity: entity}
	b.subscribers[id] = sub
	return sub.ch
}

// Bind привязывает подписку к сущности после логина
func (b *Broadcaster) Bind(id, entity string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subscribers[id]; ok {
		sub.entity = entity
	}
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		close(sub.ch)
		delete(b.subscribers, id)
	}
}

// Publish реализует engine.Sink
func (b *Broadcaster) Publish(msg api.ServerMessage) {
	if msg.Type == api.MsgResponse && msg.Response != nil {
		b.sendToEntity(msg.Response.Entity, msg)
		return
	}
	b.Broadcast(msg)
}

// SendTo отправляет сообщение конкретной подписке (Unicast)
func (b *Broadcaster) SendTo(id string, msg api.ServerMessage) {
	b.mu.RLock()
	sub, ok := b.subscribers[id]
	b.mu.RUnlock()
	if ok {
		b.deliver(id, sub, msg)
	}
}

func (b *Broadcaster) sendToEntity(entity string, msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, sub := range b.subscribers {
		if sub.entity == entity {
			b.deliverLocked(id, sub, msg)
		}
	}
}

// Broadcast отправляет всем (зрителям и игрокам)
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subscribers {
		b.deliverLocked(id, sub, msg)
	}
}

func (b *Broadcaster) deliver(id string, sub *subscriber, msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	// Подписку могли снять, пока мы не держали замок
	if b.subscribers[id] != sub {
		return
	}
	b.deliverLocked(id, sub, msg)
}

// Медленный подписчик не тормозит тик: сообщение теряется
func (b *Broadcaster) deliverLocked(id string, sub *subscriber, msg api.ServerMessage) {
	select {
	case sub.ch <- msg:
	default:
		logger.Component("hub").WithField("subscriber", id).WithField("type", msg.Type).Debug("Channel full, message dropped")
	}
}

// HasSubscriber проверяет, подключен ли кто-то под этим ID
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
