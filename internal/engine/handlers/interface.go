package handlers

import (
	"encoding/json"

	"skrillax-agent/internal/domain"
)

// EntityFinder описывает любую структуру, которая может находить сущность по ID.
// Engine неявно реализует этот интерфейс.
type EntityFinder interface {
	GetEntity(id domain.EntityID) *domain.Entity
}

// Context передает хендлеру отправителя команды.
// Хендлер не трогает мир напрямую: он только кладет действие в слот,
// а применяет его система на ближайшем тике.
type Context struct {
	Finder EntityFinder
	Actor  *domain.Entity
}

// HandlerFunc - это контракт для любой команды (STAT_INCREASE, LEARN_SKILL, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) error
