package engine

import (
	"fmt"

	"skrillax-agent/internal/domain"

	"github.com/sirupsen/logrus"
)

// LoadCharacter вводит персонажа в мир из сохраненного состояния.
// Наблюдатели получат его целиком на ближайшем тике.
func (e *Engine) LoadCharacter(st domain.CharacterState) (domain.EntityID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if st.ID != 0 {
		if existing := e.findCharacter(st.ID); existing != nil {
			return existing.ID, fmt.Errorf("%w: character %d", ErrCharacterLoaded, st.ID)
		}
	}

	player := domain.NewPlayer(st)
	player.Pos.MoveTo(e.cfg.Game.Bounds.Clamp(player.Pos.Location))
	id := e.ctx.Store.Spawn(player)
	player.Touch(domain.TrackedComponents)

	e.log.WithFields(logrus.Fields{
		"entity_id":    id,
		"character_id": st.ID,
		"name":         st.Name,
		"level":        player.Level.Current,
	}).Info("Character loaded")
	return id, nil
}

// LoadCharacters - массовая загрузка; уже загруженные пропускаются
func (e *Engine) LoadCharacters(states []domain.CharacterState) int {
	loaded := 0
	for _, st := range states {
		if _, err := e.LoadCharacter(st); err != nil {
			e.log.WithError(err).Warn("Character skipped")
			continue
		}
		loaded++
	}
	return loaded
}

// SaveCharacters снимает состояние всех игроков в мире
func (e *Engine) SaveCharacters() []domain.CharacterState {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []domain.CharacterState
	e.ctx.Store.Each(func(ent *domain.Entity) {
		if ent.Player != nil {
			out = append(out, domain.CharacterStateOf(ent))
		}
	})
	return out
}

// UnloadCharacter сохраняет персонажа и убирает его из мира на ближайшем тике
func (e *Engine) UnloadCharacter(id domain.EntityID) (domain.CharacterState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent := e.ctx.Store.Get(id)
	if ent == nil {
		return domain.CharacterState{}, fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	if ent.Player == nil {
		return domain.CharacterState{}, fmt.Errorf("%w: %s", ErrNotPlayer, id)
	}
	st := domain.CharacterStateOf(ent)
	e.ctx.Store.QueueDespawn(id)
	return st, nil
}

// FindCharacter ищет сущность персонажа по ID из базы
func (e *Engine) FindCharacter(characterID uint32) (domain.EntityID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ent := e.findCharacter(characterID); ent != nil {
		return ent.ID, true
	}
	return domain.NilEntityID, false
}

func (e *Engine) findCharacter(characterID uint32) *domain.Entity {
	var found *domain.Entity
	e.ctx.Store.Each(func(ent *domain.Entity) {
		if found == nil && ent.Player != nil && ent.Player.CharacterID == characterID {
			found = ent
		}
	})
	return found
}
