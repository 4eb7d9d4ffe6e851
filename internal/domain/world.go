package domain

import (
	"slices"
	"sync"
)

// Store - реестр живых сущностей.
// Структурные изменения (появление и удаление) копятся в очередях
// и применяются только в Flush, на границе стадий.
type Store struct {
	mu       sync.RWMutex
	entities map[EntityID]*Entity
	order    []EntityID
	next     map[EntityKind]uint64

	cmdMu    sync.Mutex
	spawns   []*Entity
	despawns []EntityID
	doomed   map[EntityID]bool
}

func NewStore() *Store {
	return &Store{
		entities: make(map[EntityID]*Entity),
		next:     make(map[EntityKind]uint64),
		doomed:   make(map[EntityID]bool),
	}
}

// Spawn регистрирует сущность немедленно. Вне тика (загрузка, тесты).
func (s *Store) Spawn(e *Entity) EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(e)
}

func (s *Store) insertLocked(e *Entity) EntityID {
	if e.ID == NilEntityID {
		s.next[e.Kind]++
		e.ID = PackEntityID(e.Kind, s.next[e.Kind])
	} else if idx := e.ID.Index(); idx > s.next[e.ID.Kind()] {
		s.next[e.ID.Kind()] = idx
	}
	if _, exists := s.entities[e.ID]; !exists {
		pos, _ := slices.BinarySearch(s.order, e.ID)
		s.order = slices.Insert(s.order, pos, e.ID)
	}
	s.entities[e.ID] = e
	return e.ID
}

// QueueSpawn откладывает появление до ближайшего Flush
func (s *Store) QueueSpawn(e *Entity) {
	s.cmdMu.Lock()
	s.spawns = append(s.spawns, e)
	s.cmdMu.Unlock()
}

// QueueDespawn откладывает удаление. Повторный запрос игнорируется.
func (s *Store) QueueDespawn(id EntityID) bool {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()
	if s.doomed[id] {
		return false
	}
	s.doomed[id] = true
	s.despawns = append(s.despawns, id)
	return true
}

// Flush применяет накопленные команды и возвращает затронутые ID
func (s *Store) Flush() (spawned, despawned []EntityID) {
	s.cmdMu.Lock()
	spawns, despawns := s.spawns, s.despawns
	s.spawns, s.despawns = nil, nil
	s.doomed = make(map[EntityID]bool)
	s.cmdMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range despawns {
		if _, ok := s.entities[id]; !ok {
			continue
		}
		delete(s.entities, id)
		if pos, found := slices.BinarySearch(s.order, id); found {
			s.order = slices.Delete(s.order, pos, pos+1)
		}
		despawned = append(despawned, id)
	}
	for _, e := range spawns {
		spawned = append(spawned, s.insertLocked(e))
	}
	return spawned, despawned
}

// Get возвращает сущность или nil
func (s *Store) Get(id EntityID) *Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities[id]
}

// Each обходит сущности в порядке возрастания ID
func (s *Store) Each(fn func(e *Entity)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		fn(s.entities[id])
	}
}

// Snapshot - копия списка сущностей в порядке ID
func (s *Store) Snapshot() []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// CountWhere считает сущности, удовлетворяющие условию
func (s *Store) CountWhere(pred func(e *Entity) bool) int {
	n := 0
	s.Each(func(e *Entity) {
		if pred(e) {
			n++
		}
	})
	return n
}
