package schedule

import "strings"

// Stage - фаза тика. Стадии выполняются строго по порядку.
type Stage uint8

const (
	// StagePreUpdate - таймеры и служебный учет
	StagePreUpdate Stage = iota
	// StageUpdate - игровые мутации
	StageUpdate
	// StagePostUpdate - побочные эффекты и синхронизация наружу
	StagePostUpdate
	// StageLast - финальная уборка и удаление сущностей
	StageLast

	stageCount
)

var stageNames = [stageCount]string{"pre_update", "update", "post_update", "last"}

func (s Stage) String() string {
	if s < stageCount {
		return stageNames[s]
	}
	return "unknown"
}

// Stages - все стадии в порядке выполнения
func Stages() []Stage {
	return []Stage{StagePreUpdate, StageUpdate, StagePostUpdate, StageLast}
}

// AccessSet - битовое множество ресурсов (видов компонентов, очередей событий),
// к которым система обращается на чтение или запись
type AccessSet uint64

func (a AccessSet) Overlaps(b AccessSet) bool {
	return a&b != 0
}

// Names раскладывает множество на имена битов по таблице
func (a AccessSet) Names(names map[AccessSet]string) string {
	var parts []string
	for bit := AccessSet(1); bit != 0; bit <<= 1 {
		if a&bit == 0 {
			continue
		}
		if n, ok := names[bit]; ok {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ",")
}
