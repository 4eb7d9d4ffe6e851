package schedule

import (
	"container/heap"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"sort"
	"strings"

	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCycle             = errors.New("system dependency cycle")
	ErrUnknownDependency = errors.New("unknown system dependency")
	ErrDuplicateSystem   = errors.New("duplicate system name")
	ErrLaterStage        = errors.New("dependency on a system of a later stage")
)

// System - одна игровая система. C - контекст тика, который передается всем системам.
type System[C any] struct {
	Name  string
	Stage Stage
	// After - системы, которые должны завершиться раньше этой.
	// Зависимость на систему более ранней стадии выполнена автоматически.
	After  []string
	Reads  AccessSet
	Writes AccessSet
	Run    func(ctx C) error
}

func (s *System[C]) conflicts(other *System[C]) bool {
	return s.Writes.Overlaps(other.Reads|other.Writes) || other.Writes.Overlaps(s.Reads)
}

// SystemError - система вернула ошибку или упала с паникой
type SystemError struct {
	System string
	Stage  Stage
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system %s (%s): %v", e.System, e.Stage, e.Err)
}

func (e *SystemError) Unwrap() error { return e.Err }

type options struct {
	parallel bool
}

type Option func(*options)

// Parallel включает конкурентное выполнение систем внутри одного батча
func Parallel(enabled bool) Option {
	return func(o *options) { o.parallel = enabled }
}

// Scheduler - разрешенный на старте план выполнения тика
type Scheduler[C any] struct {
	order    [stageCount][]*System[C]
	batches  [stageCount][][]*System[C]
	parallel bool
	log      *logrus.Entry
}

// New проверяет граф зависимостей и строит порядок для каждой стадии.
// Цикл в графе - фатальная ошибка запуска.
func New[C any](systems []System[C], opts ...Option) (*Scheduler[C], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	systems = slices.Clone(systems)
	byName := make(map[string]*System[C], len(systems))
	var perStage [stageCount][]*System[C]
	for i := range systems {
		s := &systems[i]
		if s.Run == nil {
			return nil, fmt.Errorf("system %q has no Run func", s.Name)
		}
		if s.Stage >= stageCount {
			return nil, fmt.Errorf("system %q has invalid stage %d", s.Name, s.Stage)
		}
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSystem, s.Name)
		}
		byName[s.Name] = s
		perStage[s.Stage] = append(perStage[s.Stage], s)
	}

	sch := &Scheduler[C]{parallel: o.parallel, log: logger.Component("scheduler")}
	for _, stage := range Stages() {
		order, err := resolveStage(perStage[stage], byName)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		sch.order[stage] = order
		sch.batches[stage] = buildBatches(order)
	}
	return sch, nil
}

// resolveStage - топологическая сортировка Кана.
// Среди готовых систем первой идет зарегистрированная раньше.
func resolveStage[C any](systems []*System[C], byName map[string]*System[C]) ([]*System[C], error) {
	index := make(map[string]int, len(systems))
	for i, s := range systems {
		index[s.Name] = i
	}

	indegree := make([]int, len(systems))
	successors := make([][]int, len(systems))
	for i, s := range systems {
		for _, dep := range s.After {
			target, known := byName[dep]
			if !known {
				return nil, fmt.Errorf("%w: %s runs after %s", ErrUnknownDependency, s.Name, dep)
			}
			if target.Stage < s.Stage {
				continue
			}
			if target.Stage > s.Stage {
				return nil, fmt.Errorf("%w: %s runs after %s (%s)", ErrLaterStage, s.Name, dep, target.Stage)
			}
			j := index[dep]
			successors[j] = append(successors[j], i)
			indegree[i]++
		}
	}

	ready := make(readyQueue, 0, len(systems))
	heap.Init(&ready)
	for i := range systems {
		if indegree[i] == 0 {
			heap.Push(&ready, &readyItem{node: i, Priority: i})
		}
	}

	order := make([]*System[C], 0, len(systems))
	for ready.Len() > 0 {
		item := heap.Pop(&ready).(*readyItem)
		order = append(order, systems[item.node])
		for _, next := range successors[item.node] {
			indegree[next]--
			if indegree[next] == 0 {
				heap.Push(&ready, &readyItem{node: next, Priority: next})
			}
		}
	}

	if len(order) != len(systems) {
		var stuck []string
		for i, s := range systems {
			if indegree[i] > 0 {
				stuck = append(stuck, s.Name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(stuck, ", "))
	}
	return order, nil
}

// buildBatches раскладывает упорядоченные системы по батчам.
// Система попадает в батч строго после всех своих зависимостей
// и всех более ранних систем, с которыми конфликтует по доступу.
func buildBatches[C any](order []*System[C]) [][]*System[C] {
	level := make(map[string]int, len(order))
	var batches [][]*System[C]
	for i, s := range order {
		b := 0
		for _, dep := range s.After {
			if l, ok := level[dep]; ok && l+1 > b {
				b = l + 1
			}
		}
		for _, prev := range order[:i] {
			if s.conflicts(prev) && level[prev.Name]+1 > b {
				b = level[prev.Name] + 1
			}
		}
		level[s.Name] = b
		if b == len(batches) {
			batches = append(batches, nil)
		}
		batches[b] = append(batches[b], s)
	}
	return batches
}

// Run выполняет один тик. Ошибки систем логируются и возвращаются, но тик не прерывают.
func (s *Scheduler[C]) Run(ctx C) []error {
	var errs []error
	for _, stage := range Stages() {
		for _, batch := range s.batches[stage] {
			errs = append(errs, s.runBatch(ctx, stage, batch)...)
		}
	}
	return errs
}

func (s *Scheduler[C]) runBatch(ctx C, stage Stage, batch []*System[C]) []error {
	results := make([]error, len(batch))
	if s.parallel && len(batch) > 1 {
		var g errgroup.Group
		for i, sys := range batch {
			g.Go(func() error {
				results[i] = s.invoke(ctx, stage, sys)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, sys := range batch {
			results[i] = s.invoke(ctx, stage, sys)
		}
	}

	var errs []error
	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Scheduler[C]) invoke(ctx C, stage Stage, sys *System[C]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SystemError{System: sys.Name, Stage: stage, Err: fmt.Errorf("panic: %v", r)}
			s.log.WithFields(logrus.Fields{
				"system": sys.Name,
				"stage":  stage.String(),
				"stack":  string(debug.Stack()),
			}).Error("System panicked")
		}
	}()

	if runErr := sys.Run(ctx); runErr != nil {
		s.log.WithFields(logrus.Fields{
			"system": sys.Name,
			"stage":  stage.String(),
		}).WithError(runErr).Warn("System failed")
		return &SystemError{System: sys.Name, Stage: stage, Err: runErr}
	}
	return nil
}

// Order - разрешенный порядок систем стадии
func (s *Scheduler[C]) Order(stage Stage) []string {
	out := make([]string, 0, len(s.order[stage]))
	for _, sys := range s.order[stage] {
		out = append(out, sys.Name)
	}
	return out
}

// Batches - группы систем стадии, которые могут выполняться одновременно
func (s *Scheduler[C]) Batches(stage Stage) [][]string {
	out := make([][]string, 0, len(s.batches[stage]))
	for _, batch := range s.batches[stage] {
		names := make([]string, 0, len(batch))
		for _, sys := range batch {
			names = append(names, sys.Name)
		}
		out = append(out, names)
	}
	return out
}

func (s *Scheduler[C]) Parallel() bool {
	return s.parallel
}
