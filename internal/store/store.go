package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/search"
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
	"github.com/Jalpan25/sweetshop-management-system/internal/stock"
)

// State представляет состояние жизненного цикла витрины
type State string

const (
	// StateUninitialized - до первой загрузки
	StateUninitialized State = "uninitialized"
	// StateLoading - запрос снапшота в полёте
	StateLoading State = "loading"
	// StateReady - витрина отражает последний успешный ответ сервера
	StateReady State = "ready"
	// StateError - последняя загрузка упала, повтор вернёт в Ready
	StateError State = "error"
)

// ErrOperationInFlight возвращается при попытке отправить вторую операцию
// по товару, пока первая ещё в полёте. Локальная ошибка, без похода в сеть
var ErrOperationInFlight = errors.New("operation for this sweet is already in flight")

// ErrSweetUnknown возвращается для операции над товаром,
// которого нет в текущем снапшоте витрины
var ErrSweetUnknown = errors.New("sweet is not present in the current snapshot")

// Store держит список товаров текущей сессии
// Владеет снапшотом единолично: каждый успешный ответ сервера замещает
// список целиком, частичных слияний нет. Ответ, пришедший позже более
// свежего, отбрасывается по номеру запроса, а не по порядку прибытия
type Store struct {
	api    SweetAPI
	policy stock.Policy
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	items    []inventory.Sweet
	seq      uint64          // номер последнего выданного запроса снапшота
	applied  uint64          // номер последнего применённого ответа
	inFlight map[string]bool // товары с операцией в полёте
}

// New создаёт витрину поверх удалённого API
func New(api SweetAPI, policy stock.Policy, logger *zap.Logger) *Store {
	return &Store{
		api:      api,
		policy:   policy,
		logger:   logger,
		state:    StateUninitialized,
		inFlight: make(map[string]bool),
	}
}

// State возвращает текущее состояние жизненного цикла
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items возвращает копию текущего снапшота
func (s *Store) Items() []inventory.Sweet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Load замещает снапшот свежим полным списком с сервера
// Безопасно вызывать повторно: каждый вызов полностью вытесняет прежнее
// состояние, устаревший ответ отбрасывается
func (s *Store) Load(ctx context.Context) ([]inventory.Sweet, error) {
	return s.refresh(ctx, func(ctx context.Context) ([]inventory.Sweet, error) {
		return s.api.FetchAll(ctx)
	})
}

// ApplyFilter замещает снапшот результатом серверного поиска
// Пустые критерии эквивалентны Load - "без фильтра", а не "ничего"
func (s *Store) ApplyFilter(ctx context.Context, criteria search.Criteria) ([]inventory.Sweet, error) {
	if criteria.IsEmpty() {
		return s.Load(ctx)
	}
	params := criteria.QueryParams()
	return s.refresh(ctx, func(ctx context.Context) ([]inventory.Sweet, error) {
		return s.api.Search(ctx, params)
	})
}

// refresh выполняет запрос снапшота с учётом номеров запросов
// Ответ применяется только если он свежее последнего применённого
func (s *Store) refresh(ctx context.Context, fetch func(context.Context) ([]inventory.Sweet, error)) ([]inventory.Sweet, error) {
	s.mu.Lock()
	s.seq++
	n := s.seq
	s.state = StateLoading
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= s.applied {
		// Пока запрос летел, применился более свежий ответ - отбрасываем
		s.logger.Debug("Discarding stale snapshot", zap.Uint64("seq", n), zap.Uint64("applied", s.applied))
		return s.snapshotLocked(), nil
	}

	if err != nil {
		s.state = StateError
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}

	s.applied = n
	s.items = items
	s.state = StateReady
	s.logger.Debug("Snapshot applied", zap.Uint64("seq", n), zap.Int("items", len(items)))
	return s.snapshotLocked(), nil
}

// SubmitOperation проверяет операцию локально и отправляет её на сервер
// Локальный отказ возвращается сразу, без похода в сеть и без изменения
// состояния витрины. По одному товару одновременно летит не больше одной
// операции; операции по разным товарам независимы. При успехе остаток
// товара замещается значением из ответа сервера
func (s *Store) SubmitOperation(ctx context.Context, op inventory.Operation) (inventory.Sweet, error) {
	sess, _ := session.FromContext(ctx)
	// Роль фиксируется здесь: смена роли после валидации
	// не влияет на операцию в полёте

	s.mu.Lock()
	current, ok := s.findLocked(op.SweetID)
	if !ok {
		s.mu.Unlock()
		return inventory.Sweet{}, ErrSweetUnknown
	}

	if err := op.Validate(current.Quantity, sess.User.Role, s.policy); err != nil {
		s.mu.Unlock()
		return inventory.Sweet{}, err
	}

	if s.inFlight[op.SweetID] {
		s.mu.Unlock()
		return inventory.Sweet{}, ErrOperationInFlight
	}
	s.inFlight[op.SweetID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, op.SweetID)
		s.mu.Unlock()
	}()

	var (
		updated inventory.Sweet
		err     error
	)
	switch op.Mode {
	case inventory.ModePurchase:
		updated, err = s.api.Purchase(ctx, op.SweetID, op.Quantity)
	case inventory.ModeRestock:
		updated, err = s.api.Restock(ctx, op.SweetID, op.Quantity)
	default:
		return inventory.Sweet{}, fmt.Errorf("unknown operation mode: %s", op.Mode)
	}
	if err != nil {
		s.logger.Warn("Operation rejected",
			zap.String("mode", string(op.Mode)),
			zap.String("sweet_id", op.SweetID),
			zap.Error(err))
		return inventory.Sweet{}, err
	}

	// Точечное обновление: товар из ответа замещает старый целиком
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("Operation applied",
		zap.String("mode", string(op.Mode)),
		zap.String("sweet_id", op.SweetID),
		zap.Int("quantity", op.Quantity),
		zap.Int("remaining", updated.Quantity))
	return updated, nil
}

// Summary содержит сводку витрины для панели менеджера
type Summary struct {
	TotalProducts int
	TotalStock    int
	LowStock      int
	OutOfStock    int
}

// Summary вычисляет сводку по текущему снапшоту
// Категории пересчитываются классификатором на каждый вызов, не кешируются
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	sum.TotalProducts = len(s.items)
	for _, sweet := range s.items {
		sum.TotalStock += sweet.Quantity
		switch s.policy.Classify(sweet.Quantity) {
		case stock.LevelLow:
			sum.LowStock++
		case stock.LevelOutOfStock:
			sum.OutOfStock++
		}
	}
	return sum
}

// Classify возвращает категорию остатка для товара по политике витрины
func (s *Store) Classify(sweet inventory.Sweet) stock.Level {
	return s.policy.Classify(sweet.Quantity)
}

func (s *Store) findLocked(id string) (inventory.Sweet, bool) {
	for _, sweet := range s.items {
		if sweet.ID == id {
			return sweet, true
		}
	}
	return inventory.Sweet{}, false
}

func (s *Store) snapshotLocked() []inventory.Sweet {
	out := make([]inventory.Sweet, len(s.items))
	copy(out, s.items)
	return out
}
