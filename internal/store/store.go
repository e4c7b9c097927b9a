package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/models"
	"restaurant-pos/internal/status"
)

var (
	ErrEmptyCart        = errors.New("order must contain at least one line")
	ErrInvalidOrderType = errors.New("order type must be dine-in or takeaway")
	ErrTableRequired    = errors.New("dine-in orders require a table")
	ErrTableNotAllowed  = errors.New("takeaway orders must not reference a table")
	ErrTableNotFound    = errors.New("table not found")
	ErrTableUnavailable = errors.New("table is not available")
	ErrOrderNotFound    = errors.New("order not found")
	ErrStaleOrder       = errors.New("order was modified since it was last read")
)

// EventKind classifies store notifications
type EventKind string

const (
	EventCommitted     EventKind = "committed"
	EventStatusChanged EventKind = "status_changed"
)

// Event describes a completed mutation. The order is a snapshot copy.
type Event struct {
	Kind  EventKind    `json:"kind"`
	Order models.Order `json:"order"`
}

// Listener receives events after each successful mutation. Listeners are
// invoked outside the store's locks and must not call back into mutations
// synchronously if they need ordering guarantees.
type Listener func(Event)

// Filter narrows List results; zero values match everything
type Filter struct {
	Status models.OrderStatus
	Type   models.OrderType
}

// Store is the authoritative shared order and table state for every
// terminal. Mutations to a single order or table are serialized by a
// per-key lock; reads never block writers and always see a consistent
// snapshot. A status transition and its table release apply atomically.
type Store struct {
	machine *status.Machine
	now     func() time.Time

	mu     sync.RWMutex
	orders map[string]*models.Order
	tables map[string]*models.Table
	seq    int

	keyMu sync.Mutex
	keys  map[string]*sync.Mutex

	listenerMu sync.RWMutex
	listeners  []Listener
}

// New creates a store seeded with the given tables. A nil clock means the
// wall clock.
func New(machine *status.Machine, tables []models.Table, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	s := &Store{
		machine: machine,
		now:     now,
		orders:  make(map[string]*models.Order),
		tables:  make(map[string]*models.Table, len(tables)),
		keys:    make(map[string]*sync.Mutex),
	}
	for _, t := range tables {
		tt := t
		s.tables[t.ID] = &tt
	}
	return s
}

// AddListener registers a listener for all future events
func (s *Store) AddListener(l Listener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(ev Event) {
	s.listenerMu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

// keyLock returns the mutex serializing mutations for one order or table id
func (s *Store) keyLock(id string) *sync.Mutex {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	m, ok := s.keys[id]
	if !ok {
		m = &sync.Mutex{}
		s.keys[id] = m
	}
	return m
}

// Commit turns a drafted line set into a persisted order. For dine-in
// orders the chosen table's available -> occupied check-and-set is the
// single point of truth: when two terminals race for one table, the first
// committer wins and the loser gets ErrTableUnavailable.
func (s *Store) Commit(lines []models.CartLine, orderType models.OrderType, tableID string) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	switch orderType {
	case models.DineIn:
		if tableID == "" {
			return models.Order{}, ErrTableRequired
		}
	case models.Takeaway:
		if tableID != "" {
			return models.Order{}, ErrTableNotAllowed
		}
	default:
		return models.Order{}, ErrInvalidOrderType
	}

	if tableID != "" {
		lock := s.keyLock("table:" + tableID)
		lock.Lock()
		defer lock.Unlock()
	}

	s.mu.Lock()

	if tableID != "" {
		table, ok := s.tables[tableID]
		if !ok {
			s.mu.Unlock()
			return models.Order{}, ErrTableNotFound
		}
		if table.Status != models.TableAvailable {
			s.mu.Unlock()
			return models.Order{}, ErrTableUnavailable
		}
		table.Status = models.TableOccupied
	}

	now := s.now()
	s.seq++
	order := &models.Order{
		ID:        uuid.New().String(),
		Number:    s.seq,
		Type:      orderType,
		TableID:   tableID,
		Lines:     cloneLines(lines),
		Status:    models.StatusPending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[order.ID] = order
	snapshot := order.Clone()

	s.mu.Unlock()

	s.notify(Event{Kind: EventCommitted, Order: snapshot})
	return snapshot, nil
}

// ApplyTransition moves an order to targetStatus on behalf of actor.
// expectedVersion must match the order's current version or the request is
// rejected with ErrStaleOrder; callers must act on a freshly-fetched order.
// Reaching a terminal status releases the order's table in the same atomic
// step. An idempotent replay (target equals current status) succeeds
// without changing anything.
func (s *Store) ApplyTransition(orderID string, targetStatus models.OrderStatus, actor models.Actor, expectedVersion int64) (models.Order, error) {
	lock := s.keyLock("order:" + orderID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()

	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}

	if order.Version != expectedVersion {
		s.mu.Unlock()
		return models.Order{}, ErrStaleOrder
	}

	changed, err := s.machine.Transition(order.Status, targetStatus, actor)
	if err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	if !changed {
		snapshot := order.Clone()
		s.mu.Unlock()
		return snapshot, nil
	}

	order.Status = targetStatus
	order.UpdatedAt = s.now()
	order.Version++

	if targetStatus.Terminal() && order.TableID != "" {
		if table, ok := s.tables[order.TableID]; ok {
			table.Status = models.TableAvailable
		}
	}

	snapshot := order.Clone()
	s.mu.Unlock()

	s.notify(Event{Kind: EventStatusChanged, Order: snapshot})
	return snapshot, nil
}

// Get returns a snapshot copy of one order
func (s *Store) Get(orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order.Clone(), nil
}

// List returns snapshot copies of matching orders, oldest first
func (s *Store) List(filter Filter) []models.Order {
	s.mu.RLock()
	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.Type != "" && order.Type != filter.Type {
			continue
		}
		out = append(out, order.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// ListTables returns snapshot copies of all tables, by table number
func (s *Store) ListTables() []models.Table {
	s.mu.RLock()
	out := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, *t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func cloneLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}
