package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
)

// MemoryStore is an in-memory repository.Factory for tests.
// Err, when set, is returned by every operation.
type MemoryStore struct {
	mu         sync.Mutex
	customers  map[string]model.Customer
	orders     map[string]model.Order
	gluing     map[string]model.GluingRecord
	users      map[string]model.User
	telegram   model.TelegramConfig
	lastBackup time.Time

	Err error
	// Calls records mutating operations in order, e.g. "UpsertManyCustomers".
	Calls []string
}

var _ repository.Factory = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[string]model.Customer),
		orders:    make(map[string]model.Order),
		gluing:    make(map[string]model.GluingRecord),
		users:     make(map[string]model.User),
	}
}

func (s *MemoryStore) record(call string) error {
	s.Calls = append(s.Calls, call)
	return s.Err
}

func (s *MemoryStore) Customers() repository.CustomerRepository { return memoryCustomers{s} }
func (s *MemoryStore) Orders() repository.OrderRepository       { return memoryOrders{s} }
func (s *MemoryStore) Gluing() repository.GluingRepository      { return memoryGluing{s} }
func (s *MemoryStore) Users() repository.UserRepository         { return memoryUsers{s} }
func (s *MemoryStore) Settings() repository.SettingsRepository  { return memorySettings{s} }

// ReplaceAll swaps every table for snapshot. The last backup marker is kept.
func (s *MemoryStore) ReplaceAll(_ context.Context, snap repository.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ReplaceAll"); err != nil {
		return err
	}
	s.customers = make(map[string]model.Customer)
	s.orders = make(map[string]model.Order)
	s.gluing = make(map[string]model.GluingRecord)
	s.users = make(map[string]model.User)
	for _, c := range snap.Customers {
		s.customers[c.ID] = c
	}
	for _, o := range snap.Orders {
		s.orders[o.ID] = o
	}
	for _, g := range snap.Gluing {
		s.gluing[g.ID] = g
	}
	for _, u := range snap.Users {
		s.users[u.Username] = u
	}
	s.telegram = snap.Telegram
	return nil
}

type memoryCustomers struct{ s *MemoryStore }

func (r memoryCustomers) List(context.Context) ([]model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryCustomers) Get(_ context.Context, id string) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

func (r memoryCustomers) Upsert(_ context.Context, c model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertCustomer"); err != nil {
		return err
	}
	r.s.customers[c.ID] = c
	return nil
}

func (r memoryCustomers) UpsertMany(_ context.Context, cs []model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertManyCustomers"); err != nil {
		return err
	}
	for _, c := range cs {
		r.s.customers[c.ID] = c
	}
	return nil
}

func (r memoryCustomers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("DeleteCustomer"); err != nil {
		return err
	}
	if _, ok := r.s.customers[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.customers, id)
	for oid, o := range r.s.orders {
		if o.CustomerID == id {
			delete(r.s.orders, oid)
		}
	}
	return nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) List(context.Context) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryOrders) Get(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

func (r memoryOrders) Upsert(_ context.Context, o model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertOrder"); err != nil {
		return err
	}
	r.s.orders[o.ID] = o
	return nil
}

func (r memoryOrders) UpsertMany(_ context.Context, batch []model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertManyOrders"); err != nil {
		return err
	}
	for _, o := range batch {
		r.s.orders[o.ID] = o
	}
	return nil
}

func (r memoryOrders) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("DeleteOrder"); err != nil {
		return err
	}
	if _, ok := r.s.orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

type memoryGluing struct{ s *MemoryStore }

func (r memoryGluing) List(context.Context) ([]model.GluingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.GluingRecord, 0, len(r.s.gluing))
	for _, g := range r.s.gluing {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r memoryGluing) Upsert(_ context.Context, g model.GluingRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertGluing"); err != nil {
		return err
	}
	r.s.gluing[g.ID] = g
	return nil
}

func (r memoryGluing) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("DeleteGluing"); err != nil {
		return err
	}
	if _, ok := r.s.gluing[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.gluing, id)
	return nil
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) List(context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r memoryUsers) Get(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &u, nil
}

func (r memoryUsers) Upsert(_ context.Context, u model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("UpsertUser"); err != nil {
		return err
	}
	r.s.users[u.Username] = u
	return nil
}

func (r memoryUsers) Delete(_ context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("DeleteUser"); err != nil {
		return err
	}
	if _, ok := r.s.users[username]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.users, username)
	return nil
}

type memorySettings struct{ s *MemoryStore }

func (r memorySettings) TelegramConfig(context.Context) (model.TelegramConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.telegram, r.s.Err
}

func (r memorySettings) SaveTelegramConfig(_ context.Context, cfg model.TelegramConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("SaveTelegramConfig"); err != nil {
		return err
	}
	r.s.telegram = cfg
	return nil
}

func (r memorySettings) LastBackup(context.Context) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.lastBackup, r.s.Err
}

func (r memorySettings) RecordBackup(_ context.Context, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.record("RecordBackup"); err != nil {
		return err
	}
	r.s.lastBackup = at
	return nil
}
