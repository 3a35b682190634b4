package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	numbers  map[string]bool

	CreateFunc  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Account, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		numbers:  make(map[string]bool),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.numbers[account.AccountNumber] {
		return domain.ErrDuplicateAccountNumber
	}

	m.accounts[account.ID] = account
	m.numbers[account.AccountNumber] = true

	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		all = append(all, a)
	}

	if offset >= len(all) {
		return nil, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	delete(m.accounts, id)
	delete(m.numbers, account.AccountNumber)

	return nil
}

// MockLedgerStore is an in-memory implementation of LedgerStore. Its
// default ApplyTransfer is internally synchronized and enforces the same
// semantics as the postgres store: both accounts must exist, the source
// must cover the amount at commit time, and the paired records share the
// transfer id. Tests can drive concurrency against it directly.
type MockLedgerStore struct {
	mu           sync.Mutex
	balances     map[string]decimal.Decimal
	transactions []*domain.Transaction
	seq          int

	ApplyTransferFunc func(ctx context.Context, fromID, toID string, amount decimal.Decimal, transferID string, now time.Time) (*domain.Transaction, *domain.Transaction, error)
}

func NewMockLedgerStore() *MockLedgerStore {
	return &MockLedgerStore{
		balances: make(map[string]decimal.Decimal),
	}
}

// SeedAccount registers an account with an initial balance.
func (m *MockLedgerStore) SeedAccount(id string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[id] = balance
}

func (m *MockLedgerStore) ApplyTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, transferID string, now time.Time) (*domain.Transaction, *domain.Transaction, error) {
	if m.ApplyTransferFunc != nil {
		return m.ApplyTransferFunc(ctx, fromID, toID, amount, transferID, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromBalance, ok := m.balances[fromID]
	if !ok {
		return nil, nil, domain.ErrAccountNotFound
	}

	toBalance, ok := m.balances[toID]
	if !ok {
		return nil, nil, domain.ErrAccountNotFound
	}

	if fromBalance.LessThan(amount) {
		return nil, nil, domain.ErrInsufficientFunds
	}

	m.balances[fromID] = fromBalance.Sub(amount)
	m.balances[toID] = toBalance.Add(amount)

	m.seq++
	debit := &domain.Transaction{
		ID:         fmt.Sprintf("txn-%d", m.seq),
		AccountID:  fromID,
		TransferID: transferID,
		Amount:     amount.Neg(),
		CreatedAt:  now,
	}

	m.seq++
	credit := &domain.Transaction{
		ID:         fmt.Sprintf("txn-%d", m.seq),
		AccountID:  toID,
		TransferID: transferID,
		Amount:     amount,
		CreatedAt:  now,
	}

	m.transactions = append(m.transactions, debit, credit)

	return debit, credit, nil
}

// Balance returns the current balance of a seeded account.
func (m *MockLedgerStore) Balance(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balances[id]
}

// TransactionCount returns the number of recorded ledger records.
func (m *MockLedgerStore) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.transactions)
}

// SumByAccount returns the signed sum of all records for one account.
func (m *MockLedgerStore) SumByAccount(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.AccountID == id {
			sum = sum.Add(t.Amount)
		}
	}

	return sum
}

// Transactions returns a snapshot of all recorded ledger records.
func (m *MockLedgerStore) Transactions() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Transaction, len(m.transactions))
	copy(out, m.transactions)

	return out
}

// MockLockManager is a pass-through lock manager for tests that do not
// exercise contention.
type MockLockManager struct {
	WithLockedPairFunc func(ctx context.Context, idA, idB string, fn func() error) error
	WithLockedFunc     func(ctx context.Context, id string, fn func() error) error

	pairCalls atomic.Int32
}

func NewMockLockManager() *MockLockManager {
	return &MockLockManager{}
}

func (m *MockLockManager) WithLockedPair(ctx context.Context, idA, idB string, fn func() error) error {
	m.pairCalls.Add(1)

	if m.WithLockedPairFunc != nil {
		return m.WithLockedPairFunc(ctx, idA, idB, fn)
	}

	return fn()
}

func (m *MockLockManager) WithLocked(ctx context.Context, id string, fn func() error) error {
	if m.WithLockedFunc != nil {
		return m.WithLockedFunc(ctx, id, fn)
	}

	return fn()
}

// PairCalls reports how many pair acquisitions were requested.
func (m *MockLockManager) PairCalls() int {
	return int(m.pairCalls.Load())
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	return fmt.Sprintf("id-%d", m.counter.Add(1))
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu     sync.Mutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}

	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

// Contains reports whether a key is present.
func (m *MockCache) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.values[key]

	return ok
}
