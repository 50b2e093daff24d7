package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	order    []string

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByUserAndNameFunc func(ctx context.Context, userID, name string) (*domain.Account, error)
	ListByUserFunc       func(ctx context.Context, userID string) ([]*domain.Account, error)
	UpdateFunc           func(ctx context.Context, account *domain.Account) error
	DeleteFunc           func(ctx context.Context, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	m.order = append(m.order, account.ID)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUserAndName(ctx context.Context, userID, name string) (*domain.Account, error) {
	if m.GetByUserAndNameFunc != nil {
		return m.GetByUserAndNameFunc(ctx, userID, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		acc := m.accounts[id]
		if acc != nil && acc.UserID == userID && acc.Name == name {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range m.order {
		acc := m.accounts[id]
		if acc != nil && acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset
	order  []string

	CreateFunc      func(ctx context.Context, asset *domain.Asset) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Asset, error)
	GetBySymbolFunc func(ctx context.Context, symbol string) (*domain.Asset, error)
	ListFunc        func(ctx context.Context) ([]*domain.Asset, error)
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]*domain.Asset),
	}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
	m.order = append(m.order, asset.ID)
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	if m.GetBySymbolFunc != nil {
		return m.GetBySymbolFunc(ctx, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if a := m.assets[id]; a != nil && a.Symbol == symbol {
			return a, nil
		}
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	assets := make([]*domain.Asset, 0, len(m.order))
	for _, id := range m.order {
		if a := m.assets[id]; a != nil {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
	order      []string

	CreateFunc    func(ctx context.Context, category *domain.Category) error
	GetByNameFunc func(ctx context.Context, name string) (*domain.Category, error)
	ListFunc      func(ctx context.Context) ([]*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	m.order = append(m.order, category.ID)
	return nil
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if c := m.categories[id]; c != nil && c.Name == name {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	categories := make([]*domain.Category, 0, len(m.order))
	for _, id := range m.order {
		if c := m.categories[id]; c != nil {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	CreateFunc              func(ctx context.Context, txn *domain.Transaction) error
	ListByUserAndKindsFunc  func(ctx context.Context, userID string, kinds []domain.Kind) ([]*domain.Transaction, error)
	ListExpensesByRangeFunc func(ctx context.Context, userID string, from, to time.Time, categoryID string) ([]*domain.Transaction, error)
	SumExpensesFunc         func(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txn)
	return nil
}

func (m *MockTransactionRepository) ListByUserAndKinds(ctx context.Context, userID string, kinds []domain.Kind) ([]*domain.Transaction, error) {
	if m.ListByUserAndKindsFunc != nil {
		return m.ListByUserAndKindsFunc(ctx, userID, kinds)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[domain.Kind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	var result []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID && wanted[txn.Kind] {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) ListExpensesByRange(ctx context.Context, userID string, from, to time.Time, categoryID string) ([]*domain.Transaction, error) {
	if m.ListExpensesByRangeFunc != nil {
		return m.ListExpensesByRangeFunc(ctx, userID, from, to, categoryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.UserID != userID || txn.Kind != domain.KindExpense {
			continue
		}
		if txn.OccurredAt.Before(from) || txn.OccurredAt.After(to) {
			continue
		}
		if categoryID != "" && txn.CategoryID != categoryID {
			continue
		}
		result = append(result, txn)
	}
	return result, nil
}

func (m *MockTransactionRepository) SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	if m.SumExpensesFunc != nil {
		return m.SumExpensesFunc(ctx, userID, categoryID, from, to)
	}
	txns, err := m.ListExpensesByRange(ctx, userID, from, to, categoryID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.FromAmount)
	}
	return total, nil
}

// MockPriceRepository is a mock implementation of PriceRepository.
type MockPriceRepository struct {
	mu     sync.RWMutex
	prices []*domain.PricePoint

	CreateFunc         func(ctx context.Context, price *domain.PricePoint) error
	LatestPriceMapFunc func(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
	LatestPricesFunc   func(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error)
}

func NewMockPriceRepository() *MockPriceRepository {
	return &MockPriceRepository{}
}

func (m *MockPriceRepository) Create(ctx context.Context, price *domain.PricePoint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, price)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices = append(m.prices, price)
	return nil
}

func (m *MockPriceRepository) LatestPriceMap(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	if m.LatestPriceMapFunc != nil {
		return m.LatestPriceMapFunc(ctx, baseCurrency)
	}
	latest, err := m.LatestPrices(ctx, baseCurrency)
	if err != nil {
		return nil, err
	}
	result := make(map[string]decimal.Decimal, len(latest))
	for _, p := range latest {
		result[p.AssetID] = p.Price
	}
	return result, nil
}

func (m *MockPriceRepository) LatestPrices(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error) {
	if m.LatestPricesFunc != nil {
		return m.LatestPricesFunc(ctx, baseCurrency)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	latest := make(map[string]*domain.PricePoint)
	for _, p := range m.prices {
		if p.BaseCurrency != baseCurrency {
			continue
		}
		if prev, ok := latest[p.AssetID]; !ok || p.Timestamp.After(prev.Timestamp) {
			latest[p.AssetID] = p
		}
	}
	result := make([]*domain.PricePoint, 0, len(latest))
	for _, p := range latest {
		result = append(result, p)
	}
	return result, nil
}

// MockPortfolioRepository is a mock implementation of PortfolioRepository.
type MockPortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.Portfolio
	order      []string

	CreateFunc     func(ctx context.Context, portfolio *domain.Portfolio) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Portfolio, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Portfolio, error)
}

func NewMockPortfolioRepository() *MockPortfolioRepository {
	return &MockPortfolioRepository{
		portfolios: make(map[string]*domain.Portfolio),
	}
}

func (m *MockPortfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, portfolio)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolios[portfolio.ID] = portfolio
	m.order = append(m.order, portfolio.ID)
	return nil
}

func (m *MockPortfolioRepository) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.portfolios[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPortfolioNotFound
}

func (m *MockPortfolioRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var portfolios []*domain.Portfolio
	for _, id := range m.order {
		if p := m.portfolios[id]; p != nil && p.UserID == userID {
			portfolios = append(portfolios, p)
		}
	}
	return portfolios, nil
}

// MockAllocationRepository is a mock implementation of AllocationRepository.
type MockAllocationRepository struct {
	mu          sync.RWMutex
	allocations []*domain.Allocation

	ListByPortfolioFunc     func(ctx context.Context, portfolioID string) ([]*domain.Allocation, error)
	CreateTxFunc            func(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error
	DeleteByPortfolioTxFunc func(ctx context.Context, tx usecase.Transaction, portfolioID string) error
}

func NewMockAllocationRepository() *MockAllocationRepository {
	return &MockAllocationRepository{}
}

func (m *MockAllocationRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]*domain.Allocation, error) {
	if m.ListByPortfolioFunc != nil {
		return m.ListByPortfolioFunc(ctx, portfolioID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Allocation
	for _, a := range m.allocations {
		if a.PortfolioID == portfolioID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockAllocationRepository) CreateTx(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, allocation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations = append(m.allocations, allocation)
	return nil
}

func (m *MockAllocationRepository) DeleteByPortfolioTx(ctx context.Context, tx usecase.Transaction, portfolioID string) error {
	if m.DeleteByPortfolioTxFunc != nil {
		return m.DeleteByPortfolioTxFunc(ctx, tx, portfolioID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.allocations[:0]
	for _, a := range m.allocations {
		if a.PortfolioID != portfolioID {
			kept = append(kept, a)
		}
	}
	m.allocations = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
