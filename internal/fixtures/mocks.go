// Package fixtures provides hand-maintained test doubles for the
// repository and unit-of-work contracts.
package fixtures

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ozanselte/bankcore/pkg/domain/account"
	"github.com/ozanselte/bankcore/pkg/domain/credit"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/domain/stockorder"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// MockOperationRepository mocks repository.OperationRepository.
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) Create(ctx context.Context, create dto.OperationCreate) (*ledger.Operation, error) {
	args := m.Called(ctx, create)
	if op, ok := args.Get(0).(*ledger.Operation); ok {
		return op, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOperationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error) {
	args := m.Called(ctx, accountID)
	if ops, ok := args.Get(0).([]ledger.Operation); ok {
		return ops, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccountRepository mocks repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if acc, ok := args.Get(0).(*account.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error) {
	args := m.Called(ctx, create)
	if acc, ok := args.Get(0).(*account.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListSavings(ctx context.Context) ([]account.Account, error) {
	args := m.Called(ctx)
	if accs, ok := args.Get(0).([]account.Account); ok {
		return accs, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockStockOrderRepository mocks repository.StockOrderRepository.
type MockStockOrderRepository struct {
	mock.Mock
}

func (m *MockStockOrderRepository) Get(ctx context.Context, id uuid.UUID) (*stockorder.StockOrder, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*stockorder.StockOrder); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockOrderRepository) Create(ctx context.Context, create dto.StockOrderCreate) (*stockorder.StockOrder, error) {
	args := m.Called(ctx, create)
	if o, ok := args.Get(0).(*stockorder.StockOrder); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status stockorder.Status) (*stockorder.StockOrder, error) {
	args := m.Called(ctx, id, status)
	if o, ok := args.Get(0).(*stockorder.StockOrder); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSettingRepository mocks repository.SettingRepository.
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetByCode(ctx context.Context, code setting.Code) (*setting.Setting, error) {
	args := m.Called(ctx, code)
	if s, ok := args.Get(0).(*setting.Setting); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingRepository) Upsert(ctx context.Context, upsert dto.SettingUpsert) error {
	args := m.Called(ctx, upsert)
	return args.Error(0)
}

// MockCreditRepository mocks repository.CreditRepository.
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Create(ctx context.Context, create dto.CreditCreate) (*credit.BankCredit, error) {
	args := m.Called(ctx, create)
	if c, ok := args.Get(0).(*credit.BankCredit); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRepository) ListDue(ctx context.Context, asOf time.Time) ([]credit.BankCredit, error) {
	args := m.Called(ctx, asOf)
	if cs, ok := args.Get(0).([]credit.BankCredit); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditRepository) Advance(ctx context.Context, id uuid.UUID, advance dto.CreditAdvance) error {
	args := m.Called(ctx, id, advance)
	return args.Error(0)
}

// MockUnitOfWork routes Do straight through to the given function and
// hands out the configured repository mocks, so service tests observe
// exactly the calls a real transaction would carry.
type MockUnitOfWork struct {
	Operations  *MockOperationRepository
	Accounts    *MockAccountRepository
	StockOrders *MockStockOrderRepository
	Settings    *MockSettingRepository
	Credits     *MockCreditRepository

	// DoErr, when set, is returned by Do without invoking fn.
	DoErr error
}

// NewMockUnitOfWork creates a MockUnitOfWork with all repository mocks
// initialized.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Operations:  &MockOperationRepository{},
		Accounts:    &MockAccountRepository{},
		StockOrders: &MockStockOrderRepository{},
		Settings:    &MockSettingRepository{},
		Credits:     &MockCreditRepository{},
	}
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if m.DoErr != nil {
		return m.DoErr
	}
	return fn(m)
}

func (m *MockUnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.OperationRepository)(nil)).Elem():
		return m.Operations, nil
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return m.Accounts, nil
	case reflect.TypeOf((*repository.StockOrderRepository)(nil)).Elem():
		return m.StockOrders, nil
	case reflect.TypeOf((*repository.SettingRepository)(nil)).Elem():
		return m.Settings, nil
	case reflect.TypeOf((*repository.CreditRepository)(nil)).Elem():
		return m.Credits, nil
	}
	return nil, nil
}

func (m *MockUnitOfWork) OperationRepository() (repository.OperationRepository, error) {
	return m.Operations, nil
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return m.Accounts, nil
}

func (m *MockUnitOfWork) StockOrderRepository() (repository.StockOrderRepository, error) {
	return m.StockOrders, nil
}

func (m *MockUnitOfWork) SettingRepository() (repository.SettingRepository, error) {
	return m.Settings, nil
}

func (m *MockUnitOfWork) CreditRepository() (repository.CreditRepository, error) {
	return m.Credits, nil
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)

// AssertExpectations asserts every repository mock's expectations.
func (m *MockUnitOfWork) AssertExpectations(t mock.TestingT) {
	m.Operations.AssertExpectations(t)
	m.Accounts.AssertExpectations(t)
	m.StockOrders.AssertExpectations(t)
	m.Settings.AssertExpectations(t)
	m.Credits.AssertExpectations(t)
}
