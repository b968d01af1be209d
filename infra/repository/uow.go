// Package repository provides the GORM-backed UnitOfWork binding every
// repository to one database transaction.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	accountrepo "github.com/ozanselte/bankcore/infra/repository/account"
	creditrepo "github.com/ozanselte/bankcore/infra/repository/credit"
	operationrepo "github.com/ozanselte/bankcore/infra/repository/operation"
	settingrepo "github.com/ozanselte/bankcore/infra/repository/setting"
	stockorderrepo "github.com/ozanselte/bankcore/infra/repository/stockorder"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Every repository handed out inside Do shares the Do
// transaction, which runs at serializable isolation: the settlement
// engine's derived-balance read and its writes cannot interleave with a
// competing settlement on the same accounts, so the funds check cannot
// be invalidated between check and commit.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.OperationRepository)(nil)).Elem():  func(db *gorm.DB) any { return operationrepo.New(db) },
			reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():    func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*repository.StockOrderRepository)(nil)).Elem(): func(db *gorm.DB) any { return stockorderrepo.New(db) },
			reflect.TypeOf((*repository.SettingRepository)(nil)).Elem():    func(db *gorm.DB) any { return settingrepo.New(db) },
			reflect.TypeOf((*repository.CreditRepository)(nil)).Elem():     func(db *gorm.DB) any { return creditrepo.New(db) },
		},
	}
}

// Do runs the given function in a serializable transaction, providing a
// UoW bound to that transaction for repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// GetRepository provides generic, type-safe access to repositories
// using the transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	if u.tx == nil {
		return nil, fmt.Errorf("repository access outside transaction: call within Do")
	}
	return constructor(u.tx), nil
}

// OperationRepository implements repository.UnitOfWork.
func (u *UoW) OperationRepository() (repository.OperationRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.OperationRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.OperationRepository), nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.AccountRepository), nil
}

// StockOrderRepository implements repository.UnitOfWork.
func (u *UoW) StockOrderRepository() (repository.StockOrderRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.StockOrderRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.StockOrderRepository), nil
}

// SettingRepository implements repository.UnitOfWork.
func (u *UoW) SettingRepository() (repository.SettingRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.SettingRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.SettingRepository), nil
}

// CreditRepository implements repository.UnitOfWork.
func (u *UoW) CreditRepository() (repository.CreditRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.CreditRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.CreditRepository), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
