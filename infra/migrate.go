package infra

import (
	"gorm.io/gorm"

	accountmodel "github.com/ozanselte/bankcore/infra/repository/account"
	creditmodel "github.com/ozanselte/bankcore/infra/repository/credit"
	operationmodel "github.com/ozanselte/bankcore/infra/repository/operation"
	settingmodel "github.com/ozanselte/bankcore/infra/repository/setting"
	stockordermodel "github.com/ozanselte/bankcore/infra/repository/stockorder"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountmodel.Account{},
		&operationmodel.Operation{},
		&stockordermodel.StockOrder{},
		&settingmodel.Setting{},
		&creditmodel.BankCredit{},
	)
}
