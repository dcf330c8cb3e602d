package db

import (
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.Customer{},
		&model.CartLine{},
		&model.Owner{},
		&model.Admin{},
		&model.Product{},
		&model.OwnerProduct{},
		&model.CustomerOrder{},
		&model.OwnerOrder{},
		&model.OrderStatusHistory{},
	)
}
