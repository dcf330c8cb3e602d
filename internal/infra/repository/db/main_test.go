package db

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 每個測試一個獨立的 in-memory sqlite，不需要外部 postgres
func newTestDbDao(t *testing.T) *DbDao {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

func TestDbDao_InitMigrate(t *testing.T) {
	dao := newTestDbDao(t)

	// 冪等性
	require.NoError(t, dao.InitMigrate())
	for _, table := range []string{"customers", "cart_lines", "owners", "admins", "products", "owner_products", "customer_orders", "owner_orders", "order_status_histories"} {
		require.True(t, dao.Migrator().HasTable(table), table)
	}
}
