package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrStatusChanged owner 訂單狀態已被其他請求修改
	ErrStatusChanged = errors.New("order status changed concurrently")
	// ErrCartChanged 結帳期間購物車內容被其他請求修改
	ErrCartChanged = errors.New("cart changed during checkout")
	// ErrCatalogOutOfSync 商品目錄與 owner 商品清單不一致
	ErrCatalogOutOfSync = errors.New("catalog and owner product list out of sync")
)

// 不同driver 對 unique 衝突的錯誤不一定有轉成 gorm.ErrDuplicatedKey
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// IsNotFound 是否為查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicated 是否為主鍵或 unique 衝突
func IsDuplicated(err error) bool {
	return isDuplicateKeyError(err)
}
