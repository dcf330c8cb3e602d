package util

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// IsNil 檢查介面是否為 nil
// 介面內包了 nil 指標也視為 nil
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func, reflect.Interface:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}

// GenerateOrderID 一次結帳只產生一個 order id
func GenerateOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
}

func GenerateID() string {
	return uuid.New().String()
}

// NormalizeEmail email 一律小寫去空白後再比對
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
