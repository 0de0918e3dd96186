package db

import "gorm.io/gorm"

// Paginate limits a query to one page. page and pageSize must already be normalized.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
