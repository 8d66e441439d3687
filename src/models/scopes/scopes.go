package scopes

import "gorm.io/gorm"

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithActiveStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "active")
}

// ByRoomNumber gives the deterministic candidate ordering used for room
// selection; repeated queries over the same ledger state rank rooms the same.
func ByRoomNumber(db *gorm.DB) *gorm.DB {
	return db.Order("room_number ASC")
}
