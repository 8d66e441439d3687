package models

import "hbs/src/types"

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	PasswordHash string `json:"-"`

	types.Timestamps
}
