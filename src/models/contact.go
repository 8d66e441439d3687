package models

import "hbs/src/types"

type ContactMessage struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`

	types.Timestamps
}
