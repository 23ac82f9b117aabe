package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username      string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"` // bcrypt hash
	Email         string // optional, needed only for password reset
	FullName      string
	Age           int
	Gender        string `gorm:"size:16"` // "Laki-laki" | "Perempuan"
	ResetToken    string
	ResetTokenExp time.Time
}
