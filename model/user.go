package model

import (
	"time"

	"gorm.io/gorm"
)

const IdxUserEmail = "idx_users_email"

// User stores a verified account
type User struct {
	ID            uint           `gorm:"primarykey"`
	Name          string         `gorm:"size:64;not null"`
	Email         string         `gorm:"uniqueIndex:idx_users_email;size:256;not null"`
	EmailVerified bool           `gorm:"default:false;not null"`
	Password      string         `gorm:"size:64;not null"`
	Disabled      bool           `gorm:"default:false;not null"`
	LastLoginAt   *time.Time     `gorm:"index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}
