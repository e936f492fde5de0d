package model

import (
	"time"

	"gorm.io/gorm"
)

// PendingUser stores a registration waiting for email verification
type PendingUser struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"size:64;not null"`
	Email       string `gorm:"size:256;not null;index"`
	Password    string `gorm:"size:64;not null"`
	ActiveToken string `gorm:"size:256;not null"`
	Approved    bool   `gorm:"default:false;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (u *PendingUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}
