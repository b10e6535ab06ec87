package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/pkg/common"
)

type User struct {
	ID        int64          `gorm:"primaryKey" json:"id,string" form:"id"`
	AccountID string         `gorm:"size:36;uniqueIndex" json:"account_id" form:"account_id"`
	Firstname string         `gorm:"size:100" json:"firstname" form:"firstname"`
	Lastname  string         `gorm:"size:100" json:"lastname" form:"lastname"`
	Email     string         `gorm:"size:255;index" json:"email" form:"email"`
	Password  string         `gorm:"size:128" json:"-"`
	IsActive  bool           `json:"is_active" form:"is_active"`
	IsAdmin   bool           `json:"is_admin" form:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = common.UUIDint64()
	}
	if u.AccountID == "" {
		u.AccountID = uuid.NewString()
	}
	return nil
}
