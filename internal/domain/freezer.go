package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/pkg/common"
)

// FreezerType is a shared catalog entry managed by elevated accounts; its name is
// stored normalized (trimmed, lowercase) and must stay unique among live rows.
type FreezerType struct {
	ID        int64          `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string         `gorm:"size:100;index" json:"name" form:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName Specify table name
func (FreezerType) TableName() string {
	return "freezer_types"
}

func (t *FreezerType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = common.UUIDint64()
	}
	return nil
}

// Freezer is owned by exactly one user; ownership is fixed at creation.
type Freezer struct {
	ID            int64          `gorm:"primaryKey" json:"id,string" form:"id"`
	FreezerSN     string         `gorm:"size:36;uniqueIndex" json:"freezer_sn" form:"freezer_sn"`
	Name          string         `gorm:"size:100;index" json:"name" form:"name"`
	FreezerTypeID int64          `gorm:"index" json:"freezer_type_id,string" form:"freezer_type_id"`
	UserID        int64          `gorm:"index" json:"user_id,string" form:"user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName Specify table name
func (Freezer) TableName() string {
	return "freezers"
}

func (f *Freezer) BeforeCreate(tx *gorm.DB) error {
	if f.ID == 0 {
		f.ID = common.UUIDint64()
	}
	if f.FreezerSN == "" {
		f.FreezerSN = uuid.NewString()
	}
	return nil
}
