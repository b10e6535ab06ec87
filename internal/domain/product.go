package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/pkg/common"
)

// ProductType is a shared catalog entry managed by elevated accounts.
type ProductType struct {
	ID        int64          `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string         `gorm:"size:100;index" json:"name" form:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName Specify table name
func (ProductType) TableName() string {
	return "product_types"
}

func (t *ProductType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = common.UUIDint64()
	}
	return nil
}

type Product struct {
	ID            int64          `gorm:"primaryKey" json:"id,string" form:"id"`
	ProductSN     string         `gorm:"size:36;uniqueIndex" json:"product_sn" form:"product_sn"`
	Name          string         `gorm:"size:100;index" json:"name" form:"name"`
	FreezerID     int64          `gorm:"index" json:"freezer_id,string" form:"freezer_id"`
	UserID        int64          `gorm:"index" json:"user_id,string" form:"user_id"`
	ProductTypeID int64          `gorm:"index" json:"product_type_id,string" form:"product_type_id"`
	Quantity      int            `json:"quantity" form:"quantity"`
	AddingDate    time.Time      `json:"adding_date" form:"adding_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	if p.ProductSN == "" {
		p.ProductSN = uuid.NewString()
	}
	return nil
}
