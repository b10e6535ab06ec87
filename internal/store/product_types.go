package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
)

// ProductTypeStore handles database operations for the product-type catalog
type ProductTypeStore interface {
	List(ctx context.Context, withDeleted bool) ([]domain.ProductType, error)
	ByID(ctx context.Context, id int64) (*domain.ProductType, error)
	ByIDAny(ctx context.Context, id int64) (*domain.ProductType, error)

	// NameExists reports whether a live row already uses the normalized name
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	Create(ctx context.Context, pt *domain.ProductType) error
	Update(ctx context.Context, pt *domain.ProductType) error
	Trash(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	Purge(ctx context.Context, id int64) error
}

// GormProductTypeStore is the GORM implementation of ProductTypeStore
type GormProductTypeStore struct {
	db *gorm.DB
}

func NewGormProductTypeStore(db *gorm.DB) *GormProductTypeStore {
	return &GormProductTypeStore{db: db}
}

func (s *GormProductTypeStore) List(ctx context.Context, withDeleted bool) ([]domain.ProductType, error) {
	db := s.db.WithContext(ctx)
	if withDeleted {
		db = db.Unscoped()
	}
	var types []domain.ProductType
	if err := db.Order("name").Find(&types).Error; err != nil {
		return nil, errors.Wrap(err, "list product types")
	}
	return types, nil
}

func (s *GormProductTypeStore) ByID(ctx context.Context, id int64) (*domain.ProductType, error) {
	var pt domain.ProductType
	if err := s.db.WithContext(ctx).First(&pt, id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

func (s *GormProductTypeStore) ByIDAny(ctx context.Context, id int64) (*domain.ProductType, error) {
	var pt domain.ProductType
	if err := s.db.WithContext(ctx).Unscoped().First(&pt, id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

func (s *GormProductTypeStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	db := s.db.WithContext(ctx).Model(&domain.ProductType{}).Where("name = ?", name)
	if excludeID != 0 {
		db = db.Where("id != ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count product types by name")
	}
	return count > 0, nil
}

func (s *GormProductTypeStore) Create(ctx context.Context, pt *domain.ProductType) error {
	return s.db.WithContext(ctx).Create(pt).Error
}

func (s *GormProductTypeStore) Update(ctx context.Context, pt *domain.ProductType) error {
	return s.db.WithContext(ctx).Save(pt).Error
}

func (s *GormProductTypeStore) Trash(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.ProductType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormProductTypeStore) Restore(ctx context.Context, id int64) error {
	return restoreModel(s.db.WithContext(ctx), &domain.ProductType{}, id)
}

func (s *GormProductTypeStore) Purge(ctx context.Context, id int64) error {
	return purgeModel(s.db.WithContext(ctx), &domain.ProductType{}, id)
}
