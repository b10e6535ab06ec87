package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
)

// FreezerTypeStore handles database operations for the freezer-type catalog
type FreezerTypeStore interface {
	List(ctx context.Context, withDeleted bool) ([]domain.FreezerType, error)
	ByID(ctx context.Context, id int64) (*domain.FreezerType, error)
	ByIDAny(ctx context.Context, id int64) (*domain.FreezerType, error)

	// NameExists reports whether a live row already uses the normalized name
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	Create(ctx context.Context, ft *domain.FreezerType) error
	Update(ctx context.Context, ft *domain.FreezerType) error
	Trash(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	Purge(ctx context.Context, id int64) error
}

// GormFreezerTypeStore is the GORM implementation of FreezerTypeStore
type GormFreezerTypeStore struct {
	db *gorm.DB
}

func NewGormFreezerTypeStore(db *gorm.DB) *GormFreezerTypeStore {
	return &GormFreezerTypeStore{db: db}
}

func (s *GormFreezerTypeStore) List(ctx context.Context, withDeleted bool) ([]domain.FreezerType, error) {
	db := s.db.WithContext(ctx)
	if withDeleted {
		db = db.Unscoped()
	}
	var types []domain.FreezerType
	if err := db.Order("name").Find(&types).Error; err != nil {
		return nil, errors.Wrap(err, "list freezer types")
	}
	return types, nil
}

func (s *GormFreezerTypeStore) ByID(ctx context.Context, id int64) (*domain.FreezerType, error) {
	var ft domain.FreezerType
	if err := s.db.WithContext(ctx).First(&ft, id).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (s *GormFreezerTypeStore) ByIDAny(ctx context.Context, id int64) (*domain.FreezerType, error) {
	var ft domain.FreezerType
	if err := s.db.WithContext(ctx).Unscoped().First(&ft, id).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (s *GormFreezerTypeStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	db := s.db.WithContext(ctx).Model(&domain.FreezerType{}).Where("name = ?", name)
	if excludeID != 0 {
		db = db.Where("id != ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count freezer types by name")
	}
	return count > 0, nil
}

func (s *GormFreezerTypeStore) Create(ctx context.Context, ft *domain.FreezerType) error {
	return s.db.WithContext(ctx).Create(ft).Error
}

func (s *GormFreezerTypeStore) Update(ctx context.Context, ft *domain.FreezerType) error {
	return s.db.WithContext(ctx).Save(ft).Error
}

func (s *GormFreezerTypeStore) Trash(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.FreezerType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormFreezerTypeStore) Restore(ctx context.Context, id int64) error {
	return restoreModel(s.db.WithContext(ctx), &domain.FreezerType{}, id)
}

func (s *GormFreezerTypeStore) Purge(ctx context.Context, id int64) error {
	return purgeModel(s.db.WithContext(ctx), &domain.FreezerType{}, id)
}
