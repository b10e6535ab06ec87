package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
)

// FreezerStore handles database operations for freezers
type FreezerStore interface {
	// List retrieves live freezers; ownerID 0 means no owner filter (elevated
	// callers), any other value restricts rows to that owner before the query
	// runs so foreign rows never leave the database
	List(ctx context.Context, ownerID int64, withDeleted bool) ([]domain.Freezer, error)

	// ByID retrieves a live freezer by ID
	ByID(ctx context.Context, id int64) (*domain.Freezer, error)

	// ByIDAny retrieves a freezer by ID including trashed rows
	ByIDAny(ctx context.Context, id int64) (*domain.Freezer, error)

	// ByUserID retrieves all live freezers owned by a user
	ByUserID(ctx context.Context, userID int64) ([]domain.Freezer, error)

	// Create inserts a new freezer
	Create(ctx context.Context, freezer *domain.Freezer) error

	// Update persists a merged freezer row
	Update(ctx context.Context, freezer *domain.Freezer) error

	// Trash soft-deletes a freezer
	Trash(ctx context.Context, id int64) error

	// Restore clears the deleted marker
	Restore(ctx context.Context, id int64) error

	// Purge permanently removes a freezer
	Purge(ctx context.Context, id int64) error
}

// GormFreezerStore is the GORM implementation of FreezerStore
type GormFreezerStore struct {
	db *gorm.DB
}

func NewGormFreezerStore(db *gorm.DB) *GormFreezerStore {
	return &GormFreezerStore{db: db}
}

func (s *GormFreezerStore) List(ctx context.Context, ownerID int64, withDeleted bool) ([]domain.Freezer, error) {
	db := s.db.WithContext(ctx)
	if withDeleted {
		db = db.Unscoped()
	}
	if ownerID != 0 {
		db = db.Where("user_id = ?", ownerID)
	}
	var freezers []domain.Freezer
	if err := db.Order("id").Find(&freezers).Error; err != nil {
		return nil, errors.Wrap(err, "list freezers")
	}
	return freezers, nil
}

func (s *GormFreezerStore) ByID(ctx context.Context, id int64) (*domain.Freezer, error) {
	var freezer domain.Freezer
	if err := s.db.WithContext(ctx).First(&freezer, id).Error; err != nil {
		return nil, err
	}
	return &freezer, nil
}

func (s *GormFreezerStore) ByIDAny(ctx context.Context, id int64) (*domain.Freezer, error) {
	var freezer domain.Freezer
	if err := s.db.WithContext(ctx).Unscoped().First(&freezer, id).Error; err != nil {
		return nil, err
	}
	return &freezer, nil
}

func (s *GormFreezerStore) ByUserID(ctx context.Context, userID int64) ([]domain.Freezer, error) {
	var freezers []domain.Freezer
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&freezers).Error
	if err != nil {
		return nil, errors.Wrap(err, "list freezers by user")
	}
	return freezers, nil
}

func (s *GormFreezerStore) Create(ctx context.Context, freezer *domain.Freezer) error {
	return s.db.WithContext(ctx).Create(freezer).Error
}

func (s *GormFreezerStore) Update(ctx context.Context, freezer *domain.Freezer) error {
	return s.db.WithContext(ctx).Save(freezer).Error
}

func (s *GormFreezerStore) Trash(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Freezer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormFreezerStore) Restore(ctx context.Context, id int64) error {
	return restoreModel(s.db.WithContext(ctx), &domain.Freezer{}, id)
}

func (s *GormFreezerStore) Purge(ctx context.Context, id int64) error {
	return purgeModel(s.db.WithContext(ctx), &domain.Freezer{}, id)
}
