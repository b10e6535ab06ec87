package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
)

// ProductStore handles database operations for products
type ProductStore interface {
	// List retrieves live products; ownerID 0 means no owner filter
	List(ctx context.Context, ownerID int64, withDeleted bool) ([]domain.Product, error)

	// ByID retrieves a live product by ID
	ByID(ctx context.Context, id int64) (*domain.Product, error)

	// ByIDAny retrieves a product by ID including trashed rows
	ByIDAny(ctx context.Context, id int64) (*domain.Product, error)

	// ByUserID retrieves all live products owned by a user
	ByUserID(ctx context.Context, userID int64) ([]domain.Product, error)

	// ByFreezerID retrieves live products in a freezer, restricted to ownerID
	// unless ownerID is 0
	ByFreezerID(ctx context.Context, freezerID, ownerID int64) ([]domain.Product, error)

	// Create inserts a new product
	Create(ctx context.Context, product *domain.Product) error

	// Update persists a merged product row
	Update(ctx context.Context, product *domain.Product) error

	// Trash soft-deletes a product
	Trash(ctx context.Context, id int64) error

	// Restore clears the deleted marker
	Restore(ctx context.Context, id int64) error

	// Purge permanently removes a product
	Purge(ctx context.Context, id int64) error

	// Search matches a lowercase substring against the product name, restricted
	// to ownerID unless ownerID is 0
	Search(ctx context.Context, q string, ownerID int64) ([]domain.Product, error)
}

// GormProductStore is the GORM implementation of ProductStore
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) List(ctx context.Context, ownerID int64, withDeleted bool) ([]domain.Product, error) {
	db := s.db.WithContext(ctx)
	if withDeleted {
		db = db.Unscoped()
	}
	if ownerID != 0 {
		db = db.Where("user_id = ?", ownerID)
	}
	var products []domain.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (s *GormProductStore) ByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) ByIDAny(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).Unscoped().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormProductStore) ByUserID(ctx context.Context, userID int64) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products by user")
	}
	return products, nil
}

func (s *GormProductStore) ByFreezerID(ctx context.Context, freezerID, ownerID int64) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Where("freezer_id = ?", freezerID)
	if ownerID != 0 {
		db = db.Where("user_id = ?", ownerID)
	}
	var products []domain.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products by freezer")
	}
	return products, nil
}

func (s *GormProductStore) Create(ctx context.Context, product *domain.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *GormProductStore) Update(ctx context.Context, product *domain.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

func (s *GormProductStore) Trash(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormProductStore) Restore(ctx context.Context, id int64) error {
	return restoreModel(s.db.WithContext(ctx), &domain.Product{}, id)
}

func (s *GormProductStore) Purge(ctx context.Context, id int64) error {
	return purgeModel(s.db.WithContext(ctx), &domain.Product{}, id)
}

func (s *GormProductStore) Search(ctx context.Context, q string, ownerID int64) ([]domain.Product, error) {
	like := "%" + strings.ToLower(q) + "%"
	db := s.db.WithContext(ctx).Where("LOWER(name) LIKE ?", like)
	if ownerID != 0 {
		db = db.Where("user_id = ?", ownerID)
	}
	var products []domain.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "search products")
	}
	return products, nil
}
