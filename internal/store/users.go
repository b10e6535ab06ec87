package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
)

// UserStore handles database operations for user accounts
type UserStore interface {
	// List retrieves all live accounts; withDeleted widens the scope to trashed rows
	List(ctx context.Context, withDeleted bool) ([]domain.User, error)

	// ByID retrieves a live account by ID
	ByID(ctx context.Context, id int64) (*domain.User, error)

	// ByIDAny retrieves an account by ID including trashed rows
	ByIDAny(ctx context.Context, id int64) (*domain.User, error)

	// ByEmail retrieves a live account by normalized email
	ByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailTaken reports whether any non-purged account uses the email
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// Create inserts a new account
	Create(ctx context.Context, user *domain.User) error

	// Update persists a merged account row
	Update(ctx context.Context, user *domain.User) error

	// Trash soft-deletes an account
	Trash(ctx context.Context, id int64) error

	// Restore clears the deleted marker
	Restore(ctx context.Context, id int64) error

	// Purge permanently removes an account
	Purge(ctx context.Context, id int64) error

	// Search matches a lowercase substring against firstname, lastname and email
	Search(ctx context.Context, q string) ([]domain.User, error)
}

// GormUserStore is the GORM implementation of UserStore
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) List(ctx context.Context, withDeleted bool) ([]domain.User, error) {
	var users []domain.User
	db := s.db.WithContext(ctx)
	if withDeleted {
		db = db.Unscoped()
	}
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *GormUserStore) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) ByIDAny(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Unscoped().First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken counts unscoped so a trashed account still reserves its email until
// it is purged.
func (s *GormUserStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	db := s.db.WithContext(ctx).Unscoped().Model(&domain.User{}).Where("email = ?", email)
	if excludeID != 0 {
		db = db.Where("id != ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users by email")
	}
	return count > 0, nil
}

func (s *GormUserStore) Create(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) Update(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *GormUserStore) Trash(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormUserStore) Restore(ctx context.Context, id int64) error {
	return restoreModel(s.db.WithContext(ctx), &domain.User{}, id)
}

func (s *GormUserStore) Purge(ctx context.Context, id int64) error {
	return purgeModel(s.db.WithContext(ctx), &domain.User{}, id)
}

func (s *GormUserStore) Search(ctx context.Context, q string) ([]domain.User, error) {
	like := "%" + strings.ToLower(q) + "%"
	var users []domain.User
	err := s.db.WithContext(ctx).
		Where("LOWER(firstname) LIKE ? OR LOWER(lastname) LIKE ? OR LOWER(email) LIKE ?", like, like, like).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "search users")
	}
	return users, nil
}
