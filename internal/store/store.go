// Package store is the persistence gateway: per-entity repositories over GORM
// with uniform soft-delete semantics. Default queries exclude trashed rows;
// Restore and Purge reach past the default scope with Unscoped.
package store

import (
	"gorm.io/gorm"
)

// Stores bundles the entity repositories sharing one database handle. The handle
// is injected at construction; nothing in this package holds global state.
type Stores struct {
	Users        UserStore
	Freezers     FreezerStore
	FreezerTypes FreezerTypeStore
	Products     ProductStore
	ProductTypes ProductTypeStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:        NewGormUserStore(db),
		Freezers:     NewGormFreezerStore(db),
		FreezerTypes: NewGormFreezerTypeStore(db),
		Products:     NewGormProductStore(db),
		ProductTypes: NewGormProductTypeStore(db),
	}
}

// restoreModel clears the deleted marker on a soft-deleted row. The lookup runs
// unscoped so trashed rows are reachable; zero affected rows means the id does
// not exist at all and surfaces as gorm.ErrRecordNotFound.
func restoreModel(db *gorm.DB, model interface{}, id int64) error {
	res := db.Unscoped().Model(model).Where("id = ?", id).Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// purgeModel permanently removes a row, trashed or not. Purge is terminal: a
// second purge of the same id reports gorm.ErrRecordNotFound.
func purgeModel(db *gorm.DB, model interface{}, id int64) error {
	res := db.Unscoped().Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
