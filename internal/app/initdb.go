package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/pkg/common"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@frostkeep.local"
	const defaultPassword = "frostkeep"

	hashedPassword, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default super password", zap.Error(err))
		return
	}

	var admin domain.User
	err = a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			Firstname: "frostkeep",
			Lastname:  "administrator",
			Email:     superEmail,
			Password:  hashedPassword,
			IsActive:  true,
			IsAdmin:   true,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin account", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default admin account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetAdmin := !admin.IsAdmin
	resetActive := !admin.IsActive

	if !resetPassword && !resetAdmin && !resetActive {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetAdmin {
		updates["is_admin"] = true
	}
	if resetActive {
		updates["is_active"] = true
	}

	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair default admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("adminReset", resetAdmin),
		zap.Bool("activated", resetActive))
}

// checkFreezerTypes initializes the default freezer-type catalog
func (a *Application) checkFreezerTypes() {
	defaultTypes := []string{"chest", "upright", "drawer", "portable"}

	for _, name := range defaultTypes {
		var count int64
		a.gormDB.Model(&domain.FreezerType{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&domain.FreezerType{Name: name}).Error; err != nil {
				zap.L().Error("failed to create default freezer type", zap.String("name", name), zap.Error(err))
			} else {
				zap.L().Info("initialized default freezer type", zap.String("name", name))
			}
		}
	}
}

// checkProductTypes initializes the default product-type catalog
func (a *Application) checkProductTypes() {
	defaultTypes := []string{"meat", "fish", "vegetable", "fruit", "prepared meal", "bread", "dessert"}

	for _, name := range defaultTypes {
		var count int64
		a.gormDB.Model(&domain.ProductType{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&domain.ProductType{Name: name}).Error; err != nil {
				zap.L().Error("failed to create default product type", zap.String("name", name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product type", zap.String("name", name))
			}
		}
	}
}
