package app

import (
	"crypto/rsa"

	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/config"
	"github.com/frostkeep/frostkeep/internal/store"
	"github.com/frostkeep/frostkeep/internal/token"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the entity repositories
type StoreProvider interface {
	Stores() *store.Stores
}

// TokenProvider provides the token issuer and the verification key
type TokenProvider interface {
	TokenIssuer() *token.Issuer
	TokenPublicKey() *rsa.PublicKey
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	StoreProvider
	TokenProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
