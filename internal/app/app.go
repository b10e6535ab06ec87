package app

import (
	"crypto/rsa"
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/config"
	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/store"
	"github.com/frostkeep/frostkeep/internal/token"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	stores    *store.Stores
	issuer    *token.Issuer
	publicKey *rsa.PublicKey
}

// Ensure Application implements all interfaces
var (
	_ DBProvider     = (*Application)(nil)
	_ ConfigProvider = (*Application)(nil)
	_ StoreProvider  = (*Application)(nil)
	_ TokenProvider  = (*Application)(nil)
	_ AppContext     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Stores() *store.Stores {
	return a.stores
}

func (a *Application) TokenIssuer() *token.Issuer {
	return a.issuer
}

func (a *Application) TokenPublicKey() *rsa.PublicKey {
	return a.publicKey
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.stores = store.New(db)
}

// OverrideKeys replaces the token keypair (used in tests).
func (a *Application) OverrideKeys(priv *rsa.PrivateKey, ttl time.Duration) {
	a.issuer = token.NewIssuer(priv, ttl)
	a.publicKey = &priv.PublicKey
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB, err = getDatabase(cfg.Database, cfg.System.Workdir)
	if err != nil {
		return err
	}
	a.stores = store.New(a.gormDB)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	// Ensure database schema is migrated before seeding
	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkSuper()
	a.checkFreezerTypes()
	a.checkProductTypes()

	// Load (or create on first start) the RS256 signing keypair
	priv, pub, err := a.loadKeys(cfg)
	if err != nil {
		return err
	}
	a.publicKey = pub
	a.issuer = token.NewIssuer(priv, time.Duration(cfg.Web.JwtTTLMinutes)*time.Minute)

	return nil
}

// loadKeys resolves the signing keypair: explicit PEM files from config when both
// are set, otherwise a keypair persisted under the workdir.
func (a *Application) loadKeys(cfg *config.AppConfig) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if cfg.Web.JwtPrivateKey != "" && cfg.Web.JwtPublicKey != "" {
		priv, err := token.LoadPrivateKey(cfg.Web.JwtPrivateKey)
		if err != nil {
			return nil, nil, err
		}
		pub, err := token.LoadPublicKey(cfg.Web.JwtPublicKey)
		if err != nil {
			return nil, nil, err
		}
		return priv, pub, nil
	}
	return token.LoadOrCreateKeyPair(cfg.System.Workdir)
}

func (a *Application) MigrateDB(track bool) (err error) {
	if track {
		return a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...)
	}
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
