package webserver

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frostkeep/frostkeep/config"
	"github.com/frostkeep/frostkeep/internal/app"
	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/store"
	"github.com/frostkeep/frostkeep/pkg/common"
)

var (
	signingKey     *rsa.PrivateKey
	signingKeyOnce sync.Once
)

// testSigningKey generates one RSA keypair for the whole package run; key
// generation is too slow to repeat per test.
func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	signingKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		signingKey = key
	})
	return signingKey
}

type testServer struct {
	ws     *WebServer
	app    *app.Application
	stores *store.Stores
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Web.RateLimit = 0
	cfg.Web.LoginRateLimit = 1000
	return newTestServerWithConfig(t, &cfg)
}

func newTestServerWithConfig(t *testing.T, cfg *config.AppConfig) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	a := app.NewApplication(cfg)
	a.OverrideDB(db)
	a.OverrideKeys(testSigningKey(t), time.Hour)

	return &testServer{ws: NewWebServer(a), app: a, stores: a.Stores()}
}

const testPassword = "password123"

func (ts *testServer) mustUser(t *testing.T, email string, admin bool) *domain.User {
	t.Helper()
	hash, err := common.HashPassword(testPassword)
	require.NoError(t, err)
	user := &domain.User{
		Firstname: "jean",
		Lastname:  "dupont",
		Email:     email,
		Password:  hash,
		IsActive:  true,
		IsAdmin:   admin,
	}
	require.NoError(t, ts.stores.Users.Create(context.Background(), user))
	return user
}

func (ts *testServer) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	raw, err := ts.app.TokenIssuer().Issue(user)
	require.NoError(t, err)
	return raw
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.ws.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
