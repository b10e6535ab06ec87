// Package webserver exposes the REST API: token verification, the role gate and
// the per-entity resource handlers. The server owns its echo instance and reaches
// the database only through the repositories injected via the application context.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/frostkeep/frostkeep/internal/app"
	"github.com/frostkeep/frostkeep/internal/token"
)

type WebServer struct {
	app app.AppContext
	e   *echo.Echo
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	s := &WebServer{app: appCtx, e: echo.New()}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.JSONSerializer = NewJSONSerializer()
	s.e.Validator = NewValidator()
	s.e.HTTPErrorHandler = s.errorHandler

	s.e.Use(middleware.Recover())
	s.e.Use(s.requestLogger())

	if limit := appCtx.Config().Web.RateLimit; limit > 0 {
		s.e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(limit))))
	}

	s.registerRoutes()
	return s
}

// Echo exposes the underlying router (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.e
}

func (s *WebServer) registerRoutes() {
	cfg := s.app.Config()

	// Login is rate limited before any credential check runs.
	loginLimit := cfg.Web.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 5
	}
	loginLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(loginLimit) / 60.0),
			Burst:     loginLimit,
			ExpiresIn: 3 * time.Minute,
		},
	))
	s.e.POST("/auth/login", s.login, loginLimiter)

	// Account self-signup carries no token.
	s.e.PUT("/users", s.createUser)

	// Everything else sits behind the token verifier. The role gate is applied
	// per route and always after verification.
	api := s.e.Group("", s.tokenVerifier(), subjectMiddleware)

	users := api.Group("/users")
	users.GET("", s.listUsers, requireElevated)
	users.POST("/search", s.searchUsers, requireElevated)
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)
	users.DELETE("/trash/:id", s.trashUser)
	users.POST("/untrash/:id", s.untrashUser)

	freezers := api.Group("/freezers")
	freezers.GET("", s.listFreezers)
	freezers.GET("/:id", s.getFreezer)
	freezers.PUT("", s.createFreezer)
	freezers.PUT("/:id", s.updateFreezer)
	freezers.DELETE("/:id", s.deleteFreezer)
	freezers.DELETE("/trash/:id", s.trashFreezer)
	freezers.POST("/untrash/:id", s.untrashFreezer)
	freezers.GET("/user/:id", s.listFreezersByUser)

	products := api.Group("/products")
	products.GET("", s.listProducts)
	products.POST("/search", s.searchProducts)
	products.GET("/:id", s.getProduct)
	products.PUT("", s.createProduct)
	products.PUT("/:id", s.updateProduct)
	products.DELETE("/:id", s.deleteProduct)
	products.DELETE("/trash/:id", s.trashProduct)
	products.POST("/untrash/:id", s.untrashProduct)
	products.GET("/user/:id", s.listProductsByUser)
	products.GET("/freezer/:id", s.listProductsByFreezer)

	freezerTypes := api.Group("/freezertypes")
	freezerTypes.GET("", s.listFreezerTypes)
	freezerTypes.GET("/:id", s.getFreezerType)
	freezerTypes.PUT("", s.createFreezerType, requireElevated)
	freezerTypes.PUT("/:id", s.updateFreezerType, requireElevated)
	freezerTypes.DELETE("/:id", s.deleteFreezerType, requireElevated)
	freezerTypes.DELETE("/trash/:id", s.trashFreezerType, requireElevated)
	freezerTypes.POST("/untrash/:id", s.untrashFreezerType, requireElevated)

	productTypes := api.Group("/producttypes")
	productTypes.GET("", s.listProductTypes)
	productTypes.GET("/:id", s.getProductType)
	productTypes.PUT("", s.createProductType, requireElevated)
	productTypes.PUT("/:id", s.updateProductType, requireElevated)
	productTypes.DELETE("/:id", s.deleteProductType, requireElevated)
	productTypes.DELETE("/trash/:id", s.trashProductType, requireElevated)
	productTypes.POST("/untrash/:id", s.untrashProductType, requireElevated)
}

// tokenVerifier builds the bearer-token middleware. Parsing goes through the
// token package so verification only ever touches the public key.
func (s *WebServer) tokenVerifier() echo.MiddlewareFunc {
	pub := s.app.TokenPublicKey()
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return token.Parse(auth, pub)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return renderUnauthenticated(c)
		},
	})
}

func (s *WebServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

func (s *WebServer) Start() error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	err := s.e.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WebServer) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
