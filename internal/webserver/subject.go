package webserver

import (
	"github.com/labstack/echo/v4"

	"github.com/frostkeep/frostkeep/internal/authz"
	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/internal/token"
)

const subjectContextKey = "subject"

// subjectMiddleware converts the verified token claims into an authz.Subject.
// It must sit after the token verifier; claims are never trusted unverified.
func subjectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*token.Claims)
		if !ok {
			return errs.Unauthenticated("")
		}
		c.Set(subjectContextKey, authz.Subject{UserID: claims.UserID, Elevated: claims.Elevated()})
		return next(c)
	}
}

// currentSubject returns the authenticated caller attached by subjectMiddleware.
func currentSubject(c echo.Context) authz.Subject {
	if s, ok := c.Get(subjectContextKey).(authz.Subject); ok {
		return s
	}
	return authz.Subject{}
}

// requireElevated is the role gate for elevated-only operations.
func requireElevated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !currentSubject(c).CanManage() {
			return errs.Forbidden()
		}
		return next(c)
	}
}
