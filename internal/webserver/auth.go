package webserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/pkg/common"
)

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// login validates credentials and issues a signed identity token. Failure modes
// follow the authentication taxonomy: missing credentials, unknown or inactive
// account, wrong password.
func (s *WebServer) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadCredentials()
	}

	email := common.NormalizeName(payload.Email)
	if email == "" || strings.TrimSpace(payload.Password) == "" {
		return errs.BadCredentials()
	}

	user, err := s.app.Stores().Users.ByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.UnknownAccount()
		}
		return errs.Database(err)
	}
	if !user.IsActive {
		return errs.UnknownAccount()
	}

	if !common.CheckPassword(user.Password, payload.Password) {
		return errs.WrongPassword()
	}

	signed, err := s.app.TokenIssuer().Issue(user)
	if err != nil {
		return errs.Database(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"jwt_token": signed})
}
