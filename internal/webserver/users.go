package webserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/pkg/common"
)

type userCreatePayload struct {
	Firstname string `json:"firstname" form:"firstname" validate:"required"`
	Lastname  string `json:"lastname" form:"lastname" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=8"`
}

type userUpdatePayload struct {
	Firstname *string `json:"firstname" form:"firstname"`
	Lastname  *string `json:"lastname" form:"lastname"`
	Email     *string `json:"email" form:"email" validate:"omitempty,email"`
}

type searchPayload struct {
	Search string `json:"search" form:"search"`
}

func (s *WebServer) listUsers(c echo.Context) error {
	withDeleted := cast.ToBool(c.QueryParam("deleted"))
	users, err := s.app.Stores().Users.List(c.Request().Context(), withDeleted)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, users)
}

func (s *WebServer) searchUsers(c echo.Context) error {
	var payload searchPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	q := common.NormalizeName(payload.Search)
	if q == "" {
		return c.NoContent(http.StatusNoContent)
	}
	users, err := s.app.Stores().Users.Search(c.Request().Context(), q)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, users)
}

func (s *WebServer) getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.app.Stores().Users.ByID(c.Request().Context(), id)
	if err != nil {
		return errs.FromDB(err, "User")
	}
	if !currentSubject(c).CanAccess(user.ID) {
		return errs.Forbidden()
	}
	return respData(c, user)
}

func (s *WebServer) createUser(c echo.Context) error {
	var payload userCreatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if strings.TrimSpace(payload.Password) == "" {
		return errs.BadRequest("Missing data")
	}

	email := common.NormalizeName(payload.Email)
	taken, err := s.app.Stores().Users.EmailTaken(c.Request().Context(), email, 0)
	if err != nil {
		return errs.Database(err)
	}
	if taken {
		return errs.Conflict(fmt.Sprintf("The user with email: %s already exists", email))
	}

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		return errs.Database(err)
	}

	user := domain.User{
		Firstname: common.NormalizeName(payload.Firstname),
		Lastname:  common.NormalizeName(payload.Lastname),
		Email:     email,
		Password:  hash,
		IsActive:  true,
	}
	if err := s.app.Stores().Users.Create(c.Request().Context(), &user); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "User created", user)
}

func (s *WebServer) updateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload userUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := s.app.Stores().Users.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "User")
	}
	if !currentSubject(c).CanAccess(user.ID) {
		return errs.Forbidden()
	}

	// Sparse merge: only fields present in the body overwrite the row.
	if payload.Firstname != nil {
		user.Firstname = common.NormalizeName(*payload.Firstname)
	}
	if payload.Lastname != nil {
		user.Lastname = common.NormalizeName(*payload.Lastname)
	}
	if payload.Email != nil {
		email := common.NormalizeName(*payload.Email)
		if email != user.Email {
			taken, err := s.app.Stores().Users.EmailTaken(ctx, email, user.ID)
			if err != nil {
				return errs.Database(err)
			}
			if taken {
				return errs.Conflict(fmt.Sprintf("The user with email: %s already exists", email))
			}
			user.Email = email
		}
	}

	if err := s.app.Stores().Users.Update(ctx, user); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "User updated", user)
}

func (s *WebServer) deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := s.app.Stores().Users.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "User")
	}
	if !currentSubject(c).CanAccess(user.ID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Users.Purge(ctx, id); err != nil {
		return errs.FromDB(err, "User")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) trashUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := s.app.Stores().Users.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "User")
	}
	if !currentSubject(c).CanAccess(user.ID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Users.Trash(ctx, id); err != nil {
		return errs.FromDB(err, "User")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) untrashUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := s.app.Stores().Users.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "User")
	}
	if !currentSubject(c).CanAccess(user.ID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Users.Restore(ctx, id); err != nil {
		return errs.FromDB(err, "User")
	}
	return c.NoContent(http.StatusNoContent)
}
