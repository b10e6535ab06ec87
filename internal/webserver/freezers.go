package webserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/pkg/common"
)

type freezerCreatePayload struct {
	Name          string `json:"name" form:"name" validate:"required"`
	FreezerTypeID int64  `json:"freezer_type_id,string" form:"freezer_type_id" validate:"required"`
	UserID        int64  `json:"user_id,string" form:"user_id"`
}

type freezerUpdatePayload struct {
	Name          *string `json:"name" form:"name"`
	FreezerTypeID *int64  `json:"freezer_type_id,string" form:"freezer_type_id"`
}

// listFreezers returns every live freezer for elevated callers and only the
// subject's own rows otherwise. The scope is a query predicate, not a post-hoc
// filter, so foreign rows never leave the store.
func (s *WebServer) listFreezers(c echo.Context) error {
	subject := currentSubject(c)
	withDeleted := subject.Elevated && cast.ToBool(c.QueryParam("deleted"))
	freezers, err := s.app.Stores().Freezers.List(c.Request().Context(), subject.OwnerScope(), withDeleted)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, freezers)
}

func (s *WebServer) getFreezer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	freezer, err := s.app.Stores().Freezers.ByID(c.Request().Context(), id)
	if err != nil {
		return errs.FromDB(err, "Freezer")
	}
	if !currentSubject(c).CanAccess(freezer.UserID) {
		return errs.Forbidden()
	}
	return respData(c, freezer)
}

func (s *WebServer) createFreezer(c echo.Context) error {
	var payload freezerCreatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	ctx := c.Request().Context()
	subject := currentSubject(c)

	// Ownership is fixed at creation: standard subjects always own what they
	// create, elevated subjects may file a freezer under another account.
	ownerID := subject.UserID
	if payload.UserID != 0 && payload.UserID != subject.UserID {
		if !subject.Elevated {
			return errs.Forbidden()
		}
		if _, err := s.app.Stores().Users.ByID(ctx, payload.UserID); err != nil {
			return errs.FromDB(err, "User")
		}
		ownerID = payload.UserID
	}

	if _, err := s.app.Stores().FreezerTypes.ByID(ctx, payload.FreezerTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.BadRequest("Unknown freezer type")
		}
		return errs.Database(err)
	}

	freezer := domain.Freezer{
		Name:          common.NormalizeName(payload.Name),
		FreezerTypeID: payload.FreezerTypeID,
		UserID:        ownerID,
	}
	if freezer.Name == "" {
		return errs.BadRequest("Missing data")
	}
	if err := s.app.Stores().Freezers.Create(ctx, &freezer); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Freezer created", freezer)
}

func (s *WebServer) updateFreezer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload freezerUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}

	ctx := c.Request().Context()
	freezer, err := s.app.Stores().Freezers.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Freezer")
	}
	if !currentSubject(c).CanAccess(freezer.UserID) {
		return errs.Forbidden()
	}

	// Sparse merge; user_id is immutable after creation and not part of the
	// update payload at all.
	if payload.Name != nil {
		name := common.NormalizeName(*payload.Name)
		if name == "" {
			return errs.BadRequest("Missing data")
		}
		freezer.Name = name
	}
	if payload.FreezerTypeID != nil {
		if _, err := s.app.Stores().FreezerTypes.ByID(ctx, *payload.FreezerTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.BadRequest("Unknown freezer type")
			}
			return errs.Database(err)
		}
		freezer.FreezerTypeID = *payload.FreezerTypeID
	}

	if err := s.app.Stores().Freezers.Update(ctx, freezer); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Freezer updated", freezer)
}

func (s *WebServer) deleteFreezer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	freezer, err := s.app.Stores().Freezers.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Freezer")
	}
	if !currentSubject(c).CanAccess(freezer.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Freezers.Purge(ctx, id); err != nil {
		return errs.FromDB(err, "Freezer")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) trashFreezer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	freezer, err := s.app.Stores().Freezers.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Freezer")
	}
	if !currentSubject(c).CanAccess(freezer.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Freezers.Trash(ctx, id); err != nil {
		return errs.FromDB(err, "Freezer")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) untrashFreezer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	freezer, err := s.app.Stores().Freezers.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Freezer")
	}
	if !currentSubject(c).CanAccess(freezer.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Freezers.Restore(ctx, id); err != nil {
		return errs.FromDB(err, "Freezer")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) listFreezersByUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if !currentSubject(c).CanAccess(userID) {
		return errs.Forbidden()
	}

	freezers, err := s.app.Stores().Freezers.ByUserID(c.Request().Context(), userID)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, freezers)
}
