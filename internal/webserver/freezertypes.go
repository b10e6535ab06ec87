package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/pkg/common"
)

type catalogPayload struct {
	Name string `json:"name" form:"name" validate:"required"`
}

func (s *WebServer) listFreezerTypes(c echo.Context) error {
	subject := currentSubject(c)
	withDeleted := subject.Elevated && cast.ToBool(c.QueryParam("deleted"))
	types, err := s.app.Stores().FreezerTypes.List(c.Request().Context(), withDeleted)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, types)
}

func (s *WebServer) getFreezerType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ft, err := s.app.Stores().FreezerTypes.ByID(c.Request().Context(), id)
	if err != nil {
		return errs.FromDB(err, "Freezer type")
	}
	return respData(c, ft)
}

func (s *WebServer) createFreezerType(c echo.Context) error {
	var payload catalogPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	name := common.NormalizeName(payload.Name)
	if name == "" {
		return errs.BadRequest("Missing data")
	}

	ctx := c.Request().Context()
	exists, err := s.app.Stores().FreezerTypes.NameExists(ctx, name, 0)
	if err != nil {
		return errs.Database(err)
	}
	if exists {
		return errs.Conflict(fmt.Sprintf("The freezer type %s already exists", name))
	}

	ft := domain.FreezerType{Name: name}
	if err := s.app.Stores().FreezerTypes.Create(ctx, &ft); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Freezer type created", ft)
}

func (s *WebServer) updateFreezerType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload catalogPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}

	ctx := c.Request().Context()
	ft, err := s.app.Stores().FreezerTypes.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Freezer type")
	}

	if name := common.NormalizeName(payload.Name); name != "" && name != ft.Name {
		exists, err := s.app.Stores().FreezerTypes.NameExists(ctx, name, ft.ID)
		if err != nil {
			return errs.Database(err)
		}
		if exists {
			return errs.Conflict(fmt.Sprintf("The freezer type %s already exists", name))
		}
		ft.Name = name
	}

	if err := s.app.Stores().FreezerTypes.Update(ctx, ft); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Freezer type updated", ft)
}

func (s *WebServer) deleteFreezerType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().FreezerTypes.Purge(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Freezer type")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) trashFreezerType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().FreezerTypes.Trash(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Freezer type")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) untrashFreezerType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().FreezerTypes.Restore(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Freezer type")
	}
	return c.NoContent(http.StatusNoContent)
}
