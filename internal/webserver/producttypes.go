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

func (s *WebServer) listProductTypes(c echo.Context) error {
	subject := currentSubject(c)
	withDeleted := subject.Elevated && cast.ToBool(c.QueryParam("deleted"))
	types, err := s.app.Stores().ProductTypes.List(c.Request().Context(), withDeleted)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, types)
}

func (s *WebServer) getProductType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	pt, err := s.app.Stores().ProductTypes.ByID(c.Request().Context(), id)
	if err != nil {
		return errs.FromDB(err, "Product type")
	}
	return respData(c, pt)
}

func (s *WebServer) createProductType(c echo.Context) error {
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
	exists, err := s.app.Stores().ProductTypes.NameExists(ctx, name, 0)
	if err != nil {
		return errs.Database(err)
	}
	if exists {
		return errs.Conflict(fmt.Sprintf("The product type %s already exists", name))
	}

	pt := domain.ProductType{Name: name}
	if err := s.app.Stores().ProductTypes.Create(ctx, &pt); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Product type created", pt)
}

func (s *WebServer) updateProductType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload catalogPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}

	ctx := c.Request().Context()
	pt, err := s.app.Stores().ProductTypes.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Product type")
	}

	if name := common.NormalizeName(payload.Name); name != "" && name != pt.Name {
		exists, err := s.app.Stores().ProductTypes.NameExists(ctx, name, pt.ID)
		if err != nil {
			return errs.Database(err)
		}
		if exists {
			return errs.Conflict(fmt.Sprintf("The product type %s already exists", name))
		}
		pt.Name = name
	}

	if err := s.app.Stores().ProductTypes.Update(ctx, pt); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Product type updated", pt)
}

func (s *WebServer) deleteProductType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().ProductTypes.Purge(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Product type")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) trashProductType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().ProductTypes.Trash(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Product type")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) untrashProductType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.app.Stores().ProductTypes.Restore(c.Request().Context(), id); err != nil {
		return errs.FromDB(err, "Product type")
	}
	return c.NoContent(http.StatusNoContent)
}
