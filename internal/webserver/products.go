package webserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/errs"
	"github.com/frostkeep/frostkeep/pkg/common"
)

type productCreatePayload struct {
	Name          string `json:"name" form:"name" validate:"required"`
	FreezerID     int64  `json:"freezer_id,string" form:"freezer_id" validate:"required"`
	UserID        int64  `json:"user_id,string" form:"user_id"`
	ProductTypeID int64  `json:"product_type_id,string" form:"product_type_id" validate:"required"`
	Quantity      *int   `json:"quantity" form:"quantity" validate:"required"`
	AddingDate    string `json:"adding_date" form:"adding_date" validate:"required"`
}

type productUpdatePayload struct {
	Name          *string `json:"name" form:"name"`
	FreezerID     *int64  `json:"freezer_id,string" form:"freezer_id"`
	ProductTypeID *int64  `json:"product_type_id,string" form:"product_type_id"`
	Quantity      *int    `json:"quantity" form:"quantity"`
	AddingDate    *string `json:"adding_date" form:"adding_date"`
}

func (s *WebServer) listProducts(c echo.Context) error {
	subject := currentSubject(c)
	withDeleted := subject.Elevated && cast.ToBool(c.QueryParam("deleted"))
	products, err := s.app.Stores().Products.List(c.Request().Context(), subject.OwnerScope(), withDeleted)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, products)
}

func (s *WebServer) searchProducts(c echo.Context) error {
	var payload searchPayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	q := common.NormalizeName(payload.Search)
	if q == "" {
		return c.NoContent(http.StatusNoContent)
	}

	products, err := s.app.Stores().Products.Search(c.Request().Context(), q, currentSubject(c).OwnerScope())
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, products)
}

func (s *WebServer) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := s.app.Stores().Products.ByID(c.Request().Context(), id)
	if err != nil {
		return errs.FromDB(err, "Product")
	}
	if !currentSubject(c).CanAccess(product.UserID) {
		return errs.Forbidden()
	}
	return respData(c, product)
}

func (s *WebServer) createProduct(c echo.Context) error {
	var payload productCreatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if *payload.Quantity < 0 {
		return errs.BadRequest("Quantity must not be negative")
	}

	addingDate, err := dateparse.ParseAny(payload.AddingDate)
	if err != nil {
		return errs.BadRequest("Invalid adding date")
	}

	ctx := c.Request().Context()
	subject := currentSubject(c)

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

	// The freezer and the catalog type must exist; whether the freezer belongs
	// to the product's owner is deliberately not enforced (see DESIGN.md).
	if _, err := s.app.Stores().Freezers.ByID(ctx, payload.FreezerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.BadRequest("Unknown freezer")
		}
		return errs.Database(err)
	}
	if _, err := s.app.Stores().ProductTypes.ByID(ctx, payload.ProductTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.BadRequest("Unknown product type")
		}
		return errs.Database(err)
	}

	product := domain.Product{
		Name:          common.NormalizeName(payload.Name),
		FreezerID:     payload.FreezerID,
		UserID:        ownerID,
		ProductTypeID: payload.ProductTypeID,
		Quantity:      *payload.Quantity,
		AddingDate:    addingDate,
	}
	if product.Name == "" {
		return errs.BadRequest("Missing data")
	}
	if err := s.app.Stores().Products.Create(ctx, &product); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Product created", product)
}

func (s *WebServer) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return errs.BadRequest("Missing data")
	}

	ctx := c.Request().Context()
	product, err := s.app.Stores().Products.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Product")
	}
	if !currentSubject(c).CanAccess(product.UserID) {
		return errs.Forbidden()
	}

	// Sparse merge: fields omitted from the body keep their value.
	if payload.Name != nil {
		name := common.NormalizeName(*payload.Name)
		if name == "" {
			return errs.BadRequest("Missing data")
		}
		product.Name = name
	}
	if payload.FreezerID != nil {
		if _, err := s.app.Stores().Freezers.ByID(ctx, *payload.FreezerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.BadRequest("Unknown freezer")
			}
			return errs.Database(err)
		}
		product.FreezerID = *payload.FreezerID
	}
	if payload.ProductTypeID != nil {
		if _, err := s.app.Stores().ProductTypes.ByID(ctx, *payload.ProductTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.BadRequest("Unknown product type")
			}
			return errs.Database(err)
		}
		product.ProductTypeID = *payload.ProductTypeID
	}
	if payload.Quantity != nil {
		if *payload.Quantity < 0 {
			return errs.BadRequest("Quantity must not be negative")
		}
		product.Quantity = *payload.Quantity
	}
	if payload.AddingDate != nil {
		var addingDate time.Time
		if addingDate, err = dateparse.ParseAny(*payload.AddingDate); err != nil {
			return errs.BadRequest("Invalid adding date")
		}
		product.AddingDate = addingDate
	}

	if err := s.app.Stores().Products.Update(ctx, product); err != nil {
		return errs.Database(err)
	}
	return respMutated(c, "Product updated", product)
}

func (s *WebServer) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := s.app.Stores().Products.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Product")
	}
	if !currentSubject(c).CanAccess(product.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Products.Purge(ctx, id); err != nil {
		return errs.FromDB(err, "Product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) trashProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := s.app.Stores().Products.ByID(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Product")
	}
	if !currentSubject(c).CanAccess(product.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Products.Trash(ctx, id); err != nil {
		return errs.FromDB(err, "Product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) untrashProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := s.app.Stores().Products.ByIDAny(ctx, id)
	if err != nil {
		return errs.FromDB(err, "Product")
	}
	if !currentSubject(c).CanAccess(product.UserID) {
		return errs.Forbidden()
	}

	if err := s.app.Stores().Products.Restore(ctx, id); err != nil {
		return errs.FromDB(err, "Product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *WebServer) listProductsByUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if !currentSubject(c).CanAccess(userID) {
		return errs.Forbidden()
	}

	products, err := s.app.Stores().Products.ByUserID(c.Request().Context(), userID)
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, products)
}

// listProductsByFreezer stays scoped to the subject's own rows for standard
// callers even inside a shared freezer.
func (s *WebServer) listProductsByFreezer(c echo.Context) error {
	freezerID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	products, err := s.app.Stores().Products.ByFreezerID(c.Request().Context(), freezerID, currentSubject(c).OwnerScope())
	if err != nil {
		return errs.Database(err)
	}
	return respData(c, products)
}
