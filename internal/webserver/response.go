package webserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/frostkeep/frostkeep/internal/errs"
)

// JSONSerializer plugs json-iterator into echo for request and response bodies.
type JSONSerializer struct {
	json jsoniter.API
}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{json: jsoniter.ConfigCompatibleWithStandardLibrary}
}

func (s *JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	return s.json.NewDecoder(c.Request().Body).Decode(i)
}

// CustomValidator adapts go-playground/validator to echo's Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.BadRequest("Missing data")
	}
	return nil
}

// respData renders the read envelope {data: ...}.
func respData(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

// respMutated renders the mutation envelope {message, data}.
func respMutated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"message": message, "data": data})
}

func renderUnauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{"message": "Unauthorized"})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.BadRequest("Missing parameters")
	}
	return id, nil
}

// errorHandler is the single failure funnel: every handler error lands here and
// is mapped to a status from the taxonomy. Unclassified errors are masked so no
// store detail reaches the client.
func (s *WebServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var message string

	var taxErr *errs.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &taxErr):
		status = taxErr.Status
		message = taxErr.Message
		if taxErr.Kind == errs.KindDatabase {
			zap.L().Error("store failure", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	case errors.Is(err, io.EOF):
		status = http.StatusBadRequest
		message = "Missing data"
	default:
		status = http.StatusInternalServerError
		message = "Database error"
		zap.L().Error("unclassified failure", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, map[string]interface{}{"message": message})
}
