package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"stockroom/internal/common"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo. Field names in
// errors follow the json tags of the request structs.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate reports the first failing field as a *common.ValidationError.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return common.NewValidationError(fe.Field(), validationMessage(fe))
	}
	return err
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "hexcolor":
		return "Must be a hex color such as #007AFF"
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}

// bindAndValidate binds the request into dst and runs the echo validator.
// Validation failures are written to the response and reported via ok=false.
func bindAndValidate(c echo.Context, dst interface{}) (ok bool, err error) {
	if err := c.Bind(dst); err != nil {
		return false, common.SendClientError(c, "Invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		var validationErr *common.ValidationError
		if errors.As(err, &validationErr) {
			return false, common.SendValidationError(c, validationErr.Field, validationErr.Message)
		}
		return false, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return true, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, bool, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, false, common.SendValidationError(c, "id", err.Error())
	}
	return id, true, nil
}

// optionalUUID parses an optional query parameter.
func optionalUUID(c echo.Context, name string) (*uuid.UUID, bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, true, nil
	}
	id, err := common.ValidateUUID(raw, name)
	if err != nil {
		return nil, false, common.SendValidationError(c, name, err.Error())
	}
	return &id, true, nil
}
