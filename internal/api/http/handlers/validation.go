package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindJSON parses the request body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return apperrors.NewValidationError("request body is required", nil)
	}
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", map[string]any{"fields": fields})
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(name+" must be an integer", map[string]any{name: raw})
	}
	return id, nil
}

func paramString(c *fiber.Ctx, name string) (string, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return "", apperrors.NewValidationError(name+" is required", nil)
	}
	return raw, nil
}
