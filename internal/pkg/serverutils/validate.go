package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// 400 with a readable field list.
func ValidateRequest(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			fields = append(fields, strings.ToLower(ve.Field())+" "+ve.Tag())
		}
		return fiber.NewError(fiber.StatusBadRequest, "validation failed: "+strings.Join(fields, ", "))
	}
	return fiber.NewError(fiber.StatusBadRequest, "validation failed")
}

// ValidateAnonymousID guards path parameters that carry the device-scoped
// anonymous id.
func ValidateAnonymousID(id string) error {
	if id == "" || len(id) > 64 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid anonymous id")
	}
	return nil
}
