package utils

import (
	"gestor-turnos/apperrors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(name, "must be a positive integer")
	}
	return uint(id), nil
}

// ParseBody decodes the request body into req.
func ParseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.Validation("", "invalid request body")
	}
	return nil
}
