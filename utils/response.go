package utils

import (
	"errors"
	"gestor-turnos/apperrors"
	"gestor-turnos/logger"
	"gestor-turnos/middleware"
	"gestor-turnos/types"

	"github.com/gofiber/fiber/v2"
)

// ErrorStatus maps an error onto an HTTP status and a client message.
// Store failures hide their cause.
func ErrorStatus(err error) (int, string) {
	var (
		ve  *apperrors.ValidationError
		de  *apperrors.DataIntegrityError
		ist *apperrors.InvalidStateTransition
		se  *apperrors.StoreError
		fe  *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound, "Record not found"
	case errors.Is(err, apperrors.ErrDuplicateSnapshot):
		return fiber.StatusConflict, err.Error()
	case errors.As(err, &de):
		return fiber.StatusConflict, de.Error()
	case errors.As(err, &ist):
		return fiber.StatusUnprocessableEntity, ist.Error()
	case errors.As(err, &se) && se.Constraint:
		return fiber.StatusConflict, "Conflicts with existing data"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// RespondError writes err as an ApiResponse with the mapped status.
func RespondError(c *fiber.Ctx, err error) error {
	status, msg := ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error(c.Method()+" "+c.Path()+" failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message:   msg,
		Status:    status,
		RequestID: middleware.RequestID(c),
	})
}

// ErrorHandler is the fiber error handler of the API.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return RespondError(c, err)
}
