package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/whatssound/tipservice/internal/api/contract"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/internal/tipping"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return handleFiberError(c, fiberErr)
		}

		logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.Failure(c,
			constants.ErrCodeInternalError, constants.GetErrorMessage(constants.ErrCodeInternalError)))
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && err.Code != constants.ErrCodeInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	message := constants.GetErrorMessage(errorCode)

	var validationErr *tipping.ValidationError
	if errorCode == constants.ErrCodeValidationFailed && errors.As(err, &validationErr) {
		message = validationErr.Reason
	}

	return c.Status(status).JSON(contract.Failure(c, errorCode, message))
}

func handleFiberError(c *fiber.Ctx, err *fiber.Error) error {
	errorCode := constants.ErrCodeInternalError

	switch err.Code {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		errorCode = constants.ErrCodeInvalidRequestBody
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		errorCode = constants.ErrCodeRouteNotFound
	}

	return c.Status(err.Code).JSON(contract.Failure(c, errorCode, err.Message))
}
