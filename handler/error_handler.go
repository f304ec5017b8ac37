package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"campus-chat-app/apperror"
	"campus-chat-app/dto/res"
)

// NewErrorHandler renders every error returned by a handler as
// res.ErrorResponse with a status derived from its kind.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, detail := classify(err)
		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Warn("Request rejected")
		}

		return ctx.Status(code).JSON(res.ErrorResponse{
			Status:     utils.StatusMessage(code),
			StatusCode: code,
			Error:      detail,
		})
	}
}

func classify(err error) (int, interface{}) {
	var validationErrors validator.ValidationErrors
	var fiberError *fiber.Error

	switch {
	case errors.As(err, &validationErrors):
		fields := make(map[string]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			fields[fieldError.Field()] = fieldError.Tag()
		}
		return fiber.StatusBadRequest, fields
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, apperror.ErrAuthentication):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, apperror.ErrDomainRule):
		return fiber.StatusConflict, err.Error()
	case errors.As(err, &fiberError):
		return fiberError.Code, fiberError.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
