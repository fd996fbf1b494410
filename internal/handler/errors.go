package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/pkg/response"
)

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}

// serviceError maps controller errors to response envelopes
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrEmptyQuery):
		return response.EmptyQuery(c)
	case errors.Is(err, model.ErrCardNotFound):
		return response.NotFound(c, "Card not found")
	case errors.Is(err, model.ErrSessionNotFound):
		return response.NotFound(c, "Session not found")
	case errors.Is(err, model.ErrUnknownRegion), errors.Is(err, model.ErrInvalidCriteria):
		return response.ValidationError(c, err.Error(), nil)
	default:
		logging.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return response.ServiceError(c, "Something went wrong")
	}
}
