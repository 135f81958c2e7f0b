package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver/helpers"
)

func (s *Server) submitContact(c echo.Context) error {
	var form message.ContactForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.messageSvc.SubmitContact(c.Request().Context(), helpers.ClientMetaFromContext(c), &form)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send message")
	}

	return c.JSON(submitStatus(result), result)
}

func (s *Server) submitReport(c echo.Context) error {
	var form message.ReportForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.messageSvc.SubmitReport(c.Request().Context(), helpers.ClientMetaFromContext(c), &form)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to submit report")
	}

	return c.JSON(submitStatus(result), result)
}

func submitStatus(result *message.SubmitResult) int {
	switch {
	case result.RateLimited:
		return http.StatusTooManyRequests
	case !result.Accepted:
		return http.StatusBadRequest
	default:
		return http.StatusCreated
	}
}
