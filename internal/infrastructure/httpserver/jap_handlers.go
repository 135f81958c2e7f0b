package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver/helpers"
)

type startJapRequest struct {
	Mantra string `json:"mantra"`
	Target int    `json:"target"`
}

func (s *Server) startJapSession(c echo.Context) error {
	var req startJapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.japSvc.Start(c.Request().Context(), helpers.ClientFingerprint(c), req.Mantra, req.Target)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, session)
}

func (s *Server) getJapSession(c echo.Context) error {
	session, err := s.japSvc.Get(c.Request().Context(), helpers.ClientFingerprint(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load session")
	}
	if session == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no active session")
	}

	return c.JSON(http.StatusOK, session)
}

func (s *Server) incrementJapSession(c echo.Context) error {
	session, err := s.japSvc.Increment(c.Request().Context(), helpers.ClientFingerprint(c))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no active session")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update session")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session":   session,
		"completed": session.Completed(),
	})
}

func (s *Server) resetJapSession(c echo.Context) error {
	if err := s.japSvc.Reset(c.Request().Context(), helpers.ClientFingerprint(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset session")
	}
	return c.NoContent(http.StatusNoContent)
}
