package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
)

func (s *Server) listSecurityEvents(c echo.Context) error {
	filter := &security.EventFilter{
		Limit:  parseLimit(c, 50),
		Offset: parseOffset(c),
	}
	if v := c.QueryParam("event_type"); v != "" {
		et := security.EventType(v)
		filter.EventType = &et
	}
	if v := c.QueryParam("client_id"); v != "" {
		filter.ClientID = &v
	}

	events, total, err := s.securitySvc.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load security events")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"events": events, "total": total})
}
