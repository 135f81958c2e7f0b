package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sanatanigyan/granthalaya/internal/application/services"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver/helpers"
)

// parseLimit reads the limit query parameter, falling back to def for
// missing or invalid values.
func parseLimit(c echo.Context, def int) int {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		return v
	}
	return def
}

func parseOffset(c echo.Context) int {
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		return v
	}
	return 0
}

// Book handlers
func (s *Server) listBooks(c echo.Context) error {
	limit := parseLimit(c, services.DefaultPageLimit)
	offset := parseOffset(c)

	books, err := s.catalogSvc.ListBooks(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"books":    books,
		"limit":    limit,
		"offset":   offset,
		"has_more": len(books) == limit,
	})
}

func (s *Server) listRecentBooks(c echo.Context) error {
	limit := parseLimit(c, services.DefaultRecentBooks)

	books, err := s.catalogSvc.RecentBooks(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recent books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"books": books})
}

func (s *Server) listRecentlyViewedBooks(c echo.Context) error {
	books, err := s.catalogSvc.RecentlyViewed(c.Request().Context(), helpers.ClientFingerprint(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recently viewed books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"books": books})
}

func (s *Server) getBook(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book ID")
	}

	detail, err := s.catalogSvc.GetBookDetail(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load book")
	}
	if detail == nil {
		return echo.NewHTTPError(http.StatusNotFound, "book not found")
	}

	s.catalogSvc.RecordBookView(c.Request().Context(), helpers.ClientFingerprint(c), id)

	return c.JSON(http.StatusOK, detail)
}

func (s *Server) listBooksByCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category ID")
	}
	limit := parseLimit(c, services.DefaultCategoryBooks)

	books, err := s.catalogSvc.BooksByCategory(c.Request().Context(), categoryID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load category books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"books": books})
}

// Mantra handlers
func (s *Server) listMantras(c echo.Context) error {
	filter := &mantra.ListFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    parseLimit(c, services.DefaultPageLimit),
		Offset:   parseOffset(c),
	}

	mantras, err := s.catalogSvc.ListMantras(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load mantras")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"mantras":  mantras,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
		"has_more": len(mantras) == filter.Limit,
	})
}

func (s *Server) listRecentMantras(c echo.Context) error {
	limit := parseLimit(c, services.DefaultRecentMantras)

	mantras, err := s.catalogSvc.RecentMantras(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recent mantras")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"mantras": mantras})
}

func (s *Server) getMantra(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mantra ID")
	}

	detail, err := s.catalogSvc.GetMantraDetail(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load mantra")
	}
	if detail == nil {
		return echo.NewHTTPError(http.StatusNotFound, "mantra not found")
	}

	return c.JSON(http.StatusOK, detail)
}

// Product and category handlers
func (s *Server) listProducts(c echo.Context) error {
	limit := parseLimit(c, services.DefaultPageLimit)
	offset := parseOffset(c)

	products, err := s.catalogSvc.ListProducts(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load products")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
		"has_more": len(products) == limit,
	})
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load categories")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"categories": categories})
}
