package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/sanatanigyan/granthalaya/internal/application/services"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/memcache"
	"github.com/sanatanigyan/granthalaya/test/mocks"
)

type serverFixture struct {
	server  *httpserver.Server
	books   *mocks.BookRepositoryMock
	secSvc  *mocks.SecurityServiceMock
	msgRepo *mocks.MessageRepositoryMock
	store   *mocks.LocalStoreMock
}

func newServerFixture() *serverFixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &serverFixture{
		books:   &mocks.BookRepositoryMock{},
		secSvc:  &mocks.SecurityServiceMock{},
		msgRepo: &mocks.MessageRepositoryMock{},
		store:   mocks.NewLocalStoreMock(),
	}

	catalogSvc := services.NewCatalogService(services.CatalogDeps{
		Books:      f.books,
		Mantras:    &mocks.MantraRepositoryMock{},
		Products:   &mocks.ProductRepositoryMock{},
		Categories: &mocks.CategoryRepositoryMock{},
		Cache:      memcache.New(time.Minute),
		Local:      f.store,
	}, nil, logger)

	messageSvc := services.NewMessageService(f.msgRepo, f.secSvc, &mocks.EmailServiceMock{}, logger)
	japSvc := services.NewJapService(f.store, time.Hour, logger)

	f.server = httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, httpserver.ServerDeps{
		CatalogService:  catalogSvc,
		MessageService:  messageSvc,
		SecurityService: f.secSvc,
		JapService:      japSvc,
	})
	return f
}

func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListBooksEndpoint(t *testing.T) {
	f := newServerFixture()
	f.books.ListFn = func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
		out := make([]*book.Book, limit)
		for i := range out {
			out[i] = &book.Book{ID: uuid.New(), Title: fmt.Sprintf("Book %d", offset+i)}
		}
		return out, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/books?limit=2&offset=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["has_more"], "a full page signals more pages may exist")
	require.Len(t, body["books"], 2)
}

func TestListBooksEndpointLastPage(t *testing.T) {
	f := newServerFixture()
	f.books.ListFn = func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
		return []*book.Book{{ID: uuid.New(), Title: "Only one"}}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/books?limit=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeBody(t, rec)["has_more"], "a short page signals the last page")
}

func TestGetBookEndpoint(t *testing.T) {
	f := newServerFixture()
	id := uuid.New()
	f.books.GetByIDFn = func(ctx context.Context, bookID uuid.UUID) (*book.BookDetail, error) {
		if bookID != id {
			return nil, ports.ErrNotFound
		}
		d := &book.BookDetail{}
		d.ID = bookID
		d.Title = "Bhagavad Gita"
		return d, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/books/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Bhagavad Gita", decodeBody(t, rec)["title"])

	rec = f.do(t, http.MethodGet, "/api/v1/books/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/books/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookEndpointRecordsView(t *testing.T) {
	f := newServerFixture()
	id := uuid.New()
	f.books.GetByIDFn = func(ctx context.Context, bookID uuid.UUID) (*book.BookDetail, error) {
		d := &book.BookDetail{}
		d.ID = bookID
		return d, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/books/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/books/recently-viewed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["books"], 1)
}

func TestSubmitContactEndpoint(t *testing.T) {
	f := newServerFixture()

	form := map[string]string{
		"name":    "Ravi Shah",
		"email":   "ravi@example.com",
		"subject": "Namaste",
		"message": "I would like to know more about the scripture collection.",
	}

	rec := f.do(t, http.MethodPost, "/api/v1/contact", form)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["accepted"])
}

func TestSubmitContactEndpointValidation(t *testing.T) {
	f := newServerFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/contact", map[string]string{"name": "X"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "expected field errors in response")
	require.Len(t, errs, 4, "every invalid field reported at once")
}

func TestSubmitContactEndpointRateLimited(t *testing.T) {
	f := newServerFixture()
	f.secSvc.CheckRateLimitFn = func(ctx context.Context, clientID, actionType string) bool { return false }

	form := map[string]string{
		"name":    "Ravi Shah",
		"email":   "ravi@example.com",
		"subject": "Namaste",
		"message": "I would like to know more about the scripture collection.",
	}

	rec := f.do(t, http.MethodPost, "/api/v1/contact", form)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["rate_limited"])
}

func TestSubmitReportEndpoint(t *testing.T) {
	f := newServerFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/reports", map[string]string{
		"name":       "Ravi Shah",
		"email":      "ravi@example.com",
		"issue_type": "copyright",
		"message":    "This text appears to be reproduced without permission.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/reports", map[string]string{
		"name":       "Ravi Shah",
		"email":      "ravi@example.com",
		"issue_type": "nonsense",
		"message":    "This text appears to be reproduced without permission.",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJapSessionEndpoints(t *testing.T) {
	f := newServerFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/jap/session", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/jap/session", map[string]any{"mantra": "om namah shivaya", "target": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/jap/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeBody(t, rec)["completed"])

	rec = f.do(t, http.MethodPut, "/api/v1/jap/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["completed"])

	rec = f.do(t, http.MethodDelete, "/api/v1/jap/session", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/jap/session", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJapSessionStartValidation(t *testing.T) {
	f := newServerFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/jap/session", map[string]any{"mantra": "", "target": 108})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSecurityEventsEndpoint(t *testing.T) {
	f := newServerFixture()
	f.secSvc.ListEventsFn = func(ctx context.Context, filter *security.EventFilter) ([]*security.Event, int, error) {
		require.NotNil(t, filter.EventType)
		require.Equal(t, security.EventRateLimitExceeded, *filter.EventType)
		return []*security.Event{{ClientID: "client-1", EventType: *filter.EventType}}, 7, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/security/events?event_type=rate_limit_exceeded", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, float64(7), body["total"])
	require.Len(t, body["events"], 1)
}

func TestHealthEndpoint(t *testing.T) {
	f := newServerFixture()

	rec := f.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "granthalaya", body["service"])
}
