package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/category"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/product"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// BookRepositoryMock is a lightweight mock for BookRepository
type BookRepositoryMock struct {
	ListFn           func(ctx context.Context, limit, offset int) ([]*book.Book, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*book.BookDetail, error)
	ListRecentFn     func(ctx context.Context, limit int) ([]*book.Book, error)
	ListByCategoryFn func(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error)
}

func (m *BookRepositoryMock) List(ctx context.Context, limit, offset int) ([]*book.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return []*book.Book{}, nil
}
func (m *BookRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*book.BookDetail, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *BookRepositoryMock) ListRecent(ctx context.Context, limit int) ([]*book.Book, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return []*book.Book{}, nil
}
func (m *BookRepositoryMock) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, categoryID, limit)
	}
	return []*book.Book{}, nil
}

// MantraRepositoryMock is a lightweight mock for MantraRepository
type MantraRepositoryMock struct {
	ListFn       func(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error)
	ListRecentFn func(ctx context.Context, limit int) ([]*mantra.Mantra, error)
}

func (m *MantraRepositoryMock) List(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*mantra.Mantra{}, nil
}
func (m *MantraRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *MantraRepositoryMock) ListRecent(ctx context.Context, limit int) ([]*mantra.Mantra, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return []*mantra.Mantra{}, nil
}

// ProductRepositoryMock is a lightweight mock for ProductRepository
type ProductRepositoryMock struct {
	ListFn func(ctx context.Context, limit, offset int) ([]*product.Product, error)
}

func (m *ProductRepositoryMock) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return []*product.Product{}, nil
}

// CategoryRepositoryMock is a lightweight mock for CategoryRepository
type CategoryRepositoryMock struct {
	ListFn func(ctx context.Context) ([]*category.Category, error)
}

func (m *CategoryRepositoryMock) List(ctx context.Context) ([]*category.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*category.Category{}, nil
}

// MessageRepositoryMock is a lightweight mock for MessageRepository
type MessageRepositoryMock struct {
	InsertContactFn func(ctx context.Context, m *message.ContactMessage) error
	InsertReportFn  func(ctx context.Context, r *message.Report) error
}

func (m *MessageRepositoryMock) InsertContact(ctx context.Context, msg *message.ContactMessage) error {
	if m.InsertContactFn != nil {
		return m.InsertContactFn(ctx, msg)
	}
	return nil
}
func (m *MessageRepositoryMock) InsertReport(ctx context.Context, r *message.Report) error {
	if m.InsertReportFn != nil {
		return m.InsertReportFn(ctx, r)
	}
	return nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, identifier, actionType string, window, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, identifier, actionType string, window, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, identifier, actionType, window, ttl)
	}
	return 1, time.Now(), nil
}

// SecurityEventRepositoryMock is a lightweight mock for SecurityEventRepository
type SecurityEventRepositoryMock struct {
	CreateFn func(ctx context.Context, e *security.Event) error
	ListFn   func(ctx context.Context, filter *security.EventFilter) ([]*security.Event, error)
	CountFn  func(ctx context.Context, filter *security.EventFilter) (int, error)
}

func (m *SecurityEventRepositoryMock) Create(ctx context.Context, e *security.Event) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}
func (m *SecurityEventRepositoryMock) List(ctx context.Context, filter *security.EventFilter) ([]*security.Event, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*security.Event{}, nil
}
func (m *SecurityEventRepositoryMock) Count(ctx context.Context, filter *security.EventFilter) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// SecurityServiceMock is a lightweight mock for SecurityService
type SecurityServiceMock struct {
	CheckRateLimitFn func(ctx context.Context, clientID, actionType string) bool
	LogEventFn       func(ctx context.Context, req *security.CreateEventRequest)
	ListEventsFn     func(ctx context.Context, filter *security.EventFilter) ([]*security.Event, int, error)
}

func (m *SecurityServiceMock) CheckRateLimit(ctx context.Context, clientID, actionType string) bool {
	if m.CheckRateLimitFn != nil {
		return m.CheckRateLimitFn(ctx, clientID, actionType)
	}
	return true
}
func (m *SecurityServiceMock) LogEvent(ctx context.Context, req *security.CreateEventRequest) {
	if m.LogEventFn != nil {
		m.LogEventFn(ctx, req)
	}
}
func (m *SecurityServiceMock) ListEvents(ctx context.Context, filter *security.EventFilter) ([]*security.Event, int, error) {
	if m.ListEventsFn != nil {
		return m.ListEventsFn(ctx, filter)
	}
	return []*security.Event{}, 0, nil
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	NotifyContactMessageFn func(ctx context.Context, m *message.ContactMessage) error
	NotifyReportFn         func(ctx context.Context, r *message.Report) error
}

func (m *EmailServiceMock) NotifyContactMessage(ctx context.Context, msg *message.ContactMessage) error {
	if m.NotifyContactMessageFn != nil {
		return m.NotifyContactMessageFn(ctx, msg)
	}
	return nil
}
func (m *EmailServiceMock) NotifyReport(ctx context.Context, r *message.Report) error {
	if m.NotifyReportFn != nil {
		return m.NotifyReportFn(ctx, r)
	}
	return nil
}

// LocalStoreMock implements ports.LocalStore in memory with real JSON
// round-trips, so serialization behavior matches the Redis-backed store.
type LocalStoreMock struct {
	mu      sync.Mutex
	entries map[string]localEntry

	// Optional error injection
	SetErr    error
	GetErr    error
	RemoveErr error
}

type localEntry struct {
	data     []byte
	storedAt time.Time
}

func NewLocalStoreMock() *LocalStoreMock {
	return &LocalStoreMock{entries: map[string]localEntry{}}
}

func (m *LocalStoreMock) Set(ctx context.Context, key string, value any) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = localEntry{data: data, storedAt: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *LocalStoreMock) Get(ctx context.Context, key string, maxAge time.Duration, dest any) (bool, error) {
	if m.GetErr != nil {
		return false, m.GetErr
	}
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && time.Since(e.storedAt) > maxAge {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *LocalStoreMock) Remove(ctx context.Context, key string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Age backdates an entry so maxAge expiry paths can be exercised.
func (m *LocalStoreMock) Age(key string, by time.Duration) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok {
		e.storedAt = e.storedAt.Add(-by)
		m.entries[key] = e
	}
	m.mu.Unlock()
}

// Has reports whether an entry is present regardless of age.
func (m *LocalStoreMock) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

var (
	_ ports.BookRepository          = (*BookRepositoryMock)(nil)
	_ ports.MantraRepository        = (*MantraRepositoryMock)(nil)
	_ ports.ProductRepository       = (*ProductRepositoryMock)(nil)
	_ ports.CategoryRepository      = (*CategoryRepositoryMock)(nil)
	_ ports.MessageRepository       = (*MessageRepositoryMock)(nil)
	_ ports.RateLimitRepository     = (*RateLimitRepositoryMock)(nil)
	_ ports.SecurityEventRepository = (*SecurityEventRepositoryMock)(nil)
	_ ports.SecurityService         = (*SecurityServiceMock)(nil)
	_ ports.EmailService            = (*EmailServiceMock)(nil)
	_ ports.LocalStore              = (*LocalStoreMock)(nil)
)
