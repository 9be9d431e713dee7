package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"books_api/internal/middleware"
	"books_api/internal/model"
	"books_api/internal/repository"
	"books_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing a fully wired router: real services, real
// mappers, real middleware, no database.

type memBookRepo struct {
	books  map[int64]model.Book
	nextID int64
}

func (m *memBookRepo) Create(_ context.Context, b *model.Book) error {
	b.ID = m.nextID
	m.nextID++
	m.books[b.ID] = *b
	return nil
}

func (m *memBookRepo) FindAll(context.Context) ([]model.Book, error) {
	var out []model.Book
	for id := int64(1); id < m.nextID; id++ {
		if b, ok := m.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookRepo) FindByID(_ context.Context, id int64) (*model.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBookRepo) FindByTitle(_ context.Context, title string) (*model.Book, error) {
	for id := int64(1); id < m.nextID; id++ {
		if b, ok := m.books[id]; ok && b.Title == title {
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memBookRepo) Update(_ context.Context, b *model.Book) error {
	if _, ok := m.books[b.ID]; !ok {
		return fmt.Errorf("book not found for update")
	}
	m.books[b.ID] = *b
	return nil
}

func (m *memBookRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.books[id]; !ok {
		return fmt.Errorf("book not found for deletion")
	}
	delete(m.books, id)
	return nil
}

type memUserRepo struct {
	users  map[string]model.User
	nextID int
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) error {
	if _, ok := m.users[u.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.Username] = *u
	return nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUserRepo) FindAll(context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func newFullRouter(t *testing.T) (*gin.Engine, service.BookService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bookRepo := &memBookRepo{books: make(map[int64]model.Book), nextID: 1}
	userRepo := &memUserRepo{users: make(map[string]model.User), nextID: 1}

	bookService := service.NewBookService(bookRepo)
	userService := service.NewUserService(userRepo)

	require.NoError(t, userService.Register(context.Background(), model.RegisterUserRequest{
		Username: "admin", Password: "adminpw", Authority: model.RoleAdmin,
	}))
	require.NoError(t, userService.Register(context.Background(), model.RegisterUserRequest{
		Username: "reader", Password: "readerpw", Authority: model.RoleUser,
	}))

	router := gin.New()
	router.Use(middleware.BasicAuthMiddleware(userService))
	router.Use(middleware.AuthorizeMiddleware(middleware.DefaultPolicy()))
	NewBookHandler(bookService).RegisterBookRoutes(router.Group("/api/v1"))
	NewUserHandler(userService).RegisterUserRoutes(router.Group("/api/users"))

	return router, bookService
}

func do(router *gin.Engine, method, path, username, password string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouting_SecurityMatrix(t *testing.T) {
	router, books := newFullRouter(t)
	_, err := books.Create(context.Background(), model.BookRequest{
		Title: "Animal Farm", Author: "George Orwell", ISBN: "978-0452284241",
	})
	require.NoError(t, err)

	payload := model.BookRequest{Title: "New", Author: "Author", ISBN: "1"}

	// Unauthenticated POST is rejected before reaching the handler
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/api/v1/books", "", "", payload).Code)

	// USER can create and update but not delete
	assert.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/v1/books", "reader", "readerpw", payload).Code)
	assert.Equal(t, http.StatusNoContent, do(router, http.MethodPut, "/api/v1/books/1", "reader", "readerpw", payload).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodDelete, "/api/v1/books/1", "reader", "readerpw", nil).Code)

	// ADMIN deletes
	assert.Equal(t, http.StatusNoContent, do(router, http.MethodDelete, "/api/v1/books/1", "admin", "adminpw", nil).Code)

	// User listing is admin-only
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/users", "reader", "readerpw", nil).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/users", "admin", "adminpw", nil).Code)
}

func TestRouting_SeededCatalogScenario(t *testing.T) {
	router, books := newFullRouter(t)
	for _, title := range []string{"Things Fall Apart", "Animal Farm"} {
		_, err := books.Create(context.Background(), model.BookRequest{
			Title: title, Author: "Author", ISBN: "978-0000000000",
		})
		require.NoError(t, err)
	}

	// Listing is public and returns both seeded books
	w := do(router, http.MethodGet, "/api/v1/books", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	// Search by title is admin-only
	w = do(router, http.MethodGet, "/api/v1/books/search/Animal%20Farm", "admin", "adminpw", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found model.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, "Animal Farm", found.Title)

	w = do(router, http.MethodGet, "/api/v1/books/search/Animal%20Farm", "reader", "readerpw", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouting_DuplicateRegistrationKeepsFirstUser(t *testing.T) {
	router, _ := newFullRouter(t)

	first := model.RegisterUserRequest{Username: "carol", Password: "original", Authority: model.RoleUser}
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/users/register", "", "", first).Code)

	second := model.RegisterUserRequest{Username: "carol", Password: "other", Authority: model.RoleAdmin}
	assert.Equal(t, http.StatusConflict, do(router, http.MethodPost, "/api/users/register", "", "", second).Code)

	// First credentials still work, second never took effect
	payload := model.BookRequest{Title: "T", Author: "A", ISBN: "1"}
	assert.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/v1/books", "carol", "original", payload).Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/api/v1/books", "carol", "other", payload).Code)
}

func TestRouting_NotFoundProducesNoStateChange(t *testing.T) {
	router, books := newFullRouter(t)

	payload := model.BookRequest{Title: "T", Author: "A", ISBN: "1"}
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/v1/books/42", "", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPut, "/api/v1/books/42", "reader", "readerpw", payload).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/v1/books/42", "admin", "adminpw", nil).Code)

	all, err := books.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
