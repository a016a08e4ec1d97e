package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libris/config"
	httpmiddleware "libris/internal/delivery/http/middleware"
	"libris/internal/delivery/http/router/handler"
	"libris/internal/delivery/http/validator"
	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
	"libris/internal/domain/service"
	"libris/internal/infra/auth"
	"libris/internal/infra/persistence/memory"
	"libris/internal/usecase/impl"
)

// memoryBookRepo backs the catalog routes without a database.
type memoryBookRepo struct {
	nextID uint
	books  []*entity.Book
}

func (r *memoryBookRepo) Migrate(_ context.Context) error { return nil }

func (r *memoryBookRepo) List(_ context.Context) ([]*entity.Book, error) {
	return r.books, nil
}

func (r *memoryBookRepo) Create(_ context.Context, book *entity.Book) error {
	r.nextID++
	book.ID = r.nextID
	r.books = append(r.books, book)

	return nil
}

func (r *memoryBookRepo) Delete(_ context.Context, id uint) error {
	for i, book := range r.books {
		if book.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)

			return nil
		}
	}

	return repository.ErrBookNotFound
}

func (r *memoryBookRepo) SearchByTitle(_ context.Context, title string) ([]*entity.Book, error) {
	needle := strings.ToLower(title)
	var matched []*entity.Book
	for _, book := range r.books {
		if strings.Contains(strings.ToLower(book.Title), needle) {
			matched = append(matched, book)
		}
	}
	if len(matched) == 0 {
		return nil, repository.ErrNoBooksMatched
	}

	return matched, nil
}

// newTestApp assembles the full HTTP stack against in-memory stores.
func newTestApp(t *testing.T) (*echo.Echo, service.TokenService) {
	t.Helper()

	// DefaultRole is left unset so signups get the shipped default role.
	cfg := &config.Config{Auth: &config.AuthConfig{
		BcryptCost: bcrypt.MinCost,
	}}
	cfg.SecretKey.Signing = "router_test_signing_secret_key"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewJWTService(cfg, logger)
	require.NoError(t, err)

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		CredentialRepo: memory.NewCredentialRepository(),
		Hasher:         auth.NewBcryptHasher(cfg),
		TokenService:   tokens,
		Config:         cfg,
		Logger:         logger,
	})
	catalogUsecase := impl.NewCatalogService(impl.CatalogServiceParams{
		BookRepo: &memoryBookRepo{},
		Logger:   logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUsecase, logger),
		CatalogHandler: handler.NewCatalogHandler(catalogUsecase, logger),
		AuthMiddleware: httpmiddleware.NewAuthMiddleware(tokens),
	}).RegisterRoutes(e)

	return e, tokens
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func loginToken(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.Data.TokenType)
	require.NotEmpty(t, body.Data.AccessToken)

	return body.Data.AccessToken
}

func TestRouter_HealthCheck(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_SignupAndLogin(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate username is rejected with 400, not 409
	rec = doJSON(e, http.MethodPost, "/signup", `{"username":"alice","password":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USERNAME_TAKEN")

	loginToken(t, e, "alice", "secret1")

	// Wrong password is a 400 with the generic credentials message
	rec = doJSON(e, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestRouter_SignupValidation(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_BooksRequireBearerToken(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = doJSON(e, http.MethodGet, "/books", "", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestRouter_CatalogCRUDAndSearch(t *testing.T) {
	e, tokens := newTestApp(t)

	doJSON(e, http.MethodPost, "/signup", `{"username":"alice","password":"secret1"}`, "")
	token := loginToken(t, e, "alice", "secret1")

	// Empty catalog lists as []
	rec := doJSON(e, http.MethodGet, "/books", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	rec = doJSON(e, http.MethodPost, "/books", `{"title":"Dune","price":"£10.00","availability":"In stock","rating":"Five"}`, token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/books", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)

	rec = doJSON(e, http.MethodGet, "/books/search?title=dUn", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)

	rec = doJSON(e, http.MethodGet, "/books/search?title=emma", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_BOOKS_MATCHED")

	// Deletion needs the admin role; a user-role token gets 403
	userToken, err := tokens.Issue("plain", entity.RoleUser, tokens.AccessTokenTTL())
	require.NoError(t, err)

	rec = doJSON(e, http.MethodDelete, "/books/1", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A fresh signup carries the default admin role, so its own token can delete
	rec = doJSON(e, http.MethodDelete, "/books/1", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/books/1", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOOK_NOT_FOUND")
}

func TestRouter_DeleteRejectsMalformedID(t *testing.T) {
	e, tokens := newTestApp(t)

	adminToken, err := tokens.Issue("root", entity.RoleAdmin, tokens.AccessTokenTTL())
	require.NoError(t, err)

	rec := doJSON(e, http.MethodDelete, "/books/abc", "", adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SearchRequiresTitleParam(t *testing.T) {
	e, _ := newTestApp(t)

	doJSON(e, http.MethodPost, "/signup", `{"username":"alice","password":"secret1"}`, "")
	token := loginToken(t, e, "alice", "secret1")

	rec := doJSON(e, http.MethodGet, "/books/search", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
