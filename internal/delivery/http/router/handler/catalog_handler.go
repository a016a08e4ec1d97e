package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"libris/internal/delivery/http/response"
	"libris/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for book catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListBooks returns the whole catalog.
func (h *CatalogHandler) ListBooks(c echo.Context) error {
	books, err := h.uc.ListBooks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// CreateBook adds a record to the catalog. Duplicate titles are allowed.
func (h *CatalogHandler) CreateBook(c echo.Context) error {
	var input *usecase.CreateBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.CreateBook(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Book added successfully")
}

// DeleteBook removes a record by its path id.
func (h *CatalogHandler) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Book id must be a positive integer")
	}

	if err := h.uc.DeleteBook(c.Request().Context(), uint(id)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Book deleted successfully")
}

// SearchBooks returns books whose title contains the query substring,
// case-insensitively. Zero matches is a 404 by contract.
func (h *CatalogHandler) SearchBooks(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter 'title' is required")
	}

	books, err := h.uc.SearchBooks(c.Request().Context(), title)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}
