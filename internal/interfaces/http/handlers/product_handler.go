package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/interfaces/http/response"
	"shipstack.backend/internal/usecases"
)

type productService interface {
	CreateProduct(ctx context.Context, input *usecases.CreateProductInput) (*entities.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*entities.Product, int, error)
	CreateCategory(ctx context.Context, name string) (*entities.Category, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
}

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productUsecase productService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase *usecases.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// CreateProduct adds a catalog item
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input usecases.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	product, err := h.productUsecase.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// GetProduct returns one catalog item with its category
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	product, err := h.productUsecase.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// ListProducts returns a page of catalog items
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.productUsecase.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory adds a product category
// POST /api/v1/categories
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	category, err := h.productUsecase.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, category)
}

// ListCategories returns all product categories
// GET /api/v1/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"categories": categories,
	})
}
