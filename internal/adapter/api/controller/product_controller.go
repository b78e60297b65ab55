package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	"github.com/mostafakamar/hafla-store/internal/cache"
	"github.com/mostafakamar/hafla-store/pkg/logger"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// ProductController handles catalog requests
type ProductController struct {
	products repository.ProductRepository
	catalog  cache.CatalogCache
	logger   logger.Logger
}

// NewProductController creates a new ProductController instance
func NewProductController(products repository.ProductRepository, catalog cache.CatalogCache, log logger.Logger) *ProductController {
	return &ProductController{
		products: products,
		catalog:  catalog,
		logger:   log,
	}
}

// List returns the full catalog
// @Summary List products
// @Description Returns every catalog product, cached for a short interval
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	if cached, ok, err := c.catalog.Get(reqCtx); err == nil && ok {
		ctx.JSON(http.StatusOK, dto.FromProducts(cached))
		return
	} else if err != nil {
		c.logger.Warn("catalog cache read failed", "error", err)
	}

	products, err := c.products.FindAll(reqCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to list products", err.Error()))
		return
	}

	if err := c.catalog.Set(reqCtx, products, catalogCacheTTL); err != nil {
		c.logger.Warn("catalog cache write failed", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.FromProducts(products))
}

// Get returns one product by id
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.products.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Product not found", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.FromProduct(*p))
}

// Create adds a product to the catalog
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Product data"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	if !dto.ValidCategory(request.Category) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid category", "Unknown category: "+request.Category))
		return
	}

	p := request.ToProduct()
	if err := c.products.Create(ctx.Request.Context(), p); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Failed to create the product", err.Error()))
		return
	}

	c.invalidate(ctx)
	ctx.JSON(http.StatusCreated, dto.FromProduct(*p))
}

// Update replaces a product's data
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param product body dto.ProductRequest true "Product data"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	if !dto.ValidCategory(request.Category) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid category", "Unknown category: "+request.Category))
		return
	}

	p := request.ToProduct()
	p.ID = ctx.Param("id")
	p.UpdatedAt = time.Now()

	if err := c.products.Update(ctx.Request.Context(), p); err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Product not found", err.Error()))
		return
	}

	c.invalidate(ctx)
	ctx.JSON(http.StatusOK, dto.FromProduct(*p))
}

// Delete removes a product from the catalog
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.products.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Product not found", err.Error()))
		return
	}

	c.invalidate(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Product deleted", nil))
}

func (c *ProductController) invalidate(ctx *gin.Context) {
	if err := c.catalog.Invalidate(ctx.Request.Context()); err != nil {
		c.logger.Warn("failed to invalidate catalog cache", "error", err)
	}
}
