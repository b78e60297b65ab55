package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	"github.com/mostafakamar/hafla-store/internal/cache"
	"github.com/mostafakamar/hafla-store/pkg/auth"
	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/logger"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// OrderController handles storefront checkout requests
type OrderController struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	catalog  cache.CatalogCache
	logger   logger.Logger
}

// NewOrderController creates a new OrderController instance
func NewOrderController(orders repository.OrderRepository, products repository.ProductRepository, catalog cache.CatalogCache, log logger.Logger) *OrderController {
	return &OrderController{
		orders:   orders,
		products: products,
		catalog:  catalog,
		logger:   log,
	}
}

// Create places an order. Prices are taken from the catalog at checkout
// time, not from the request.
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.OrderRequest true "Order items"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var request dto.OrderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	userID, _, _ := auth.CurrentUser(ctx)
	reqCtx := ctx.Request.Context()
	now := time.Now()

	order := &domain.Order{
		ID:         uuid.New().String(),
		CustomerID: userID,
		Status:     "pending",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, item := range request.Items {
		p, err := c.products.FindByID(reqCtx, item.ProductID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Unknown product", item.ProductID))
			return
		}
		if !p.Active {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Inactive product", p.ID))
			return
		}

		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     p.Price,
			CreatedAt: now,
		})
		order.Total += p.Price * float64(item.Quantity)
	}

	if err := c.orders.Create(reqCtx, order); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Failed to place the order", err.Error()))
		return
	}

	if err := c.catalog.Invalidate(reqCtx); err != nil {
		c.logger.Warn("failed to invalidate catalog cache", "error", err)
	}

	ctx.JSON(http.StatusCreated, dto.FromOrder(*order))
}

// Get returns one of the caller's orders
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	userID, _, role := auth.CurrentUser(ctx)

	order, err := c.orders.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Order not found", ""))
		return
	}

	// Customers can only see their own orders
	if role == "customer" && order.CustomerID != userID {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Access denied", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.FromOrder(*order))
}

// List returns the caller's orders
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Success 200 {array} dto.OrderResponse
// @Security BearerAuth
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	userID, _, _ := auth.CurrentUser(ctx)

	orders, err := c.orders.FindByCustomer(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to list orders", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.FromOrders(orders))
}
