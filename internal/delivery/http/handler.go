package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocerylist/backend/internal/domain"
	"github.com/grocerylist/backend/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	shop   *usecase.ShopService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(shop *usecase.ShopService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		shop:   shop,
		logger: logger,
	}
}

// cartItemRequest is the body of POST /api/v1/cart/items
type cartItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// cartResponse is the cart part of a ShopView
type cartResponse struct {
	Items      domain.Cart `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int64       `json:"totalPrice"`
	Total      string      `json:"total"`
}

func newCartResponse(view *usecase.ShopView) cartResponse {
	return cartResponse{
		Items:      view.Cart,
		TotalItems: view.TotalItems,
		TotalPrice: view.TotalPrice,
		Total:      view.Total,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "grocerylist-backend",
		"version": "1.0.0",
	})
}

// Index renders the grocery list page. Filter query parameters, when present,
// replace the session's stored criteria.
func (h *Handler) Index(c *gin.Context) {
	view, err := h.viewWithQuery(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"View": view,
	})
}

// AddToCartForm handles the "+" buttons on the page
func (h *Handler) AddToCartForm(c *gin.Context) {
	if _, err := h.shop.AddToCart(c.Request.Context(), SessionID(c), c.PostForm("name")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// RemoveFromCartForm handles the "-" buttons on the page
func (h *Handler) RemoveFromCartForm(c *gin.Context) {
	if _, err := h.shop.RemoveFromCart(c.Request.Context(), SessionID(c), c.PostForm("name")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ClearCartForm empties the cart from the page
func (h *Handler) ClearCartForm(c *gin.Context) {
	if _, err := h.shop.ClearCart(c.Request.Context(), SessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ResetSessionForm drops the session's filter and cart from the page
func (h *Handler) ResetSessionForm(c *gin.Context) {
	if _, err := h.shop.ResetSession(c.Request.Context(), SessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GetView returns the full page state as JSON
func (h *Handler) GetView(c *gin.Context) {
	view, err := h.viewWithQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetRows returns the filtered, grouped catalog rows
func (h *Handler) GetRows(c *gin.Context) {
	view, err := h.viewWithQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"criteria":   view.Criteria,
		"rows":       view.Rows,
		"matchCount": view.MatchCount,
	})
}

// GetCategories returns the category selection options
func (h *Handler) GetCategories(c *gin.Context) {
	view, err := h.shop.View(c.Request.Context(), SessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": view.Categories,
	})
}

// GetCart returns the session cart and its totals
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.shop.View(c.Request.Context(), SessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(view))
}

// AddCartItem adds one unit of a product to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	view, err := h.shop.AddToCart(c.Request.Context(), SessionID(c), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(view))
}

// RemoveCartItem takes one unit of a product out of the cart
func (h *Handler) RemoveCartItem(c *gin.Context) {
	view, err := h.shop.RemoveFromCart(c.Request.Context(), SessionID(c), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(view))
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	view, err := h.shop.ClearCart(c.Request.Context(), SessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(view))
}

// ResetSession drops the session's filter and cart and returns the fresh view
func (h *Handler) ResetSession(c *gin.Context) {
	view, err := h.shop.ResetSession(c.Request.Context(), SessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// viewWithQuery applies filter query parameters if any are present, otherwise
// returns the stored view
func (h *Handler) viewWithQuery(c *gin.Context) (*usecase.ShopView, error) {
	query := c.Request.URL.Query()
	if !query.Has("q") && !query.Has("in_stock") && !query.Has("category") {
		return h.shop.View(c.Request.Context(), SessionID(c))
	}

	var criteria domain.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		return nil, domain.ErrInvalidRequest
	}
	return h.shop.ApplyFilter(c.Request.Context(), SessionID(c), criteria)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) logError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
}

// respondError writes a JSON error body
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	h.logError(c, status, err)
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

// renderError writes an HTML error page
func (h *Handler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	h.logError(c, status, err)
	c.HTML(status, "error.html", gin.H{
		"Status":  status,
		"Message": err.Error(),
	})
}
