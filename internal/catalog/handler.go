package catalog

import (
	"net/http"
	"strconv"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"
	"restaurant/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Items      ItemRepository
	Categories CategoryRepository
}

func RegisterRoutes(router *gin.Engine, items ItemRepository, categories CategoryRepository) {
	handler := Handler{
		Items:      items,
		Categories: categories,
	}

	router.GET("/items", handler.GetItems)
	router.GET("/items/:id", handler.GetItem)
	router.GET("/categories", handler.GetCategories)

	staff := router.Group("/", security.JWTMiddleware(), security.Authorize("staff"))
	staff.POST("/items", handler.CreateItem)
	staff.PATCH("/items/:id", handler.UpdateItem)
	staff.DELETE("/items/:id", handler.DeleteItem)
	staff.POST("/categories", handler.CreateCategory)
	staff.DELETE("/categories/:id", handler.DeleteCategory)
}

func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.Items.GetItems(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.Items.GetItem(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	id, err := h.Items.PersistItem(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if (req.Price != nil && *req.Price < 0) || (req.StockQuantity != nil && *req.StockQuantity < 0) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Price and stock must not be negative"})
		return
	}

	if !req.HasChanges() {
		item, err := h.Items.GetItem(c.Request.Context(), id)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
		return
	}

	if err := h.Items.UpdateItem(c.Request.Context(), id, req); err != nil {
		apperrors.Respond(c, err)
		return
	}

	item, err := h.Items.GetItem(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.Items.DeleteItem(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Categories.GetCategories(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	id, err := h.Categories.PersistCategory(c.Request.Context(), req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
