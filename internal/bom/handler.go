package bom

import (
	"net/http"
	"strconv"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/auditlog"
	"restaurant/pkg/models"
	"restaurant/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service  *Service
	AuditLog *auditlog.Auditlog
}

func RegisterRoutes(router *gin.Engine, s *Service, a *auditlog.Auditlog) {
	handler := Handler{
		Service:  s,
		AuditLog: a,
	}

	staff := router.Group("/", security.JWTMiddleware(), security.Authorize("staff"))
	staff.POST("/items/:id/ingredients", handler.AddIngredient)
	staff.PATCH("/items/:id/ingredients/:ingredient_id", handler.UpdateIngredient)
	staff.DELETE("/items/:id/ingredients/:ingredient_id", handler.RemoveIngredient)
	staff.GET("/items/:id/ingredients", handler.GetIngredients)
	staff.GET("/items/:id/available-ingredients", handler.GetAvailableIngredients)
	staff.GET("/items/:id/used-in", handler.GetItemsUsingIngredient)
}

func (h *Handler) AddIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req models.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	edge := models.IngredientEdge{
		ItemToCreateID:   itemID,
		IngredientItemID: req.IngredientItemID,
		Quantity:         req.Quantity,
	}

	if err := h.Service.AddIngredient(c.Request.Context(), edge); err != nil {
		apperrors.Respond(c, err)
		return
	}

	go h.AuditLog.Log("ingredient_added", map[string]interface{}{
		"ingredient_item_id": edge.IngredientItemID,
		"quantity":           edge.Quantity,
	}, &edge)

	c.JSON(http.StatusCreated, edge)
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	ingredientID, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	var req models.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	edge := models.IngredientEdge{
		ItemToCreateID:   itemID,
		IngredientItemID: ingredientID,
		Quantity:         req.Quantity,
	}

	if err := h.Service.UpdateIngredient(c.Request.Context(), edge); err != nil {
		apperrors.Respond(c, err)
		return
	}

	go h.AuditLog.Log("ingredient_updated", map[string]interface{}{
		"ingredient_item_id": ingredientID,
		"quantity":           req.Quantity,
	}, &edge)

	c.JSON(http.StatusOK, edge)
}

func (h *Handler) RemoveIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	ingredientID, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	if err := h.Service.RemoveIngredient(c.Request.Context(), itemID, ingredientID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	edge := models.IngredientEdge{ItemToCreateID: itemID, IngredientItemID: ingredientID}
	go h.AuditLog.Log("ingredient_removed", map[string]interface{}{
		"ingredient_item_id": ingredientID,
	}, &edge)

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient removed"})
}

func (h *Handler) GetIngredients(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	edges, err := h.Service.GetIngredients(c.Request.Context(), itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, edges)
}

func (h *Handler) GetAvailableIngredients(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	items, err := h.Service.AvailableIngredientsFor(c.Request.Context(), itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItemsUsingIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	items, err := h.Service.ItemsUsingIngredient(c.Request.Context(), itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
