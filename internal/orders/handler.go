package orders

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

	authed := router.Group("/", security.JWTMiddleware())
	authed.POST("/orders", security.Authorize("client"), handler.CreateOrder)
	authed.GET("/orders/:id", security.Authorize("client"), handler.GetOrder)

	staff := authed.Group("/", security.Authorize("staff"))
	staff.GET("/orders/pending", handler.ListPending)
	staff.GET("/orders/picked", handler.ListPicked)
	staff.POST("/orders/:id/pick", handler.PickOrder)
	staff.POST("/order-processing/:id/advance", handler.AdvanceOrder)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.UserID == 0 {
		userID, err := security.UserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to resolve user"})
			return
		}
		req.UserID = userID
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	go h.AuditLog.Log("order_created", map[string]interface{}{
		"user_id":     order.UserID,
		"total_price": order.TotalPrice,
		"lines":       len(order.Lines),
	}, order)

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.Service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListPending(c *gin.Context) {
	pending, err := h.Service.ListPending(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

func (h *Handler) ListPicked(c *gin.Context) {
	staffID, err := security.UserIDFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to resolve user"})
		return
	}

	picked, err := h.Service.ListPickedBy(c.Request.Context(), staffID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, picked)
}

func (h *Handler) PickOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req models.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	staffID := req.StaffID
	if staffID == 0 {
		staffID, err = security.UserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to resolve user"})
			return
		}
	}

	record, err := h.Service.Pick(c.Request.Context(), orderID, staffID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	go h.AuditLog.Log("order_picked", map[string]interface{}{
		"staff_id": record.StaffID,
	}, record)

	c.JSON(http.StatusOK, record)
}

func (h *Handler) AdvanceOrder(c *gin.Context) {
	processingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid processing record ID"})
		return
	}

	var req models.AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	record, err := h.Service.Advance(c.Request.Context(), processingID, req.Status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	go h.AuditLog.Log("order_advanced", map[string]interface{}{
		"staff_id": record.StaffID,
		"status":   record.Status,
	}, record)

	c.JSON(http.StatusOK, record)
}
