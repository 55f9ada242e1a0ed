package handlers

import (
	"net/http"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	orderService services.OrderService
	logger       *logrus.Logger
}

func NewOrderHandler(orderService services.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		respondWithError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(input)
	if err != nil {
		respondCrudError(c, h.logger, err, "Failed to create order")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"items":        len(order.Items),
		"total_amount": order.TotalAmount,
	}).Info("Order created")

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(id, body.Status)
	if err != nil {
		respondCrudError(c, h.logger, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	if err := h.orderService.Delete(id); err != nil {
		respondCrudError(c, h.logger, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
