package controllers

import (
	"net/http"

	"astrokart/models"
	"astrokart/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderController struct {
	orders *services.OrderService
	logger zerolog.Logger
}

func NewOrderController(orders *services.OrderService, logger zerolog.Logger) *OrderController {
	return &OrderController{orders: orders, logger: logger}
}

type createOrderRequest struct {
	Items           map[string]any `json:"items"`
	ShippingAddress string         `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

func (ctl *OrderController) Create(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	result, err := ctl.orders.PlaceOrder(c.Request.Context(), identity, services.PlaceOrderRequest{
		Items:           body.Items,
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Order placed successfully",
		"orderId":     result.OrderID.Hex(),
		"orderNumber": result.OrderNumber,
	})
}

func (ctl *OrderController) List(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	orders, err := ctl.orders.ListOrders(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

func (ctl *OrderController) Get(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	order, err := ctl.orders.GetOrder(c.Request.Context(), identity, orderID)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (ctl *OrderController) Cancel(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	if err := ctl.orders.CancelOrder(c.Request.Context(), identity, orderID); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully"})
}
