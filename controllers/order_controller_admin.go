package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"astrokart/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminOrderController struct {
	orders *mongo.Collection
	logger zerolog.Logger
}

func NewAdminOrderController(orders *mongo.Collection, logger zerolog.Logger) *AdminOrderController {
	return &AdminOrderController{orders: orders, logger: logger}
}

func (ctl *AdminOrderController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := ctl.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

func (ctl *AdminOrderController) Get(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := ctl.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// UpdateStatus drives the admin-side transitions of the order state
// machine. Cancellation stays customer-facing and is not reachable from
// here, which keeps the stock restoration in one place.
func (ctl *AdminOrderController) UpdateStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	next := models.OrderStatus(body.Status)
	if !next.IsValid() || next == models.StatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status value"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := ctl.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if !order.Status.CanTransitionTo(next) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Cannot change status from %s to %s", order.Status, next),
		})
		return
	}

	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Order
	if err := ctl.orders.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, opts).Decode(&updated); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated", "order": updated})
}
