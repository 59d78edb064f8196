package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"astrokart/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WishlistController struct {
	wishlist *mongo.Collection
	products *mongo.Collection
	logger   zerolog.Logger
}

func NewWishlistController(wishlist, products *mongo.Collection, logger zerolog.Logger) *WishlistController {
	return &WishlistController{wishlist: wishlist, products: products, logger: logger}
}

// Add is idempotent: adding a product already on the wishlist succeeds
// without inserting a duplicate.
func (ctl *WishlistController) Add(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": identity.ID, "productId": productID}
	err = ctl.wishlist.FindOne(ctx, filter).Err()
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already in wishlist"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		respondServiceError(c, ctl.logger, err)
		return
	}

	item := models.WishlistItem{
		ID:        primitive.NewObjectID(),
		UserID:    identity.ID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if _, err := ctl.wishlist.InsertOne(ctx, item); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to wishlist"})
}

func (ctl *WishlistController) List(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ctl.wishlist.Find(ctx, bson.M{"userId": identity.ID})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	var items []models.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	products := []models.Product{}
	if len(items) > 0 {
		ids := make([]primitive.ObjectID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		cursor, err := ctl.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			respondServiceError(c, ctl.logger, err)
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			respondServiceError(c, ctl.logger, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (ctl *WishlistController) Remove(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.wishlist.DeleteOne(ctx, bson.M{"userId": identity.ID, "productId": productID})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist"})
}
