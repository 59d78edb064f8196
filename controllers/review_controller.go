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
)

type ReviewController struct {
	reviews *mongo.Collection
	logger  zerolog.Logger
}

func NewReviewController(reviews *mongo.Collection, logger zerolog.Logger) *ReviewController {
	return &ReviewController{reviews: reviews, logger: logger}
}

func (ctl *ReviewController) Add(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment" binding:"required"`
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

	review := models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    identity.ID,
		ProductID: productID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	if _, err := ctl.reviews.InsertOne(ctx, review); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review added"})
}

func (ctl *ReviewController) ListByProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := ctl.reviews.Find(ctx, bson.M{"productId": productID})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	avgRating := "0"
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		avgRating = fmt.Sprintf("%.1f", float64(sum)/float64(len(reviews)))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews, "avgRating": avgRating})
}
