package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"astrokart/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminHomeController struct {
	homeRows *mongo.Collection
	logger   zerolog.Logger
}

func NewAdminHomeController(homeRows *mongo.Collection, logger zerolog.Logger) *AdminHomeController {
	return &AdminHomeController{homeRows: homeRows, logger: logger}
}

func (ctl *AdminHomeController) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	row1, err := ctl.findRow(ctx, "home_row1")
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	row2, err := ctl.findRow(ctx, "home_row2")
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "row1": row1, "row2": row2})
}

func (ctl *AdminHomeController) Update(c *gin.Context) {
	var body struct {
		Row      string   `json:"row" binding:"required,oneof=row1 row2"`
		Title    string   `json:"title" binding:"required"`
		Products []string `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if len(body.Products) > models.MaxHomeRowProducts {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Maximum %d products per row", models.MaxHomeRowProducts),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, err := ctl.homeRows.UpdateOne(
		ctx,
		bson.M{"type": "home_" + body.Row},
		bson.M{"$set": bson.M{"title": body.Title, "products": body.Products}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Row %s updated", body.Row)})
}

func (ctl *AdminHomeController) findRow(ctx context.Context, rowType string) (*models.HomeRow, error) {
	var row models.HomeRow
	err := ctl.homeRows.FindOne(ctx, bson.M{"type": rowType}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
