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

// HomeController serves the configurable homepage rows.
type HomeController struct {
	homeRows *mongo.Collection
	products *mongo.Collection
	logger   zerolog.Logger
}

func NewHomeController(homeRows, products *mongo.Collection, logger zerolog.Logger) *HomeController {
	return &HomeController{homeRows: homeRows, products: products, logger: logger}
}

func (ctl *HomeController) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if row := c.Query("row"); row != "" {
		config, err := ctl.loadRow(ctx, "home_"+row)
		if err != nil {
			respondServiceError(c, ctl.logger, err)
			return
		}
		if config == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "title": "", "products": []models.Product{}})
			return
		}
		products, err := ctl.resolveProducts(ctx, config.Products)
		if err != nil {
			respondServiceError(c, ctl.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "title": config.Title, "products": products})
		return
	}

	row1, err := ctl.rowPayload(ctx, "home_row1", "Featured Oversized")
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	row2, err := ctl.rowPayload(ctx, "home_row2", "New Arrivals")
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "row1": row1, "row2": row2})
}

func (ctl *HomeController) rowPayload(ctx context.Context, rowType, defaultTitle string) (gin.H, error) {
	config, err := ctl.loadRow(ctx, rowType)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return gin.H{"title": defaultTitle, "products": []models.Product{}}, nil
	}

	ids := config.Products
	if len(ids) > models.MaxHomeRowProducts {
		ids = ids[:models.MaxHomeRowProducts]
	}
	products, err := ctl.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	return gin.H{"title": config.Title, "products": products}, nil
}

func (ctl *HomeController) loadRow(ctx context.Context, rowType string) (*models.HomeRow, error) {
	var config models.HomeRow
	err := ctl.homeRows.FindOne(ctx, bson.M{"type": rowType}).Decode(&config)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// resolveProducts skips malformed ids so one stale entry cannot break
// the whole homepage.
func (ctl *HomeController) resolveProducts(ctx context.Context, hexIDs []string) ([]models.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hex := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	cursor, err := ctl.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
