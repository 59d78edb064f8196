package controllers

import (
	"context"
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

type ProductController struct {
	products *mongo.Collection
	logger   zerolog.Logger
}

func NewProductController(products *mongo.Collection, logger zerolog.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

var productSortOptions = map[string]bson.D{
	"price-asc":  {{Key: "price", Value: 1}},
	"price-desc": {{Key: "price", Value: -1}},
	"name-asc":   {{Key: "name", Value: 1}},
	"name-desc":  {{Key: "name", Value: -1}},
	"newest":     {{Key: "createdAt", Value: -1}},
	"oldest":     {{Key: "createdAt", Value: 1}},
}

// List serves the catalog with category/search/featured filters and the
// storefront sort options, newest first by default.
func (ctl *ProductController) List(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if search := c.Query("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"details": regex},
		}
	}
	if c.Query("featured") == "true" {
		filter["featured"] = true
	}

	sortOption, ok := productSortOptions[c.Query("sort")]
	if !ok {
		sortOption = productSortOptions["newest"]
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ctl.products.Find(ctx, filter, options.Find().SetSort(sortOption))
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "total": len(products)})
}

func (ctl *ProductController) Get(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := ctl.products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
