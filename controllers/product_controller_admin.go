package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"astrokart/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminProductController struct {
	products *mongo.Collection
	logger   zerolog.Logger
}

func NewAdminProductController(products *mongo.Collection, logger zerolog.Logger) *AdminProductController {
	return &AdminProductController{products: products, logger: logger}
}

type productInput struct {
	Name                string   `json:"name" binding:"required"`
	Category            string   `json:"category" binding:"required"`
	Price               *float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice       float64  `json:"originalPrice" binding:"omitempty,gte=0"`
	Stock               int      `json:"stock" binding:"gte=0"`
	Images              []string `json:"images"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription"`
	Details             []string `json:"details"`
	CareInstructions    []string `json:"careInstructions"`
	Color               string   `json:"color"`
	Fabric              string   `json:"fabric"`
	PrintType           string   `json:"printType"`
	DeliveryTime        string   `json:"deliveryTime"`
	Featured            bool     `json:"featured"`
}

func (ctl *AdminProductController) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, category and a non-negative price are required"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:                  primitive.NewObjectID(),
		Name:                input.Name,
		Category:            input.Category,
		Price:               *input.Price,
		OriginalPrice:       input.OriginalPrice,
		Stock:               input.Stock,
		Images:              input.Images,
		Description:         input.Description,
		DetailedDescription: input.DetailedDescription,
		Details:             input.Details,
		CareInstructions:    input.CareInstructions,
		Color:               input.Color,
		Fabric:              input.Fabric,
		PrintType:           input.PrintType,
		DeliveryTime:        input.DeliveryTime,
		Featured:            input.Featured,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := ctl.products.InsertOne(ctx, product); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product created", "product": product})
}

// List pages through the catalog for the admin panel.
func (ctl *AdminProductController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := ctl.products.CountDocuments(ctx, filter)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := ctl.products.Find(ctx, filter, opts)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (ctl *AdminProductController) Update(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var body struct {
		Name                *string   `json:"name"`
		Category            *string   `json:"category"`
		Price               *float64  `json:"price" binding:"omitempty,gte=0"`
		OriginalPrice       *float64  `json:"originalPrice" binding:"omitempty,gte=0"`
		Stock               *int      `json:"stock" binding:"omitempty,gte=0"`
		Images              *[]string `json:"images"`
		Description         *string   `json:"description"`
		DetailedDescription *string   `json:"detailedDescription"`
		Details             *[]string `json:"details"`
		CareInstructions    *[]string `json:"careInstructions"`
		Color               *string   `json:"color"`
		Fabric              *string   `json:"fabric"`
		PrintType           *string   `json:"printType"`
		DeliveryTime        *string   `json:"deliveryTime"`
		Featured            *bool     `json:"featured"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	update := bson.M{}
	set := func(key string, value any) { update[key] = value }
	if body.Name != nil {
		set("name", *body.Name)
	}
	if body.Category != nil {
		set("category", *body.Category)
	}
	if body.Price != nil {
		set("price", *body.Price)
	}
	if body.OriginalPrice != nil {
		set("originalPrice", *body.OriginalPrice)
	}
	if body.Stock != nil {
		set("stock", *body.Stock)
	}
	if body.Images != nil {
		set("images", *body.Images)
	}
	if body.Description != nil {
		set("description", *body.Description)
	}
	if body.DetailedDescription != nil {
		set("detailedDescription", *body.DetailedDescription)
	}
	if body.Details != nil {
		set("details", *body.Details)
	}
	if body.CareInstructions != nil {
		set("careInstructions", *body.CareInstructions)
	}
	if body.Color != nil {
		set("color", *body.Color)
	}
	if body.Fabric != nil {
		set("fabric", *body.Fabric)
	}
	if body.PrintType != nil {
		set("printType", *body.PrintType)
	}
	if body.DeliveryTime != nil {
		set("deliveryTime", *body.DeliveryTime)
	}
	if body.Featured != nil {
		set("featured", *body.Featured)
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = ctl.products.FindOneAndUpdate(ctx, bson.M{"_id": productID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated", "product": updated})
}

func (ctl *AdminProductController) Delete(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.products.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

func (ctl *AdminProductController) PatchStock(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var body struct {
		Stock *int `json:"stock" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A non-negative stock value is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.products.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"stock": *body.Stock, "updatedAt": time.Now()}},
	)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock updated"})
}

func (ctl *AdminProductController) PatchFeatured(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var body struct {
		Featured *bool `json:"featured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A featured flag is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.products.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"featured": *body.Featured, "updatedAt": time.Now()}},
	)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Featured flag updated"})
}
