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
)

type AdminUserController struct {
	users  *mongo.Collection
	logger zerolog.Logger
}

func NewAdminUserController(users *mongo.Collection, logger zerolog.Logger) *AdminUserController {
	return &AdminUserController{users: users, logger: logger}
}

// List returns every account. Password hashes never serialize, the
// model drops them.
func (ctl *AdminUserController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ctl.users.Find(ctx, bson.M{})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "total": len(users)})
}

func (ctl *AdminUserController) UpdateRole(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || (body.Role != models.RoleUser && body.Role != models.RoleAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role. Must be \"user\" or \"admin\"."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.users.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role": body.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated"})
}

func (ctl *AdminUserController) Delete(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := ctl.users.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
