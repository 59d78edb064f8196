package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"astrokart/middleware"
	"astrokart/models"
	"astrokart/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type AuthController struct {
	users     *mongo.Collection
	blacklist *repository.TokenBlacklist
	secret    []byte
	logger    zerolog.Logger
}

func NewAuthController(users *mongo.Collection, blacklist *repository.TokenBlacklist, secret []byte, logger zerolog.Logger) *AuthController {
	return &AuthController{users: users, blacklist: blacklist, secret: secret, logger: logger}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := ctl.users.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already exists"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		respondServiceError(c, ctl.logger, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	if _, err := ctl.users.InsertOne(ctx, user); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User registered successfully"})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ctl.users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	})
	tokenString, err := token.SignedString(ctl.secret)
	if err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenString,
		"user":    gin.H{"name": user.Name, "email": user.Email, "role": user.Role},
	})
}

// Logout revokes the presented token for the remainder of its lifetime.
func (ctl *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := ""
	if len(header) > 7 && header[:7] == "Bearer " {
		tokenString = header[7:]
	}
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token required"})
		return
	}

	token, err := jwt.Parse(tokenString, middleware.HMACKeyfunc(ctl.secret))
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
		return
	}

	ttl := tokenLifetime
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			ttl = time.Until(time.Unix(int64(exp), 0))
		}
	}
	if err := ctl.blacklist.Add(c.Request.Context(), tokenString, ttl); err != nil {
		respondServiceError(c, ctl.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (ctl *AuthController) Me(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := ctl.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User data retrieved successfully",
		"data":    gin.H{"name": user.Name, "email": user.Email, "role": user.Role},
	})
}
