package controllers

import (
	"net/http"

	"astrokart/middleware"
	"astrokart/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// identityFrom rebuilds the authenticated identity the middleware stored
// on the context.
func identityFrom(c *gin.Context) (services.Identity, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		return services.Identity{}, false
	}
	return services.Identity{
		ID:    id,
		Email: c.GetString(middleware.CtxUserEmail),
		Role:  c.GetString(middleware.CtxUserRole),
	}, true
}

// respondServiceError maps service error kinds to HTTP statuses. The
// cause of unexpected errors is logged, never returned to the caller.
func respondServiceError(c *gin.Context, logger zerolog.Logger, err error) {
	switch services.KindOf(err) {
	case services.KindValidation, services.KindInvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case services.KindOutOfStock:
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		logger.Error().Err(err).
			Str("requestId", c.GetString(middleware.CtxRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
