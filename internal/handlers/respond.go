package handlers

import (
	"errors"
	"net/http"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondAuthError maps the auth/dashboard error taxonomy onto status codes.
// Anything uncategorized is a 500 with a generic message.
func respondAuthError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken):
		respondWithError(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(c, http.StatusForbidden, "Invalid admin secret")
	case errors.Is(err, services.ErrEmailTaken):
		respondWithError(c, http.StatusConflict, "Email already in use")
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondWithError(c, http.StatusUnauthorized, "Invalid token")
	default:
		logger.WithError(err).Error("Unhandled auth error")
		respondWithError(c, http.StatusInternalServerError, "Server error")
	}
}

// respondCrudError maps catalog/order failures. Validation problems carry
// their own message; everything else collapses to the route's failure
// message with a 400, matching the API contract for these routes.
func respondCrudError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		respondWithError(c, http.StatusBadRequest, verr.Message)
		return
	}
	logger.WithError(err).Error(fallback)
	respondWithError(c, http.StatusBadRequest, fallback)
}
