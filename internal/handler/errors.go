package handler

import (
	"errors"
	"log"
	"net/http"

	"brandloop/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP status codes. Business-rule
// violations surface their specific reason; anything unexpected gets a
// generic 500 with the detail kept in the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrNoPriceConfigured), errors.Is(err, domain.ErrMissingProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrUpstreamGateway):
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
