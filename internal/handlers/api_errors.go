package handlers

import (
	"errors"
	"log"
	"net/http"

	"cardgame-api/internal/models"

	"github.com/gin-gonic/gin"
)

// writeAPIError maps known sentinel errors to a status and a fixed message.
// Raw error text is never sent to the client.
func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch {
	case errors.Is(err, models.ErrDeckEmpty):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no cards left in the deck"})
		return
	case errors.Is(err, models.ErrCardExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "card already exists in the deck"})
		return
	case errors.Is(err, models.ErrInvalidSuit):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid suit"})
		return
	case errors.Is(err, models.ErrInvalidFace):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid face"})
		return
	case errors.Is(err, models.ErrInvalidQuery):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	case errors.Is(err, models.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	log.Printf("internal error: request_id=%s method=%s path=%s err=%v", requestIDFromContext(c), c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
