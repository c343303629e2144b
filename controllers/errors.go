package controllers

import (
	"errors"
	"net/http"

	"github.com/GatherPoint/store"
	"github.com/gin-gonic/gin"
)

// respondError translates the store error taxonomy into HTTP responses.
// Constraint violations get their own status so clients know the
// operation is safe to retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting concurrent update, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong", "details": err.Error()})
	}
}
