package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond maps an error from the service layer onto the HTTP reply.
func Respond(c *gin.Context, err error) {
	var notFound *NotFoundError
	var conflict *ConflictError
	var validation *ValidationError
	var mismatch *PriceMismatchError
	var transition *InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &mismatch):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":           "cart is out of date",
			"corrected_lines": mismatch.Corrected,
		})
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &transition):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": transition.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
	}
}
