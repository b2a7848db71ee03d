package api

import (
	"errors"
	"net/http"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the domain failure taxonomy onto HTTP reason codes. Unknown
// errors surface as an opaque internal failure; internals never leak.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": verr.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not-found", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid-state", "message": err.Error()})
	case errors.Is(err, domain.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "slot-unavailable", "message": err.Error()})
	case errors.Is(err, domain.ErrSlotBooked):
		c.JSON(http.StatusConflict, gin.H{"error": "slot-booked", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "internal error"})
	}
}
