package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 response when
// the handler did not write one itself. The error text is logged, not returned.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	rid, _ := c.Get(RequestIDKey)
	for _, e := range c.Errors {
		logger.L().Error().Err(e.Err).Str("request_id", toString(rid)).Str("path", c.Request.URL.Path).Msg("request error")
	}
	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
}

// AbortWithError writes a standardized error body and stops the chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// AbortWithDetails is AbortWithError carrying a per-provider reason list.
func AbortWithDetails(c *gin.Context, status int, message string, details []string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, nil).WithDetails(details))
}
