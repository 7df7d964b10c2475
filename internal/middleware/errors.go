package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/investlens/internal/domain/dto"
	"github.com/guttosm/investlens/internal/logger"
)

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// ErrorHandler renders errors attached with c.Error when the handler did not
// write a response itself. The status defaults to 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	err := c.Errors.Last().Err

	logger.L().Error().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(status, dto.NewErrorResponse(http.StatusText(status), err))
}
