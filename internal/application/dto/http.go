package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

// SendSuccess writes a success envelope.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse(data, c.GetString(string(constants.ContextKeyRequestID))))
}

// SendError writes an error envelope with the status carried by err and
// attaches err to the context for the logging middleware.
func SendError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	status := errors.StatusOf(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, ErrorResponse(err, c.GetString(string(constants.ContextKeyRequestID))))
}

// SendValidationError writes a 400 envelope listing the failing fields.
func SendValidationError(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse(details, c.GetString(string(constants.ContextKeyRequestID))))
}
