package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

// APIResponse 通用 API 响应结构
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO 错误信息 DTO
type ErrorDTO struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Description string            `json:"description,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// SuccessResponse 创建成功响应
func SuccessResponse(data interface{}, requestID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorResponse 创建错误响应
func ErrorResponse(err error, requestID string) *APIResponse {
	var errorDTO *ErrorDTO

	if appErr, ok := errors.AsAppError(err); ok {
		errorDTO = &ErrorDTO{
			Code:        string(appErr.Code()),
			Message:     appErr.Error(),
			Description: appErr.Description(),
			Details:     stringDetails(appErr.Metadata()),
		}
		// server-side causes stay in the logs
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			errorDTO.Message = appErr.Description()
		}
	} else {
		errorDTO = &ErrorDTO{
			Code:        string(constants.ErrCodeInternal),
			Message:     "Internal server error",
			Description: "The server encountered an unexpected condition.",
		}
	}

	return &APIResponse{
		Success:   false,
		Error:     errorDTO,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}

// ValidationErrorResponse 创建验证错误响应
func ValidationErrorResponse(details map[string]string, requestID string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &ErrorDTO{
			Code:        string(constants.ErrCodeInvalidRequest),
			Message:     "Validation failed",
			Description: "One or more fields failed validation",
			Details:     details,
		},
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}

func stringDetails(meta map[string]interface{}) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = fmt.Sprint(v)
	}
	return out
}
