package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/interfaces/http/dto"
	"github.com/retailcore/backoffice/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getActor extracts the acting user ID from the request header, if present.
// The platform gateway authenticates requests and forwards the user ID.
func getActor(c *gin.Context) *uuid.UUID {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, getRequestID(c)))
}

// BindError sends a 400 response for a request binding failure, naming the
// offending field when the validator reports one
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	field, message := middleware.ValidationMessage(err)
	c.JSON(http.StatusBadRequest, dto.Response{
		Success: false,
		Error: &dto.ErrorInfo{
			Code:    dto.ErrCodeInvalidJSON,
			Message: message,
			Field:   field,
		},
		RequestID: getRequestID(c),
	})
}

// HandleError converts a domain error to an HTTP response, deriving the
// status code from the error type
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status := dto.HTTPStatus(err)
	info := dto.ErrorInfoFromError(err)
	c.JSON(status, dto.Response{
		Success:   false,
		Error:     info,
		RequestID: getRequestID(c),
	})
}
