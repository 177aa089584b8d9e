package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/config"
	"github.com/stitchpoint/orderdesk/internal/repository"
	"github.com/stitchpoint/orderdesk/internal/service"
	"github.com/stitchpoint/orderdesk/internal/sse"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// Handlers is the handler collection.
type Handlers struct {
	Auth         *AuthHandler
	Order        *OrderHandler
	Dashboard    *DashboardHandler
	Coordinator  *CoordinatorHandler
	Customer     *CustomerHandler
	Report       *ReportHandler
	Notification *NotificationHandler
	Catalog      *CatalogHandler
}

// NewHandlers creates the handler collection.
func NewHandlers(svc *service.Services, st *store.Store, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth, cfg),
		Order:        NewOrderHandler(svc.Order, svc.Storage, logger),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Coordinator:  NewCoordinatorHandler(svc.Coordinator),
		Customer:     NewCustomerHandler(svc.Customer),
		Report:       NewReportHandler(svc.Report),
		Notification: NewNotificationHandler(svc.Notification, hub),
		Catalog:      NewCatalogHandler(st),
	}
}

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response. The HTTP status is the business code
// divided by 100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail translates service errors into the envelope: validation failures are
// client errors, missing records are 404, data-load failures and everything
// else are server errors.
func Fail(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, store.ErrDataLoad):
		InternalError(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID returns the authenticated user id from the request context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
