package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/service"
)

// OrderHandler serves the order CRUD surface plus file uploads.
type OrderHandler struct {
	svc     *service.OrderService
	storage *service.StorageService
	logger  *zap.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(svc *service.OrderService, storage *service.StorageService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, storage: storage, logger: logger}
}

// List GET /orders?status=
func (h *OrderHandler) List(c *gin.Context) {
	orders := h.svc.List(c.Query("status"))
	Success(c, gin.H{"items": orders, "total": len(orders)})
}

// Get GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, order)
}

// Create POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, order)
}

// Update PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, order)
}

// UploadFiles POST /orders/:id/files?kind=mockups|attachments
// Multipart field "files". A file that fails to upload is dropped from the
// result; the rest of the batch still attaches.
func (h *OrderHandler) UploadFiles(c *gin.Context) {
	orderID := c.Param("id")
	kind := c.DefaultQuery("kind", "mockups")

	bucket, err := h.storage.Bucket(kind)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "cannot parse upload: "+err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		BadRequest(c, "no files uploaded")
		return
	}

	var urls []string
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			h.logger.Warn("open upload", zap.String("file", fh.Filename), zap.Error(err))
			continue
		}
		url, err := h.storage.Upload(c.Request.Context(), bucket, orderID, fh.Filename, src, fh.Size, fh.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			var ue *service.UploadError
			if errors.As(err, &ue) {
				h.logger.Warn("file upload failed", zap.String("file", ue.FileName), zap.Error(ue.Err))
				continue
			}
			Fail(c, err)
			return
		}
		urls = append(urls, url)
	}

	order, err := h.svc.AppendFiles(c.Request.Context(), orderID, kind, urls)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"order": order, "uploaded": len(urls), "failed": len(files) - len(urls)})
}

type deleteFileRequest struct {
	Kind string `json:"kind" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// DeleteFile DELETE /orders/:id/files
func (h *OrderHandler) DeleteFile(c *gin.Context) {
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	bucket, err := h.storage.Bucket(req.Kind)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	// Remove the object first; a URL outside our storage is detached anyway.
	if _, err := h.storage.Delete(c.Request.Context(), bucket, req.URL); err != nil {
		h.logger.Warn("delete object", zap.String("url", req.URL), zap.Error(err))
	}

	order, err := h.svc.RemoveFile(c.Request.Context(), c.Param("id"), req.Kind, req.URL)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, order)
}
