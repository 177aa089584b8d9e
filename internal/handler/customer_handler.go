package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/service"
)

// CustomerHandler serves the customer directory and bulk import.
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers := h.svc.List()
	Success(c, gin.H{"items": customers, "total": len(customers)})
}

// Import POST /customers/import
// Multipart field "file" holding a CSV.
func (h *CustomerHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "no file uploaded")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		BadRequest(c, "Please upload a CSV file")
		return
	}

	src, err := fh.Open()
	if err != nil {
		InternalError(c, "read upload: "+err.Error())
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		InternalError(c, "read upload: "+err.Error())
		return
	}

	result, err := h.svc.ImportCSV(string(data))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, result)
}

// Template GET /customers/template
func (h *CustomerHandler) Template(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="customer-template.csv"`)
	c.String(200, h.svc.Template())
}
