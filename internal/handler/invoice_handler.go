package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/export"
	"gstbill/internal/pdf"
	"gstbill/internal/service"
)

// InvoiceHandler serves the invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// parseID reads the :id path parameter. A malformed UUID cannot name any
// stored invoice, so it reports not found rather than bad request.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, "Invoice created successfully", invoice)
}

// List handles GET /api/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, fmt.Sprintf("Found %d invoices", len(invoices)), invoices)
}

// GetByID handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Invoice retrieved successfully", invoice)
}

// Delete handles DELETE /api/invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Delete(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Invoice deleted successfully", invoice)
}

// Preview handles POST /api/invoices/preview. It returns computed line
// amounts and tax totals without persisting anything.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	preview, err := h.invoiceService.Preview(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Invoice preview computed", preview)
}

// PDF handles GET /api/invoices/:id/pdf.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := pdf.Render(invoice)
	if err != nil {
		HandleError(c, err)
		return
	}

	sendPDF(c, pdf.Filename(invoice.InvoiceNumber, invoice.InvoiceDate), data)
}

// DraftPDF handles POST /api/invoices/pdf. It renders a PDF from the request
// body without saving the invoice, so nothing on disk or in the database is
// touched.
func (h *InvoiceHandler) DraftPDF(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.Draft(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := pdf.Render(invoice)
	if err != nil {
		HandleError(c, err)
		return
	}

	sendPDF(c, pdf.Filename("", invoice.InvoiceDate), data)
}

// Export handles GET /api/invoices/export?format=csv|xlsx.
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "Validation failed", "format must be csv or xlsx")
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "xlsx":
		data, err := export.XLSX(invoices)
		if err != nil {
			HandleError(c, err)
			return
		}
		name := fmt.Sprintf("invoices-%s.xlsx", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := export.CSV(invoices)
		if err != nil {
			HandleError(c, err)
			return
		}
		name := fmt.Sprintf("invoices-%s.csv", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
