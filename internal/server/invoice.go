package server

import (
	"net/http"
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

type invoicePayload struct {
	ClientID  string                   `json:"client_id"`
	OrderID   string                   `json:"order_id"`
	Items     []invoicedomain.LineItem `json:"items"`
	Currency  currency.Code            `json:"currency"`
	IssueDate *time.Time               `json:"issue_date"`
	DueDate   *time.Time               `json:"due_date"`
	Notes     string                   `json:"notes"`
}

func (h *Handlers) ListInvoices(c *gin.Context) {
	req := invoicedomain.ListInvoiceRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size", 50),
		ClientID:  c.Query("client_id"),
		IsPaid:    queryBoolPtr(c, "is_paid"),
	}

	resp, err := h.invoices.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) CreateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	req := invoicedomain.CreateInvoiceRequest{
		ClientID: payload.ClientID,
		OrderID:  payload.OrderID,
		Items:    payload.Items,
		Currency: payload.Currency,
		Notes:    payload.Notes,
	}
	if payload.IssueDate != nil {
		req.IssueDate = *payload.IssueDate
	}
	if payload.DueDate != nil {
		req.DueDate = *payload.DueDate
	}

	invoice, err := h.invoices.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *Handlers) GetInvoice(c *gin.Context) {
	invoice, err := h.invoices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handlers) DeleteInvoice(c *gin.Context) {
	if err := h.invoices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) ToggleInvoicePaid(c *gin.Context) {
	invoice, err := h.invoices.TogglePaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
