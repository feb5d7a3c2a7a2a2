package server

import (
	"net/http"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) ClientPaymentHistory(c *gin.Context) {
	h.paymentHistory(c, billingdomain.KindClient)
}

func (h *Handlers) MarkClientMonthPaid(c *gin.Context) {
	h.markMonthPaid(c, billingdomain.KindClient)
}

func (h *Handlers) RevertClientMonthPayment(c *gin.Context) {
	h.revertMonthPayment(c, billingdomain.KindClient)
}

func (h *Handlers) SitePaymentHistory(c *gin.Context) {
	h.paymentHistory(c, billingdomain.KindSite)
}

func (h *Handlers) MarkSiteMonthPaid(c *gin.Context) {
	h.markMonthPaid(c, billingdomain.KindSite)
}

func (h *Handlers) RevertSiteMonthPayment(c *gin.Context) {
	h.revertMonthPayment(c, billingdomain.KindSite)
}

func (h *Handlers) paymentHistory(c *gin.Context, kind billingdomain.Kind) {
	entries, err := h.billing.History(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": entries})
}

func (h *Handlers) markMonthPaid(c *gin.Context, kind billingdomain.Kind) {
	month := c.Param("month")
	if !validMonth(month) {
		abortBadRequest(c, "month must be formatted YYYY-MM")
		return
	}

	entry, err := h.billing.MarkMonthPaid(c.Request.Context(), kind, c.Param("id"), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if entry == nil {
		// Unknown subscribers are absorbed as no-ops by the ledger; the
		// HTTP surface still reports the missing resource.
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: ErrorBody{
			Type:    "not_found",
			Message: "subscriber not found",
		}})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handlers) revertMonthPayment(c *gin.Context, kind billingdomain.Kind) {
	month := c.Param("month")
	if !validMonth(month) {
		abortBadRequest(c, "month must be formatted YYYY-MM")
		return
	}

	if err := h.billing.RevertMonthPayment(c.Request.Context(), kind, c.Param("id"), month); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
