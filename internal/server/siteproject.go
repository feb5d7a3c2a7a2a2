package server

import (
	"net/http"

	"github.com/digimanager/digimanager/internal/currency"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type sitePayload struct {
	ClientID       string            `json:"client_id"`
	Domain         string            `json:"domain"`
	ServiceName    string            `json:"service_name"`
	Currency       currency.Code     `json:"currency"`
	Status         sitedomain.Status `json:"status"`
	MonthlyFee     decimal.Decimal   `json:"monthly_fee"`
	ThirdPartyCost decimal.Decimal   `json:"third_party_cost"`
	PaymentDay     int               `json:"payment_day"`
}

func (h *Handlers) ListSites(c *gin.Context) {
	req := sitedomain.ListSiteProjectRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size", 50),
		ClientID:  c.Query("client_id"),
		Status:    sitedomain.Status(c.Query("status")),
	}

	resp, err := h.sites.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) CreateSite(c *gin.Context) {
	var payload sitePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	site, err := h.sites.Create(c.Request.Context(), sitedomain.CreateSiteProjectRequest{
		ClientID:       payload.ClientID,
		Domain:         payload.Domain,
		ServiceName:    payload.ServiceName,
		Currency:       payload.Currency,
		Status:         payload.Status,
		MonthlyFee:     payload.MonthlyFee,
		ThirdPartyCost: payload.ThirdPartyCost,
		PaymentDay:     payload.PaymentDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

func (h *Handlers) GetSite(c *gin.Context) {
	site, err := h.sites.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *Handlers) UpdateSite(c *gin.Context) {
	var payload sitePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	site, err := h.sites.Update(c.Request.Context(), sitedomain.UpdateSiteProjectRequest{
		ID:             c.Param("id"),
		Domain:         payload.Domain,
		ServiceName:    payload.ServiceName,
		Currency:       payload.Currency,
		Status:         payload.Status,
		MonthlyFee:     payload.MonthlyFee,
		ThirdPartyCost: payload.ThirdPartyCost,
		PaymentDay:     payload.PaymentDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *Handlers) DeleteSite(c *gin.Context) {
	if err := h.sites.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
