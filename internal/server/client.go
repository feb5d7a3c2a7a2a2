package server

import (
	"net/http"

	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/internal/currency"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type clientPayload struct {
	CompanyName string          `json:"company_name"`
	ContactName string          `json:"contact_name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
	Currency    currency.Code   `json:"currency"`
	IsMonthly   bool            `json:"is_monthly"`
	MonthlyFee  decimal.Decimal `json:"monthly_fee"`
	PaymentDay  int             `json:"payment_day"`
}

func (h *Handlers) ListClients(c *gin.Context) {
	req := clientdomain.ListClientRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size", 50),
		IsMonthly: queryBoolPtr(c, "is_monthly"),
		Currency:  currency.Code(c.Query("currency")),
	}

	resp, err := h.clients.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) CreateClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	client, err := h.clients.Create(c.Request.Context(), clientdomain.CreateClientRequest{
		CompanyName: payload.CompanyName,
		ContactName: payload.ContactName,
		Phone:       payload.Phone,
		Email:       payload.Email,
		Address:     payload.Address,
		Notes:       payload.Notes,
		Currency:    payload.Currency,
		IsMonthly:   payload.IsMonthly,
		MonthlyFee:  payload.MonthlyFee,
		PaymentDay:  payload.PaymentDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handlers) GetClient(c *gin.Context) {
	client, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handlers) UpdateClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	client, err := h.clients.Update(c.Request.Context(), clientdomain.UpdateClientRequest{
		ID:          c.Param("id"),
		CompanyName: payload.CompanyName,
		ContactName: payload.ContactName,
		Phone:       payload.Phone,
		Email:       payload.Email,
		Address:     payload.Address,
		Notes:       payload.Notes,
		Currency:    payload.Currency,
		IsMonthly:   payload.IsMonthly,
		MonthlyFee:  payload.MonthlyFee,
		PaymentDay:  payload.PaymentDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handlers) DeleteClient(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
