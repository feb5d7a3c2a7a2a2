package server

import (
	"net/http"
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type orderPayload struct {
	ClientID    string                  `json:"client_id"`
	ServiceType orderdomain.ServiceType `json:"service_type"`
	Description string                  `json:"description"`
	Amount      decimal.Decimal         `json:"amount"`
	Currency    currency.Code           `json:"currency"`
	Status      orderdomain.Status      `json:"status"`
	StartDate   *time.Time              `json:"start_date"`
	EndDate     *time.Time              `json:"end_date"`
}

func (h *Handlers) ListOrders(c *gin.Context) {
	req := orderdomain.ListOrderRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size", 50),
		ClientID:  c.Query("client_id"),
		Status:    orderdomain.Status(c.Query("status")),
	}

	resp, err := h.orders.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) CreateOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	req := orderdomain.CreateOrderRequest{
		ClientID:    payload.ClientID,
		ServiceType: payload.ServiceType,
		Description: payload.Description,
		Amount:      payload.Amount,
		Currency:    payload.Currency,
		Status:      payload.Status,
		EndDate:     payload.EndDate,
	}
	if payload.StartDate != nil {
		req.StartDate = *payload.StartDate
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handlers) UpdateOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	req := orderdomain.UpdateOrderRequest{
		ID:          c.Param("id"),
		ServiceType: payload.ServiceType,
		Description: payload.Description,
		Amount:      payload.Amount,
		Currency:    payload.Currency,
		Status:      payload.Status,
		EndDate:     payload.EndDate,
	}
	if payload.StartDate != nil {
		req.StartDate = *payload.StartDate
	}

	order, err := h.orders.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handlers) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
