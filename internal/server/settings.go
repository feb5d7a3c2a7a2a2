package server

import (
	"net/http"

	settingsdomain "github.com/digimanager/digimanager/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

type settingsPayload struct {
	AgencyName      string `json:"agency_name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	TaxNumber       string `json:"tax_number"`
	FooterText      string `json:"footer_text"`
	BankName        string `json:"bank_name"`
	BankAccount     string `json:"bank_account"`
	BankBeneficiary string `json:"bank_beneficiary"`
}

func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handlers) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), settingsdomain.UpdateSettingsRequest{
		AgencyName:      payload.AgencyName,
		Phone:           payload.Phone,
		Address:         payload.Address,
		TaxNumber:       payload.TaxNumber,
		FooterText:      payload.FooterText,
		BankName:        payload.BankName,
		BankAccount:     payload.BankAccount,
		BankBeneficiary: payload.BankBeneficiary,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
