package server

import (
	"errors"
	"net/http"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	settingsdomain "github.com/digimanager/digimanager/internal/settings/domain"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire envelope for failures.
type ErrorBody struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

var notFoundErrs = []error{
	clientdomain.ErrNotFound,
	orderdomain.ErrNotFound,
	invoicedomain.ErrNotFound,
	sitedomain.ErrNotFound,
}

var validationErrs = []error{
	clientdomain.ErrInvalidName,
	clientdomain.ErrInvalidEmail,
	clientdomain.ErrInvalidCurrency,
	clientdomain.ErrInvalidDueDay,
	orderdomain.ErrInvalidClient,
	orderdomain.ErrInvalidServiceType,
	orderdomain.ErrInvalidStatus,
	orderdomain.ErrInvalidCurrency,
	orderdomain.ErrInvalidAmount,
	invoicedomain.ErrInvalidClient,
	invoicedomain.ErrInvalidItems,
	invoicedomain.ErrInvalidCurrency,
	invoicedomain.ErrInvalidDueDate,
	sitedomain.ErrInvalidClient,
	sitedomain.ErrInvalidDomain,
	sitedomain.ErrInvalidStatus,
	sitedomain.ErrInvalidCurrency,
	sitedomain.ErrInvalidDueDay,
	settingsdomain.ErrInvalidAgencyName,
	billingdomain.ErrUnknownKind,
}

// AbortWithError translates a service error into the wire envelope and
// records it on the gin context for the request logger.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	errType := "internal"
	message := "internal server error"

	switch {
	case matches(err, notFoundErrs):
		status = http.StatusNotFound
		errType = "not_found"
		message = err.Error()
	case matches(err, validationErrs):
		status = http.StatusBadRequest
		errType = "invalid_request"
		message = err.Error()
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Type:    errType,
		Message: message,
	}})
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Type:    "invalid_request",
		Message: message,
	}})
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classifyError feeds the request logger's error fields.
func classifyError(err error) (string, string) {
	switch {
	case matches(err, notFoundErrs):
		return "not_found", err.Error()
	case matches(err, validationErrs):
		return "invalid_request", err.Error()
	default:
		return "internal", "internal"
	}
}
