package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/server/http/middleware"
	"github.com/polkiloo/invoicebox/internal/server/http/views"
)

// Messages shown when the API gives no detail.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgCreateFailed   = "Failed to create invoice"
	msgUpdateFailed   = "Failed to update invoice"
	msgLoadFailed     = "Failed to load data from the invoicing service"
	msgPurchasers     = "Failed to load purchasers"
)

var validationMessages = []struct {
	err error
	msg string
}{
	{domainErrors.ErrRequiredField, "Please fill in all required fields"},
	{domainErrors.ErrInvalidRole, "Role must be provider or purchaser"},
	{domainErrors.ErrInvalidAmount, "Amount must be a number"},
	{domainErrors.ErrInvalidCurrency, "Currency must be USD, UGX or LYD"},
	{domainErrors.ErrInvalidPurchaser, "Please select a purchaser"},
	{domainErrors.ErrEmptyPaymentReference, "Please enter a payment reference"},
	{domainErrors.ErrSubmissionInFlight, "This payment is already being submitted"},
}

// failureMessage returns the text shown for err: a local validation message,
// the API detail, or fallback.
func failureMessage(err error, fallback string) string {
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return v.msg
		}
	}
	return invoiceapi.Detail(err, fallback)
}

// failureStatus maps err to the status of the re-rendered page.
func failureStatus(err error) int {
	var apiErr *invoiceapi.APIError
	switch {
	case errors.Is(err, domainErrors.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrActionNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrRequiredField),
		errors.Is(err, domainErrors.ErrInvalidRole),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidCurrency),
		errors.Is(err, domainErrors.ErrInvalidPurchaser),
		errors.Is(err, domainErrors.ErrEmptyPaymentReference):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

// basePage fills the values shared by every template.
func basePage(c *gin.Context, title, active string) views.Page {
	return views.Page{
		Title:   title,
		Active:  active,
		Session: middleware.CurrentSession(c),
		CSRF:    middleware.CSRFField(c),
	}
}

// expireSession handles an API 401 on a signed-in page: the token is no
// longer accepted, so the session and its view state are dropped and the
// user is sent to the login form. It reports whether err was a 401.
func expireSession(c *gin.Context, sessions Sessions, forget func(string), logger *slog.Logger, err error) bool {
	if !invoiceapi.IsUnauthorized(err) {
		return false
	}
	logger.Info("api token rejected, signing out",
		slog.String("request_id", middleware.RequestIDFrom(c)),
	)
	if forget != nil {
		forget(middleware.CurrentViewID(c))
	}
	if clearErr := sessions.Clear(c.Writer, c.Request); clearErr != nil {
		logger.Error("clear session", slog.String("error", clearErr.Error()))
	}
	c.Redirect(http.StatusSeeOther, "/login")
	return true
}

func invoiceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
