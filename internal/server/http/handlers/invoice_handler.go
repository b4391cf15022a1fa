package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
	"github.com/polkiloo/invoicebox/internal/server/http/dto"
	"github.com/polkiloo/invoicebox/internal/server/http/middleware"
	"github.com/polkiloo/invoicebox/internal/server/http/views"
)

const heldListURL = "/invoices?view=held"

// InvoiceHandler manages the invoice list, status actions, payments and
// creation.
type InvoiceHandler struct {
	facade   InvoiceFacade
	sessions Sessions
	logger   *slog.Logger
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade, sessions Sessions, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{facade: facade, sessions: sessions, logger: logger}
}

// List handles GET /invoices. With view=held it renders the book held for
// the session without contacting the API.
func (h *InvoiceHandler) List(c *gin.Context) {
	page := views.InvoicesPage{Page: basePage(c, "Invoices", "invoices")}
	viewID := middleware.CurrentViewID(c)

	if c.Query("view") == "held" {
		if held, ok := h.facade.HeldInvoices(viewID); ok {
			page.Invoices = held
			c.HTML(http.StatusOK, views.PageInvoices, page)
			return
		}
	}

	invoices, err := h.facade.Invoices(c.Request.Context(), page.Session, viewID)
	if err != nil {
		if h.expire(c, err) {
			return
		}
		h.logger.Error("list invoices",
			slog.String("request_id", middleware.RequestIDFrom(c)),
			slog.String("error", err.Error()),
		)
		page.LoadError = failureMessage(err, msgLoadFailed)
		c.HTML(http.StatusBadGateway, views.PageInvoices, page)
		return
	}

	page.Invoices = invoices
	c.HTML(http.StatusOK, views.PageInvoices, page)
}

// UpdateStatus handles POST /invoices/:id/status.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	var form dto.StatusForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	action, ok := policy.ParseAction(form.Action)
	if !ok {
		h.renderHeld(c, http.StatusBadRequest, msgUpdateFailed)
		return
	}

	s := middleware.CurrentSession(c)
	if _, err := h.facade.UpdateInvoiceStatus(c.Request.Context(), s, middleware.CurrentViewID(c), id, action); err != nil {
		if h.expire(c, err) {
			return
		}
		h.logger.Warn("update invoice status",
			slog.String("request_id", middleware.RequestIDFrom(c)),
			slog.Int64("invoice_id", id),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
		h.renderHeld(c, failureStatus(err), failureMessage(err, msgUpdateFailed))
		return
	}

	c.Redirect(http.StatusSeeOther, heldListURL)
}

// PaymentForm handles GET /invoices/:id/pay by opening the payment dialog
// over the held list.
func (h *InvoiceHandler) PaymentForm(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	s := middleware.CurrentSession(c)
	viewID := middleware.CurrentViewID(c)
	inv, err := h.facade.Invoice(c.Request.Context(), s, viewID, id)
	if err != nil {
		if h.expire(c, err) {
			return
		}
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, heldListURL)
			return
		}
		h.renderHeld(c, failureStatus(err), failureMessage(err, msgLoadFailed))
		return
	}

	if !policy.Allows(s.Role(), inv.Status, policy.ActionSubmitPayment) {
		c.Redirect(http.StatusSeeOther, heldListURL)
		return
	}

	h.renderPayment(c, http.StatusOK, &views.PaymentDialog{Invoice: inv})
}

// SubmitPayment handles POST /invoices/:id/pay.
func (h *InvoiceHandler) SubmitPayment(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	var form dto.PaymentForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s := middleware.CurrentSession(c)
	viewID := middleware.CurrentViewID(c)
	if _, err := h.facade.SubmitPayment(c.Request.Context(), s, viewID, id, form.PaymentReference); err != nil {
		if h.expire(c, err) {
			return
		}
		h.logger.Error("submit payment",
			slog.String("request_id", middleware.RequestIDFrom(c)),
			slog.Int64("invoice_id", id),
			slog.String("error", err.Error()),
		)
		inv, findErr := h.facade.Invoice(c.Request.Context(), s, viewID, id)
		if findErr != nil {
			h.renderHeld(c, failureStatus(err), failureMessage(err, msgUpdateFailed))
			return
		}
		h.renderPayment(c, failureStatus(err), &views.PaymentDialog{
			Invoice:   inv,
			Reference: form.PaymentReference,
			Error:     failureMessage(err, msgUpdateFailed),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, heldListURL)
}

// CreateForm handles GET /create-invoice.
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	page := views.CreateInvoicePage{
		Page:     basePage(c, "Create Invoice", "create-invoice"),
		Currency: string(model.DefaultCurrency),
	}
	if !h.loadPurchasers(c, &page) {
		return
	}
	c.HTML(http.StatusOK, views.PageCreateInvoice, page)
}

// Create handles POST /create-invoice.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var form dto.CreateInvoiceForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s := middleware.CurrentSession(c)
	created, err := h.facade.CreateInvoice(c.Request.Context(), s, form.Draft())
	if err != nil {
		if h.expire(c, err) {
			return
		}
		page := views.CreateInvoicePage{
			Page:         basePage(c, "Create Invoice", "create-invoice"),
			InvoiceTitle: form.Title,
			Description:  form.Description,
			Amount:       form.Amount,
			Currency:     form.Currency,
			PurchaserID:  form.PurchaserID,
		}
		if !h.loadPurchasers(c, &page) {
			return
		}
		page.Error = failureMessage(err, msgCreateFailed)
		c.HTML(failureStatus(err), views.PageCreateInvoice, page)
		return
	}

	h.logger.Info("invoice created",
		slog.Int64("invoice_id", created.ID),
		slog.String("invoice_number", created.InvoiceNumber),
	)
	c.Redirect(http.StatusSeeOther, "/invoices")
}

// PDF handles GET /invoices/:id/pdf for invoices in the held book.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	filename, content, err := h.facade.InvoicePDF(middleware.CurrentViewID(c), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("render invoice pdf", slog.Int64("invoice_id", id), slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", content)
}

// loadPurchasers fills the purchaser select. A fetch failure leaves the
// list empty and shows an error; it reports false when the session expired
// and a redirect was written.
func (h *InvoiceHandler) loadPurchasers(c *gin.Context, page *views.CreateInvoicePage) bool {
	page.Currencies = model.Currencies
	purchasers, err := h.facade.Purchasers(c.Request.Context(), page.Session)
	if err != nil {
		if h.expire(c, err) {
			return false
		}
		h.logger.Error("load purchasers", slog.String("error", err.Error()))
		page.Error = msgPurchasers
		return true
	}
	page.Purchasers = purchasers
	return true
}

func (h *InvoiceHandler) renderHeld(c *gin.Context, status int, message string) {
	held, _ := h.facade.HeldInvoices(middleware.CurrentViewID(c))
	page := views.InvoicesPage{Page: basePage(c, "Invoices", "invoices"), Invoices: held}
	page.Error = message
	c.HTML(status, views.PageInvoices, page)
}

func (h *InvoiceHandler) renderPayment(c *gin.Context, status int, dialog *views.PaymentDialog) {
	held, _ := h.facade.HeldInvoices(middleware.CurrentViewID(c))
	page := views.InvoicesPage{
		Page:     basePage(c, "Invoices", "invoices"),
		Invoices: held,
		Payment:  dialog,
	}
	c.HTML(status, views.PageInvoices, page)
}

func (h *InvoiceHandler) expire(c *gin.Context, err error) bool {
	return expireSession(c, h.sessions, h.facade.ForgetView, h.logger, err)
}
