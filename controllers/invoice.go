package controllers

import (
	"net/http"
	"strconv"
	"time"

	"mediflow-backend/services"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// InvoiceController exposes the invoice ledger over HTTP. Unlike the other
// controllers it holds no database handle; all invoice state flows through
// the ledger and its injected store.
type InvoiceController struct {
	Ledger *services.InvoiceLedger
}

// UpdateInvoiceStatusInput is the administrative status override payload
type UpdateInvoiceStatusInput struct {
	Status string `json:"Status" binding:"required"`
}

func respondLedgerError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// CreateInvoice creates a new invoice for a patient
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var input services.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := ic.Ledger.Create(input)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves invoices, filtered by search query, status, patient
// or issue-date range
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		invoices, err := ic.Ledger.Search(q)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
		return
	}

	if patientID := c.Query("patientId"); patientID != "" {
		id, err := strconv.ParseUint(patientID, 10, 32)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
			return
		}
		invoices, err := ic.Ledger.GetByPatient(uint(id))
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
		return
	}

	if start, end := c.Query("startDate"), c.Query("endDate"); start != "" && end != "" {
		startDate, err1 := time.Parse("2006-01-02", start)
		endDate, err2 := time.Parse("2006-01-02", end)
		if err1 != nil || err2 != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range format, expected YYYY-MM-DD")
			return
		}
		invoices, err := ic.Ledger.GetByDateRange(startDate, endDate.AddDate(0, 0, 1).Add(-time.Nanosecond))
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
		return
	}

	invoices, err := ic.Ledger.GetByStatus(c.Query("status"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := ic.Ledger.GetByID(invoiceID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice replaces line items and/or updates the due date and notes
func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input services.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := ic.Ledger.Update(invoiceID, input)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// RecordPayment records a payment against an invoice
func (ic *InvoiceController) RecordPayment(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := ic.Ledger.RecordPayment(invoiceID, input)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceStatus applies an administrative status override
func (ic *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateInvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := ic.Ledger.UpdateStatus(invoiceID, input.Status)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice hard deletes an invoice and its embedded payments
func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ic.Ledger.Delete(invoiceID); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
