package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"mediflow-backend/models"
	"mediflow-backend/store"
)

// InvoiceLedger maintains invoice financial state as payments are recorded
// over time. Derived fields obey two invariants after every mutation:
//
//	TotalAmount == BalanceDue + AmountPaid
//	AmountPaid  == sum of Payments[].Amount
type InvoiceLedger struct {
	invoices store.InvoiceStore
	patients store.PatientDirectory
}

func NewInvoiceLedger(invoices store.InvoiceStore, patients store.PatientDirectory) *InvoiceLedger {
	return &InvoiceLedger{invoices: invoices, patients: patients}
}

// InvoiceItemInput is one billable line. Amount is computed as Quantity * Rate.
type InvoiceItemInput struct {
	Description string  `json:"Description" binding:"required"`
	Quantity    int     `json:"Quantity" binding:"required"`
	Rate        float64 `json:"Rate"`
}

type CreateInvoiceInput struct {
	PatientID uint               `json:"PatientId" binding:"required"`
	DueDate   time.Time          `json:"DueDate" binding:"required"`
	Items     []InvoiceItemInput `json:"Items"`
	Notes     string             `json:"Notes"`
}

type UpdateInvoiceInput struct {
	DueDate *time.Time          `json:"DueDate"`
	Items   *[]InvoiceItemInput `json:"Items"`
	Notes   *string             `json:"Notes"`
}

type PaymentInput struct {
	Amount        float64 `json:"Amount" binding:"required"`
	PaymentMethod string  `json:"PaymentMethod" binding:"required"`
	Notes         string  `json:"Notes"`
}

// Create assigns the next numeric id, derives the immutable invoice number,
// denormalizes the patient name and appends a Pending invoice to the store.
func (l *InvoiceLedger) Create(input CreateInvoiceInput) (*models.Invoice, error) {
	items, total, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	patient, err := l.patients.Resolve(input.PatientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "patient", ID: input.PatientID}
		}
		return nil, err
	}

	id, err := l.invoices.NextID()
	if err != nil {
		return nil, err
	}

	invoice := models.Invoice{
		ID:            id,
		InvoiceNumber: models.FormatInvoiceNumber(id),
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		IssueDate:     time.Now(),
		DueDate:       input.DueDate,
		TotalAmount:   total,
		AmountPaid:    0,
		BalanceDue:    total,
		Status:        models.InvoicePending,
		Notes:         input.Notes,
		Items:         items,
		Payments:      []models.Payment{},
	}

	if err := l.invoices.Create(&invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// RecordPayment appends a payment with a per-invoice sequential id and
// recomputes the derived financial fields. A payment exceeding the balance
// due is rejected. Status derivation is skipped for invoices whose status
// was set administratively.
func (l *InvoiceLedger) RecordPayment(invoiceID uint, input PaymentInput) (*models.Invoice, error) {
	if input.Amount <= 0 {
		return nil, &ValidationError{Message: "payment amount must be greater than zero"}
	}
	if !models.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, &ValidationError{Message: "unsupported payment method: " + input.PaymentMethod}
	}

	invoice, err := l.byID(invoiceID)
	if err != nil {
		return nil, err
	}

	if input.Amount > invoice.BalanceDue {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"payment amount %.2f exceeds balance due %.2f", input.Amount, invoice.BalanceDue)}
	}

	payment := models.Payment{
		InvoiceID:     invoice.ID,
		ID:            uint(len(invoice.Payments) + 1),
		Date:          time.Now(),
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	invoice.Payments = append(invoice.Payments, payment)
	invoice.AmountPaid += input.Amount
	invoice.BalanceDue = invoice.TotalAmount - invoice.AmountPaid

	if !invoice.StatusOverridden {
		if invoice.AmountPaid >= invoice.TotalAmount {
			invoice.Status = models.InvoicePaid
		} else if invoice.AmountPaid > 0 {
			invoice.Status = models.InvoicePartial
		}
	}

	if err := l.invoices.Save(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Update replaces line items and/or the due date and notes. Replacing items
// recomputes TotalAmount and BalanceDue against the existing AmountPaid but
// never retroactively changes Status, the invoice id or the invoice number.
func (l *InvoiceLedger) Update(invoiceID uint, input UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := l.byID(invoiceID)
	if err != nil {
		return nil, err
	}

	if input.Items != nil {
		items, total, err := buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		invoice.Items = items
		invoice.TotalAmount = total
		invoice.BalanceDue = total - invoice.AmountPaid
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := l.invoices.Save(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateStatus is the administrative override for transitions the
// payment-derived state machine cannot express (Cancelled, Overdue, manual
// Paid). The invoice is marked so later payments do not clobber the choice.
func (l *InvoiceLedger) UpdateStatus(invoiceID uint, status string) (*models.Invoice, error) {
	if !models.IsValidInvoiceStatus(status) {
		return nil, &ValidationError{Message: "invalid invoice status: " + status}
	}

	invoice, err := l.byID(invoiceID)
	if err != nil {
		return nil, err
	}

	invoice.Status = status
	invoice.StatusOverridden = true

	if err := l.invoices.Save(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Delete removes the invoice and its embedded payments. A missing id is a
// NotFoundError.
func (l *InvoiceLedger) Delete(invoiceID uint) error {
	if err := l.invoices.Delete(invoiceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Resource: "invoice", ID: invoiceID}
		}
		return err
	}
	return nil
}

// GetAll returns every invoice, most recently issued first.
func (l *InvoiceLedger) GetAll() ([]models.Invoice, error) {
	invoices, err := l.invoices.All()
	if err != nil {
		return nil, err
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].IssueDate.After(invoices[j].IssueDate)
	})
	return invoices, nil
}

func (l *InvoiceLedger) GetByID(invoiceID uint) (*models.Invoice, error) {
	return l.byID(invoiceID)
}

func (l *InvoiceLedger) GetByPatient(patientID uint) ([]models.Invoice, error) {
	return l.filter(func(inv models.Invoice) bool {
		return inv.PatientID == patientID
	})
}

// GetByStatus filters by status; "All" or an empty status returns the
// unfiltered collection.
func (l *InvoiceLedger) GetByStatus(status string) ([]models.Invoice, error) {
	if status == "" || status == "All" {
		return l.GetAll()
	}
	return l.filter(func(inv models.Invoice) bool {
		return inv.Status == status
	})
}

// Search matches the query case-insensitively against invoice numbers and
// patient names.
func (l *InvoiceLedger) Search(query string) ([]models.Invoice, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return l.GetAll()
	}
	return l.filter(func(inv models.Invoice) bool {
		return strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(inv.PatientName), q)
	})
}

func (l *InvoiceLedger) GetByDateRange(start, end time.Time) ([]models.Invoice, error) {
	return l.filter(func(inv models.Invoice) bool {
		return !inv.IssueDate.Before(start) && !inv.IssueDate.After(end)
	})
}

func (l *InvoiceLedger) byID(invoiceID uint) (*models.Invoice, error) {
	invoice, err := l.invoices.ByID(invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "invoice", ID: invoiceID}
		}
		return nil, err
	}
	return invoice, nil
}

func (l *InvoiceLedger) filter(keep func(models.Invoice) bool) ([]models.Invoice, error) {
	invoices, err := l.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if keep(inv) {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func buildItems(inputs []InvoiceItemInput) ([]models.InvoiceItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, &ValidationError{Message: "invoice requires at least one line item"}
	}

	var total float64
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, &ValidationError{Message: "item quantity must be greater than zero"}
		}
		if in.Rate < 0 {
			return nil, 0, &ValidationError{Message: "item rate must not be negative"}
		}
		amount := float64(in.Quantity) * in.Rate
		if amount <= 0 {
			return nil, 0, &ValidationError{Message: "item amount must be greater than zero"}
		}
		total += amount
		items = append(items, models.InvoiceItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount,
		})
	}
	return items, total, nil
}
