package models

import (
	"fmt"
	"time"
)

// Invoice status values. Pending, Partial and Paid are derived from payments;
// Overdue and Cancelled are only ever assigned administratively.
const (
	InvoicePending   = "Pending"
	InvoicePartial   = "Partial"
	InvoicePaid      = "Paid"
	InvoiceOverdue   = "Overdue"
	InvoiceCancelled = "Cancelled"
)

// PaymentMethods is the fixed set of accepted payment methods.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Insurance",
	"Check",
	"Bank Transfer",
}

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"InvoiceNumber"`
	PatientID     uint      `gorm:"index;not null" json:"PatientId"`
	PatientName   string    `gorm:"not null" json:"PatientName"`
	IssueDate     time.Time `json:"IssueDate"`
	DueDate       time.Time `json:"DueDate"`

	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"TotalAmount"`
	AmountPaid  float64 `gorm:"type:decimal(10,2);default:0.0" json:"AmountPaid"`
	BalanceDue  float64 `gorm:"type:decimal(10,2);not null" json:"BalanceDue"`

	Status string `gorm:"default:'Pending'" json:"Status"`
	// StatusOverridden marks invoices whose status was set administratively.
	// Payment derivation leaves such invoices alone.
	StatusOverridden bool   `gorm:"default:false" json:"StatusOverridden"`
	Notes            string `json:"Notes"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"Items"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"Payments"`
}

type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	InvoiceID   uint    `gorm:"index;not null" json:"-"`
	Description string  `gorm:"not null" json:"Description"`
	Quantity    int     `gorm:"default:1" json:"Quantity"`
	Rate        float64 `gorm:"type:decimal(10,2);not null" json:"Rate"`
	Amount      float64 `gorm:"type:decimal(10,2);not null" json:"Amount"`
}

// Payment IDs are sequential within their invoice, not globally unique,
// so the primary key is (invoice_id, id).
type Payment struct {
	InvoiceID     uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ID            uint      `gorm:"primaryKey;autoIncrement:false" json:"Id"`
	Date          time.Time `json:"Date"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"Amount"`
	PaymentMethod string    `gorm:"not null" json:"PaymentMethod"`
	Notes         string    `json:"Notes"`
}

// FormatInvoiceNumber derives the immutable invoice number from the numeric id.
func FormatInvoiceNumber(id uint) string {
	return fmt.Sprintf("INV-%05d", id)
}

func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoicePending, InvoicePartial, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
