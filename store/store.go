package store

import (
	"errors"

	"mediflow-backend/models"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("record not found")

// InvoiceStore is the record collection backing the invoice ledger.
// The HTTP layer wires the GORM-backed implementation; tests use the
// in-memory one.
type InvoiceStore interface {
	All() ([]models.Invoice, error)
	ByID(id uint) (*models.Invoice, error)
	// NextID returns max existing id + 1, or 1 when the store is empty.
	NextID() (uint, error)
	Create(inv *models.Invoice) error
	Save(inv *models.Invoice) error
	Delete(id uint) error
}

// PatientRef is the identity slice of a patient the ledger needs to
// denormalize onto an invoice at creation time.
type PatientRef struct {
	ID   uint
	Name string
}

// PatientDirectory resolves patient ids for invoice creation.
type PatientDirectory interface {
	Resolve(id uint) (*PatientRef, error)
}
