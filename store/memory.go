package store

import (
	"sync"

	"mediflow-backend/models"
)

// MemoryInvoiceStore keeps invoices in process memory. Mutations are
// guarded by a single lock, so each ledger operation's read-modify-write
// is atomic with respect to other operations.
type MemoryInvoiceStore struct {
	mu       sync.Mutex
	invoices []models.Invoice
}

func NewMemoryInvoiceStore(seed ...models.Invoice) *MemoryInvoiceStore {
	s := &MemoryInvoiceStore{}
	for _, inv := range seed {
		s.invoices = append(s.invoices, copyInvoice(inv))
	}
	return s
}

func (s *MemoryInvoiceStore) All() ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, copyInvoice(inv))
	}
	return out, nil
}

func (s *MemoryInvoiceStore) ByID(id uint) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			c := copyInvoice(inv)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryInvoiceStore) NextID() (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint
	for _, inv := range s.invoices {
		if inv.ID > maxID {
			maxID = inv.ID
		}
	}
	return maxID + 1, nil
}

func (s *MemoryInvoiceStore) Create(inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, copyInvoice(*inv))
	return nil
}

func (s *MemoryInvoiceStore) Save(inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			s.invoices[i] = copyInvoice(*inv)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryInvoiceStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func copyInvoice(inv models.Invoice) models.Invoice {
	c := inv
	c.Items = append([]models.InvoiceItem(nil), inv.Items...)
	c.Payments = append([]models.Payment(nil), inv.Payments...)
	return c
}

// MemoryPatientDirectory resolves patients from a fixed set of refs.
type MemoryPatientDirectory struct {
	patients map[uint]PatientRef
}

func NewMemoryPatientDirectory(refs ...PatientRef) *MemoryPatientDirectory {
	d := &MemoryPatientDirectory{patients: make(map[uint]PatientRef)}
	for _, ref := range refs {
		d.patients[ref.ID] = ref
	}
	return d
}

func (d *MemoryPatientDirectory) Resolve(id uint) (*PatientRef, error) {
	ref, ok := d.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ref, nil
}
