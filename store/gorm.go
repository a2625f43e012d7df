package store

import (
	"errors"

	"mediflow-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormInvoiceStore struct {
	db *gorm.DB
}

func NewGormInvoiceStore(db *gorm.DB) *GormInvoiceStore {
	return &GormInvoiceStore{db: db}
}

func (s *GormInvoiceStore) All() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Preload("Items").Preload("Payments").Find(&invoices).Error
	return invoices, err
}

func (s *GormInvoiceStore) ByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Items").Preload("Payments").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *GormInvoiceStore) NextID() (uint, error) {
	var maxID uint
	if err := s.db.Model(&models.Invoice{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

func (s *GormInvoiceStore) Create(inv *models.Invoice) error {
	return s.db.Create(inv).Error
}

// Save persists a mutated invoice. Items are replaced wholesale (the ledger
// recomputes them on update); payments are append-only, so only new rows
// are inserted.
func (s *GormInvoiceStore) Save(inv *models.Invoice) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"due_date":          inv.DueDate,
				"total_amount":      inv.TotalAmount,
				"amount_paid":       inv.AmountPaid,
				"balance_due":       inv.BalanceDue,
				"status":            inv.Status,
				"status_overridden": inv.StatusOverridden,
				"notes":             inv.Notes,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ?", inv.ID).
			Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		for i := range inv.Items {
			inv.Items[i].ID = 0
			inv.Items[i].InvoiceID = inv.ID
		}
		if len(inv.Items) > 0 {
			if err := tx.Create(&inv.Items).Error; err != nil {
				return err
			}
		}

		if len(inv.Payments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&inv.Payments).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GormInvoiceStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

type GormPatientDirectory struct {
	db *gorm.DB
}

func NewGormPatientDirectory(db *gorm.DB) *GormPatientDirectory {
	return &GormPatientDirectory{db: db}
}

func (d *GormPatientDirectory) Resolve(id uint) (*PatientRef, error) {
	var patient models.Patient
	if err := d.db.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &PatientRef{ID: patient.ID, Name: patient.FullName()}, nil
}
