package models

import (
	"time"

	"gorm.io/gorm"
)

// Prescription status values
const (
	PrescriptionActive       = "Active"
	PrescriptionCompleted    = "Completed"
	PrescriptionDiscontinued = "Discontinued"
)

type Prescription struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	PatientID      uint      `gorm:"index;not null" json:"patientId"`
	MedicationName string    `gorm:"not null" json:"medicationName"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration"`
	PrescribedBy   string    `json:"prescribedBy"`
	PrescribedDate time.Time `json:"prescribedDate"`
	RefillDate     time.Time `gorm:"index" json:"refillDate"`
	Status         string    `gorm:"default:'Active'" json:"status"`
	Notes          string    `json:"notes"`

	gorm.Model `json:"-"`
}
