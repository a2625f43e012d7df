package models

import (
	"time"

	"gorm.io/gorm"
)

// Admission status values
const (
	AdmissionActive     = "Admitted"
	AdmissionDischarged = "Discharged"
)

type Admission struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	PatientID       uint      `gorm:"index;not null" json:"patientId"`
	AdmissionDate   time.Time `json:"admissionDate"`
	RoomNumber      string    `json:"roomNumber"`
	Department      string    `json:"department"`
	AdmissionReason string    `json:"admissionReason"`
	AttendingDoctor string    `json:"attendingDoctor"`
	Status          string    `gorm:"default:'Admitted'" json:"status"`

	DischargeDate        *time.Time `json:"dischargeDate"`
	DischargeSummary     string     `json:"dischargeSummary"`
	FollowUpInstructions string     `json:"followUpInstructions"`
	FollowUpDate         *time.Time `json:"followUpDate"`

	gorm.Model `json:"-"`
}
