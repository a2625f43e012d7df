package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment status values
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
	AppointmentNoShow    = "No Show"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	PatientID   uint      `gorm:"index;not null" json:"patientId"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	TimeSlot    string    `json:"timeSlot"`
	Reason      string    `json:"reason"`
	Status      string    `gorm:"default:'Scheduled'" json:"status"`
	Notes       string    `json:"notes"`

	gorm.Model `json:"-"`
}
