package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PrescriptionID uint      `gorm:"index;not null" json:"prescriptionId"`
	PatientID      uint      `gorm:"index;not null" json:"patientId"`
	Message        string    `gorm:"type:text" json:"message"`
	Status         string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage   string    `gorm:"type:text" json:"errorMessage"`
	Channel        string    `gorm:"type:varchar(20)" json:"channel"` // sms, whatsapp
	SentAt         time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
