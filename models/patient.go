package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Patient admission status values
const (
	PatientActive     = "Active"
	PatientAdmitted   = "Admitted"
	PatientDischarged = "Discharged"
)

type Patient struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	FirstName   string     `gorm:"not null" json:"firstName"`
	LastName    string     `gorm:"not null" json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Phone       string     `gorm:"not null" json:"phone"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	BloodGroup  string     `json:"bloodGroup"`

	Height             string     `json:"height"`
	Weight             string     `json:"weight"`
	Allergies          StringList `gorm:"type:jsonb;default:'[]'" json:"allergies"`
	ExistingConditions StringList `gorm:"type:jsonb;default:'[]'" json:"existingConditions"`
	CurrentMedications StringList `gorm:"type:jsonb;default:'[]'" json:"currentMedications"`
	PastSurgeries      StringList `gorm:"type:jsonb;default:'[]'" json:"pastSurgeries"`
	FamilyHistory      string     `json:"familyHistory"`
	PrimaryPhysician   string     `json:"primaryPhysician"`

	RegistrationDate   time.Time  `json:"registrationDate"`
	Status             string     `gorm:"default:'Active'" json:"status"`
	CurrentAdmissionID *uint      `json:"currentAdmissionId"`
	LastDischargeDate  *time.Time `json:"lastDischargeDate"`

	Invoices []Invoice `gorm:"foreignKey:PatientID" json:"-"`

	gorm.Model `json:"-"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// StringList stores a list of strings as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}
