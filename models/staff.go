package models

import "gorm.io/gorm"

type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	Name           string `gorm:"not null" json:"name"`
	Role           string `gorm:"not null" json:"role"` // Doctor, Nurse, Technician, Administrator
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}
