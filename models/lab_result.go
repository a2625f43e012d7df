package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lab attachment limits. Listings omit FileData; it is only returned when a
// single result is fetched by id.
const MaxLabFileSize = 5 * 1024 * 1024 // 5MB

var AllowedLabFileTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/jpg",
	"image/png",
}

type LabResult struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	PatientID  uint      `gorm:"index;not null" json:"PatientId"`
	FileName   string    `gorm:"not null" json:"FileName"`
	FileType   string    `gorm:"not null" json:"FileType"`
	FileSize   int64     `json:"FileSize"`
	FileData   string    `gorm:"type:text" json:"FileData,omitempty"` // base64 blob
	StorageKey uuid.UUID `gorm:"type:uuid" json:"-"`
	UploadDate time.Time `json:"UploadDate"`
	Notes      string    `json:"Notes"`

	gorm.Model `json:"-"`
}

func (r *LabResult) BeforeCreate(tx *gorm.DB) (err error) {
	r.StorageKey = uuid.New()
	return
}

func IsAllowedLabFileType(fileType string) bool {
	for _, t := range AllowedLabFileTypes {
		if t == fileType {
			return true
		}
	}
	return false
}
