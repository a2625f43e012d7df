package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateLabResultInput defines the expected JSON structure for uploading a
// lab-result attachment. FileData carries the base64-encoded file contents.
type CreateLabResultInput struct {
	PatientID uint   `json:"PatientId" binding:"required"`
	FileName  string `json:"FileName" binding:"required"`
	FileType  string `json:"FileType" binding:"required"`
	FileData  string `json:"FileData" binding:"required"`
	Notes     string `json:"Notes"`
}

// CreateLabResult stores a lab-result attachment for a patient
func CreateLabResult(c *gin.Context) {
	var input CreateLabResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.IsAllowedLabFileType(input.FileType) {
		utils.RespondWithError(c, http.StatusBadRequest,
			"File type not supported. Please upload PDF, JPG, or PNG files.")
		return
	}

	// Accept both raw base64 and data-URL payloads
	encoded := input.FileData
	if idx := strings.Index(encoded, ";base64,"); idx != -1 {
		encoded = encoded[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "File data is not valid base64")
		return
	}
	if int64(len(decoded)) > models.MaxLabFileSize {
		utils.RespondWithError(c, http.StatusBadRequest, "File size exceeds 5MB limit")
		return
	}

	var patient models.Patient
	if err := config.DB.First(&patient, "id = ?", input.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	result := models.LabResult{
		PatientID:  patient.ID,
		FileName:   input.FileName,
		FileType:   input.FileType,
		FileSize:   int64(len(decoded)),
		FileData:   encoded,
		UploadDate: time.Now(),
		Notes:      input.Notes,
	}

	if err := config.DB.Create(&result).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save lab result")
		return
	}

	// Listings and the upload response omit the blob
	result.FileData = ""
	c.JSON(http.StatusCreated, result)
}

// GetLabResults retrieves lab-result metadata, optionally filtered by patient.
// FileData is never included in listings.
func GetLabResults(c *gin.Context) {
	query := config.DB.Model(&models.LabResult{}).Omit("file_data")

	if patientID := c.Query("patientId"); patientID != "" {
		id, err := strconv.ParseUint(patientID, 10, 32)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
			return
		}
		query = query.Where("patient_id = ?", uint(id))
	}

	var results []models.LabResult
	if err := query.Order("upload_date DESC").Find(&results).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve lab results")
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetLabResult retrieves a single lab result including its file data
func GetLabResult(c *gin.Context) {
	resultID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var result models.LabResult
	if err := config.DB.First(&result, "id = ?", resultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Lab result not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteLabResult removes a lab-result attachment
func DeleteLabResult(c *gin.Context) {
	resultID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.LabResult{}, "id = ?", resultID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete lab result")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Lab result not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lab result deleted successfully"})
}
