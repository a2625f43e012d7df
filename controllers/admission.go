package controllers

import (
	"errors"
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAdmissionInput defines the expected JSON structure for admitting a patient
type CreateAdmissionInput struct {
	PatientID       uint       `json:"patientId" binding:"required"`
	AdmissionDate   *time.Time `json:"admissionDate"`
	RoomNumber      string     `json:"roomNumber" binding:"required"`
	Department      string     `json:"department" binding:"required"`
	AdmissionReason string     `json:"admissionReason"`
	AttendingDoctor string     `json:"attendingDoctor"`
}

// UpdateAdmissionInput defines the expected JSON structure for updating an admission
type UpdateAdmissionInput struct {
	RoomNumber      *string `json:"roomNumber"`
	Department      *string `json:"department"`
	AdmissionReason *string `json:"admissionReason"`
	AttendingDoctor *string `json:"attendingDoctor"`
}

// DischargeInput defines the expected JSON structure for discharging a patient
type DischargeInput struct {
	DischargeDate        *time.Time `json:"dischargeDate"`
	DischargeSummary     string     `json:"dischargeSummary" binding:"required"`
	FollowUpInstructions string     `json:"followUpInstructions"`
	FollowUpDate         *time.Time `json:"followUpDate"`
}

// CreateAdmission admits a patient and marks the patient record accordingly
func CreateAdmission(c *gin.Context) {
	var input CreateAdmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	admissionDate := time.Now()
	if input.AdmissionDate != nil {
		admissionDate = *input.AdmissionDate
	}

	admission := models.Admission{
		PatientID:       patient.ID,
		AdmissionDate:   admissionDate,
		RoomNumber:      input.RoomNumber,
		Department:      input.Department,
		AdmissionReason: input.AdmissionReason,
		AttendingDoctor: input.AttendingDoctor,
		Status:          models.AdmissionActive,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&admission).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create admission")
		return
	}

	if err := tx.Model(&models.Patient{}).Where("id = ?", patient.ID).
		Updates(map[string]interface{}{
			"status":               models.PatientAdmitted,
			"current_admission_id": admission.ID,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient status")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, admission)
}

// GetAdmissions retrieves admissions, optionally filtered by status or search query
func GetAdmissions(c *gin.Context) {
	query := config.DB.Model(&models.Admission{})

	switch c.Query("status") {
	case "active":
		query = query.Where("status = ?", models.AdmissionActive)
	case "discharged":
		query = query.Where("status = ?", models.AdmissionDischarged)
	}

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"room_number ILIKE ? OR department ILIKE ? OR admission_reason ILIKE ?",
			like, like, like)
	}

	var admissions []models.Admission
	if err := query.Order("admission_date DESC").Find(&admissions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve admissions")
		return
	}

	c.JSON(http.StatusOK, admissions)
}

// GetAdmission retrieves a specific admission by ID
func GetAdmission(c *gin.Context) {
	admissionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var admission models.Admission
	if err := config.DB.First(&admission, "id = ?", admissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Admission not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, admission)
}

// UpdateAdmission updates an active admission's details
func UpdateAdmission(c *gin.Context) {
	admissionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateAdmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var admission models.Admission
	if err := config.DB.First(&admission, "id = ?", admissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Admission not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.RoomNumber != nil {
		admission.RoomNumber = *input.RoomNumber
	}
	if input.Department != nil {
		admission.Department = *input.Department
	}
	if input.AdmissionReason != nil {
		admission.AdmissionReason = *input.AdmissionReason
	}
	if input.AttendingDoctor != nil {
		admission.AttendingDoctor = *input.AttendingDoctor
	}

	if err := config.DB.Save(&admission).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update admission")
		return
	}

	c.JSON(http.StatusOK, admission)
}

// DischargePatient closes an admission and updates the patient record
func DischargePatient(c *gin.Context) {
	admissionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input DischargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var admission models.Admission
	if err := config.DB.First(&admission, "id = ?", admissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Admission not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if admission.Status == models.AdmissionDischarged {
		utils.RespondWithError(c, http.StatusConflict, "Admission is already discharged")
		return
	}

	dischargeDate := time.Now()
	if input.DischargeDate != nil {
		dischargeDate = *input.DischargeDate
	}

	admission.Status = models.AdmissionDischarged
	admission.DischargeDate = &dischargeDate
	admission.DischargeSummary = input.DischargeSummary
	admission.FollowUpInstructions = input.FollowUpInstructions
	admission.FollowUpDate = input.FollowUpDate

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&admission).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to discharge admission")
		return
	}

	if err := tx.Model(&models.Patient{}).Where("id = ?", admission.PatientID).
		Updates(map[string]interface{}{
			"status":               models.PatientDischarged,
			"current_admission_id": nil,
			"last_discharge_date":  dischargeDate,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient status")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, admission)
}

// DeleteAdmission soft deletes an admission record
func DeleteAdmission(c *gin.Context) {
	admissionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Admission{}, "id = ?", admissionID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete admission")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Admission not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admission deleted successfully"})
}
