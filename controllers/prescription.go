package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/services"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePrescriptionInput defines the expected JSON structure for creating a prescription
type CreatePrescriptionInput struct {
	PatientID      uint       `json:"patientId" binding:"required"`
	MedicationName string     `json:"medicationName" binding:"required"`
	Dosage         string     `json:"dosage"`
	Frequency      string     `json:"frequency"`
	Duration       string     `json:"duration"`
	PrescribedBy   string     `json:"prescribedBy"`
	PrescribedDate *time.Time `json:"prescribedDate"`
	RefillDate     time.Time  `json:"refillDate" binding:"required"`
	Notes          string     `json:"notes"`
}

// UpdatePrescriptionInput defines the expected JSON structure for updating a prescription
type UpdatePrescriptionInput struct {
	MedicationName *string    `json:"medicationName"`
	Dosage         *string    `json:"dosage"`
	Frequency      *string    `json:"frequency"`
	Duration       *string    `json:"duration"`
	PrescribedBy   *string    `json:"prescribedBy"`
	RefillDate     *time.Time `json:"refillDate"`
	Status         *string    `json:"status" binding:"omitempty,oneof=Active Completed Discontinued"`
	Notes          *string    `json:"notes"`
}

// CreatePrescription creates a new prescription for a patient
func CreatePrescription(c *gin.Context) {
	var input CreatePrescriptionInput
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

	prescribedDate := time.Now()
	if input.PrescribedDate != nil {
		prescribedDate = *input.PrescribedDate
	}

	prescription := models.Prescription{
		PatientID:      patient.ID,
		MedicationName: input.MedicationName,
		Dosage:         input.Dosage,
		Frequency:      input.Frequency,
		Duration:       input.Duration,
		PrescribedBy:   input.PrescribedBy,
		PrescribedDate: prescribedDate,
		RefillDate:     input.RefillDate,
		Status:         models.PrescriptionActive,
		Notes:          input.Notes,
	}

	if err := config.DB.Create(&prescription).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create prescription")
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

// GetPrescriptions retrieves prescriptions, optionally filtered by patient,
// search query or upcoming refill window
func GetPrescriptions(c *gin.Context) {
	query := config.DB.Model(&models.Prescription{})

	if patientID := c.Query("patientId"); patientID != "" {
		id, err := strconv.ParseUint(patientID, 10, 32)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
			return
		}
		query = query.Where("patient_id = ?", uint(id))
	}

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"medication_name ILIKE ? OR prescribed_by ILIKE ? OR dosage ILIKE ?",
			like, like, like)
	}

	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prescriptions")
		return
	}

	if c.Query("dueForRefill") == "true" {
		daysAhead := 7
		if d := c.Query("daysAhead"); d != "" {
			if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 {
				daysAhead = parsed
			}
		}
		prescriptions = services.FilterDueForRefill(prescriptions, time.Now(), daysAhead)
	}

	c.JSON(http.StatusOK, prescriptions)
}

// GetPrescription retrieves a specific prescription by ID
func GetPrescription(c *gin.Context) {
	prescriptionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var prescription models.Prescription
	if err := config.DB.First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Prescription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, prescription)
}

// UpdatePrescription updates an existing prescription
func UpdatePrescription(c *gin.Context) {
	prescriptionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdatePrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var prescription models.Prescription
	if err := config.DB.First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Prescription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.MedicationName != nil {
		prescription.MedicationName = *input.MedicationName
	}
	if input.Dosage != nil {
		prescription.Dosage = *input.Dosage
	}
	if input.Frequency != nil {
		prescription.Frequency = *input.Frequency
	}
	if input.Duration != nil {
		prescription.Duration = *input.Duration
	}
	if input.PrescribedBy != nil {
		prescription.PrescribedBy = *input.PrescribedBy
	}
	if input.RefillDate != nil {
		prescription.RefillDate = *input.RefillDate
	}
	if input.Status != nil {
		prescription.Status = *input.Status
	}
	if input.Notes != nil {
		prescription.Notes = *input.Notes
	}

	if err := config.DB.Save(&prescription).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update prescription")
		return
	}

	c.JSON(http.StatusOK, prescription)
}

// DeletePrescription soft deletes a prescription
func DeletePrescription(c *gin.Context) {
	prescriptionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Prescription{}, "id = ?", prescriptionID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete prescription")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Prescription not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prescription deleted successfully"})
}
