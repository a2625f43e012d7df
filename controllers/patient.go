package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePatientInput defines the expected JSON structure for registering a patient
type CreatePatientInput struct {
	FirstName          string     `json:"firstName" binding:"required"`
	LastName           string     `json:"lastName" binding:"required"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             string     `json:"gender"`
	Phone              string     `json:"phone" binding:"required"`
	Email              *string    `json:"email"`
	Address            string     `json:"address"`
	BloodGroup         string     `json:"bloodGroup"`
	Height             string     `json:"height"`
	Weight             string     `json:"weight"`
	Allergies          []string   `json:"allergies"`
	ExistingConditions []string   `json:"existingConditions"`
	CurrentMedications []string   `json:"currentMedications"`
	PastSurgeries      []string   `json:"pastSurgeries"`
	FamilyHistory      string     `json:"familyHistory"`
	PrimaryPhysician   string     `json:"primaryPhysician"`
}

// UpdatePatientInput defines the expected JSON structure for updating a patient
type UpdatePatientInput struct {
	FirstName          *string    `json:"firstName"`
	LastName           *string    `json:"lastName"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             *string    `json:"gender"`
	Phone              *string    `json:"phone"`
	Email              *string    `json:"email"`
	Address            *string    `json:"address"`
	BloodGroup         *string    `json:"bloodGroup"`
	Height             *string    `json:"height"`
	Weight             *string    `json:"weight"`
	Allergies          *[]string  `json:"allergies"`
	ExistingConditions *[]string  `json:"existingConditions"`
	CurrentMedications *[]string  `json:"currentMedications"`
	PastSurgeries      *[]string  `json:"pastSurgeries"`
	FamilyHistory      *string    `json:"familyHistory"`
	PrimaryPhysician   *string    `json:"primaryPhysician"`
}

// UpdatePatientStatusInput switches a patient between Active/Admitted/Discharged
type UpdatePatientStatusInput struct {
	Status      string `json:"status" binding:"required,oneof=Active Admitted Discharged"`
	AdmissionID *uint  `json:"admissionId"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

// CreatePatient registers a new patient
func CreatePatient(c *gin.Context) {
	var input CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existingPatient models.Patient
	if err := config.DB.Where("phone = ?", input.Phone).
		First(&existingPatient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Patient with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	patient := models.Patient{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		Phone:              input.Phone,
		Address:            input.Address,
		BloodGroup:         input.BloodGroup,
		Height:             input.Height,
		Weight:             input.Weight,
		Allergies:          input.Allergies,
		ExistingConditions: input.ExistingConditions,
		CurrentMedications: input.CurrentMedications,
		PastSurgeries:      input.PastSurgeries,
		FamilyHistory:      input.FamilyHistory,
		PrimaryPhysician:   input.PrimaryPhysician,
		RegistrationDate:   time.Now(),
		Status:             models.PatientActive,
	}

	if input.Email != nil {
		patient.Email = *input.Email
	}

	if err := config.DB.Create(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// GetPatients retrieves all patients, optionally filtered by a search query
func GetPatients(c *gin.Context) {
	query := config.DB.Model(&models.Patient{})

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatient retrieves a specific patient by ID
func GetPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patient models.Patient
	if err := config.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatient updates an existing patient
func UpdatePatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var patient models.Patient
	if err := config.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		// Check if phone is being changed to another existing patient
		if patient.Phone != *input.Phone {
			var existingPatient models.Patient
			if err := config.DB.Where("phone = ?", *input.Phone).
				First(&existingPatient).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another patient with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		patient.Phone = *input.Phone
	}
	if input.Email != nil {
		patient.Email = *input.Email
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = *input.BloodGroup
	}
	if input.Height != nil {
		patient.Height = *input.Height
	}
	if input.Weight != nil {
		patient.Weight = *input.Weight
	}
	if input.Allergies != nil {
		patient.Allergies = *input.Allergies
	}
	if input.ExistingConditions != nil {
		patient.ExistingConditions = *input.ExistingConditions
	}
	if input.CurrentMedications != nil {
		patient.CurrentMedications = *input.CurrentMedications
	}
	if input.PastSurgeries != nil {
		patient.PastSurgeries = *input.PastSurgeries
	}
	if input.FamilyHistory != nil {
		patient.FamilyHistory = *input.FamilyHistory
	}
	if input.PrimaryPhysician != nil {
		patient.PrimaryPhysician = *input.PrimaryPhysician
	}

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatientStatus moves a patient through the admission lifecycle
func UpdatePatientStatus(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdatePatientStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var patient models.Patient
	if err := config.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	patient.Status = input.Status
	if input.AdmissionID != nil {
		patient.CurrentAdmissionID = input.AdmissionID
	}
	if input.Status == models.PatientDischarged {
		now := time.Now()
		patient.LastDischargeDate = &now
		patient.CurrentAdmissionID = nil
	}

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient status")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// DeletePatient soft deletes a patient
func DeletePatient(c *gin.Context) {
	patientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Patient{}, "id = ?", patientID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
