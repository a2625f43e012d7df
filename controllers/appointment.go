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

// CreateAppointmentInput defines the expected JSON structure for scheduling an appointment
type CreateAppointmentInput struct {
	PatientID  uint      `json:"patientId" binding:"required"`
	DoctorName string    `json:"doctorName"`
	Date       time.Time `json:"date" binding:"required"`
	TimeSlot   string    `json:"timeSlot"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	DoctorName *string    `json:"doctorName"`
	Date       *time.Time `json:"date"`
	TimeSlot   *string    `json:"timeSlot"`
	Reason     *string    `json:"reason"`
	Status     *string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled 'No Show'"`
	Notes      *string    `json:"notes"`
}

// CreateAppointment schedules a new appointment for a patient
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate the patient exists
	var patient models.Patient
	if err := config.DB.First(&patient, "id = ?", input.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	appointment := models.Appointment{
		PatientID:   patient.ID,
		PatientName: patient.FullName(),
		DoctorName:  input.DoctorName,
		Date:        input.Date,
		TimeSlot:    input.TimeSlot,
		Reason:      input.Reason,
		Status:      models.AppointmentScheduled,
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments retrieves appointments, filtered by patient, date range or today
func GetAppointments(c *gin.Context) {
	query := config.DB.Model(&models.Appointment{})

	if patientID := c.Query("patientId"); patientID != "" {
		id, err := strconv.ParseUint(patientID, 10, 32)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid patient ID format")
			return
		}
		query = query.Where("patient_id = ?", uint(id))
	}

	if c.Query("today") == "true" {
		dayStart := utils.BeginningOfDay(time.Now())
		query = query.Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	} else if start, end := c.Query("startDate"), c.Query("endDate"); start != "" && end != "" {
		startDate, err1 := time.Parse("2006-01-02", start)
		endDate, err2 := time.Parse("2006-01-02", end)
		if err1 != nil || err2 != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date >= ? AND date < ?", startDate, endDate.AddDate(0, 0, 1))
	}

	var appointments []models.Appointment
	if err := query.Order("date").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment updates an existing appointment
func UpdateAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.DoctorName != nil {
		appointment.DoctorName = *input.DoctorName
	}
	if input.Date != nil {
		appointment.Date = *input.Date
	}
	if input.TimeSlot != nil {
		appointment.TimeSlot = *input.TimeSlot
	}
	if input.Reason != nil {
		appointment.Reason = *input.Reason
	}
	if input.Status != nil {
		appointment.Status = *input.Status
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment soft deletes an appointment
func DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Appointment{}, "id = ?", appointmentID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
