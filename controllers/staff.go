package controllers

import (
	"errors"
	"net/http"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for adding a staff member
type CreateStaffInput struct {
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=Doctor Nurse Technician Administrator"`
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// UpdateStaffInput defines the expected JSON structure for updating a staff member
type UpdateStaffInput struct {
	Name           *string `json:"name"`
	Role           *string `json:"role" binding:"omitempty,oneof=Doctor Nurse Technician Administrator"`
	Specialization *string `json:"specialization"`
	Department     *string `json:"department"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsActive       *bool   `json:"isActive"`
}

// CreateStaffMember adds a new member to the staff directory
func CreateStaffMember(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	member := models.StaffMember{
		Name:           input.Name,
		Role:           input.Role,
		Specialization: input.Specialization,
		Department:     input.Department,
		Phone:          input.Phone,
		Email:          input.Email,
		IsActive:       true,
	}

	if err := config.DB.Create(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetStaff retrieves the staff directory, optionally filtered by role
func GetStaff(c *gin.Context) {
	query := config.DB.Model(&models.StaffMember{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var staff []models.StaffMember
	if err := query.Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetDoctors retrieves all staff members with the Doctor role
func GetDoctors(c *gin.Context) {
	var doctors []models.StaffMember
	if err := config.DB.Where("role = ?", "Doctor").Find(&doctors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve doctors")
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// GetStaffMember retrieves a specific staff member by ID
func GetStaffMember(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var member models.StaffMember
	if err := config.DB.First(&member, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, member)
}

// UpdateStaffMember updates an existing staff member
func UpdateStaffMember(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var member models.StaffMember
	if err := config.DB.First(&member, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Specialization != nil {
		member.Specialization = *input.Specialization
	}
	if input.Department != nil {
		member.Department = *input.Department
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteStaffMember soft deletes a staff member
func DeleteStaffMember(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.StaffMember{}, "id = ?", staffID)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
