package controllers

import (
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type RecentInvoice struct {
	ID            uint    `json:"Id"`
	InvoiceNumber string  `json:"invoiceNumber"`
	PatientName   string  `json:"patientName"`
	TotalAmount   float64 `json:"totalAmount"`
	BalanceDue    float64 `json:"balanceDue"`
	Status        string  `json:"status"`
}

type UpcomingRefill struct {
	PatientID      uint   `json:"patientId"`
	MedicationName string `json:"medicationName"`
	DaysUntil      int    `json:"daysUntil"`
}

// GetDashboardOverview assembles the facility-wide summary shown on the
// dashboard page
func GetDashboardOverview(c *gin.Context) {
	// Total patients
	var totalPatients int64
	config.DB.Model(&models.Patient{}).Count(&totalPatients)

	// Today's appointments
	dayStart := utils.BeginningOfDay(time.Now())
	var todaysAppointments int64
	config.DB.Model(&models.Appointment{}).
		Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&todaysAppointments)

	// Active admissions
	var activeAdmissions int64
	config.DB.Model(&models.Admission{}).
		Where("status = ?", models.AdmissionActive).
		Count(&activeAdmissions)

	// This month's revenue
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("issue_date >= ?", firstOfMonth).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&monthlyRevenue)

	// Outstanding balance across open invoices
	var outstandingBalance float64
	config.DB.Model(&models.Invoice{}).
		Where("status IN ?", []string{models.InvoicePending, models.InvoicePartial, models.InvoiceOverdue}).
		Select("COALESCE(SUM(balance_due), 0)").Scan(&outstandingBalance)

	// Pending invoices
	var pendingInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoicePending).
		Count(&pendingInvoices)

	// Recent invoices (last 5 issued)
	var recentInvoices []RecentInvoice
	config.DB.Model(&models.Invoice{}).
		Select("id, invoice_number, patient_name, total_amount, balance_due, status").
		Order("issue_date DESC").
		Limit(5).
		Scan(&recentInvoices)

	// Prescriptions due for refill in the next 7 days
	var upcomingRefills []UpcomingRefill
	var due []models.Prescription
	config.DB.Where("status = ? AND refill_date >= ? AND refill_date < ?",
		models.PrescriptionActive, dayStart, dayStart.AddDate(0, 0, 8)).
		Order("refill_date").
		Limit(7).
		Find(&due)
	for _, p := range due {
		upcomingRefills = append(upcomingRefills, UpcomingRefill{
			PatientID:      p.PatientID,
			MedicationName: p.MedicationName,
			DaysUntil:      utils.DaysBetween(now, p.RefillDate),
		})
	}

	response := gin.H{
		"totalPatients":      totalPatients,
		"todaysAppointments": todaysAppointments,
		"activeAdmissions":   activeAdmissions,
		"monthlyRevenue":     monthlyRevenue,
		"outstandingBalance": outstandingBalance,
		"pendingInvoices":    pendingInvoices,
		"recentInvoices":     recentInvoices,
		"upcomingRefills":    upcomingRefills,
	}

	c.JSON(http.StatusOK, response)
}
