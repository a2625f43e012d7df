package routes

import (
	"os"

	"mediflow-backend/config"
	"mediflow-backend/controllers"
	"mediflow-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(ledger *services.InvoiceLedger) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")
	{
		// Patient routes
		patients := api.Group("/patients")
		{
			patients.POST("", controllers.CreatePatient)
			patients.GET("", controllers.GetPatients)
			patients.GET("/:id", controllers.GetPatient)
			patients.PUT("/:id", controllers.UpdatePatient)
			patients.PUT("/:id/status", controllers.UpdatePatientStatus)
			patients.DELETE("/:id", controllers.DeletePatient)
		}

		// Staff directory routes
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.CreateStaffMember)
			staff.GET("", controllers.GetStaff)
			staff.GET("/doctors", controllers.GetDoctors)
			staff.GET("/:id", controllers.GetStaffMember)
			staff.PUT("/:id", controllers.UpdateStaffMember)
			staff.DELETE("/:id", controllers.DeleteStaffMember)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Admission/discharge routes
		admissions := api.Group("/admissions")
		{
			admissions.POST("", controllers.CreateAdmission)
			admissions.GET("", controllers.GetAdmissions)
			admissions.GET("/:id", controllers.GetAdmission)
			admissions.PUT("/:id", controllers.UpdateAdmission)
			admissions.PUT("/:id/discharge", controllers.DischargePatient)
			admissions.DELETE("/:id", controllers.DeleteAdmission)
		}

		// Prescription routes
		prescriptions := api.Group("/prescriptions")
		{
			prescriptions.POST("", controllers.CreatePrescription)
			prescriptions.GET("", controllers.GetPrescriptions)
			prescriptions.GET("/:id", controllers.GetPrescription)
			prescriptions.PUT("/:id", controllers.UpdatePrescription)
			prescriptions.DELETE("/:id", controllers.DeletePrescription)
		}

		// Invoice ledger routes
		invoiceController := controllers.InvoiceController{Ledger: ledger}
		invoices := api.Group("/invoices")
		{
			invoices.POST("", invoiceController.CreateInvoice)
			invoices.GET("", invoiceController.GetInvoices)
			invoices.GET("/:id", invoiceController.GetInvoice)
			invoices.PUT("/:id", invoiceController.UpdateInvoice)
			invoices.PUT("/:id/status", invoiceController.UpdateInvoiceStatus)
			invoices.POST("/:id/payments", invoiceController.RecordPayment)
			invoices.DELETE("/:id", invoiceController.DeleteInvoice)
		}

		// Lab result attachment routes
		labResults := api.Group("/lab-results")
		{
			labResults.POST("", controllers.CreateLabResult)
			labResults.GET("", controllers.GetLabResults)
			labResults.GET("/:id", controllers.GetLabResult)
			labResults.DELETE("/:id", controllers.DeleteLabResult)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports/billing", reportController.GetBillingReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
