package main

import (
	"fmt"
	"log"
	"os"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/routes"
	"mediflow-backend/seed"
	"mediflow-backend/services"
	"mediflow-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Patient{},
		&models.StaffMember{},
		&models.Appointment{},
		&models.Admission{},
		&models.Prescription{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.LabResult{},
		&models.ReminderLog{},
	)

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seed.LoadFixtures(config.DB)
	}
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ledger := services.NewInvoiceLedger(
		store.NewGormInvoiceStore(config.DB),
		store.NewGormPatientDirectory(config.DB),
	)

	reminderService := services.NewRefillReminderService(config.DB)
	reminderService.StartScheduler()

	r := routes.SetupRouter(ledger)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
