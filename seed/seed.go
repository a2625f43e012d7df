package seed

import (
	_ "embed"
	"encoding/json"
	"log"

	"mediflow-backend/models"

	"gorm.io/gorm"
)

//go:embed fixtures/patients.json
var patientsJSON []byte

//go:embed fixtures/staff.json
var staffJSON []byte

//go:embed fixtures/appointments.json
var appointmentsJSON []byte

//go:embed fixtures/prescriptions.json
var prescriptionsJSON []byte

//go:embed fixtures/invoices.json
var invoicesJSON []byte

// LoadFixtures seeds demo records from the embedded JSON fixtures. Each
// table is only seeded when it is empty, so restarts are harmless.
func LoadFixtures(db *gorm.DB) {
	seedPatients(db)
	seedStaff(db)
	seedAppointments(db)
	seedPrescriptions(db)
	seedInvoices(db)
}

func seedPatients(db *gorm.DB) {
	if !tableEmpty(db, &models.Patient{}) {
		return
	}
	var patients []models.Patient
	if err := json.Unmarshal(patientsJSON, &patients); err != nil {
		log.Printf("Failed to parse patient fixtures: %v", err)
		return
	}
	if err := db.Create(&patients).Error; err != nil {
		log.Printf("Failed to seed patients: %v", err)
		return
	}
	log.Printf("Seeded %d patients", len(patients))
}

func seedStaff(db *gorm.DB) {
	if !tableEmpty(db, &models.StaffMember{}) {
		return
	}
	var staff []models.StaffMember
	if err := json.Unmarshal(staffJSON, &staff); err != nil {
		log.Printf("Failed to parse staff fixtures: %v", err)
		return
	}
	if err := db.Create(&staff).Error; err != nil {
		log.Printf("Failed to seed staff: %v", err)
		return
	}
	log.Printf("Seeded %d staff members", len(staff))
}

func seedAppointments(db *gorm.DB) {
	if !tableEmpty(db, &models.Appointment{}) {
		return
	}
	var appointments []models.Appointment
	if err := json.Unmarshal(appointmentsJSON, &appointments); err != nil {
		log.Printf("Failed to parse appointment fixtures: %v", err)
		return
	}
	if err := db.Create(&appointments).Error; err != nil {
		log.Printf("Failed to seed appointments: %v", err)
		return
	}
	log.Printf("Seeded %d appointments", len(appointments))
}

func seedPrescriptions(db *gorm.DB) {
	if !tableEmpty(db, &models.Prescription{}) {
		return
	}
	var prescriptions []models.Prescription
	if err := json.Unmarshal(prescriptionsJSON, &prescriptions); err != nil {
		log.Printf("Failed to parse prescription fixtures: %v", err)
		return
	}
	if err := db.Create(&prescriptions).Error; err != nil {
		log.Printf("Failed to seed prescriptions: %v", err)
		return
	}
	log.Printf("Seeded %d prescriptions", len(prescriptions))
}

func seedInvoices(db *gorm.DB) {
	if !tableEmpty(db, &models.Invoice{}) {
		return
	}
	var invoices []models.Invoice
	if err := json.Unmarshal(invoicesJSON, &invoices); err != nil {
		log.Printf("Failed to parse invoice fixtures: %v", err)
		return
	}
	if err := db.Create(&invoices).Error; err != nil {
		log.Printf("Failed to seed invoices: %v", err)
		return
	}
	log.Printf("Seeded %d invoices", len(invoices))
}

func tableEmpty(db *gorm.DB, model interface{}) bool {
	var count int64
	db.Model(model).Count(&count)
	return count == 0
}
