package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// RefillReminderService notifies patients whose active prescriptions come
// due for refill within the next week.
type RefillReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewRefillReminderService(db *gorm.DB) *RefillReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &RefillReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *RefillReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendRefillReminders)

	c.Start()
	log.Println("Refill reminder scheduler started")
}

func (s *RefillReminderService) SendRefillReminders() {
	log.Println("Starting refill reminder processing...")

	var prescriptions []models.Prescription
	if err := s.db.Find(&prescriptions, "status = ?", models.PrescriptionActive).Error; err != nil {
		log.Printf("Failed to fetch prescriptions: %v", err)
		return
	}

	due := FilterDueForRefill(prescriptions, time.Now(), 7)
	for _, prescription := range due {
		s.sendReminder(prescription)
	}

	log.Printf("Refill reminder processing completed, %d prescription(s) due", len(due))
}

// FilterDueForRefill keeps active prescriptions whose refill date falls
// between now and daysAhead days from now, inclusive.
func FilterDueForRefill(prescriptions []models.Prescription, now time.Time, daysAhead int) []models.Prescription {
	today := utils.BeginningOfDay(now)
	cutoff := today.AddDate(0, 0, daysAhead)

	var due []models.Prescription
	for _, p := range prescriptions {
		if p.Status != models.PrescriptionActive {
			continue
		}
		refill := utils.BeginningOfDay(p.RefillDate)
		if refill.Before(today) || refill.After(cutoff) {
			continue
		}
		due = append(due, p)
	}
	return due
}

func (s *RefillReminderService) sendReminder(prescription models.Prescription) {
	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", prescription.PatientID).Error; err != nil {
		log.Printf("Prescription %d: failed to load patient %d: %v",
			prescription.ID, prescription.PatientID, err)
		return
	}

	daysUntil := utils.DaysBetween(time.Now(), prescription.RefillDate)
	message := fmt.Sprintf(
		"Hi %s, your prescription for %s is due for refill in %d day(s). Please contact the facility to arrange a refill.",
		patient.FullName(), prescription.MedicationName, daysUntil)

	// WhatsApp if the phone is in E.164 format, plain SMS otherwise
	channel := "sms"
	to := patient.Phone
	if strings.HasPrefix(patient.Phone, "+") {
		to = "whatsapp:" + patient.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send refill reminder to %s: %v", patient.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Refill reminder sent to %s, SID: %s", patient.Phone, *resp.Sid)
	} else {
		log.Printf("Refill reminder sent to %s, but no SID returned", patient.Phone)
	}

	reminderLog := models.ReminderLog{
		PrescriptionID: prescription.ID,
		PatientID:      patient.ID,
		Message:        message,
		Status:         status,
		ErrorMessage:   errorMsg,
		Channel:        channel,
		SentAt:         time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for prescription %d: %v", prescription.ID, err)
	}
}
