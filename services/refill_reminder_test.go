package services

import (
	"testing"
	"time"

	"mediflow-backend/models"
)

func TestFilterDueForRefill(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	prescriptions := []models.Prescription{
		{ID: 1, Status: models.PrescriptionActive, RefillDate: day(0)},
		{ID: 2, Status: models.PrescriptionActive, RefillDate: day(3)},
		{ID: 3, Status: models.PrescriptionActive, RefillDate: day(7)},
		{ID: 4, Status: models.PrescriptionActive, RefillDate: day(8)},
		{ID: 5, Status: models.PrescriptionActive, RefillDate: day(-1)},
		{ID: 6, Status: models.PrescriptionCompleted, RefillDate: day(2)},
		{ID: 7, Status: models.PrescriptionDiscontinued, RefillDate: day(2)},
	}

	due := FilterDueForRefill(prescriptions, now, 7)

	want := map[uint]bool{1: true, 2: true, 3: true}
	if len(due) != len(want) {
		t.Fatalf("expected %d due prescriptions, got %d", len(want), len(due))
	}
	for _, p := range due {
		if !want[p.ID] {
			t.Errorf("prescription %d should not be due (status %s, refill %s)",
				p.ID, p.Status, p.RefillDate.Format("2006-01-02"))
		}
	}
}

func TestFilterDueForRefill_IgnoresTimeOfDay(t *testing.T) {
	// A refill late on the cutoff day still counts; comparison is by calendar day.
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	refill := time.Date(2026, 9, 8, 0, 1, 0, 0, time.UTC)

	due := FilterDueForRefill([]models.Prescription{
		{ID: 1, Status: models.PrescriptionActive, RefillDate: refill},
	}, now, 7)

	if len(due) != 1 {
		t.Errorf("expected refill on the boundary day to be included, got %d", len(due))
	}
}
